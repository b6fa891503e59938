package signature

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pilacorp/go-diddoc/common/errs"
)

// Suite produces and checks proof values for one signature algorithm.
//
// Sign and Verify receive the payload with its proof attached and the proof
// value absent; suites serialize the payload as they see fit.
type Suite interface {
	Name() string
	Sign(payload interface{}, secret []byte) (Data, error)
	Verify(payload interface{}, data Data, public []byte) error
}

// Registry maps suite names to suites. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	suites map[string]Suite
}

// NewRegistry returns a registry holding suites.
func NewRegistry(suites ...Suite) *Registry {
	r := &Registry{suites: make(map[string]Suite, len(suites))}
	for _, s := range suites {
		r.Register(s)
	}

	return r
}

// Register adds s, replacing any suite of the same name.
func (r *Registry) Register(s Suite) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.suites[s.Name()] = s
}

// Get returns the suite registered under name.
func (r *Registry) Get(name string) (Suite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.suites[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownSuite, name)
	}

	return s, nil
}

// Names returns the registered suite names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.suites))
	for name := range r.suites {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
