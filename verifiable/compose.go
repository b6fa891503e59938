package verifiable

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/signature"
	"github.com/pilacorp/go-diddoc/verification"
)

// Keys returns a KeyResolver that decodes the key of the method root selects.
func Keys(root verification.Resolver) signature.KeyResolver {
	return signature.KeyResolverFunc(func(q verification.MethodQuery) ([]byte, error) {
		wrap, ok := root.Resolve(q)
		if !ok {
			return nil, fmt.Errorf("%w: %s", errs.ErrVerificationMethodNotFound, q)
		}

		return wrap.Data().TryDecode()
	})
}

// MethodKey returns a KeyResolver that always yields the key of m, whatever
// the query.
func MethodKey(m *verification.Method) signature.KeyResolver {
	return signature.KeyResolverFunc(func(verification.MethodQuery) ([]byte, error) {
		return m.Data().TryDecode()
	})
}

// DocumentReader checks the proof of an external payload against the methods
// of a root document. It serializes as the payload.
type DocumentReader struct {
	root verification.Resolver
	data signature.Getter
}

// NewDocumentReader pairs data with root.
func NewDocumentReader(root verification.Resolver, data signature.Getter) *DocumentReader {
	return &DocumentReader{root: root, data: data}
}

func (r *DocumentReader) Proof() *signature.Signature  { return r.data.Proof() }
func (r *DocumentReader) Data() signature.Getter       { return r.data }
func (r *DocumentReader) MarshalJSON() ([]byte, error) { return json.Marshal(r.data) }

// ResolveKey returns the decoded key of the root method selected by q.
func (r *DocumentReader) ResolveKey(q verification.MethodQuery) ([]byte, error) {
	return Keys(r.root).ResolveKey(q)
}

// Verify checks the payload proof.
func (r *DocumentReader) Verify(suite signature.Suite) error {
	return signature.Verify(r.data, r, suite)
}

// DocumentWriter signs an external payload with a key listed in a root
// document and can verify it afterwards.
type DocumentWriter struct {
	root verification.Resolver
	data signature.Setter
}

// NewDocumentWriter pairs data with root.
func NewDocumentWriter(root verification.Resolver, data signature.Setter) *DocumentWriter {
	return &DocumentWriter{root: root, data: data}
}

func (w *DocumentWriter) Proof() *signature.Signature     { return w.data.Proof() }
func (w *DocumentWriter) SetProof(p *signature.Signature) { w.data.SetProof(p) }
func (w *DocumentWriter) Data() signature.Setter          { return w.data }
func (w *DocumentWriter) MarshalJSON() ([]byte, error)    { return json.Marshal(w.data) }

// ResolveKey returns the decoded key of the root method selected by q.
func (w *DocumentWriter) ResolveKey(q verification.MethodQuery) ([]byte, error) {
	return Keys(w.root).ResolveKey(q)
}

// Sign signs the payload with secret.
func (w *DocumentWriter) Sign(suite signature.Suite, options signature.Options, secret []byte) error {
	return signature.Sign(w.data, suite, options, secret)
}

// Verify checks the payload proof against the root document.
func (w *DocumentWriter) Verify(suite signature.Suite) error {
	return signature.Verify(w.data, w, suite)
}

// MethodReader checks the proof of a payload against one verification method.
type MethodReader struct {
	root *verification.Method
	data signature.Getter
}

// NewMethodReader pairs data with root.
func NewMethodReader(root *verification.Method, data signature.Getter) *MethodReader {
	return &MethodReader{root: root, data: data}
}

func (r *MethodReader) Proof() *signature.Signature  { return r.data.Proof() }
func (r *MethodReader) Data() signature.Getter       { return r.data }
func (r *MethodReader) MarshalJSON() ([]byte, error) { return json.Marshal(r.data) }

// Verify checks the payload proof with the method key.
func (r *MethodReader) Verify(suite signature.Suite) error {
	return signature.Verify(r.data, MethodKey(r.root), suite)
}

// MethodWriter signs a payload whose proof names one verification method.
type MethodWriter struct {
	root *verification.Method
	data signature.Setter
}

// NewMethodWriter pairs data with root.
func NewMethodWriter(root *verification.Method, data signature.Setter) *MethodWriter {
	return &MethodWriter{root: root, data: data}
}

func (w *MethodWriter) Proof() *signature.Signature     { return w.data.Proof() }
func (w *MethodWriter) SetProof(p *signature.Signature) { w.data.SetProof(p) }
func (w *MethodWriter) Data() signature.Setter          { return w.data }
func (w *MethodWriter) MarshalJSON() ([]byte, error)    { return json.Marshal(w.data) }

// Sign signs the payload with secret. The proof names the method id.
func (w *MethodWriter) Sign(suite signature.Suite, secret []byte, opts ...signature.Opt) error {
	return signature.Sign(w.data, suite, signature.NewOptions(w.root.ID().String(), opts...), secret)
}

// Verify checks the payload proof with the method key.
func (w *MethodWriter) Verify(suite signature.Suite) error {
	return signature.Verify(w.data, MethodKey(w.root), suite)
}

// VerifyBatch verifies payloads concurrently against root and returns the
// first failure. Each payload must be owned by the caller for the duration of
// the call; root is only read.
func VerifyBatch(ctx context.Context, root verification.Resolver, suite signature.Suite, payloads ...signature.Getter) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	keys := Keys(root)

	for i, payload := range payloads {
		i, payload := i, payload

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := signature.Verify(payload, keys, suite); err != nil {
				return fmt.Errorf("failed to verify payload %d: %w", i, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Debugf("verified %d payloads", len(payloads))

	return nil
}
