package verification

import "github.com/pilacorp/go-diddoc/did"

// MethodWrap is a resolved method together with where it was found.
type MethodWrap struct {
	method *Method
	index  int
	scope  MethodScope
}

// NewMethodWrap tags m with its position and the scope it was resolved in.
func NewMethodWrap(m *Method, index int, scope MethodScope) MethodWrap {
	return MethodWrap{method: m, index: index, scope: scope}
}

func (w MethodWrap) Method() *Method     { return w.method }
func (w MethodWrap) Index() int          { return w.index }
func (w MethodWrap) Scope() MethodScope  { return w.scope }
func (w MethodWrap) ID() did.DID         { return w.method.ID() }
func (w MethodWrap) Controller() did.DID { return w.method.Controller() }
func (w MethodWrap) Type() MethodType    { return w.method.Type() }
func (w MethodWrap) Data() MethodData    { return w.method.Data() }

// Fragment returns the method id fragment prefixed with '#'.
func (w MethodWrap) Fragment() (string, error) {
	return w.method.Fragment()
}
