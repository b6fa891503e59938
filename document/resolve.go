package document

import (
	"fmt"

	"github.com/pilacorp/go-diddoc/common/errs"
	"github.com/pilacorp/go-diddoc/verification"
)

var _ verification.Resolver = (*Document)(nil)

// Resolve returns the first method selected by q.
//
// Relationship entries that reference a method are followed one hop into the
// verificationMethod collection by fragment; the result then reports the
// VerificationMethod scope. A reference without a fragment resolves to nothing.
func (d *Document) Resolve(q verification.MethodQuery) (verification.MethodWrap, bool) {
	if q.Scope == verification.VerificationMethod {
		return d.resolveVerificationMethod(q.Index)
	}

	set := d.Relationship(q.Scope)

	for i := 0; i < set.Len(); i++ {
		ref := set.At(i)
		if !q.Index.Matches(i, ref.ID()) {
			continue
		}

		if m, ok := ref.Embedded(); ok {
			return verification.NewMethodWrap(m, i, q.Scope), true
		}

		target, _ := ref.Referenced()
		if !target.HasFragment() {
			logger.Debugf("reference %s in %s has no fragment", target, q.Scope)
			return verification.MethodWrap{}, false
		}

		return d.resolveVerificationMethod(verification.Ident(target.Fragment()))
	}

	return verification.MethodWrap{}, false
}

func (d *Document) resolveVerificationMethod(index verification.MethodIndex) (verification.MethodWrap, bool) {
	for i := 0; i < d.verificationMethod.Len(); i++ {
		m := d.verificationMethod.At(i)
		if index.Matches(i, m.ID()) {
			return verification.NewMethodWrap(m, i, verification.VerificationMethod), true
		}
	}

	return verification.MethodWrap{}, false
}

// TryResolve is like Resolve but reports a miss as ErrVerificationMethodNotFound.
func (d *Document) TryResolve(q verification.MethodQuery) (verification.MethodWrap, error) {
	wrap, ok := d.Resolve(q)
	if !ok {
		return verification.MethodWrap{}, fmt.Errorf("%w: %s", errs.ErrVerificationMethodNotFound, q)
	}

	return wrap, nil
}

// ResolveBytes returns the decoded key of the selected method. Misses and
// decode failures both yield false.
func (d *Document) ResolveBytes(q verification.MethodQuery) ([]byte, bool) {
	wrap, ok := d.Resolve(q)
	if !ok {
		return nil, false
	}

	key, err := wrap.Data().TryDecode()
	if err != nil {
		return nil, false
	}

	return key, true
}

// TryResolveBytes returns the decoded key of the selected method.
func (d *Document) TryResolveBytes(q verification.MethodQuery) ([]byte, error) {
	wrap, err := d.TryResolve(q)
	if err != nil {
		return nil, err
	}

	return wrap.Data().TryDecode()
}
