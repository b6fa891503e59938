package verification

import (
	"strconv"
	"strings"

	"github.com/pilacorp/go-diddoc/did"
)

// MethodIndex selects a method either by position within a collection or by identifier.
type MethodIndex struct {
	pos   int
	ident string
	named bool
}

// Index selects the method at position i.
func Index(i int) MethodIndex {
	return MethodIndex{pos: i}
}

// Ident selects a method by identifier. A bare fragment, a '#'-prefixed
// fragment and a fully qualified DID URL are all accepted; only the fragment
// is compared.
func Ident(s string) MethodIndex {
	if _, fragment, ok := strings.Cut(s, "#"); ok {
		s = fragment
	}

	return MethodIndex{ident: s, named: true}
}

// IsIdent reports whether the index selects by identifier.
func (i MethodIndex) IsIdent() bool { return i.named }

// Matches reports whether the candidate at position pos with identifier id is selected.
func (i MethodIndex) Matches(pos int, id did.DID) bool {
	if !i.named {
		return i.pos == pos
	}

	return id.HasFragment() && id.Fragment() == i.ident
}

func (i MethodIndex) String() string {
	if i.named {
		return "#" + i.ident
	}

	return strconv.Itoa(i.pos)
}

// MethodQuery selects a method within one verification relationship.
type MethodQuery struct {
	Index MethodIndex
	Scope MethodScope
}

// Query selects a method by identifier in the VerificationMethod scope.
func Query(ident string) MethodQuery {
	return MethodQuery{Index: Ident(ident)}
}

// QueryAt selects a method by position in the VerificationMethod scope.
func QueryAt(pos int) MethodQuery {
	return MethodQuery{Index: Index(pos)}
}

// In returns a copy of q restricted to scope.
func (q MethodQuery) In(scope MethodScope) MethodQuery {
	q.Scope = scope
	return q
}

func (q MethodQuery) String() string {
	return q.Index.String() + " in " + q.Scope.String()
}

// Resolver finds the method selected by a query.
type Resolver interface {
	Resolve(q MethodQuery) (MethodWrap, bool)
}
