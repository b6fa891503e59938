// Package did parses and compares DIDs and DID URLs.
package did

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pilacorp/go-diddoc/common/errs"
)

const (
	scheme = "did"
	prefix = scheme + ":"
)

var (
	methodRegexp = regexp.MustCompile(`^[a-z0-9]+$`)
	idRegexp     = regexp.MustCompile(`^(?:[A-Za-z0-9._-]|%[0-9A-Fa-f]{2})*(?::(?:[A-Za-z0-9._-]|%[0-9A-Fa-f]{2})*)*$`)
)

// DID is a parsed DID or DID URL: did:<method>:<method-specific-id>[/path][?query][#fragment].
//
// The zero value is the empty identifier; it is never produced by Parse.
type DID struct {
	method   string
	id       string
	path     string
	query    string
	fragment string
}

// Parse parses a DID or DID URL.
func Parse(s string) (DID, error) {
	var d DID

	if !strings.HasPrefix(s, prefix) {
		return d, fmt.Errorf("%w: %q must start with %q", errs.ErrInvalidIdentifier, s, prefix)
	}

	rest := s[len(prefix):]

	if before, after, ok := strings.Cut(rest, "#"); ok {
		d.fragment = after
		rest = before
	}

	if before, after, ok := strings.Cut(rest, "?"); ok {
		d.query = after
		rest = before
	}

	if i := strings.IndexByte(rest, '/'); i >= 0 {
		d.path = rest[i:]
		rest = rest[:i]
	}

	method, id, ok := strings.Cut(rest, ":")
	if !ok {
		return DID{}, fmt.Errorf("%w: %q has no method-specific id", errs.ErrInvalidIdentifier, s)
	}

	if !methodRegexp.MatchString(method) {
		return DID{}, fmt.Errorf("%w: invalid method name %q", errs.ErrInvalidIdentifier, method)
	}

	if id == "" || strings.HasSuffix(id, ":") || !idRegexp.MatchString(id) {
		return DID{}, fmt.Errorf("%w: invalid method-specific id %q", errs.ErrInvalidIdentifier, id)
	}

	d.method = method
	d.id = id

	return d, nil
}

// MustParse is like Parse but panics on error. Use it for literals only.
func MustParse(s string) DID {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return d
}

// Method returns the DID method name.
func (d DID) Method() string { return d.method }

// MethodID returns the method-specific identifier.
func (d DID) MethodID() string { return d.id }

// Path returns the DID URL path, including the leading slash.
func (d DID) Path() string { return d.path }

// Query returns the DID URL query, without the leading question mark.
func (d DID) Query() string { return d.query }

// Fragment returns the fragment without the leading '#'.
func (d DID) Fragment() string { return d.fragment }

// HasFragment reports whether the identifier carries a non-empty fragment.
func (d DID) HasFragment() bool { return d.fragment != "" }

// IsZero reports whether d is the empty identifier.
func (d DID) IsZero() bool { return d.method == "" }

// Base returns the bare DID with path, query and fragment stripped.
func (d DID) Base() DID {
	return DID{method: d.method, id: d.id}
}

// WithoutFragment returns a copy with the fragment removed.
func (d DID) WithoutFragment() DID {
	d.fragment = ""
	return d
}

// WithFragment returns a copy with the fragment set. A leading '#' is ignored.
func (d DID) WithFragment(fragment string) DID {
	d.fragment = strings.TrimPrefix(fragment, "#")
	return d
}

// Join resolves ref against d. A ref starting with '#' replaces the fragment;
// anything else must be an absolute DID URL.
func (d DID) Join(ref string) (DID, error) {
	if strings.HasPrefix(ref, "#") {
		if d.IsZero() {
			return DID{}, fmt.Errorf("%w: cannot join %q onto an empty DID", errs.ErrInvalidIdentifier, ref)
		}

		return d.WithFragment(ref), nil
	}

	return Parse(ref)
}

// Equal reports whether two identifiers have the same canonical form.
func (d DID) Equal(other DID) bool {
	return d == other
}

func (d DID) String() string {
	if d.IsZero() {
		return ""
	}

	var b strings.Builder

	b.WriteString(prefix)
	b.WriteString(d.method)
	b.WriteByte(':')
	b.WriteString(d.id)
	b.WriteString(d.path)

	if d.query != "" {
		b.WriteByte('?')
		b.WriteString(d.query)
	}

	if d.fragment != "" {
		b.WriteByte('#')
		b.WriteString(d.fragment)
	}

	return b.String()
}

// MarshalText encodes the identifier as its canonical string.
func (d DID) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses the identifier from its string form.
func (d *DID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
