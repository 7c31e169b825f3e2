package http11

import "github.com/intuitivelabs/bytescase"

// Header is an ordered (name, value) pair. Name preserves the casing
// received on the wire; lookups against a Headers slice are
// case-insensitive per RFC 9112 §5.1.
type Header struct {
	Name  string
	Value string
}

// Headers is the ordered sequence of headers collected for one request.
// Multiple headers may share a name (e.g. repeated Set-Cookie-like fields);
// order of arrival is preserved.
type Headers []Header

// Get returns the first value matching name (case-insensitive), and
// whether a match was found.
func (h Headers) Get(name string) (string, bool) {
	nb := []byte(name)
	for _, hd := range h {
		if bytescase.CmpEq([]byte(hd.Name), nb) {
			return hd.Value, true
		}
	}
	return "", false
}

// Values returns every value matching name (case-insensitive), in arrival
// order. Returns nil if there is no match.
func (h Headers) Values(name string) []string {
	nb := []byte(name)
	var out []string
	for _, hd := range h {
		if bytescase.CmpEq([]byte(hd.Name), nb) {
			out = append(out, hd.Value)
		}
	}
	return out
}

// Has reports whether any header matches name (case-insensitive).
func (h Headers) Has(name string) bool {
	nb := []byte(name)
	for _, hd := range h {
		if bytescase.CmpEq([]byte(hd.Name), nb) {
			return true
		}
	}
	return false
}
