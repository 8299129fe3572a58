package formats

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidQuery is returned for queries with no tokens or with a
	// token shorter than three characters, which would match almost
	// anything.
	ErrInvalidQuery = errors.New("invalid format query")
	// ErrNoMatch is returned when no supported format matches all tokens.
	ErrNoMatch = errors.New("no format matches all given tokens")
	// ErrAmbiguous is returned when the tokens leave more than one
	// supported format in play.
	ErrAmbiguous = errors.New("tokens underspecify a unique format")
)

// Resolve matches a loosely specified format string against the names the
// camera reports as supported and returns the single catalog entry that
// fits. The query is split on whitespace and matched case-insensitively as
// substrings, so token order does not matter: "mono 800x600" and
// "800x600 mono" resolve identically. Every token must narrow the
// candidate set to exactly one name.
func Resolve(query string, supported []string) (Descriptor, error) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return Descriptor{}, fmt.Errorf("%w: empty query", ErrInvalidQuery)
	}
	candidates := append([]string(nil), supported...)
	for _, tok := range tokens {
		if len(tok) < 3 {
			return Descriptor{}, fmt.Errorf("%w: token %q shorter than 3 characters", ErrInvalidQuery, tok)
		}
		var next []string
		for _, name := range candidates {
			if strings.Contains(strings.ToLower(name), tok) {
				next = append(next, name)
			}
		}
		candidates = next
	}
	switch len(candidates) {
	case 0:
		return Descriptor{}, fmt.Errorf("%w: %q", ErrNoMatch, query)
	case 1:
	default:
		return Descriptor{}, fmt.Errorf("%w: %q leaves %v", ErrAmbiguous, query, candidates)
	}
	d, ok := Lookup(candidates[0])
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q is not a catalogued format", ErrNoMatch, candidates[0])
	}
	return d, nil
}
