package grammar

import (
	"fmt"
	"regexp"
	"strings"
)

var powerN = regexp.MustCompile(`^([a-z])\^n([a-z])\^n$`)

// FromDescription builds a grammar with start symbol S from a short language
// description. Two shapes are understood:
//
//	a^nb^n     S -> a S b | ε
//	x | y | z  S -> x | y | z
//
// Anything else fails with ErrUnsupported.
func FromDescription(desc string) (*Grammar, error) {
	switch {
	case strings.Contains(desc, "^n"):
		m := powerN.FindStringSubmatch(strings.ReplaceAll(desc, " ", ""))
		if m == nil {
			return nil, fmt.Errorf("%w: %q is not of the form a^nb^n", ErrUnsupported, desc)
		}
		return Parse(fmt.Sprintf("S -> %s S %s | ε", m[1], m[2]))
	case strings.Contains(desc, "|"):
		var alts []string
		for _, alt := range strings.Split(desc, "|") {
			if alt = strings.TrimSpace(alt); alt != "" {
				alts = append(alts, alt)
			}
		}
		if len(alts) < 2 {
			return nil, fmt.Errorf("%w: %q needs at least two alternatives", ErrUnsupported, desc)
		}
		return Parse("S -> " + strings.Join(alts, " | "))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, desc)
	}
}
