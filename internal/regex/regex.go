// Package regex compiles regular expressions into epsilon-NFAs by Thompson's
// construction.
//
// The pattern language has literals, alternation (|), implicit concatenation,
// the postfix operators * + ? and grouping with parentheses. A backslash makes
// the next character a literal; unescaped whitespace is ignored. Every literal
// is one symbol of the resulting automaton's alphabet.
package regex

import (
	"errors"
	"fmt"
	"strings"

	"langgen/internal/automaton"
)

var ErrInvalidPattern = errors.New("regex: invalid pattern")

// Compile parses pattern and returns its Thompson epsilon-NFA: one start
// state, one final state, two states per literal.
func Compile(pattern string) (*automaton.Automaton, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w %q: empty pattern", ErrInvalidPattern, pattern)
	}
	ast, err := parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	return compileASTtoNFA(ast), nil
}

func MustCompile(pattern string) *automaton.Automaton {
	a, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return a
}

// Normalize returns pattern fully parenthesized, showing how it was parsed.
func Normalize(pattern string) (string, error) {
	if strings.TrimSpace(pattern) == "" {
		return "", fmt.Errorf("%w %q: empty pattern", ErrInvalidPattern, pattern)
	}
	ast, err := parse(pattern)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	return ast.String(), nil
}
