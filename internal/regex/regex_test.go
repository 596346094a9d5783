package regex

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langgen/internal/automaton"
)

// ------------------------------------------------------------------- helpers

func newRE(t *testing.T, pat string) *automaton.Automaton {
	t.Helper()
	a, err := Compile(pat)
	require.NoError(t, err, "compile %q", pat)
	return a
}

func acc(t *testing.T, a *automaton.Automaton, in string, want bool) {
	t.Helper()
	assert.Equal(t, want, a.AcceptsString(in), "input %q", in)
}

// ------------------------------------------------------------------- Parser

func TestNormalizePrecedence(t *testing.T) {
	for pat, want := range map[string]string{
		"a":       "a",
		"ab":      "(ab)",
		"a|bc*":   "(a|(b(c)*))",
		"(a|b)+c": "((a|b)+c)",
		"a*?":     "((a)*)?",
		`a\*`:     `(a\*)`,
		"a b | c": "((ab)|c)",
	} {
		got, err := Normalize(pat)
		require.NoError(t, err, pat)
		assert.Equal(t, want, got, pat)
	}
}

func TestCompileErrors(t *testing.T) {
	for _, pat := range []string{"", "   ", "(a|b", "a)", "|a", "a|", "*a", "()", `a\`, "a||b"} {
		_, err := Compile(pat)
		require.Error(t, err, "pattern %q", pat)
		assert.True(t, errors.Is(err, ErrInvalidPattern), "pattern %q: %v", pat, err)
		assert.Contains(t, err.Error(), strconv.Quote(pat))
	}
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("(") })
	assert.NotPanics(t, func() { MustCompile("a") })
}

// ------------------------------------------------------------------- Thompson

func TestThompsonShape(t *testing.T) {
	for pat, states := range map[string]int{
		"a":    2,
		"ab":   4,
		"a|b":  6,
		"a*":   4,
		"a+":   4,
		"a?":   4,
		"(ab)": 4,
	} {
		a := newRE(t, pat)
		assert.Equal(t, states, a.NumStates(), pat)
		assert.Len(t, a.Starts(), 1, pat)
		assert.Len(t, a.Finals(), 1, pat)
	}

	lit := newRE(t, "a")
	assert.Equal(t, []automaton.Edge{{From: 0, Symbol: "a", To: 1}}, lit.Edges())
	assert.Equal(t, automaton.State(0), lit.Start())
	assert.Equal(t, []automaton.State{1}, lit.Finals())
}

func TestAlphabetIsSortedLiteralSet(t *testing.T) {
	a := newRE(t, "c(b|a)*c")
	assert.Equal(t, []automaton.Symbol{"a", "b", "c"}, a.Alphabet())

	esc := newRE(t, `\(\|\)`)
	assert.Equal(t, []automaton.Symbol{"(", ")", "|"}, esc.Alphabet())
	acc(t, esc, "(|)", true)
}

func TestLanguage(t *testing.T) {
	re := newRE(t, "a|bc*")
	acc(t, re, "a", true)
	acc(t, re, "b", true)
	acc(t, re, "bccc", true)
	acc(t, re, "ab", false)
	acc(t, re, "", false)

	re = newRE(t, "(ab)+")
	acc(t, re, "ab", true)
	acc(t, re, "abab", true)
	acc(t, re, "", false)
	acc(t, re, "aba", false)

	re = newRE(t, "ab?c")
	acc(t, re, "ac", true)
	acc(t, re, "abc", true)
	acc(t, re, "abbc", false)

	re = newRE(t, "a**")
	acc(t, re, "", true)
	acc(t, re, "aaa", true)

	re = newRE(t, "a b")
	acc(t, re, "ab", true)
}

func TestCompileIsReproducible(t *testing.T) {
	assert.True(t, automaton.Equal(MustCompile("(a|b)*abb"), MustCompile("(a|b)*abb")))
}

// ------------------------------------------------------------------- Pipeline

func TestStarThenLiteralMinimizesToTwoStates(t *testing.T) {
	dfa := automaton.Canonicalize(automaton.Minimize(automaton.Determinize(newRE(t, "a*b"))))
	require.Equal(t, 2, dfa.NumStates())
	assert.Equal(t, automaton.State(0), dfa.Start())
	assert.Equal(t, []automaton.State{0}, dfa.Targets(0, "a"))
	assert.Equal(t, []automaton.State{1}, dfa.Targets(0, "b"))
	assert.Equal(t, []automaton.State{1}, dfa.Finals())
	assert.Empty(t, dfa.Symbols(1))
}
