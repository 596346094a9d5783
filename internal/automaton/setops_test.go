package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"langgen/internal/automaton"
)

// onlyA accepts a+ over the alphabet {a}.
func onlyA(t *testing.T) *automaton.Automaton {
	return mustBuild(t, automaton.Definition{
		Alphabet: []string{"a"},
		States:   []string{"S", "F"},
		Starts:   []string{"S"},
		Finals:   []string{"F"},
		Transitions: []automaton.Triple{
			{From: "S", Symbol: "a", To: "F"},
			{From: "F", Symbol: "a", To: "F"},
		},
		Deterministic: true,
	})
}

func TestIntersectUnion(t *testing.T) {
	a, b := onlyA(t), endsWithA(t)

	in := automaton.Intersect(a, b)
	assert.Equal(t, ab, in.Alphabet())
	for w, want := range map[string]bool{"a": true, "aa": true, "b": false, "ba": false, "": false} {
		assert.Equal(t, want, in.AcceptsString(w), "intersect %q", w)
	}

	un := automaton.Union(a, b)
	for w, want := range map[string]bool{"a": true, "ba": true, "ab": false, "": false, "b": false} {
		assert.Equal(t, want, un.AcceptsString(w), "union %q", w)
	}
}

func TestComplement(t *testing.T) {
	c := automaton.Complement(endsWithA(t))
	assert.True(t, c.IsComplete())
	for w, want := range map[string]bool{"": true, "b": true, "ab": true, "a": false, "ba": false} {
		assert.Equal(t, want, c.AcceptsString(w), "complement %q", w)
	}
}

func TestReverse(t *testing.T) {
	a := mustBuild(t, automaton.Definition{
		Alphabet: []string{"a", "b"},
		States:   []string{"S", "X", "F"},
		Starts:   []string{"S"},
		Finals:   []string{"F"},
		Transitions: []automaton.Triple{
			{From: "S", Symbol: "a", To: "X"},
			{From: "X", Symbol: "b", To: "F"},
		},
	})
	r := automaton.Reverse(a)
	assert.True(t, r.IsDeterministic())
	assert.True(t, r.AcceptsString("ba"))
	assert.False(t, r.AcceptsString("ab"))
}

func TestEquivalentAndEmpty(t *testing.T) {
	b := endsWithA(t)
	assert.True(t, automaton.Equivalent(b, automaton.Minimize(b)))
	assert.True(t, automaton.Equivalent(b, automaton.Complete(b)))
	assert.False(t, automaton.Equivalent(onlyA(t), b))

	assert.False(t, automaton.IsEmpty(b))
	assert.True(t, automaton.IsEmpty(automaton.Intersect(b, automaton.Complement(b))))
}
