// Package generate produces strings from an automaton: random samples and the
// exhaustive, ordered list of accepted strings up to a length.
package generate

import (
	"math/rand"
	"strings"

	"langgen/internal/automaton"
)

// DefaultMaxAttempts is the number of independent walks Sample is usually
// given before it reports failure.
const DefaultMaxAttempts = 100

// Result is the outcome of Sample. Found is false when every attempt failed;
// Value and Word are then empty.
type Result struct {
	Value string
	Word  []automaton.Symbol
	Found bool
}

// Err returns ErrNoStringFound for an unsuccessful result and nil otherwise.
func (r Result) Err() error {
	if r.Found {
		return nil
	}
	return ErrNoStringFound
}

// Sample looks for an accepted string by random walks from a start state.
//
// Each step picks uniformly among the symbols that have a move from the
// current state, then uniformly among that symbol's targets. The walk stops at
// the first final state it enters. An attempt fails when it hits a state
// without moves or has taken maxLength steps; after maxAttempts failed
// attempts the result is not found. Walks never look ahead, so they may fail
// even when an accepted string of at most maxLength symbols exists. A walk
// takes at least one step: the empty string is never returned.
//
// Epsilon moves are removed before walking. rng must not be shared between
// goroutines.
func Sample(a *automaton.Automaton, maxLength, maxAttempts int, rng *rand.Rand) Result {
	if a.HasEpsilon() {
		a = automaton.RemoveEpsilon(a)
	}
	starts := a.Starts()
	if len(starts) == 0 {
		return Result{}
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if word, ok := walk(a, starts[rng.Intn(len(starts))], maxLength, rng); ok {
			return Result{Value: join(word), Word: word, Found: true}
		}
	}
	return Result{}
}

func walk(a *automaton.Automaton, s automaton.State, maxLength int, rng *rand.Rand) ([]automaton.Symbol, bool) {
	var word []automaton.Symbol
	for step := 0; step < maxLength; step++ {
		syms := a.Symbols(s)
		if len(syms) == 0 {
			return nil, false
		}
		c := syms[rng.Intn(len(syms))]
		ts := a.Targets(s, c)
		s = ts[rng.Intn(len(ts))]
		word = append(word, c)
		if a.IsFinal(s) {
			return word, true
		}
	}
	return nil, false
}

func join(word []automaton.Symbol) string {
	var sb strings.Builder
	for _, c := range word {
		sb.WriteString(string(c))
	}
	return sb.String()
}
