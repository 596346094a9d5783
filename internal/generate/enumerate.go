package generate

import (
	"fmt"

	"langgen/internal/automaton"
)

// Enumeration lists the strings accepted by an automaton up to a length.
type Enumeration struct {
	// Strings holds every accepted string of 1..maxLength symbols, shortest
	// first and lexicographic (by alphabet order) within a length.
	Strings []string
	// AcceptsEmpty reports whether the empty string is accepted. It is kept
	// apart from Strings.
	AcceptsEmpty bool
}

type options struct {
	maxResults int
}

type Option func(*options)

// WithMaxResults bounds the number of prefixes kept during the search plus
// the strings collected. Zero or less means no bound.
func WithMaxResults(n int) Option {
	return func(o *options) { o.maxResults = n }
}

type prefix struct {
	state automaton.State
	word  []automaton.Symbol
}

// Enumerate lists the accepted strings of a with 1..maxLength symbols.
//
// The search is breadth-first over (state set, prefix) pairs: the automaton is
// determinized, so each prefix reaches exactly one state set. Prefixes whose
// state cannot reach a final state are dropped. Expanding the frontier in
// alphabet order keeps each level sorted. When different symbol sequences
// spell the same string, only the first is kept.
func Enumerate(a *automaton.Automaton, maxLength int, opts ...Option) (Enumeration, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	d := a
	if !d.IsDeterministic() {
		d = automaton.Determinize(d)
	}
	live := d.LiveStates()
	alpha := d.Alphabet()

	var out Enumeration
	start := d.Start()
	if start == automaton.NoState {
		return out, nil
	}
	out.AcceptsEmpty = d.IsFinal(start)
	if !live[start] {
		return out, nil
	}

	seen := map[string]bool{}
	frontier := []prefix{{state: start}}
	for length := 1; length <= maxLength && len(frontier) > 0; length++ {
		var next []prefix
		for _, p := range frontier {
			for _, c := range alpha {
				ts := d.Targets(p.state, c)
				if len(ts) == 0 || !live[ts[0]] {
					continue
				}
				w := make([]automaton.Symbol, len(p.word)+1)
				copy(w, p.word)
				w[len(p.word)] = c
				next = append(next, prefix{state: ts[0], word: w})

				if d.IsFinal(ts[0]) {
					s := join(w)
					if !seen[s] {
						seen[s] = true
						out.Strings = append(out.Strings, s)
					}
				}
				if o.maxResults > 0 && len(next)+len(out.Strings) > o.maxResults {
					return Enumeration{}, fmt.Errorf("%w: more than %d strings and prefixes within length %d",
						ErrBudgetExceeded, o.maxResults, maxLength)
				}
			}
		}
		frontier = next
	}
	return out, nil
}
