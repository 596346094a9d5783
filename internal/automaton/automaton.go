package automaton

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Symbol is one input token of an alphabet. Symbols compare by value.
type Symbol string

// State is an index into the state arena of a single automaton.
type State int

// NoState is returned by Start when an automaton has no start state.
const NoState State = -1

type arc struct {
	from State
	sym  Symbol
}

// Automaton is a finite automaton. It is immutable once built, so it may be
// shared between goroutines without locking.
type Automaton struct {
	labels   []string
	alphabet []Symbol // sorted, unique
	starts   []State  // sorted, unique
	final    []bool
	delta    map[arc][]State // targets sorted, unique
	eps      [][]State
}

// Edge is a single transition. Epsilon edges carry an empty Symbol.
type Edge struct {
	From    State
	Symbol  Symbol
	To      State
	Epsilon bool
}

func (a *Automaton) NumStates() int { return len(a.labels) }

// States returns every state index in ascending order.
func (a *Automaton) States() []State {
	out := make([]State, len(a.labels))
	for i := range out {
		out[i] = State(i)
	}
	return out
}

// Label returns the display label of s; states without one are shown as "q<index>".
func (a *Automaton) Label(s State) string {
	if l := a.labels[s]; l != "" {
		return l
	}
	return fmt.Sprintf("q%d", s)
}

func (a *Automaton) Alphabet() []Symbol { return slices.Clone(a.alphabet) }

func (a *Automaton) HasSymbol(sym Symbol) bool {
	_, ok := slices.BinarySearch(a.alphabet, sym)
	return ok
}

func (a *Automaton) Starts() []State { return slices.Clone(a.starts) }

// Start returns the lowest start state, or NoState.
func (a *Automaton) Start() State {
	if len(a.starts) == 0 {
		return NoState
	}
	return a.starts[0]
}

func (a *Automaton) IsStart(s State) bool {
	_, ok := slices.BinarySearch(a.starts, s)
	return ok
}

func (a *Automaton) IsFinal(s State) bool { return a.final[s] }

// Finals returns the final states in ascending order.
func (a *Automaton) Finals() []State {
	var out []State
	for s, f := range a.final {
		if f {
			out = append(out, State(s))
		}
	}
	return out
}

// Targets returns the states reached from s on sym.
func (a *Automaton) Targets(s State, sym Symbol) []State {
	return slices.Clone(a.delta[arc{s, sym}])
}

// Epsilon returns the states reached from s by a single epsilon move.
func (a *Automaton) Epsilon(s State) []State { return slices.Clone(a.eps[s]) }

func (a *Automaton) HasEpsilon() bool {
	for _, ts := range a.eps {
		if len(ts) > 0 {
			return true
		}
	}
	return false
}

// Symbols returns, in alphabet order, the symbols with at least one target from s.
func (a *Automaton) Symbols(s State) []Symbol {
	var out []Symbol
	for _, sym := range a.alphabet {
		if len(a.delta[arc{s, sym}]) > 0 {
			out = append(out, sym)
		}
	}
	return out
}

// IsDeterministic reports whether a has one start state, no epsilon moves and
// at most one target per (state, symbol).
func (a *Automaton) IsDeterministic() bool {
	if len(a.starts) != 1 || a.HasEpsilon() {
		return false
	}
	for _, ts := range a.delta {
		if len(ts) > 1 {
			return false
		}
	}
	return true
}

// IsComplete reports whether every (state, symbol) pair has a transition and no
// epsilon moves are present.
func (a *Automaton) IsComplete() bool {
	if a.HasEpsilon() {
		return false
	}
	for s := range a.labels {
		for _, sym := range a.alphabet {
			if len(a.delta[arc{State(s), sym}]) == 0 {
				return false
			}
		}
	}
	return true
}

// Edges lists every transition ordered by source, then epsilon moves before
// symbols in alphabet order, then target.
func (a *Automaton) Edges() []Edge {
	var out []Edge
	for s := range a.labels {
		from := State(s)
		for _, t := range a.eps[s] {
			out = append(out, Edge{From: from, To: t, Epsilon: true})
		}
		for _, sym := range a.alphabet {
			for _, t := range a.delta[arc{from, sym}] {
				out = append(out, Edge{From: from, Symbol: sym, To: t})
			}
		}
	}
	return out
}

// Accepts reports whether the symbol sequence is in the language of a.
func (a *Automaton) Accepts(word ...Symbol) bool {
	cur := a.closure(a.startSet())
	for _, sym := range word {
		if cur.None() {
			return false
		}
		cur = a.closure(a.move(cur, sym))
	}
	return a.anyFinal(cur)
}

// AcceptsString reports whether some split of s into alphabet symbols is
// accepted. Every split is tried, so an alphabet such as {a, ab, bc} accepts
// "abc" as a bc.
func (a *Automaton) AcceptsString(s string) bool {
	// at[i] holds the states reachable after reading s[:i]
	at := make([]*bitset.BitSet, len(s)+1)
	at[0] = a.closure(a.startSet())
	for i := 0; i < len(s); i++ {
		if at[i] == nil || at[i].None() {
			continue
		}
		for _, sym := range a.alphabet {
			if sym == "" || !strings.HasPrefix(s[i:], string(sym)) {
				continue
			}
			next := a.closure(a.move(at[i], sym))
			j := i + len(sym)
			if at[j] == nil {
				at[j] = next
			} else {
				at[j].InPlaceUnion(next)
			}
		}
	}
	return at[len(s)] != nil && a.anyFinal(at[len(s)])
}

// Tokenize splits s into alphabet symbols. Among the splits that cover all of
// s it takes the longest symbol at each position.
func (a *Automaton) Tokenize(s string) ([]Symbol, bool) {
	// rest[i] reports whether s[i:] can be split
	rest := make([]bool, len(s)+1)
	rest[len(s)] = true
	for i := len(s) - 1; i >= 0; i-- {
		for _, sym := range a.alphabet {
			if sym != "" && strings.HasPrefix(s[i:], string(sym)) && rest[i+len(sym)] {
				rest[i] = true
				break
			}
		}
	}
	if !rest[0] {
		return nil, false
	}

	var out []Symbol
	for i := 0; i < len(s); {
		best := -1
		for k, sym := range a.alphabet {
			if sym != "" && strings.HasPrefix(s[i:], string(sym)) && rest[i+len(sym)] &&
				(best < 0 || len(sym) > len(a.alphabet[best])) {
				best = k
			}
		}
		out = append(out, a.alphabet[best])
		i += len(a.alphabet[best])
	}
	return out, true
}

// Equal reports whether a and b are structurally identical, labels included.
func Equal(a, b *Automaton) bool {
	mustAutomaton(a)
	mustAutomaton(b)
	if !slices.Equal(a.labels, b.labels) || !slices.Equal(a.alphabet, b.alphabet) ||
		!slices.Equal(a.starts, b.starts) || !slices.Equal(a.final, b.final) {
		return false
	}
	if len(a.delta) != len(b.delta) {
		return false
	}
	for k, ts := range a.delta {
		if !slices.Equal(ts, b.delta[k]) {
			return false
		}
	}
	for s := range a.eps {
		if !slices.Equal(a.eps[s], b.eps[s]) {
			return false
		}
	}
	return true
}

func (a *Automaton) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "automaton(%d states, alphabet %v", len(a.labels), a.alphabet)
	starts := make([]string, len(a.starts))
	for i, s := range a.starts {
		starts[i] = a.Label(s)
	}
	finals := a.Finals()
	fl := make([]string, len(finals))
	for i, s := range finals {
		fl[i] = a.Label(s)
	}
	fmt.Fprintf(&sb, ", start %v, final %v)", starts, fl)
	return sb.String()
}
