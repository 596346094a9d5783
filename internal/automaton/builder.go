package automaton

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Builder assembles an Automaton. A Builder is not safe for concurrent use;
// Build may be called more than once and each result is independent.
type Builder struct {
	labels   []string
	alphabet map[Symbol]struct{}
	starts   map[State]struct{}
	final    []bool
	delta    map[arc][]State
	eps      [][]State
}

func NewBuilder() *Builder {
	return &Builder{
		alphabet: make(map[Symbol]struct{}),
		starts:   make(map[State]struct{}),
		delta:    make(map[arc][]State),
	}
}

// builderFrom copies a into a fresh Builder.
func builderFrom(a *Automaton) *Builder {
	b := NewBuilder()
	for _, l := range a.labels {
		b.AddState(l)
	}
	b.AddSymbol(a.alphabet...)
	for _, s := range a.starts {
		b.AddStart(s)
	}
	for s, f := range a.final {
		if f {
			b.AddFinal(State(s))
		}
	}
	for k, ts := range a.delta {
		b.delta[k] = slices.Clone(ts)
	}
	for s, ts := range a.eps {
		b.eps[s] = slices.Clone(ts)
	}
	return b
}

// AddState appends a state with the given display label and returns its index.
func (b *Builder) AddState(label string) State {
	b.labels = append(b.labels, label)
	b.final = append(b.final, false)
	b.eps = append(b.eps, nil)
	return State(len(b.labels) - 1)
}

func (b *Builder) NumStates() int { return len(b.labels) }

// AddSymbol declares symbols even if no transition uses them.
func (b *Builder) AddSymbol(syms ...Symbol) {
	for _, sym := range syms {
		b.alphabet[sym] = struct{}{}
	}
}

func (b *Builder) AddStart(s State) {
	b.check(s)
	b.starts[s] = struct{}{}
}

func (b *Builder) AddFinal(s State) {
	b.check(s)
	b.final[s] = true
}

// AddTransition adds from --sym--> to and declares sym.
func (b *Builder) AddTransition(from State, sym Symbol, to State) {
	b.check(from)
	b.check(to)
	b.alphabet[sym] = struct{}{}
	k := arc{from, sym}
	b.delta[k] = append(b.delta[k], to)
}

func (b *Builder) AddEpsilon(from, to State) {
	b.check(from)
	b.check(to)
	b.eps[from] = append(b.eps[from], to)
}

func (b *Builder) check(s State) {
	if s < 0 || int(s) >= len(b.labels) {
		panic(fmt.Sprintf("automaton: state %d out of range [0,%d)", s, len(b.labels)))
	}
}

// Build returns the automaton assembled so far.
func (b *Builder) Build() *Automaton {
	a := &Automaton{
		labels:   slices.Clone(b.labels),
		alphabet: lo.Keys(b.alphabet),
		starts:   lo.Keys(b.starts),
		final:    slices.Clone(b.final),
		delta:    make(map[arc][]State, len(b.delta)),
		eps:      make([][]State, len(b.eps)),
	}
	slices.Sort(a.alphabet)
	slices.Sort(a.starts)
	for k, ts := range b.delta {
		if len(ts) > 0 {
			a.delta[k] = sortedUnique(ts)
		}
	}
	for s, ts := range b.eps {
		if len(ts) > 0 {
			a.eps[s] = sortedUnique(ts)
		}
	}
	return a
}

func sortedUnique(ts []State) []State {
	out := slices.Clone(ts)
	slices.Sort(out)
	return slices.Compact(out)
}
