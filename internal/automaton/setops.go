package automaton

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Complement accepts exactly the words over a's alphabet that a rejects.
func Complement(a *Automaton) *Automaton {
	mustAutomaton(a)
	d := a
	if !d.IsDeterministic() {
		d = Determinize(d)
	}
	d = Complete(d)
	out := builderFrom(d).Build()
	for s := range out.final {
		out.final[s] = !out.final[s]
	}
	return out
}

// Intersect accepts the words accepted by both a and b.
func Intersect(a, b *Automaton) *Automaton {
	return Product(a, b, func(x, y bool) bool { return x && y })
}

// Union accepts the words accepted by a or b.
func Union(a, b *Automaton) *Automaton {
	return Product(a, b, func(x, y bool) bool { return x || y })
}

// Product runs a and b in lockstep over the union of their alphabets and
// accepts when op holds for their acceptance. A side without a move drops to
// an implicit dead, non-accepting state; pairs where both sides are dead are
// not materialized.
func Product(a, b *Automaton, op func(bool, bool) bool) *Automaton {
	mustAutomaton(a)
	mustAutomaton(b)
	if !a.IsDeterministic() {
		a = Determinize(a)
	}
	if !b.IsDeterministic() {
		b = Determinize(b)
	}

	type pair struct{ i, j State }
	step := func(d *Automaton, s State, c Symbol) State {
		if s == NoState {
			return NoState
		}
		if ts := d.delta[arc{s, c}]; len(ts) > 0 {
			return ts[0]
		}
		return NoState
	}
	final := func(d *Automaton, s State) bool { return s != NoState && d.final[s] }
	label := func(d *Automaton, s State) string {
		if s == NoState {
			return "∅"
		}
		return d.Label(s)
	}

	alpha := lo.Union(a.alphabet, b.alphabet)
	slices.Sort(alpha)

	out := NewBuilder()
	out.AddSymbol(alpha...)
	index := map[pair]State{}
	var queue []pair
	visit := func(p pair) State {
		if s, ok := index[p]; ok {
			return s
		}
		s := out.AddState(fmt.Sprintf("(%s,%s)", label(a, p.i), label(b, p.j)))
		if op(final(a, p.i), final(b, p.j)) {
			out.AddFinal(s)
		}
		index[p] = s
		queue = append(queue, p)
		return s
	}

	out.AddStart(visit(pair{a.Start(), b.Start()}))
	for i := 0; i < len(queue); i++ {
		p := queue[i]
		for _, c := range alpha {
			np := pair{step(a, p.i, c), step(b, p.j, c)}
			if np.i == NoState && np.j == NoState {
				continue
			}
			out.AddTransition(index[p], c, visit(np))
		}
	}
	return out.Build()
}

// Reverse accepts the mirror image of every word accepted by a. The result is
// deterministic.
func Reverse(a *Automaton) *Automaton {
	mustAutomaton(a)
	b := NewBuilder()
	for _, l := range a.labels {
		b.AddState(l)
	}
	b.AddSymbol(a.alphabet...)
	for s, f := range a.final {
		if f {
			b.AddStart(State(s))
		}
	}
	for _, s := range a.starts {
		b.AddFinal(s)
	}
	for _, e := range a.Edges() {
		if e.Epsilon {
			b.AddEpsilon(e.To, e.From)
		} else {
			b.AddTransition(e.To, e.Symbol, e.From)
		}
	}
	return Determinize(b.Build())
}

// IsEmpty reports whether a accepts no word at all.
func IsEmpty(a *Automaton) bool {
	mustAutomaton(a)
	live := a.LiveStates()
	reach := a.reachable()
	for s := range live {
		if live[s] && reach[s] {
			return false
		}
	}
	return true
}

// Equivalent reports whether a and b accept the same language.
func Equivalent(a, b *Automaton) bool {
	return IsEmpty(Product(a, b, func(x, y bool) bool { return x != y }))
}
