package automaton

import "fmt"

// Canonicalize renumbers and relabels states in breadth-first discovery order
// from the start states. Successors are discovered epsilon moves first, then by
// symbol in alphabet order, then by target index; unreachable states follow in
// their original order. Labels become q0, q1, ... The result is isomorphic to a:
// every transition, start and final state is carried over.
func Canonicalize(a *Automaton) *Automaton {
	mustAutomaton(a)
	n := a.NumStates()

	order := make([]State, 0, n)
	seen := make([]bool, n)
	visit := func(s State) {
		if !seen[s] {
			seen[s] = true
			order = append(order, s)
		}
	}
	for _, s := range a.starts {
		visit(s)
	}
	for i := 0; i < len(order); i++ {
		s := order[i]
		for _, t := range a.eps[s] {
			visit(t)
		}
		for _, sym := range a.alphabet {
			for _, t := range a.delta[arc{s, sym}] {
				visit(t)
			}
		}
	}
	for s := 0; s < n; s++ {
		visit(State(s))
	}

	rename := make([]State, n)
	for i, s := range order {
		rename[s] = State(i)
	}

	b := NewBuilder()
	b.AddSymbol(a.alphabet...)
	for i := range order {
		b.AddState(fmt.Sprintf("q%d", i))
	}
	for _, s := range a.starts {
		b.AddStart(rename[s])
	}
	for _, s := range order {
		if a.final[s] {
			b.AddFinal(rename[s])
		}
		for _, t := range a.eps[s] {
			b.AddEpsilon(rename[s], rename[t])
		}
		for _, sym := range a.alphabet {
			for _, t := range a.delta[arc{s, sym}] {
				b.AddTransition(rename[s], sym, rename[t])
			}
		}
	}
	return b.Build()
}
