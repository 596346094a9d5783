package automaton

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Determinize converts a (possibly epsilon-) NFA into a DFA by subset
// construction. Each DFA state stands for the epsilon-closed set of NFA states
// it was discovered from; states are numbered in breadth-first discovery order
// and symbols are explored in alphabet order, so equal inputs give equal output.
// Empty subsets are not materialized: the result is a partial DFA.
func Determinize(nfa *Automaton) *Automaton {
	d, _ := DeterminizeLimit(nfa, 0)
	return d
}

// DeterminizeLimit is Determinize with a cap on the number of DFA states.
// A maxStates of zero or less means no cap.
func DeterminizeLimit(nfa *Automaton, maxStates int) (*Automaton, error) {
	mustAutomaton(nfa)

	b := NewBuilder()
	b.AddSymbol(nfa.alphabet...)

	index := make(map[string]State)
	var queue []*bitset.BitSet
	add := func(set *bitset.BitSet) (State, error) {
		k := setKey(set)
		if s, ok := index[k]; ok {
			return s, nil
		}
		if maxStates > 0 && len(queue) >= maxStates {
			return NoState, fmt.Errorf("%w: subset construction needs more than %d states", ErrStateBudget, maxStates)
		}
		s := b.AddState(nfa.setLabel(set))
		if nfa.anyFinal(set) {
			b.AddFinal(s)
		}
		index[k] = s
		queue = append(queue, set)
		return s, nil
	}

	start, err := add(nfa.closure(nfa.startSet()))
	if err != nil {
		return nil, err
	}
	b.AddStart(start)

	// queue[i] is the subset of DFA state i
	for i := 0; i < len(queue); i++ {
		for _, sym := range nfa.alphabet {
			next := nfa.move(queue[i], sym)
			if next.None() {
				continue
			}
			t, err := add(nfa.closure(next))
			if err != nil {
				return nil, err
			}
			b.AddTransition(State(i), sym, t)
		}
	}
	return b.Build(), nil
}

// RemoveEpsilon returns an equivalent automaton without epsilon moves. States
// keep their indices and labels; a state becomes final when its closure holds a
// final state, and it inherits every symbol move of its closure.
func RemoveEpsilon(nfa *Automaton) *Automaton {
	mustAutomaton(nfa)
	if !nfa.HasEpsilon() {
		return builderFrom(nfa).Build()
	}

	b := NewBuilder()
	for _, l := range nfa.labels {
		b.AddState(l)
	}
	b.AddSymbol(nfa.alphabet...)
	for _, s := range nfa.starts {
		b.AddStart(s)
	}
	for s := range nfa.labels {
		one := nfa.newSet()
		one.Set(uint(s))
		cl := nfa.closure(one)
		if nfa.anyFinal(cl) {
			b.AddFinal(State(s))
		}
		for _, sym := range nfa.alphabet {
			for _, t := range members(nfa.move(cl, sym)) {
				b.AddTransition(State(s), sym, t)
			}
		}
	}
	return b.Build()
}

// Trim drops the states that cannot be reached from a start state. Remaining
// states keep their relative order.
func Trim(a *Automaton) *Automaton {
	mustAutomaton(a)
	keep := a.reachable()

	index := make([]State, len(a.labels))
	b := NewBuilder()
	b.AddSymbol(a.alphabet...)
	for s, ok := range keep {
		index[s] = NoState
		if ok {
			index[s] = b.AddState(a.labels[s])
		}
	}
	for _, s := range a.starts {
		b.AddStart(index[s])
	}
	for s, ok := range keep {
		if !ok {
			continue
		}
		if a.final[s] {
			b.AddFinal(index[s])
		}
		for _, t := range a.eps[s] {
			b.AddEpsilon(index[s], index[t])
		}
		for _, sym := range a.alphabet {
			for _, t := range a.delta[arc{State(s), sym}] {
				b.AddTransition(index[s], sym, index[t])
			}
		}
	}
	return b.Build()
}
