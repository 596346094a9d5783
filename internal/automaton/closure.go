package automaton

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

func (a *Automaton) newSet() *bitset.BitSet { return bitset.New(uint(len(a.labels))) }

func (a *Automaton) startSet() *bitset.BitSet {
	set := a.newSet()
	for _, s := range a.starts {
		set.Set(uint(s))
	}
	return set
}

// closure returns the epsilon-closure of set as a new set.
func (a *Automaton) closure(set *bitset.BitSet) *bitset.BitSet {
	out := set.Clone()
	stack := members(set)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range a.eps[s] {
			if !out.Test(uint(t)) {
				out.Set(uint(t))
				stack = append(stack, t)
			}
		}
	}
	return out
}

// move returns every state reached from set on sym, without closing over epsilon.
func (a *Automaton) move(set *bitset.BitSet, sym Symbol) *bitset.BitSet {
	out := a.newSet()
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		for _, t := range a.delta[arc{State(i), sym}] {
			out.Set(uint(t))
		}
	}
	return out
}

func (a *Automaton) anyFinal(set *bitset.BitSet) bool {
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if a.final[i] {
			return true
		}
	}
	return false
}

func (a *Automaton) setLabel(set *bitset.BitSet) string {
	parts := make([]string, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		parts = append(parts, a.Label(State(i)))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func members(set *bitset.BitSet) []State {
	out := make([]State, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, State(i))
	}
	return out
}

// setKey is the ascending index list of set; equal sets give equal keys.
func setKey(set *bitset.BitSet) string {
	var sb strings.Builder
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		sb.WriteString(strconv.FormatUint(uint64(i), 10))
		sb.WriteByte(',')
	}
	return sb.String()
}

// LiveStates marks the states from which some final state is reachable.
func (a *Automaton) LiveStates() []bool {
	rev := make([][]State, len(a.labels))
	for k, ts := range a.delta {
		for _, t := range ts {
			rev[t] = append(rev[t], k.from)
		}
	}
	for s, ts := range a.eps {
		for _, t := range ts {
			rev[t] = append(rev[t], State(s))
		}
	}
	live := make([]bool, len(a.labels))
	var stack []State
	for s, f := range a.final {
		if f {
			live[s] = true
			stack = append(stack, State(s))
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range rev[s] {
			if !live[p] {
				live[p] = true
				stack = append(stack, p)
			}
		}
	}
	return live
}

// reachable marks the states reachable from a start state.
func (a *Automaton) reachable() []bool {
	seen := make([]bool, len(a.labels))
	stack := make([]State, 0, len(a.starts))
	for _, s := range a.starts {
		seen[s] = true
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		next := append([]State(nil), a.eps[s]...)
		for _, sym := range a.alphabet {
			next = append(next, a.delta[arc{s, sym}]...)
		}
		for _, t := range next {
			if !seen[t] {
				seen[t] = true
				stack = append(stack, t)
			}
		}
	}
	return seen
}
