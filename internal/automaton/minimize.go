package automaton

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Minimize returns the minimal DFA for the language of a (Hopcroft's
// algorithm). Non-deterministic input is determinized first and unreachable
// states are dropped.
//
// Missing transitions lead to an implicit dead state that takes part in the
// refinement; every state that ends up equivalent to it is removed, so the
// result is a partial DFA without dead states. The empty language yields a
// single non-accepting start state with no transitions.
func Minimize(a *Automaton) *Automaton {
	mustAutomaton(a)
	d := a
	if !d.IsDeterministic() {
		d = Determinize(d)
	}
	d = Trim(d)

	n := d.NumStates()
	dead := n
	total := n + 1
	syms := d.alphabet

	// inv[c][t] lists the states whose c-successor is t
	inv := make([][][]int, len(syms))
	for ci, c := range syms {
		inv[ci] = make([][]int, total)
		for s := 0; s < total; s++ {
			t := dead
			if s < n {
				if ts := d.delta[arc{State(s), c}]; len(ts) > 0 {
					t = int(ts[0])
				}
			}
			inv[ci][t] = append(inv[ci][t], s)
		}
	}

	// initial partition: final states, everything else (the dead state included)
	block := make([]int, total)
	var acc, non []int
	for s := 0; s < total; s++ {
		if s < n && d.final[s] {
			acc = append(acc, s)
		} else {
			non = append(non, s)
		}
	}
	var blocks [][]int
	if len(acc) > 0 {
		blocks = append(blocks, acc)
	}
	blocks = append(blocks, non)
	for b, members := range blocks {
		for _, s := range members {
			block[s] = b
		}
	}

	work := make([]int, 0, len(blocks))
	inWork := make([]bool, len(blocks), total)
	for b := range blocks {
		work = append(work, b)
		inWork[b] = true
	}

	for len(work) > 0 {
		splitter := slices.Clone(blocks[work[0]])
		inWork[work[0]] = false
		work = work[1:]

		for ci := range syms {
			// preimage of the splitter, grouped by the block each state is in
			hit := make(map[int][]int)
			for _, t := range splitter {
				for _, s := range inv[ci][t] {
					hit[block[s]] = append(hit[block[s]], s)
				}
			}
			touched := lo.Keys(hit)
			slices.Sort(touched)

			for _, y := range touched {
				inter := hit[y]
				if len(inter) == len(blocks[y]) {
					continue
				}
				in := make(map[int]bool, len(inter))
				for _, s := range inter {
					in[s] = true
				}
				diff := make([]int, 0, len(blocks[y])-len(inter))
				for _, s := range blocks[y] {
					if !in[s] {
						diff = append(diff, s)
					}
				}
				slices.Sort(inter)

				blocks[y] = inter
				nb := len(blocks)
				blocks = append(blocks, diff)
				inWork = append(inWork, false)
				for _, s := range diff {
					block[s] = nb
				}

				switch {
				case inWork[y]:
					work = append(work, nb)
					inWork[nb] = true
				case len(inter) <= len(diff):
					work = append(work, y)
					inWork[y] = true
				default:
					work = append(work, nb)
					inWork[nb] = true
				}
			}
		}
	}

	return quotient(d, blocks, block, dead)
}

// quotient builds the automaton whose states are the blocks of the final
// partition, numbered in breadth-first order from the start block.
func quotient(d *Automaton, blocks [][]int, block []int, dead int) *Automaton {
	out := NewBuilder()
	out.AddSymbol(d.alphabet...)

	deadBlock := block[dead]
	startBlock := block[d.starts[0]]
	if startBlock == deadBlock {
		out.AddStart(out.AddState(d.Label(d.starts[0])))
		return out.Build()
	}

	index := map[int]State{}
	var order []int
	visit := func(b int) State {
		if s, ok := index[b]; ok {
			return s
		}
		labels := make([]string, len(blocks[b]))
		for i, s := range blocks[b] {
			labels[i] = d.Label(State(s))
		}
		label := labels[0]
		if len(labels) > 1 {
			label = "{" + strings.Join(labels, ",") + "}"
		}
		s := out.AddState(label)
		if d.final[blocks[b][0]] {
			out.AddFinal(s)
		}
		index[b] = s
		order = append(order, b)
		return s
	}

	out.AddStart(visit(startBlock))
	for i := 0; i < len(order); i++ {
		b := order[i]
		rep := State(blocks[b][0])
		for _, c := range d.alphabet {
			ts := d.delta[arc{rep, c}]
			if len(ts) == 0 || block[ts[0]] == deadBlock {
				continue
			}
			out.AddTransition(index[b], c, visit(block[ts[0]]))
		}
	}
	return out.Build()
}
