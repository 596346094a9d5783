package automaton

const sinkLabel = "sink"

// Complete makes the transition function total over the declared alphabet.
// One non-accepting sink state that loops on every symbol is added, and each
// missing (state, symbol) pair is wired to it. Final states are treated like
// any other state: their existing moves and their final flag are untouched,
// only the missing moves are filled. An automaton that is already complete
// comes back unchanged, without a sink. Epsilon moves are removed first.
func Complete(a *Automaton) *Automaton {
	mustAutomaton(a)
	src := a
	if src.HasEpsilon() {
		src = RemoveEpsilon(src)
	}
	if src.IsComplete() {
		return builderFrom(src).Build()
	}

	b := builderFrom(src)
	sink := b.AddState(freshLabel(src, sinkLabel))
	for s := range src.labels {
		for _, sym := range src.alphabet {
			if len(src.delta[arc{State(s), sym}]) == 0 {
				b.AddTransition(State(s), sym, sink)
			}
		}
	}
	for _, sym := range src.alphabet {
		b.AddTransition(sink, sym, sink)
	}
	return b.Build()
}

// freshLabel returns base, primed as often as needed to differ from every
// label already in a.
func freshLabel(a *Automaton, base string) string {
	used := make(map[string]bool, len(a.labels))
	for s := range a.labels {
		used[a.Label(State(s))] = true
	}
	for used[base] {
		base += "'"
	}
	return base
}
