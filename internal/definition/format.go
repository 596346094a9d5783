package definition

import (
	"fmt"
	"strings"

	"langgen/internal/automaton"
)

// Format writes def in the text form read by Parse. Epsilon moves are written
// with the ε symbol.
func Format(def automaton.Definition) string {
	var sb strings.Builder
	kind := "nfa"
	if def.Deterministic {
		kind = "dfa"
	}
	fmt.Fprintf(&sb, "kind: %s\n", kind)
	fmt.Fprintf(&sb, "alphabet: %s\n", strings.Join(def.Alphabet, ", "))
	fmt.Fprintf(&sb, "states: %s\n", strings.Join(def.States, ", "))
	fmt.Fprintf(&sb, "start: %s\n", strings.Join(def.Starts, ", "))
	fmt.Fprintf(&sb, "final: %s\n", strings.Join(def.Finals, ", "))
	for _, t := range def.Transitions {
		sym := t.Symbol
		if sym == "" {
			sym = epsilon
		}
		fmt.Fprintf(&sb, "%s %s -> %s\n", t.From, sym, t.To)
	}
	return sb.String()
}
