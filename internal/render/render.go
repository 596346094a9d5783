// Package render turns automata into output for people and drawing tools: a
// stable edge list (JSON), Graphviz DOT, a transition table and a summary.
// Every function lists states and symbols in the automaton's canonical order.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"langgen/internal/automaton"
)

// Epsilon is how epsilon moves are shown.
const Epsilon = "ε"

type Edge struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
}

// Graph is the edge list handed to drawing tools.
type Graph struct {
	States []string `json:"states"`
	Start  []string `json:"start"`
	Finals []string `json:"finals"`
	Edges  []Edge   `json:"edges"`
}

func Edges(a *automaton.Automaton) Graph {
	g := Graph{
		States: labels(a, a.States()),
		Start:  labels(a, a.Starts()),
		Finals: labels(a, a.Finals()),
		Edges:  []Edge{},
	}
	for _, e := range a.Edges() {
		sym := string(e.Symbol)
		if e.Epsilon {
			sym = Epsilon
		}
		g.Edges = append(g.Edges, Edge{From: a.Label(e.From), Symbol: sym, To: a.Label(e.To)})
	}
	return g
}

func WriteJSON(w io.Writer, a *automaton.Automaton) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(Edges(a))
}

// WriteSummary prints the state count, the alphabet and the start and final
// states, one line each.
func WriteSummary(w io.Writer, a *automaton.Automaton) error {
	alpha := make([]string, 0, len(a.Alphabet()))
	for _, c := range a.Alphabet() {
		alpha = append(alpha, string(c))
	}
	kind := "NFA"
	if a.IsDeterministic() {
		kind = "DFA"
	}
	_, err := fmt.Fprintf(w, "type:     %s\nstates:   %d\nalphabet: {%s}\nstart:    {%s}\nfinal:    {%s}\n",
		kind,
		a.NumStates(),
		strings.Join(alpha, ", "),
		strings.Join(labels(a, a.Starts()), ", "),
		strings.Join(labels(a, a.Finals()), ", "),
	)
	return err
}

func labels(a *automaton.Automaton, states []automaton.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = a.Label(s)
	}
	return out
}
