package render

import (
	"io"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"langgen/internal/automaton"
)

// entry is the invisible vertex the start arrows come from.
const entry = "__start__"

// WriteDOT writes a in Graphviz DOT. Parallel moves between the same two
// states share one edge labeled with all their symbols.
func WriteDOT(w io.Writer, a *automaton.Automaton) error {
	g := graph.New(graph.StringHash, graph.Directed())

	if err := g.AddVertex(entry, graph.VertexAttribute("shape", "point")); err != nil {
		return err
	}
	for _, s := range a.States() {
		shape := "circle"
		if a.IsFinal(s) {
			shape = "doublecircle"
		}
		if err := g.AddVertex(a.Label(s), graph.VertexAttribute("shape", shape)); err != nil {
			return err
		}
	}
	for _, s := range a.Starts() {
		if err := g.AddEdge(entry, a.Label(s)); err != nil {
			return err
		}
	}

	type pair struct{ from, to string }
	var order []pair
	syms := map[pair][]string{}
	for _, e := range Edges(a).Edges {
		p := pair{e.From, e.To}
		if _, ok := syms[p]; !ok {
			order = append(order, p)
		}
		syms[p] = append(syms[p], e.Symbol)
	}
	for _, p := range order {
		label := strings.Join(syms[p], ",")
		if err := g.AddEdge(p.from, p.to, graph.EdgeAttribute("label", label)); err != nil {
			return err
		}
	}

	return draw.DOT(g, w, draw.GraphAttribute("rankdir", "LR"))
}
