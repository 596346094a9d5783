package render

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"langgen/internal/automaton"
)

// WriteTable prints the transition table: one row per state, one column per
// symbol, plus an ε column when a has epsilon moves. Start states are marked
// with "->" and final states with "*". Missing moves are shown as "-".
func WriteTable(w io.Writer, a *automaton.Automaton) {
	alpha := a.Alphabet()
	eps := a.HasEpsilon()

	header := []string{"", "state"}
	for _, c := range alpha {
		header = append(header, string(c))
	}
	if eps {
		header = append(header, Epsilon)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, s := range a.States() {
		var mark string
		if a.IsStart(s) {
			mark = "->"
		}
		if a.IsFinal(s) {
			mark += "*"
		}
		row := []string{mark, a.Label(s)}
		for _, c := range alpha {
			row = append(row, cell(a, a.Targets(s, c)))
		}
		if eps {
			row = append(row, cell(a, a.Epsilon(s)))
		}
		table.Append(row)
	}
	table.Render()
}

func cell(a *automaton.Automaton, ts []automaton.State) string {
	if len(ts) == 0 {
		return "-"
	}
	l := labels(a, ts)
	if len(l) == 1 {
		return l[0]
	}
	return "{" + strings.Join(l, ",") + "}"
}
