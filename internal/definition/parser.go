// Package definition reads and writes the line-oriented text form of a manual
// automaton:
//
//	# binary strings ending in 0
//	kind: dfa
//	alphabet: 0, 1
//	states: S, F
//	start: S
//	final: F
//	S 0 -> F
//	S 1 -> S
//
// Header lines are "key: v1, v2, ..." and may come in any order; every other
// line is a transition "from symbol -> to". A transition without a symbol, or
// with the symbol ε, is an epsilon move. Tokens are separated by whitespace.
package definition

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"langgen/internal/automaton"
)

const epsilon = "ε"

var defLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Punct", Pattern: `[:,]`},
	{Name: "Name", Pattern: `[^\s,:#]+`},
})

type File struct {
	Entries []*Entry `parser:"( @@? EOL )*"`
}

type Entry struct {
	Header     *Header     `parser:"  @@"`
	Transition *Transition `parser:"| @@"`
}

type Header struct {
	Pos    lexer.Position
	Key    string   `parser:"@Name ':'"`
	Values []string `parser:"( @Name ( ',' @Name )* )?"`
}

type Transition struct {
	Pos    lexer.Position
	From   string  `parser:"@Name"`
	Symbol *string `parser:"@Name?"`
	To     string  `parser:"'->' @Name"`
}

var parser = participle.MustBuild[File](
	participle.Lexer(defLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// Parse reads the text form into a Definition. Syntax errors and unknown or
// repeated header keys wrap automaton.ErrInvalidAutomaton; the definition
// itself is checked by automaton.FromDefinition.
func Parse(src string) (automaton.Definition, error) {
	var def automaton.Definition
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	f, err := parser.ParseString("definition", src)
	if err != nil {
		return def, fmt.Errorf("%w: %v", automaton.ErrInvalidAutomaton, err)
	}

	seen := map[string]bool{}
	for _, e := range f.Entries {
		if t := e.Transition; t != nil {
			sym := ""
			if t.Symbol != nil && *t.Symbol != epsilon {
				sym = *t.Symbol
			}
			def.Transitions = append(def.Transitions, automaton.Triple{From: t.From, Symbol: sym, To: t.To})
			continue
		}

		h := e.Header
		key := strings.ToLower(h.Key)
		if key == "finals" {
			key = "final"
		}
		if seen[key] {
			return def, fmt.Errorf("%w: %s: header %q repeated", automaton.ErrInvalidAutomaton, h.Pos, h.Key)
		}
		seen[key] = true

		switch key {
		case "alphabet":
			def.Alphabet = h.Values
		case "states":
			def.States = h.Values
		case "start":
			def.Starts = h.Values
		case "final":
			def.Finals = h.Values
		case "kind":
			if len(h.Values) != 1 {
				return def, fmt.Errorf("%w: %s: kind takes one of dfa, nfa", automaton.ErrInvalidAutomaton, h.Pos)
			}
			switch strings.ToLower(h.Values[0]) {
			case "dfa":
				def.Deterministic = true
			case "nfa":
			default:
				return def, fmt.Errorf("%w: %s: unknown kind %q", automaton.ErrInvalidAutomaton, h.Pos, h.Values[0])
			}
		default:
			return def, fmt.Errorf("%w: %s: unknown header %q", automaton.ErrInvalidAutomaton, h.Pos, h.Key)
		}
	}
	return def, nil
}

// Load parses src and builds the automaton it describes.
func Load(src string) (*automaton.Automaton, error) {
	def, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return automaton.FromDefinition(def)
}
