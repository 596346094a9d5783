package regex

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// A lone trailing backslash matches no rule and fails lexing.
var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Escaped", Pattern: `\\.`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Op", Pattern: `[|*+?()]`},
	{Name: "Char", Pattern: `[^\\]`},
})

type Pattern struct {
	Alt *Alternation `parser:"@@"`
}

type Alternation struct {
	Branches []*Concatenation `parser:"@@ ( '|' @@ )*"`
}

type Concatenation struct {
	Items []*Repetition `parser:"@@+"`
}

type Repetition struct {
	Atom *Atom    `parser:"@@"`
	Ops  []string `parser:"@( '*' | '+' | '?' )*"`
}

type Atom struct {
	Char    *string      `parser:"  @Char"`
	Escaped *string      `parser:"| @Escaped"`
	Group   *Alternation `parser:"| '(' @@ ')'"`
}

var parser = participle.MustBuild[Pattern](
	participle.Lexer(patternLexer),
	participle.Elide("Whitespace"),
)

func parse(pattern string) (*astNode, error) {
	p, err := parser.ParseString("pattern", pattern)
	if err != nil {
		return nil, err
	}
	return p.Alt.ast(), nil
}

func (a *Alternation) ast() *astNode {
	if len(a.Branches) == 1 {
		return a.Branches[0].ast()
	}
	n := &astNode{typ: nUnion}
	for _, b := range a.Branches {
		n.kids = append(n.kids, b.ast())
	}
	return n
}

func (c *Concatenation) ast() *astNode {
	if len(c.Items) == 1 {
		return c.Items[0].ast()
	}
	n := &astNode{typ: nConcat}
	for _, it := range c.Items {
		n.kids = append(n.kids, it.ast())
	}
	return n
}

func (r *Repetition) ast() *astNode {
	n := r.Atom.ast()
	for _, op := range r.Ops {
		typ := nStar
		switch op {
		case "+":
			typ = nPlus
		case "?":
			typ = nQMark
		}
		n = &astNode{typ: typ, kids: []*astNode{n}}
	}
	return n
}

func (a *Atom) ast() *astNode {
	switch {
	case a.Char != nil:
		return charNode(*a.Char)
	case a.Escaped != nil:
		return charNode((*a.Escaped)[1:])
	default:
		return a.Group.ast()
	}
}
