package regex

import "strings"

type nodeType int

const (
	nChar nodeType = iota
	nConcat
	nUnion
	nStar
	nPlus
	nQMark
)

// astNode is the parsed pattern. Concatenation and alternation keep all their
// operands in kids; the postfix operators have exactly one.
type astNode struct {
	typ  nodeType
	sym  string // for nChar
	kids []*astNode
}

func charNode(s string) *astNode { return &astNode{typ: nChar, sym: s} }

// String prints the node fully parenthesized, e.g. ((a)*b).
func (n *astNode) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *astNode) write(sb *strings.Builder) {
	switch n.typ {
	case nChar:
		if strings.ContainsAny(n.sym, `|*+?()\ `) {
			sb.WriteByte('\\')
		}
		sb.WriteString(n.sym)
	case nConcat, nUnion:
		sb.WriteByte('(')
		for i, k := range n.kids {
			if i > 0 && n.typ == nUnion {
				sb.WriteByte('|')
			}
			k.write(sb)
		}
		sb.WriteByte(')')
	case nStar, nPlus, nQMark:
		sb.WriteByte('(')
		n.kids[0].write(sb)
		sb.WriteByte(')')
		sb.WriteByte("*+?"[n.typ-nStar])
	}
}
