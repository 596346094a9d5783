package regex

import (
	"strconv"

	"langgen/internal/automaton"
)

// nfaFrag is a Thompson fragment with a single entry and a single exit.
type nfaFrag struct {
	start, accept automaton.State
}

type thompson struct {
	b *automaton.Builder
}

func (t *thompson) newState() automaton.State {
	return t.b.AddState(strconv.Itoa(t.b.NumStates()))
}

func (t *thompson) build(node *astNode) nfaFrag {
	switch node.typ {
	case nChar:
		s1, s2 := t.newState(), t.newState()
		t.b.AddTransition(s1, automaton.Symbol(node.sym), s2)
		return nfaFrag{s1, s2}
	case nConcat:
		f := t.build(node.kids[0])
		for _, k := range node.kids[1:] {
			next := t.build(k)
			t.b.AddEpsilon(f.accept, next.start)
			f.accept = next.accept
		}
		return f
	case nUnion:
		s := t.newState()
		var frags []nfaFrag
		for _, k := range node.kids {
			f := t.build(k)
			t.b.AddEpsilon(s, f.start)
			frags = append(frags, f)
		}
		e := t.newState()
		for _, f := range frags {
			t.b.AddEpsilon(f.accept, e)
		}
		return nfaFrag{s, e}
	case nStar, nPlus, nQMark:
		s := t.newState()
		f := t.build(node.kids[0])
		e := t.newState()
		t.b.AddEpsilon(s, f.start)
		t.b.AddEpsilon(f.accept, e)
		if node.typ != nQMark {
			t.b.AddEpsilon(f.accept, f.start)
		}
		if node.typ != nPlus {
			t.b.AddEpsilon(s, e)
		}
		return nfaFrag{s, e}
	default:
		panic("regex: unknown ast node")
	}
}

func compileASTtoNFA(ast *astNode) *automaton.Automaton {
	t := &thompson{b: automaton.NewBuilder()}
	f := t.build(ast)
	t.b.AddStart(f.start)
	t.b.AddFinal(f.accept)
	return t.b.Build()
}
