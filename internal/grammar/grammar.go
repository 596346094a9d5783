// Package grammar parses small context-free grammars and lists the strings they
// derive within a bounded derivation depth.
//
// Rules are written "S -> a S b | ε", one per line or separated by ';'. The
// symbols of an alternative are separated by blanks; ε stands for the empty
// alternative. A symbol is a non-terminal exactly when some rule has it on the
// left-hand side. Rules for the same head accumulate.
package grammar

import (
	"errors"
	"fmt"
	"strings"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("grammar")

var (
	ErrInvalidGrammar = errors.New("grammar: invalid grammar")
	ErrUnsupported    = errors.New("grammar: unsupported language description")
	ErrBudgetExceeded = errors.New("grammar: result budget exceeded")
)

// Grammar is an immutable set of productions.
type Grammar struct {
	start string
	heads []string              // in order of first appearance
	rules map[string][][]string // ε alternatives are empty
}

// Start returns the head of the first rule.
func (g *Grammar) Start() string { return g.start }

// Nonterminals returns the rule heads in order of first appearance.
func (g *Grammar) Nonterminals() []string { return append([]string(nil), g.heads...) }

// Alternatives returns the right-hand sides of head's rules.
func (g *Grammar) Alternatives(head string) [][]string {
	out := make([][]string, len(g.rules[head]))
	for i, alt := range g.rules[head] {
		out[i] = append([]string(nil), alt...)
	}
	return out
}

func (g *Grammar) IsNonterminal(sym string) bool {
	_, ok := g.rules[sym]
	return ok
}

// Terminals returns the symbols that appear in some alternative but head no
// rule, in order of first appearance.
func (g *Grammar) Terminals() []string {
	var out []string
	seen := map[string]bool{}
	for _, h := range g.heads {
		for _, alt := range g.rules[h] {
			for _, sym := range alt {
				if !g.IsNonterminal(sym) && !seen[sym] {
					seen[sym] = true
					out = append(out, sym)
				}
			}
		}
	}
	return out
}

func (g *Grammar) String() string {
	var sb strings.Builder
	for i, h := range g.heads {
		if i > 0 {
			sb.WriteByte('\n')
		}
		alts := make([]string, len(g.rules[h]))
		for j, alt := range g.rules[h] {
			alts[j] = "ε"
			if len(alt) > 0 {
				alts[j] = strings.Join(alt, " ")
			}
		}
		fmt.Fprintf(&sb, "%s -> %s", h, strings.Join(alts, " | "))
	}
	return sb.String()
}

// Parse reads a rule list. Errors wrap ErrInvalidGrammar and name the line and
// column of the offending token.
func Parse(src string) (*Grammar, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrammar, err)
	}
	p := &parser{toks: toks}
	g, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrammar, err)
	}
	log.Debugw("parsed grammar", "start", g.start, "rules", len(g.heads))
	return g, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.typ != tEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ tokenType) (token, error) {
	t := p.next()
	if t.typ != typ {
		return t, p.unexpected(t, typ)
	}
	return t, nil
}

func (p *parser) unexpected(t token, want tokenType) error {
	if t.typ == tEOF {
		return fmt.Errorf("expected %s, got end of input", want)
	}
	return fmt.Errorf("%d:%d: expected %s, got %s %q", t.line, t.column, want, t.typ, t.literal)
}

// rules := sep* rule (sep+ rule)* sep*
// rule  := Symbol '->' alt ('|' alt)*
// alt   := 'ε' | Symbol+
func (p *parser) parse() (*Grammar, error) {
	g := &Grammar{rules: map[string][][]string{}}
	for {
		for p.peek().typ == tSep {
			p.next()
		}
		if p.peek().typ == tEOF {
			break
		}
		if err := p.rule(g); err != nil {
			return nil, err
		}
		if t := p.peek(); t.typ != tSep && t.typ != tEOF {
			return nil, p.unexpected(t, tSep)
		}
	}
	if len(g.heads) == 0 {
		return nil, errors.New("no rules")
	}
	g.start = g.heads[0]
	return g, nil
}

func (p *parser) rule(g *Grammar) error {
	head, err := p.expect(tSymbol)
	if err != nil {
		return err
	}
	if _, err := p.expect(tArrow); err != nil {
		return err
	}
	if _, ok := g.rules[head.literal]; !ok {
		g.heads = append(g.heads, head.literal)
	}
	for {
		alt, err := p.alternative()
		if err != nil {
			return err
		}
		g.rules[head.literal] = append(g.rules[head.literal], alt)
		if p.peek().typ != tPipe {
			return nil
		}
		p.next()
	}
}

func (p *parser) alternative() ([]string, error) {
	if p.peek().typ == tEpsilon {
		p.next()
		return []string{}, nil
	}
	var alt []string
	for p.peek().typ == tSymbol {
		alt = append(alt, p.next().literal)
	}
	if len(alt) == 0 {
		return nil, p.unexpected(p.peek(), tSymbol)
	}
	return alt, nil
}
