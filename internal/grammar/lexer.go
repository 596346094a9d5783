package grammar

import (
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type tokenType int

const (
	tSymbol tokenType = iota
	tArrow
	tPipe
	tEpsilon
	tSep
	tEOF
)

func (t tokenType) String() string {
	return [...]string{"symbol", "'->'", "'|'", "'ε'", "end of rule", "end of input"}[t]
}

type token struct {
	typ     tokenType
	literal string
	line    int
	column  int
}

// Rules are separated by newlines or semicolons. Symbols are runs of
// anything else that is not blank or '|', so "->" must stand apart.
var compiledLexer = sync.OnceValues(func() (*lexmachine.Lexer, error) {
	l := lexmachine.NewLexer()
	l.Add([]byte(`[ \t\r]+`), skip)
	l.Add([]byte(`#[^\n]*`), skip)
	l.Add([]byte(`->`), tokAction(tArrow))
	l.Add([]byte(`[|]`), tokAction(tPipe))
	l.Add([]byte(`ε`), tokAction(tEpsilon))
	l.Add([]byte(`[\n;]`), tokAction(tSep))
	l.Add([]byte(`[^ \t\r\n|;#]+`), tokAction(tSymbol))
	if err := l.Compile(); err != nil {
		return nil, err
	}
	return l, nil
})

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func tokAction(typ tokenType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return token{
			typ:     typ,
			literal: string(m.Bytes),
			line:    m.StartLine,
			column:  m.StartColumn,
		}, nil
	}
}

// tokenize scans the whole input. The returned slice always ends in tEOF.
func tokenize(input string) ([]token, error) {
	l, err := compiledLexer()
	if err != nil {
		return nil, err
	}
	scanner, err := l.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var out []token
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			return nil, err
		}
		out = append(out, tok.(token))
	}
	return append(out, token{typ: tEOF}), nil
}
