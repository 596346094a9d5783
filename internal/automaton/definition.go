package automaton

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Triple is one (state, symbol, state) transition of a Definition. An empty
// Symbol denotes an epsilon move and is only allowed in non-deterministic
// definitions.
type Triple struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
}

// Definition is the plain description of an automaton exchanged with callers:
// names instead of indices, so it can be entered by hand or stored.
type Definition struct {
	Alphabet      []string `json:"alphabet"`
	States        []string `json:"states"`
	Starts        []string `json:"starts"`
	Finals        []string `json:"finals"`
	Transitions   []Triple `json:"transitions"`
	Deterministic bool     `json:"deterministic,omitempty"`
}

// FromDefinition validates def and builds the automaton it describes. States
// are numbered in declaration order and labeled with their names.
func FromDefinition(def Definition) (*Automaton, error) {
	if len(def.States) == 0 {
		return nil, fmt.Errorf("%w: no states declared", ErrInvalidAutomaton)
	}

	b := NewBuilder()
	states := make(map[string]State, len(def.States))
	for _, name := range def.States {
		if name == "" {
			return nil, fmt.Errorf("%w: empty state name", ErrInvalidAutomaton)
		}
		if _, dup := states[name]; dup {
			return nil, fmt.Errorf("%w: state %q declared twice", ErrInvalidAutomaton, name)
		}
		states[name] = b.AddState(name)
	}

	symbols := make(map[string]bool, len(def.Alphabet))
	for _, sym := range def.Alphabet {
		if sym == "" {
			return nil, fmt.Errorf("%w: empty alphabet symbol", ErrInvalidAutomaton)
		}
		if symbols[sym] {
			return nil, fmt.Errorf("%w: symbol %q declared twice", ErrInvalidAutomaton, sym)
		}
		symbols[sym] = true
		b.AddSymbol(Symbol(sym))
	}

	if len(def.Starts) == 0 {
		return nil, fmt.Errorf("%w: no start state", ErrInvalidAutomaton)
	}
	if def.Deterministic && len(def.Starts) > 1 {
		return nil, fmt.Errorf("%w: deterministic automaton with start states %q", ErrInvalidAutomaton, def.Starts)
	}
	for _, name := range def.Starts {
		s, ok := states[name]
		if !ok {
			return nil, fmt.Errorf("%w: start state %q is not declared", ErrInvalidAutomaton, name)
		}
		b.AddStart(s)
	}

	for _, name := range def.Finals {
		s, ok := states[name]
		if !ok {
			return nil, fmt.Errorf("%w: final state %q is not declared", ErrInvalidAutomaton, name)
		}
		b.AddFinal(s)
	}

	seen := make(map[arc]string)
	for _, t := range def.Transitions {
		from, ok := states[t.From]
		if !ok {
			return nil, fmt.Errorf("%w: transition %s: state %q is not declared", ErrInvalidAutomaton, t, t.From)
		}
		to, ok := states[t.To]
		if !ok {
			return nil, fmt.Errorf("%w: transition %s: state %q is not declared", ErrInvalidAutomaton, t, t.To)
		}
		if t.Symbol == "" {
			if def.Deterministic {
				return nil, fmt.Errorf("%w: transition %s: epsilon move in a deterministic automaton", ErrInvalidAutomaton, t)
			}
			b.AddEpsilon(from, to)
			continue
		}
		if !symbols[t.Symbol] {
			return nil, fmt.Errorf("%w: transition %s: symbol %q is not in the alphabet", ErrInvalidAutomaton, t, t.Symbol)
		}
		k := arc{from, Symbol(t.Symbol)}
		if prev, dup := seen[k]; dup && def.Deterministic && prev != t.To {
			return nil, fmt.Errorf("%w: transition %s: (%s, %s) already goes to %q", ErrInvalidAutomaton, t, t.From, t.Symbol, prev)
		}
		seen[k] = t.To
		b.AddTransition(from, Symbol(t.Symbol), to)
	}
	return b.Build(), nil
}

func (t Triple) String() string {
	return fmt.Sprintf("%s,%s,%s", t.From, t.Symbol, t.To)
}

// plainName reports whether label can be written as a single name token of
// the text definition format.
func plainName(label string) bool {
	return label != "" &&
		!strings.ContainsFunc(label, unicode.IsSpace) &&
		!strings.ContainsAny(label, ",:#") &&
		!strings.Contains(label, "->")
}

// Definition describes a in the exchange format. Labels that are not plain
// names, such as the {0,1,3} sets left by Determinize, become q<index>.
// Duplicate names are made unique by appending the state index.
func (a *Automaton) Definition() Definition {
	names := make([]string, len(a.labels))
	used := make(map[string]bool, len(a.labels))
	for s := range a.labels {
		name := a.Label(State(s))
		if !plainName(name) {
			name = "q" + strconv.Itoa(s)
		}
		for used[name] {
			name += "_" + strconv.Itoa(s)
		}
		used[name] = true
		names[s] = name
	}

	def := Definition{
		Alphabet:      make([]string, len(a.alphabet)),
		States:        names,
		Deterministic: a.IsDeterministic(),
	}
	for i, sym := range a.alphabet {
		def.Alphabet[i] = string(sym)
	}
	for _, s := range a.starts {
		def.Starts = append(def.Starts, names[s])
	}
	for _, s := range a.Finals() {
		def.Finals = append(def.Finals, names[s])
	}
	for _, e := range a.Edges() {
		def.Transitions = append(def.Transitions, Triple{From: names[e.From], Symbol: string(e.Symbol), To: names[e.To]})
	}
	return def
}
