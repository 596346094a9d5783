package grammar

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

type options struct {
	maxResults int
}

type Option func(*options)

// WithMaxResults bounds the size of every intermediate string list built
// during expansion. Zero or less means no bound.
func WithMaxResults(n int) Option {
	return func(o *options) { o.maxResults = n }
}

// Generate lists the non-empty strings derivable from sym within maxDepth
// nested expansions, shortest first and lexicographic within a length.
//
// At depth 0 nothing is derived. A terminal derives itself. A non-terminal
// derives, for each alternative, every concatenation of what its symbols
// derive, with non-terminals expanded at depth-1; ε derives the empty string.
// An alternative holding a non-terminal that derives nothing at the lower
// depth contributes nothing.
func (g *Grammar) Generate(sym string, maxDepth int, opts ...Option) ([]string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	x := expander{g: g, max: o.maxResults, memo: map[depthKey][]string{}}
	all, err := x.expand(sym, maxDepth)
	if err != nil {
		return nil, err
	}

	out := lo.Uniq(lo.Filter(all, func(s string, _ int) bool { return s != "" }))
	slices.SortFunc(out, func(a, b string) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	log.Debugw("generated", "symbol", sym, "depth", maxDepth, "strings", len(out))
	return out, nil
}

type depthKey struct {
	sym   string
	depth int
}

type expander struct {
	g    *Grammar
	max  int
	memo map[depthKey][]string
}

func (x *expander) expand(sym string, depth int) ([]string, error) {
	if depth <= 0 {
		return nil, nil
	}
	alts, ok := x.g.rules[sym]
	if !ok {
		return []string{sym}, nil
	}
	k := depthKey{sym, depth}
	if out, ok := x.memo[k]; ok {
		return out, nil
	}

	var out []string
	for _, alt := range alts {
		generated := []string{""}
		for _, part := range alt {
			sub := []string{part}
			if x.g.IsNonterminal(part) {
				var err error
				if sub, err = x.expand(part, depth-1); err != nil {
					return nil, err
				}
			}
			if err := x.check(len(generated) * len(sub)); err != nil {
				return nil, err
			}
			next := make([]string, 0, len(generated)*len(sub))
			for _, g := range generated {
				for _, s := range sub {
					next = append(next, g+s)
				}
			}
			generated = next
		}
		out = append(out, generated...)
		if err := x.check(len(out)); err != nil {
			return nil, err
		}
	}
	x.memo[k] = lo.Uniq(out)
	return x.memo[k], nil
}

func (x *expander) check(n int) error {
	if x.max > 0 && n > x.max {
		return fmt.Errorf("%w: more than %d intermediate strings", ErrBudgetExceeded, x.max)
	}
	return nil
}
