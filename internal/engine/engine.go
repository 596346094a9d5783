// Package engine runs the compile pipeline with the configured options, caches
// compiled automata and drives the generators.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"

	logging "github.com/ipfs/go-log/v2"
	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"langgen/internal/automaton"
	"langgen/internal/generate"
	"langgen/internal/regex"
)

var log = logging.Logger("engine")

// ErrInvalidArgument is returned for negative counts or lengths.
var ErrInvalidArgument = errors.New("engine: invalid argument")

type Engine struct {
	cfg   Config
	cache *cache.Cache // nil when caching is off
}

func New(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	if cfg.CacheTTL > 0 {
		e.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return e
}

func (e *Engine) Config() Config { return e.cfg }

// Stages holds every intermediate automaton of one compilation. Minimal and
// Completed are nil when the configuration skips that stage.
type Stages struct {
	NFA       *automaton.Automaton
	DFA       *automaton.Automaton
	Minimal   *automaton.Automaton
	Completed *automaton.Automaton
	Final     *automaton.Automaton
}

// Stages compiles pattern and keeps each stage's output.
func (e *Engine) Stages(pattern string) (Stages, error) {
	var st Stages
	nfa, err := regex.Compile(pattern)
	if err != nil {
		return st, err
	}
	st.NFA = nfa
	if st.DFA, err = automaton.DeterminizeLimit(nfa, e.cfg.MaxStates); err != nil {
		return st, fmt.Errorf("compile %q: %w", pattern, err)
	}
	cur := st.DFA
	if e.cfg.Minimize {
		st.Minimal = automaton.Minimize(cur)
		cur = st.Minimal
	}
	if e.cfg.Complete {
		st.Completed = automaton.Complete(cur)
		cur = st.Completed
	}
	st.Final = automaton.Canonicalize(cur)

	log.Debugw("compiled", "pattern", pattern,
		"nfa", st.NFA.NumStates(), "dfa", st.DFA.NumStates(), "final", st.Final.NumStates())
	return st, nil
}

// Compile returns the final automaton for pattern, from the cache when
// possible. The result is shared and must not be modified.
func (e *Engine) Compile(pattern string) (*automaton.Automaton, error) {
	key := fmt.Sprintf("%t|%t|%d|%s", e.cfg.Minimize, e.cfg.Complete, e.cfg.MaxStates, pattern)
	if e.cache != nil {
		if v, ok := e.cache.Get(key); ok {
			log.Debugw("cache hit", "pattern", pattern)
			return v.(*automaton.Automaton), nil
		}
	}
	st, err := e.Stages(pattern)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.SetDefault(key, st.Final)
	}
	return st.Final, nil
}

// Build validates a manual definition, completes it when configured and
// canonicalizes it.
func (e *Engine) Build(def automaton.Definition) (*automaton.Automaton, error) {
	a, err := automaton.FromDefinition(def)
	if err != nil {
		return nil, err
	}
	if e.cfg.Complete {
		a = automaton.Complete(a)
	}
	return automaton.Canonicalize(a), nil
}

// Sample runs count independent samplers concurrently. Sampler i draws from
// its own source seeded with Seed+i, so results are reproducible and ordered
// by i. A cancelled ctx stops samplers that have not started yet.
func (e *Engine) Sample(ctx context.Context, a *automaton.Automaton, count, maxLength int) ([]generate.Result, error) {
	if count < 0 || maxLength < 0 {
		return nil, fmt.Errorf("%w: count %d, max length %d", ErrInvalidArgument, count, maxLength)
	}
	results := make([]generate.Result, count)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < count; i++ {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(e.cfg.Seed + int64(i)))
			results[i] = generate.Sample(a, maxLength, e.cfg.MaxAttempts, rng)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	found := lo.CountBy(results, func(r generate.Result) bool { return r.Found })
	log.Debugw("sampled", "count", count, "found", found, "maxLength", maxLength)
	return results, nil
}

// Enumerate lists the accepted strings of a up to maxLength symbols within
// the configured MaxResults.
func (e *Engine) Enumerate(a *automaton.Automaton, maxLength int) (generate.Enumeration, error) {
	return generate.Enumerate(a, maxLength, generate.WithMaxResults(e.cfg.MaxResults))
}

// Equivalent reports whether two patterns describe the same language.
func (e *Engine) Equivalent(p, q string) (bool, error) {
	a, err := e.Compile(p)
	if err != nil {
		return false, err
	}
	b, err := e.Compile(q)
	if err != nil {
		return false, err
	}
	return automaton.Equivalent(a, b), nil
}
