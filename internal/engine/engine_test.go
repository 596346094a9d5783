package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langgen/internal/automaton"
	"langgen/internal/generate"
	"langgen/internal/regex"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CacheTTL = time.Minute
	return cfg
}

// ------------------------------------------------------------------- Config

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Minimize)
	assert.False(t, cfg.Complete)
	assert.Equal(t, 10000, cfg.MaxStates)
	assert.Equal(t, generate.DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, 100000, cfg.MaxResults)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LANGGEN_MAX_STATES", "5")
	t.Setenv("LANGGEN_COMPLETE", "true")
	t.Setenv("LANGGEN_CACHE_TTL", "30s")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxStates)
	assert.True(t, cfg.Complete)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.Minimize)
}

func TestLoadConfigRejectsBadValue(t *testing.T) {
	t.Setenv("LANGGEN_MAX_STATES", "many")
	_, err := LoadConfig(context.Background())
	assert.Error(t, err)
}

func TestSetLogLevel(t *testing.T) {
	require.NoError(t, SetLogLevel("debug"))
	require.NoError(t, SetLogLevel("warn"))
	assert.Error(t, SetLogLevel("loud"))
}

// ------------------------------------------------------------------- Compile

func TestCompile(t *testing.T) {
	e := New(testConfig())
	a, err := e.Compile("a*b")
	require.NoError(t, err)
	assert.Equal(t, 2, a.NumStates())
	assert.Equal(t, "q0", a.Label(a.Start()))
	assert.False(t, a.IsComplete())

	cfg := testConfig()
	cfg.Complete = true
	c, err := New(cfg).Compile("a*b")
	require.NoError(t, err)
	assert.Equal(t, 3, c.NumStates())
	assert.True(t, c.IsComplete())
	assert.True(t, automaton.Equivalent(a, c))
}

func TestCompileCache(t *testing.T) {
	e := New(testConfig())
	first, err := e.Compile("(a|b)*abb")
	require.NoError(t, err)
	second, err := e.Compile("(a|b)*abb")
	require.NoError(t, err)
	assert.Same(t, first, second)

	cfg := testConfig()
	cfg.CacheTTL = 0
	nc := New(cfg)
	x, _ := nc.Compile("(a|b)*abb")
	y, _ := nc.Compile("(a|b)*abb")
	assert.NotSame(t, x, y)
	assert.True(t, automaton.Equal(x, y))
}

func TestCompileErrors(t *testing.T) {
	e := New(testConfig())
	_, err := e.Compile("(a|b")
	assert.True(t, errors.Is(err, regex.ErrInvalidPattern))

	cfg := testConfig()
	cfg.MaxStates = 4
	_, err = New(cfg).Compile("(a|b)*a(a|b)(a|b)(a|b)")
	assert.True(t, errors.Is(err, automaton.ErrStateBudget))
}

func TestStages(t *testing.T) {
	cfg := testConfig()
	cfg.Minimize = false
	st, err := New(cfg).Stages("(a|b)*abb")
	require.NoError(t, err)
	assert.True(t, st.NFA.HasEpsilon())
	assert.True(t, st.DFA.IsDeterministic())
	assert.Nil(t, st.Minimal)
	assert.Nil(t, st.Completed)
	assert.Equal(t, st.DFA.NumStates(), st.Final.NumStates())

	cfg.Minimize, cfg.Complete = true, true
	st, err = New(cfg).Stages("(a|b)*abb")
	require.NoError(t, err)
	assert.Equal(t, 4, st.Minimal.NumStates())
	assert.Equal(t, 4, st.Completed.NumStates())
	assert.True(t, automaton.Equivalent(st.NFA, st.Final))
}

// ------------------------------------------------------------------- Build

func TestBuildCompletes(t *testing.T) {
	cfg := testConfig()
	cfg.Complete = true
	a, err := New(cfg).Build(automaton.Definition{
		Alphabet:      []string{"0", "1"},
		States:        []string{"S", "F"},
		Starts:        []string{"S"},
		Finals:        []string{"F"},
		Transitions:   []automaton.Triple{{From: "S", Symbol: "0", To: "F"}},
		Deterministic: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, a.NumStates())
	assert.True(t, a.IsComplete())
	assert.True(t, a.AcceptsString("0"))
	assert.False(t, a.AcceptsString("01"))

	_, err = New(cfg).Build(automaton.Definition{States: []string{"S"}, Starts: []string{"X"}})
	assert.True(t, errors.Is(err, automaton.ErrInvalidAutomaton))
}

// ------------------------------------------------------------------- Generate

func TestSample(t *testing.T) {
	e := New(testConfig())
	a, err := e.Compile("(a|b)*abb")
	require.NoError(t, err)

	results, err := e.Sample(context.Background(), a, 100, 10)
	require.NoError(t, err)
	require.Len(t, results, 100)
	for _, r := range results {
		if r.Found {
			assert.True(t, a.AcceptsString(r.Value), "sampled %q", r.Value)
			assert.LessOrEqual(t, len(r.Word), 10)
		}
	}

	again, err := e.Sample(context.Background(), a, 100, 10)
	require.NoError(t, err)
	assert.Equal(t, results, again)
}

func TestSampleCancelled(t *testing.T) {
	e := New(testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Sample(ctx, regex.MustCompile("a"), 10, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampleRejectsNegative(t *testing.T) {
	e := New(testConfig())
	a := regex.MustCompile("a")

	_, err := e.Sample(context.Background(), a, -1, 5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = e.Sample(context.Background(), a, 3, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	results, err := e.Sample(context.Background(), a, 0, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEnumerate(t *testing.T) {
	e := New(testConfig())
	a, err := e.Compile("a*b")
	require.NoError(t, err)
	got, err := e.Enumerate(a, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "ab", "aab"}, got.Strings)

	cfg := testConfig()
	cfg.MaxResults = 10
	_, err = New(cfg).Enumerate(regex.MustCompile("(a|b)*"), 8)
	assert.ErrorIs(t, err, generate.ErrBudgetExceeded)
}

func TestEquivalent(t *testing.T) {
	e := New(testConfig())
	ok, err := e.Equivalent("a(b|c)", "ab|ac")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Equivalent("a*", "a+")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = e.Equivalent("a", "(")
	assert.ErrorIs(t, err, regex.ErrInvalidPattern)
}
