package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langgen/internal/engine"
	"langgen/internal/grammar"
	"langgen/internal/regex"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfg := engine.DefaultConfig()
	cmd := getRootCmd(&cfg)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEnumerateCmd(t *testing.T) {
	out, err := run(t, "", "enumerate", "a*b", "-l", "3")
	require.NoError(t, err)
	assert.Equal(t, "b\nab\naab\n", out)

	out, err = run(t, "", "enumerate", "a|b", "--max-length", "1")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", out)

	out, err = run(t, "", "enumerate", "a*", "-l", "2")
	require.NoError(t, err)
	assert.Equal(t, "ε\na\naa\n", out)
}

func TestDfaCmd(t *testing.T) {
	out, err := run(t, "", "dfa", "a*b", "--format", "summary")
	require.NoError(t, err)
	assert.Equal(t, "type:     DFA\nstates:   2\nalphabet: {a, b}\nstart:    {q0}\nfinal:    {q1}\n", out)

	out, err = run(t, "", "--complete", "dfa", "a*b", "--format", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "states:   3")

	out, err = run(t, "", "dfa", "a*b", "--stages", "--format", "summary")
	require.NoError(t, err)
	for _, stage := range []string{"== nfa", "== dfa", "== minimal", "== canonical"} {
		assert.Contains(t, out, stage)
	}
	assert.NotContains(t, out, "== complete")

	_, err = run(t, "", "dfa", "(a|b")
	assert.ErrorIs(t, err, regex.ErrInvalidPattern)

	_, err = run(t, "", "dfa", "a", "--format", "png")
	assert.Error(t, err)
}

func TestDefineCmd(t *testing.T) {
	src := "kind: dfa\nalphabet: 0, 1\nstates: S, F\nstart: S\nfinal: F\nS 0 -> F\n"
	out, err := run(t, src, "--complete", "define", "--format", "def")
	require.NoError(t, err)
	assert.Contains(t, out, "states: q0, q1, q2\n")
	assert.Contains(t, out, "q1 0 -> q2\n")
	assert.Contains(t, out, "q2 1 -> q2\n")

	_, err = run(t, "states: S\nstart: X\n", "define")
	assert.Error(t, err)
}

func TestSampleCmd(t *testing.T) {
	out, err := run(t, "", "sample", "(a|b)*abb", "-n", "20", "-l", "12")
	require.NoError(t, err)
	a := regex.MustCompile("(a|b)*abb")
	for _, line := range strings.Fields(out) {
		assert.True(t, a.AcceptsString(line), "sampled %q", line)
	}
}

func TestSampleCmdRejectsNegativeCount(t *testing.T) {
	_, err := run(t, "", "sample", "x", "-n", "-1")
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)

	_, err = run(t, "", "sample", "x", "-l", "-2")
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
}

func TestEquivCmd(t *testing.T) {
	out, err := run(t, "", "equiv", "a(b|c)", "ab|ac")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, "", "equiv", "a*", "a+")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestGrammarCmd(t *testing.T) {
	out, err := run(t, "", "grammar", "--describe", "a^nb^n", "-d", "4")
	require.NoError(t, err)
	assert.Equal(t, "S -> a S b | ε\n\nab\naabb\naaabbb\n", out)

	out, err = run(t, "S -> A A; A -> a | b\n", "grammar", "-d", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "\naa\nab\nba\nbb\n"), out)

	_, err = run(t, "", "grammar", "S a")
	assert.Error(t, err)

	_, err = run(t, "", "--max-results", "3", "grammar", "S -> A A; A -> a | b", "-d", "2")
	assert.ErrorIs(t, err, grammar.ErrBudgetExceeded)
}

func TestDfaCmdOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.dot")
	out, err := run(t, "", "dfa", "a|b", "--format", "dot", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")
}

func TestDfaCmdOutputFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "graph.dot")
	_, err := run(t, "", "dfa", "a", "--format", "dot", "-o", path)
	assert.Error(t, err)
}
