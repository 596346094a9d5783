package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"

	"langgen/internal/automaton"
	"langgen/internal/definition"
	"langgen/internal/engine"
	"langgen/internal/generate"
	"langgen/internal/grammar"
	"langgen/internal/render"
)

var logger = logging.Logger("langgen")

const (
	cliParamMinimize    = "minimize"
	cliParamComplete    = "complete"
	cliParamMaxStates   = "max-states"
	cliParamMaxAttempts = "max-attempts"
	cliParamMaxResults  = "max-results"
	cliParamSeed        = "seed"
	cliParamLogLevel    = "log-level"

	cliParamFormat    = "format"
	cliParamStages    = "stages"
	cliParamOutput    = "output"
	cliParamFile      = "file"
	cliParamCount     = "count"
	cliParamMaxLength = "max-length"
	cliParamDepth     = "depth"
	cliParamStart     = "start"
	cliParamDescribe  = "describe"
)

// getRootCmd binds the persistent flags to cfg, so flags override the values
// loaded from the environment.
func getRootCmd(cfg *engine.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "langgen",
		Short: "Compile regular expressions to automata and generate strings",
		Long: dedent.Dedent(strings.Trim(`
			langgen compiles a regular expression (literals, |, *, +, ?, grouping)
			into a finite automaton, runs it through determinization, minimization,
			completion and canonical relabeling, and generates the strings it accepts.

			Every flag also has an environment variable, e.g. LANGGEN_MAX_STATES;
			a .env file in the working directory is read at start-up.
		`, "\n")),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return engine.SetLogLevel(cfg.LogLevel)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&cfg.Minimize, cliParamMinimize, cfg.Minimize, "Minimize the DFA")
	pf.BoolVar(&cfg.Complete, cliParamComplete, cfg.Complete, "Add a sink state so the DFA is complete")
	pf.IntVar(&cfg.MaxStates, cliParamMaxStates, cfg.MaxStates, "Cap on DFA states during subset construction (0: none)")
	pf.IntVar(&cfg.MaxAttempts, cliParamMaxAttempts, cfg.MaxAttempts, "Random walks per sample before giving up")
	pf.IntVar(&cfg.MaxResults, cliParamMaxResults, cfg.MaxResults, "Bound on enumerated strings (0: none)")
	pf.Int64Var(&cfg.Seed, cliParamSeed, cfg.Seed, "Seed of the first sampler")
	pf.StringVar(&cfg.LogLevel, cliParamLogLevel, cfg.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		dfaCmd(cfg),
		defineCmd(cfg),
		sampleCmd(cfg),
		enumerateCmd(cfg),
		equivCmd(cfg),
		grammarCmd(cfg),
	)
	return rootCmd
}

func dfaCmd(cfg *engine.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dfa <pattern>",
		Short: "Print the automaton of a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			format, _ := cmd.Flags().GetString(cliParamFormat)
			stages, _ := cmd.Flags().GetBool(cliParamStages)
			output, _ := cmd.Flags().GetString(cliParamOutput)
			e := engine.New(*cfg)
			out := cmd.OutOrStdout()
			if output != "" {
				f, cerr := os.Create(output)
				if cerr != nil {
					return cerr
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				out = f
			}

			if !stages {
				a, err := e.Compile(args[0])
				if err != nil {
					return err
				}
				return write(out, a, format)
			}

			st, err := e.Stages(args[0])
			if err != nil {
				return err
			}
			for _, s := range []struct {
				name string
				a    *automaton.Automaton
			}{
				{"nfa", st.NFA}, {"dfa", st.DFA}, {"minimal", st.Minimal},
				{"complete", st.Completed}, {"canonical", st.Final},
			} {
				if s.a == nil {
					continue
				}
				fmt.Fprintf(out, "== %s\n", s.name)
				if err := write(out, s.a, format); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().String(cliParamFormat, "table", "Output: summary, table, json, dot, def")
	cmd.Flags().Bool(cliParamStages, false, "Print every pipeline stage")
	cmd.Flags().StringP(cliParamOutput, "o", "", "Write to this file instead of stdout")
	return cmd
}

func defineCmd(cfg *engine.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "define",
		Short: "Read a manual automaton definition",
		Long: dedent.Dedent(strings.Trim(`
			Reads an automaton in the text form

			  kind: dfa
			  alphabet: 0, 1
			  states: S, F
			  start: S
			  final: F
			  S 0 -> F

			from --file (or stdin), validates it and prints it. With --complete a
			sink state is added for the missing moves.
		`, "\n")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString(cliParamFormat)
			file, _ := cmd.Flags().GetString(cliParamFile)
			src, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			def, err := definition.Parse(src)
			if err != nil {
				return err
			}
			a, err := engine.New(*cfg).Build(def)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a, format)
		},
	}
	cmd.Flags().String(cliParamFormat, "table", "Output: summary, table, json, dot, def")
	cmd.Flags().StringP(cliParamFile, "f", "-", "Definition file, - for stdin")
	return cmd
}

func sampleCmd(cfg *engine.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample <pattern>",
		Short: "Print random strings accepted by a pattern",
		Long: dedent.Dedent(strings.Trim(`
			Each sample is a random walk that stops at the first accepting state.
			Walks do not look ahead, so a sample can fail even when a string of
			the requested length exists; failed samples are reported and can be
			retried with a larger --max-length.
		`, "\n")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt(cliParamCount)
			maxLength, _ := cmd.Flags().GetInt(cliParamMaxLength)
			e := engine.New(*cfg)
			a, err := e.Compile(args[0])
			if err != nil {
				return err
			}
			results, err := e.Sample(cmd.Context(), a, count, maxLength)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var missed int
			for _, r := range results {
				if !r.Found {
					missed++
					continue
				}
				fmt.Fprintln(out, r.Value)
			}
			if missed > 0 {
				logger.Warnw("samples failed", "missed", missed, "maxLength", maxLength)
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d samples: %v\n", missed, count, generate.ErrNoStringFound)
			}
			return nil
		},
	}
	cmd.Flags().IntP(cliParamCount, "n", 10, "Number of samples")
	cmd.Flags().IntP(cliParamMaxLength, "l", 10, "Maximum number of symbols per sample")
	return cmd
}

func enumerateCmd(cfg *engine.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enumerate <pattern>",
		Short: "List every accepted string up to a length, shortest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxLength, _ := cmd.Flags().GetInt(cliParamMaxLength)
			e := engine.New(*cfg)
			a, err := e.Compile(args[0])
			if err != nil {
				return err
			}
			res, err := e.Enumerate(a, maxLength)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.AcceptsEmpty {
				fmt.Fprintln(out, render.Epsilon)
			}
			for _, s := range res.Strings {
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
	cmd.Flags().IntP(cliParamMaxLength, "l", 5, "Maximum number of symbols")
	return cmd
}

func equivCmd(cfg *engine.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "equiv <pattern> <pattern>",
		Short: "Tell whether two patterns describe the same language",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := engine.New(*cfg).Equivalent(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func grammarCmd(cfg *engine.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar [rules]",
		Short: "Generate strings from a context-free grammar",
		Long: dedent.Dedent(strings.Trim(`
			Rules are "S -> a S b | ε", one per line or separated by ';'. They are
			taken from the argument, from --file, or built from a short language
			description with --describe ("a^nb^n" or "x | y | z").
		`, "\n")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, _ := cmd.Flags().GetInt(cliParamDepth)
			start, _ := cmd.Flags().GetString(cliParamStart)
			desc, _ := cmd.Flags().GetString(cliParamDescribe)
			file, _ := cmd.Flags().GetString(cliParamFile)

			var g *grammar.Grammar
			var err error
			switch {
			case desc != "":
				g, err = grammar.FromDescription(desc)
			case len(args) == 1:
				g, err = grammar.Parse(args[0])
			default:
				var src string
				if src, err = readInput(cmd, file); err == nil {
					g, err = grammar.Parse(src)
				}
			}
			if err != nil {
				return err
			}
			if start == "" {
				start = g.Start()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", g)
			strs, err := g.Generate(start, depth, grammar.WithMaxResults(cfg.MaxResults))
			if err != nil {
				return err
			}
			for _, s := range strs {
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
	cmd.Flags().IntP(cliParamDepth, "d", 5, "Maximum derivation depth")
	cmd.Flags().String(cliParamStart, "", "Start symbol (default: head of the first rule)")
	cmd.Flags().String(cliParamDescribe, "", "Language description instead of rules")
	cmd.Flags().StringP(cliParamFile, "f", "-", "Rules file, - for stdin")
	return cmd
}

func write(w io.Writer, a *automaton.Automaton, format string) error {
	switch format {
	case "summary":
		return render.WriteSummary(w, a)
	case "table":
		if err := render.WriteSummary(w, a); err != nil {
			return err
		}
		render.WriteTable(w, a)
		return nil
	case "json":
		return render.WriteJSON(w, a)
	case "dot":
		return render.WriteDOT(w, a)
	case "def":
		_, err := io.WriteString(w, definition.Format(a.Definition()))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func readInput(cmd *cobra.Command, file string) (string, error) {
	if file == "-" || file == "" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(file)
	return string(b), err
}
