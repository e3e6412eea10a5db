package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nyashahama/market-entry-advisor/internal/estimate"
	"github.com/nyashahama/market-entry-advisor/internal/intent"
	"github.com/nyashahama/market-entry-advisor/internal/orchestrator"
	"github.com/nyashahama/market-entry-advisor/internal/reference"
	"github.com/nyashahama/market-entry-advisor/internal/store"
)

type rootOptions struct {
	logLevel string
	compact  bool
}

// app carries what PersistentPreRunE builds to the subcommands.
type app struct {
	opts     *rootOptions
	logger   *slog.Logger
	sessions *store.Store
	orch     *orchestrator.Orchestrator
}

func newRootCmd() *cobra.Command {
	a := &app{opts: &rootOptions{}}

	cmd := &cobra.Command{
		Use:     "advisorctl",
		Short:   "Market entry analysis from the command line",
		Long:    "advisorctl parses free-text questions and runs market, risk and comparison\nanalyses against the built-in country and industry tables.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.sessions != nil {
				a.sessions.Close()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&a.opts.compact, "compact", false, "print JSON on one line")

	cmd.AddCommand(
		a.newParseCmd(),
		a.newAskCmd(),
		a.newAnalyzeCmd(),
		a.newCompareCmd(),
		newCountriesCmd(a),
		newIndustriesCmd(a),
	)
	return cmd
}

func (a *app) init(stderr io.Writer) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(a.opts.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q", a.opts.logLevel)
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}))
	a.sessions = store.New()
	a.orch = orchestrator.New(estimate.NewDeterministic(), a.sessions, a.logger)
	return nil
}

// print writes v as JSON to the command's stdout.
func (a *app) print(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if !a.opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// ─── parse ────────────────────────────────────────────────────────────────────

func (a *app) newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <query>",
		Short: "Show how a question is interpreted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(cmd, intent.Parse(strings.Join(args, " ")))
		},
	}
}

// ─── ask ──────────────────────────────────────────────────────────────────────

func (a *app) newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <query>",
		Short: "Answer a free-text question the way the chat endpoint does",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := a.orch.Chat(cmd.Context(), strings.Join(args, " "), "")
			if err != nil {
				return err
			}
			return a.print(cmd, reply)
		},
	}
}

// ─── analyze ──────────────────────────────────────────────────────────────────

func (a *app) newAnalyzeCmd() *cobra.Command {
	var industry, typ string

	cmd := &cobra.Command{
		Use:   "analyze <country>",
		Short: "Run a market, risk or comprehensive analysis for one country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := orchestrator.ParseAnalysisType(typ)
			if err != nil {
				return err
			}
			reply, err := a.orch.Analyze(cmd.Context(), args[0], industry, t)
			if err != nil {
				return err
			}
			return a.print(cmd, reply)
		},
	}
	cmd.Flags().StringVarP(&industry, "industry", "i", orchestrator.DefaultIndustry, "industry to analyse")
	cmd.Flags().StringVarP(&typ, "type", "t", string(orchestrator.AnalysisComprehensive), "market, risk or comprehensive")
	return cmd
}

// ─── compare ──────────────────────────────────────────────────────────────────

func (a *app) newCompareCmd() *cobra.Command {
	var industry string

	cmd := &cobra.Command{
		Use:   "compare <country> <country> [country...]",
		Short: "Rank countries by risk for one industry",
		Args:  cobra.RangeArgs(2, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := a.orch.Compare(cmd.Context(), args, industry)
			if err != nil {
				return err
			}
			return a.print(cmd, reply)
		},
	}
	cmd.Flags().StringVarP(&industry, "industry", "i", orchestrator.DefaultIndustry, "industry to compare")
	return cmd
}

// ─── reference data ───────────────────────────────────────────────────────────

func newCountriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List supported countries grouped by region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.print(cmd, reference.CountriesByRegion())
		},
	}
}

func newIndustriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "industries",
		Short: "List supported industries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.print(cmd, reference.Industries())
		},
	}
}
