package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/modgraph/builder"
	"github.com/katalvlaran/modgraph/config"
	"github.com/katalvlaran/modgraph/executor"
	"github.com/katalvlaran/modgraph/harness"
	"github.com/katalvlaran/modgraph/loader"
	"github.com/katalvlaran/modgraph/replay"
	"github.com/katalvlaran/modgraph/strategy"
)

var errCasesFailed = errors.New("one or more cases failed")

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	storePath  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "modgraph",
		Short:         "Randomized dependency-graph oracle for a module loader",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().StringVar(&flags.storePath, "store", "", "failure store directory")

	root.AddCommand(newRunCmd(flags), newShapeCmd(flags), newReplayCmd(flags), newFailuresCmd(flags))

	return root
}

// load resolves the configuration and applies the persistent flags.
func (f *rootFlags) load(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.storePath != "" {
		cfg.StorePath = f.storePath
	}
	if err = cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	return cfg, logger, nil
}

func openStore(cfg config.Config, logger *slog.Logger) (*replay.Store, error) {
	if cfg.StorePath == "" {
		return replay.OpenInMemory()
	}

	return replay.Open(replay.Options{Path: cfg.StorePath, Logger: logger})
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	var (
		seed        int64
		cases       int
		parallelism int
		workDir     string
		staleLoader bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run randomized oracle cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("cases") {
				cfg.Cases = cases
			}
			if cmd.Flags().Changed("parallelism") {
				cfg.Parallelism = parallelism
			}
			if workDir != "" {
				cfg.WorkDir = workDir
			}

			store, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := []harness.Option{harness.WithLogger(logger), harness.WithStore(store)}
			if staleLoader {
				opts = append(opts, harness.WithExecutorOptions(executor.WithCacheInvalidation(false)))
			}
			runner, err := harness.New(cfg, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			sum, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cases: %d passed: %d failed: %d\n", sum.Cases, sum.Passed, sum.Failed)
			for _, f := range sum.Failures {
				fmt.Fprintf(out, "  seed %d (record %s): %v\n", f.Seed, f.RecordID, f.Err)
			}
			if sum.Failed > 0 {
				return errCasesFailed
			}

			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed of the first case")
	cmd.Flags().IntVar(&cases, "cases", 0, "number of cases")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "cases run concurrently")
	cmd.Flags().StringVar(&workDir, "work-dir", "", "keep generated packages under this directory")
	cmd.Flags().BoolVar(&staleLoader, "stale-loader", false, "run against an executor that never flushes its module cache")

	return cmd
}

func newShapeCmd(flags *rootFlags) *cobra.Command {
	var (
		nodes        int
		seed         int64
		multiplicity int
		mutations    int
		staleLoader  bool
	)
	cmd := &cobra.Command{
		Use:       "shape <name>",
		Short:     "Run one case on a fixed topology",
		Long:      "Run one case on a fixed topology. Shapes: " + strings.Join(builder.Shapes, ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: builder.Shapes,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load(cmd)
			if err != nil {
				return err
			}
			con, err := builder.ByName(args[0], nodes)
			if err != nil {
				return err
			}
			if multiplicity < 1 {
				return fmt.Errorf("--multiplicity must be at least 1, got %d", multiplicity)
			}
			if mutations < 0 {
				return fmt.Errorf("--mutations must not be negative, got %d", mutations)
			}
			rng := strategy.NewRand(strategy.WithSeed(seed))
			top, err := builder.Build([]builder.Option{builder.WithRand(rng), builder.WithMultiplicity(multiplicity)}, con)
			if err != nil {
				return err
			}
			c := loader.Case{
				Nodes:     top.Specs(rng),
				Edges:     top.Attempts(),
				Mutations: strategy.SliceOf(loader.TransactionGenStrategy(), strategy.Exactly(mutations)).Generate(rng),
			}

			opts := []harness.Option{harness.WithLogger(logger)}
			if staleLoader {
				opts = append(opts, harness.WithExecutorOptions(executor.WithCacheInvalidation(false)))
			}
			runner, err := harness.New(cfg, opts...)
			if err != nil {
				return err
			}
			res := runner.RunFixed(cmd.Context(), seed, c)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d nodes, %d edges, %d transactions\n", args[0], res.Nodes, res.Edges, res.Transactions)
			if res.Err != nil {
				fmt.Fprintf(out, "failed: %v\n", res.Err)
				return errCasesFailed
			}
			fmt.Fprintln(out, "passed")

			return nil
		},
	}
	cmd.Flags().IntVar(&nodes, "nodes", 5, "number of modules (ignored by diamond)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for accounts, random edges and mutations")
	cmd.Flags().IntVar(&multiplicity, "multiplicity", 1, "instances of every edge")
	cmd.Flags().IntVar(&mutations, "mutations", 0, "random mutations applied after the initial batch")
	cmd.Flags().BoolVar(&staleLoader, "stale-loader", false, "run against an executor that never flushes its module cache")

	return cmd
}

func newReplayCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <id>",
		Short: "Re-run a recorded failure from its seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid record id %q: %w", args[0], err)
			}
			cfg, logger, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if cfg.StorePath == "" {
				return errors.New("replay needs --store or store_path")
			}
			store, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			cfg.Nodes, cfg.EdgeAttempts, cfg.Mutations = rec.Nodes, rec.EdgeAttempts, rec.Mutations
			runner, err := harness.New(cfg, harness.WithLogger(logger))
			if err != nil {
				return err
			}

			res := runner.RunCase(cmd.Context(), rec.Seed)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seed %d: %d nodes, %d edges, %d transactions\n", rec.Seed, res.Nodes, res.Edges, res.Transactions)
			if res.Err != nil {
				fmt.Fprintf(out, "still failing: %v\n", res.Err)
				return errCasesFailed
			}
			fmt.Fprintln(out, "passed")

			return nil
		},
	}
}

func newFailuresCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "failures",
		Short: "List recorded failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := flags.load(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, rec := range records {
				fmt.Fprintf(out, "%s seed=%d mutations=%d %s\n  %s\n",
					rec.ID, rec.Seed, len(rec.History), rec.CreatedAt.Format("2006-01-02T15:04:05Z"), rec.Error)
			}
			fmt.Fprintf(out, "%d failure(s)\n", len(records))

			return nil
		},
	}
}
