package main

import (
	"context"
	"fmt"
	"os"

	"homerange/app"
	"homerange/domain/dataset"
	"homerange/domain/stats"
	"homerange/internal"
	"homerange/internal/config"
	"homerange/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliOptions holds the flags shared by every analysis command
type cliOptions struct {
	seed          int64
	replicates    int
	permutations  int
	level         float64
	groupA        string
	groupB        string
	workers       int
	jsonOutput    bool
	distributions bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	defaults := config.Default().Analysis

	rootCmd := &cobra.Command{
		Use:   "homerange",
		Short: "Resampling inference for spider monkey home-range tables",
		Long: `Bootstrap confidence intervals, a permutation test and a pooled t-test
comparing male and female home-range size.

Settings default to the environment (SEED, BOOTSTRAP_REPLICATES, ...); flags
override them. When DATA_FILE is set the file argument may be omitted.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.Int64Var(&opts.seed, "seed", defaults.Seed, "Random seed for deterministic resampling")
	flags.IntVar(&opts.replicates, "replicates", defaults.BootstrapReplicates, "Bootstrap replicates")
	flags.IntVar(&opts.permutations, "permutations", defaults.PermutationReplicates, "Permutation replicates")
	flags.Float64Var(&opts.level, "level", defaults.ConfidenceLevel, "Confidence level in (0, 1)")
	flags.StringVar(&opts.groupA, "group-a", defaults.GroupA, "First group of the comparison")
	flags.StringVar(&opts.groupB, "group-b", defaults.GroupB, "Second group of the comparison")
	flags.IntVar(&opts.workers, "workers", defaults.Workers, "Goroutines used for replicates")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print JSON instead of text")
	flags.BoolVar(&opts.distributions, "distributions", false, "Include raw replicate values in JSON output")

	rootCmd.AddCommand(
		newAnalyzeCmd(opts),
		newBootstrapCmd(opts),
		newPermuteCmd(opts),
		newTTestCmd(opts),
		newReportsCmd(opts),
		newGenerateCmd(),
	)
	return rootCmd
}

// session bundles what a command needs after flags are resolved
type session struct {
	container *container.Container
	settings  stats.Settings
	opts      *cliOptions
}

// newSession loads configuration, applies explicitly set flags on top and
// builds the container
func newSession(cmd *cobra.Command, opts *cliOptions) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	internal.DefaultLogger = internal.NewLoggerTo(cmd.ErrOrStderr(), internal.ParseLogLevel(cfg.LogLevel))

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Analysis.Seed = opts.seed
	}
	if flags.Changed("replicates") {
		cfg.Analysis.BootstrapReplicates = opts.replicates
	}
	if flags.Changed("permutations") {
		cfg.Analysis.PermutationReplicates = opts.permutations
	}
	if flags.Changed("level") {
		cfg.Analysis.ConfidenceLevel = opts.level
	}
	if flags.Changed("group-a") {
		cfg.Analysis.GroupA = opts.groupA
	}
	if flags.Changed("group-b") {
		cfg.Analysis.GroupB = opts.groupB
	}
	if flags.Changed("workers") {
		cfg.Analysis.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := container.New(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	return &session{container: c, settings: c.Settings(), opts: opts}, nil
}

func (s *session) close() {
	_ = s.container.Shutdown(context.Background())
}

func (s *session) load(ctx context.Context, args []string) (*dataset.Dataset, string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	source := s.container.DatasetSource(path)
	ds, err := source.Load(ctx)
	if err != nil {
		return nil, "", err
	}
	return ds, source.Name(), nil
}

func newAnalyzeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run summaries, bootstraps, the permutation test and the t-test",
		Long: `Run the full analysis on a CSV or XLSX table.

The report is saved when DATABASE_URL is set.

Example: homerange analyze monkeys.csv --seed 42 --replicates 10000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			ds, source, err := s.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			report, err := s.container.Analysis.Analyze(cmd.Context(), app.AnalysisRequest{
				Dataset:  ds,
				Source:   source,
				Settings: s.settings,
			})
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				if !opts.distributions {
					report.StripDistributions()
				}
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func newBootstrapCmd(opts *cliOptions) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "bootstrap [file]",
		Short: "Bootstrap the mean of one group, or of every group",
		Long: `Bootstrap the mean home range and print the standard error with percentile
and normal-approximation intervals.

Example: homerange bootstrap monkeys.csv --group M --replicates 5000 --level 0.9`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			ds, _, err := s.load(cmd.Context(), args)
			if err != nil {
				return err
			}

			groups := ds.Groups()
			if group != "" {
				groups = []dataset.GroupLabel{dataset.GroupLabel(group)}
			}

			results := make([]stats.BootstrapResult, 0, len(groups))
			for _, g := range groups {
				result, err := s.container.Analysis.Bootstrap(cmd.Context(), ds, g, s.settings)
				if err != nil {
					return err
				}
				if !opts.distributions {
					result.Distribution = nil
				}
				results = append(results, *result)
			}

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			printBootstraps(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Group to bootstrap (default: every group)")
	return cmd
}

func newPermuteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "permute [file]",
		Short: "Permutation test for the difference in group means",
		Long: `Shuffle the group labels to build a null distribution for mean(A) - mean(B)
and report the two-sided p-value.

Example: homerange permute monkeys.csv --permutations 10000 --group-a M --group-b F`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			ds, _, err := s.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			result, err := s.container.Analysis.Permute(cmd.Context(), ds, s.settings)
			if err != nil {
				return err
			}
			if !opts.distributions {
				result.Distribution = nil
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printPermutation(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newTTestCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ttest [file]",
		Short: "Pooled two-sample t-test",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			ds, _, err := s.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			result, err := s.container.Analysis.TTest(ds, s.settings)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printTTest(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newReportsCmd(opts *cliOptions) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "reports [report-id]",
		Short: "List stored reports, or show one",
		Long: `List reports saved by analyze, newest first, or print a single report.
Reports persist across runs only when DATABASE_URL is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			if len(args) == 1 {
				report, err := s.container.Analysis.GetReport(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					if !opts.distributions {
						report.StripDistributions()
					}
					return writeJSON(cmd.OutOrStdout(), report)
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			}

			summaries, err := s.container.Analysis.ListReports(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), summaries)
			}
			printReportList(cmd.OutOrStdout(), summaries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum reports to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Reports to skip")
	return cmd
}
