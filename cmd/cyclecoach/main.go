package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	cyclecoach "github.com/lucasjlepore/cycle-coach"
	"github.com/lucasjlepore/cycle-coach/internal/logging"
	"github.com/lucasjlepore/cycle-coach/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type globalFlags struct {
	profilePath string
	logLevel    string
	logFile     string
	logJSON     bool

	profile cyclecoach.Profile
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "cyclecoach",
		Short:         "Cycling ride analyzer and coach",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logging.Setup(logging.LoggerSetupParams{
				LogFileName:   g.logFile,
				LogToConsole:  g.logFile != "",
				LogLevel:      g.logLevel,
				LogFormatJSON: g.logJSON,
			})
			p, err := cyclecoach.LoadProfile(g.profilePath)
			if err != nil {
				return err
			}
			g.profile = p
			return nil
		},
	}
	root.PersistentFlags().StringVar(&g.profilePath, "profile", "", "rider profile file (.toml|.yaml)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level: trace|debug|info|warn|error")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "also write logs to this file (rotated)")
	root.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "emit logs as JSON")

	root.AddCommand(newAnalyzeCmd(g))
	root.AddCommand(newExportCmd(g))
	root.AddCommand(newProfileCmd(g))
	return root
}

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	var (
		jsonOut bool
		layout  string
	)
	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Print metrics and the coach's verdict for ride files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hint, err := cyclecoach.ParseLayoutID(layout)
			if err != nil {
				return err
			}
			engine := cyclecoach.NewEngine(g.profile)

			var errs error
			for i, path := range args {
				report, err := analyzeFile(engine, path, hint)
				if err != nil {
					errs = multierr.Append(errs, err)
					continue
				}
				if err := printReport(cmd.OutOrStdout(), path, report, jsonOut, i > 0); err != nil {
					return err
				}
			}
			return errs
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the full report as JSON")
	cmd.Flags().StringVar(&layout, "layout", "auto", "column layout: auto|standard|gotoes")
	return cmd
}

func analyzeFile(engine *cyclecoach.Engine, path string, hint cyclecoach.LayoutID) (cyclecoach.Report, error) {
	format, err := cyclecoach.FormatFromPath(path)
	if err != nil {
		return cyclecoach.Report{}, fmt.Errorf("%s: %w", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return cyclecoach.Report{}, err
	}
	defer f.Close()

	res, err := cyclecoach.ParseRide(f, format, hint)
	if err != nil {
		return cyclecoach.Report{}, fmt.Errorf("%s: %w", path, err)
	}
	return engine.Analyze(res), nil
}

func printReport(w io.Writer, path string, report cyclecoach.Report, jsonOut, separate bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	if separate {
		_, _ = fmt.Fprintln(w)
	}
	_, _ = fmt.Fprintf(w, "== %s (%s layout)\n", filepath.Base(path), report.Layout)
	_, _ = fmt.Fprintln(w, report.Notes)
	for _, warning := range report.Warnings {
		_, _ = fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}

func newExportCmd(g *globalFlags) *cobra.Command {
	var (
		outDir      string
		format      string
		layout      string
		overwrite   bool
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "export <file>...",
		Short: "Write normalized samples, summary, notes and chart data for ride files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(outDir) == "" {
				return fmt.Errorf("--out is required")
			}
			hint, err := cyclecoach.ParseLayoutID(layout)
			if err != nil {
				return err
			}

			dirs := outputDirs(outDir, args)
			items := make([]pipeline.Options, 0, len(args))
			for i, path := range args {
				items = append(items, pipeline.Options{
					SourcePath: path,
					OutDir:     dirs[i],
					Profile:    &g.profile,
					Layout:     hint,
					Format:     format,
					Overwrite:  overwrite,
				})
			}

			results, err := pipeline.RunBatch(cmd.Context(), items, concurrency)
			for _, item := range results {
				if item.Result == nil {
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", item.SourcePath, item.Result.OutputDir)
				for _, w := range item.Result.Warnings {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  warning: %s\n", w)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (one sub-directory per file when several are given)")
	cmd.Flags().StringVar(&format, "format", "parquet", "normalized sample format: parquet|csv")
	cmd.Flags().StringVar(&layout, "layout", "auto", "column layout: auto|standard|gotoes")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "allow writing into non-empty output directories")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "files processed in parallel (0 = number of CPUs)")
	return cmd
}

// outputDirs gives every source its own directory under outDir, named after the file
// stem. Repeated stems get a numeric suffix in argument order: ride, ride-2, ride-3.
func outputDirs(outDir string, paths []string) []string {
	if len(paths) == 1 {
		return []string{outDir}
	}
	used := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		name := stem
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s-%d", stem, n)
		}
		used[strings.ToLower(name)] = true
		out = append(out, filepath.Join(outDir, name))
	}
	return out
}

func newProfileCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the effective rider profile as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := g.profile.EncodeTOML()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
