package main

import(
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abworrall/refframes/pkg/metrics"
	"github.com/abworrall/refframes/pkg/redconfig"
	"github.com/abworrall/refframes/pkg/refselect"
	"github.com/abworrall/refframes/pkg/trendplot"
)

type options struct {
	Verbosity   int
	MaxFrames   int
	DryRun      bool
	PlotFile    string
	MetricsFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		slog.Error("choose-refframes failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "choose-refframes [red_dir filter_id]",
		Short: "Pick the reference frames for a reduction",
		Long: `Reads <red_dir>/trends/trendlog.imred.<filter_id>.txt, picks the sharpest
and cleanest frames, and writes their names to <red_dir>/reflist.<filter_id>.txt.
Does nothing if the reflist already exists. With no arguments, asks for both.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("want red_dir and filter_id, or neither; got %d args", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				var err error
				if args, err = prompt(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return run(cmd.Context(), cmd.OutOrStdout(), opts, args[0], args[1])
		},
	}

	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "how verbose to get (repeat for more)")
	cmd.Flags().IntVarP(&opts.MaxFrames, "max-frames", "n", 0, "most reference frames to pick; overrides max_nim in the Red.Config")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the selection instead of writing the reflist")
	cmd.Flags().StringVar(&opts.PlotFile, "plot", "", "also write a PNG of FWHM per frame to this file")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "also write Prometheus textfile metrics to this file")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options, redDir, filterID string) error {
	logger := newLogger(opts.Verbosity)
	slog.SetDefault(logger)
	logger.Info("choose-refframes starting", slog.String("red_dir", redDir), slog.String("filter", filterID))

	s := refselect.Selector{DryRun: opts.DryRun, Log: logger}
	if opts.MaxFrames > 0 {
		cfg := redconfig.WithMaxFrames(opts.MaxFrames)
		s.Config = &cfg
	}
	if s.Config != nil && opts.Verbosity > 1 {
		logger.Debug("final configuration:\n\n" + s.Config.AsYaml())
	}

	res, err := s.Run(ctx, redDir, filterID)
	if err != nil {
		return err
	}

	if opts.MetricsFile != "" {
		m := metrics.New(redDir, filterID)
		m.Observe(res)
		if err := m.WriteTextfile(opts.MetricsFile); err != nil {
			return err
		}
	}

	if res.Skipped {
		return nil
	}

	logger.Debug(res.Selection.String())
	logger.Debug("candidate seeing", slog.String("summary", refselect.Summarize(res.Candidates).String()))
	if opts.Verbosity > 1 {
		for _, r := range res.Candidates {
			logger.Debug("candidate", slog.String("frame", r.String()), slog.String("date", r.Date()))
		}
	}

	if opts.PlotFile != "" {
		title := fmt.Sprintf("%s %s", filepath.Base(filepath.Clean(redDir)), filterID)
		if err := trendplot.New(title).WritePNG(opts.PlotFile, res.Selection); err != nil {
			return err
		}
		logger.Info("plot written", slog.String("plot", opts.PlotFile))
	}

	if opts.DryRun {
		for _, name := range res.Names() {
			fmt.Fprintln(out, name)
		}
	}

	return nil
}

// prompt asks for the reduction directory and filter, one per line.
func prompt(in io.Reader, out io.Writer) ([]string, error) {
	scanner := bufio.NewScanner(in)
	questions := []string{
		"Please enter the path to the datasets reduction directory:",
		"Please enter the filter used for the dataset:",
	}

	answers := []string{}
	for _, q := range questions {
		fmt.Fprintln(out, q)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("no answer to %q", q)
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			return nil, fmt.Errorf("empty answer to %q", q)
		}
		answers = append(answers, answer)
	}

	return answers, nil
}

func newLogger(verbosity int) *slog.Logger {
	level := &slog.LevelVar{}
	if verbosity > 0 {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	if isTerminal(os.Stderr) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
