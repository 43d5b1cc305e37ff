package refselect

import(
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/abworrall/refframes/pkg/redconfig"
	"github.com/abworrall/refframes/pkg/trendlog"
)

// RefListFilename is where the selected frames for filterID are written.
func RefListFilename(redDir, filterID string) string {
	return filepath.Join(redDir, "reflist." + filterID + ".txt")
}

// TrendLogFilename is the quality log the selection is made from.
func TrendLogFilename(redDir, filterID string) string {
	return filepath.Join(redDir, "trends", "trendlog.imred." + filterID + ".txt")
}

// A Selector picks reference frames for one reduction directory and filter,
// and records them in the reflist file.
type Selector struct {
	// Config, if set, is used instead of reading the directory's Red.Config.
	Config *redconfig.Config

	// DryRun selects as usual but leaves the reflist unwritten.
	DryRun bool

	Log *slog.Logger
}

// Result describes one Run. When Skipped is set the reflist already existed
// and nothing else was looked at.
type Result struct {
	Skipped   bool
	RefList   string
	TrendLog  string
	MaxFrames int

	Selection
}

func (s *Selector)logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// Run selects the reference frames for filterID in redDir. Running it again
// once the reflist exists does nothing.
func (s *Selector)Run(ctx context.Context, redDir, filterID string) (Result, error) {
	log := s.logger().With(slog.String("red_dir", redDir), slog.String("filter", filterID))
	res := Result{
		RefList:  RefListFilename(redDir, filterID),
		TrendLog: TrendLogFilename(redDir, filterID),
	}

	if _, err := os.Stat(res.RefList); err == nil {
		log.Info("reflist already present, skipping", slog.String("reflist", res.RefList))
		res.Skipped = true
		return res, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return res, fmt.Errorf("stat %s: %w", res.RefList, err)
	}

	maxFrames, err := s.maxFrames(redDir)
	if err != nil {
		return res, err
	}
	res.MaxFrames = maxFrames

	if err := ctx.Err(); err != nil {
		return res, err
	}

	l, err := trendlog.Load(res.TrendLog)
	if err != nil {
		return res, err
	}
	log.Debug("trend log loaded", slog.String("trendlog", l.File), slog.Int("rows", len(l.Records)))

	sel, err := Select(l, maxFrames)
	res.Selection = sel
	if err != nil {
		return res, err
	}

	log.Debug("thresholds computed",
		slog.Int("valid_rows", sel.ValidRows),
		slog.String("thresholds", sel.Thresholds.String()),
	)
	log.Info("reference frames selected",
		slog.String("case", sel.Case.String()),
		slog.String("date", sel.Date),
		slog.Int("candidates", len(sel.Candidates)),
		slog.Int("dates", len(sel.Groups)),
		slog.Int("selected", len(sel.Selected)),
		slog.Int("max_frames", maxFrames),
	)
	if len(sel.Selected) == 0 {
		log.Warn("no frame passed the quality thresholds; the reflist will be empty",
			slog.Int("rows", len(sel.Records)))
	}

	if s.DryRun {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if err := WriteRefList(res.RefList, sel.Names()); err != nil {
		return res, err
	}
	log.Info("reflist written", slog.String("reflist", res.RefList))

	return res, nil
}

func (s *Selector)maxFrames(redDir string) (int, error) {
	cfg := s.Config
	if cfg == nil {
		loaded, err := redconfig.Load(redDir)
		if err != nil {
			return 0, err
		}
		cfg = &loaded
	}
	return cfg.MaxFrames()
}

// WriteRefList writes one name per line. The file only appears once it is
// complete, so an interrupted run never leaves a partial reflist behind.
func WriteRefList(filename string, names []string) error {
	pf, err := renameio.NewPendingFile(filename, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	defer pf.Cleanup()

	for _, name := range names {
		if _, err := fmt.Fprintln(pf, name); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}
	}

	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("commit %s: %w", filename, err)
	}
	return nil
}
