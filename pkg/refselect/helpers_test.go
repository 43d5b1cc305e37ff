package refselect

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abworrall/refframes/pkg/trendlog"
)

// frame returns a record that is valid, and a candidate against the
// thresholds derived from a log made of such frames.
func frame(name string, fwhm float64) trendlog.Record {
	return trendlog.Record{
		Identifier:    "/data/red/night/" + name,
		ExposureTime:  30,
		SkyBackground: 100,
		SkyNoise:      10,
		FWHM:          fwhm,
		Aux13:         1,
		Aux14:         1,
		Ellipticity:   0.9,
		Count:         200,
		Aux17:         1,
	}
}

func logOf(records ...trendlog.Record) trendlog.Log {
	for i := range records {
		records[i].Line = i + 1
	}
	return trendlog.Log{File: "test", Records: records}
}

func names(records []trendlog.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name()
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scenarioOne has five candidates: three from 2016-04-01 and two from 2016-04-02.
func scenarioOne() []trendlog.Record {
	return []trendlog.Record{
		frame("2016-04-01-0001.fits", 2.0),
		frame("2016-04-01-0002.fits", 1.8),
		frame("2016-04-02-0001.fits", 2.2),
		frame("2016-04-01-0003.fits", 1.9),
		frame("2016-04-02-0002.fits", 2.1),
	}
}

// reductionDir lays out a reduction directory holding a trend log for filter
// "ip" and, when maxNim is positive, a Red.Config.
func reductionDir(t *testing.T, maxNim int, records ...trendlog.Record) string {
	t.Helper()
	redDir := filepath.Join(t.TempDir(), "night")
	require.NoError(t, os.MkdirAll(filepath.Join(redDir, "trends"), 0o755))

	lines := []string{"# trend log for filter ip"}
	for _, r := range records {
		lines = append(lines, r.Row())
	}
	require.NoError(t, os.WriteFile(TrendLogFilename(redDir, "ip"), []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	if maxNim > 0 {
		cfg := filepath.Join(redDir, "night.Red.Config")
		require.NoError(t, os.WriteFile(cfg, []byte("max_nim: "+strconv.Itoa(maxNim)+"\n"), 0o644))
	}
	return redDir
}
