package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/refframes/pkg/refselect"
	"github.com/abworrall/refframes/pkg/trendlog"
)

func TestObserve(t *testing.T) {
	m := New("/red/night", "ip")
	m.Observe(refselect.Result{
		MaxFrames: 4,
		Selection: refselect.Selection{
			Case:       refselect.CaseSharpestNight,
			Records:    make([]trendlog.Record, 12),
			ValidRows:  10,
			Candidates: make([]trendlog.Record, 6),
			Groups:     make([]refselect.DateGroup, 2),
			Selected:   make([]trendlog.Record, 4),
			Thresholds: refselect.Thresholds{FWHM: 2.5},
		},
	})

	assert.Equal(t, 12.0, testutil.ToFloat64(m.Rows))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.Candidates))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Selected))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Skipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Case.WithLabelValues("sharpest-night")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Case.WithLabelValues("single-night")))
	assert.Equal(t, 2.5, testutil.ToFloat64(m.Threshold.WithLabelValues("fwhm")))
}

func TestObserveSkipped(t *testing.T) {
	m := New("/red/night", "ip")
	m.Observe(refselect.Result{Skipped: true})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Skipped))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.Observe(refselect.Result{}) })
}

func TestWriteTextfile(t *testing.T) {
	m := New("/red/night", "ip")
	m.Observe(refselect.Result{MaxFrames: 3})

	path := filepath.Join(t.TempDir(), "refframes.prom")
	require.NoError(t, m.WriteTextfile(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), `refframes_max_frames{filter="ip",red_dir="/red/night"} 3`)
}
