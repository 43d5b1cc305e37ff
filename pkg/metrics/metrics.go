// Package metrics exposes the outcome of a selection run as Prometheus gauges,
// written in the textfile format a node exporter collects from batch jobs.
package metrics

import(
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/abworrall/refframes/pkg/refselect"
)

// Metrics bundles the collectors for one run on a dedicated registry.
type Metrics struct {
	Registry *prometheus.Registry

	Rows       prometheus.Gauge
	ValidRows  prometheus.Gauge
	Candidates prometheus.Gauge
	Dates      prometheus.Gauge
	Selected   prometheus.Gauge
	MaxFrames  prometheus.Gauge
	Skipped    prometheus.Gauge
	Case       *prometheus.GaugeVec
	Threshold  *prometheus.GaugeVec
	LastRun    prometheus.Gauge
}

// New registers every collector, labelled with the reduction directory and filter.
func New(redDir, filterID string) *Metrics {
	registry := prometheus.NewRegistry()
	labels := prometheus.Labels{"red_dir": redDir, "filter": filterID}

	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "refframes_" + name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	m := &Metrics{
		Registry:   registry,
		Rows:       gauge("trendlog_rows", "Data rows in the trend log."),
		ValidRows:  gauge("trendlog_valid_rows", "Rows the quality thresholds were derived from."),
		Candidates: gauge("candidates", "Frames that passed every quality threshold."),
		Dates:      gauge("candidate_dates", "Distinct acquisition dates among the candidates."),
		Selected:   gauge("selected", "Reference frames written to the reflist."),
		MaxFrames:  gauge("max_frames", "Frame budget from the reduction config."),
		Skipped:    gauge("skipped", "1 if the reflist already existed and the run did nothing."),
		LastRun:    gauge("last_run_timestamp_seconds", "When the selection last ran."),
		Case: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "refframes_case",
			Help:        "1 for the rule that picked the reference frames.",
			ConstLabels: labels,
		}, []string{"case"}),
		Threshold: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "refframes_threshold",
			Help:        "Quality thresholds derived from the trend log.",
			ConstLabels: labels,
		}, []string{"measure"}),
	}

	registry.MustRegister(m.Rows, m.ValidRows, m.Candidates, m.Dates, m.Selected,
		m.MaxFrames, m.Skipped, m.LastRun, m.Case, m.Threshold)

	return m
}

// Observe records a finished run.
func (m *Metrics) Observe(res refselect.Result) {
	if m == nil {
		return
	}
	m.LastRun.SetToCurrentTime()

	if res.Skipped {
		m.Skipped.Set(1)
		return
	}
	m.Skipped.Set(0)

	m.Rows.Set(float64(len(res.Records)))
	m.ValidRows.Set(float64(res.ValidRows))
	m.Candidates.Set(float64(len(res.Candidates)))
	m.Dates.Set(float64(len(res.Groups)))
	m.Selected.Set(float64(len(res.Selected)))
	m.MaxFrames.Set(float64(res.MaxFrames))

	for _, c := range []refselect.Case{refselect.CaseSingleNight, refselect.CaseSharpestNight, refselect.CaseSharpestFrames} {
		v := 0.0
		if c == res.Case {
			v = 1
		}
		m.Case.WithLabelValues(c.String()).Set(v)
	}

	m.Threshold.WithLabelValues("sky_background").Set(res.Thresholds.SkyBackground)
	m.Threshold.WithLabelValues("sky_noise").Set(res.Thresholds.SkyNoise)
	m.Threshold.WithLabelValues("fwhm").Set(res.Thresholds.FWHM)
	m.Threshold.WithLabelValues("ellipticity").Set(res.Thresholds.Ellipticity)
}

// WriteTextfile writes every registered metric to filename.
func (m *Metrics) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, m.Registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", filename, err)
	}
	return nil
}
