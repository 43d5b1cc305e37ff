package refselect

import(
	"fmt"
	"math"

	"github.com/codahale/hdrhistogram"

	"github.com/abworrall/refframes/pkg/trendlog"
)

// FWHM values are histogrammed in thousandths of a pixel.
const(
	fwhmScale   = 1000.0
	fwhmHistMin = 1
	fwhmHistMax = 1000 * 1000
)

// FWHMSummary describes the spread of seeing across a set of frames.
type FWHMSummary struct {
	Count                  int64
	Min, Median, P90, Max  float64
	Mean, StdDev           float64
}

func (s FWHMSummary)String() string {
	if s.Count == 0 {
		return "fwhm[n=0]"
	}
	return fmt.Sprintf("fwhm[n=%d min=%.3f med=%.3f p90=%.3f max=%.3f mean=%.3f sd=%.3f]",
		s.Count, s.Min, s.Median, s.P90, s.Max, s.Mean, s.StdDev)
}

// Summarize histograms the FWHM of records. Values are clamped to the range
// 0.001 .. 1000 pixels, and resolved to three significant figures.
func Summarize(records []trendlog.Record) FWHMSummary {
	h := hdrhistogram.New(fwhmHistMin, fwhmHistMax, 3)
	for _, r := range records {
		v := int64(math.Round(r.FWHM * fwhmScale))
		if v < fwhmHistMin { v = fwhmHistMin }
		if v > fwhmHistMax { v = fwhmHistMax }
		h.RecordValue(v) // in range by construction
	}

	if h.TotalCount() == 0 {
		return FWHMSummary{}
	}

	return FWHMSummary{
		Count:  h.TotalCount(),
		Min:    float64(h.Min()) / fwhmScale,
		Median: float64(h.ValueAtQuantile(50)) / fwhmScale,
		P90:    float64(h.ValueAtQuantile(90)) / fwhmScale,
		Max:    float64(h.Max()) / fwhmScale,
		Mean:   h.Mean() / fwhmScale,
		StdDev: h.StdDev() / fwhmScale,
	}
}
