package refselect

import(
	"errors"
	"fmt"

	"github.com/abworrall/refframes/pkg/emath"
	"github.com/abworrall/refframes/pkg/trendlog"
)

// Offsets applied to the medians of the valid rows.
const(
	SkyBackgroundMargin = 50.0
	SkyNoiseMargin      = 10.0
	FWHMMargin          = 0.5
	EllipticityMargin   = 0.05

	// MaxSkyPerSecond caps sky background divided by exposure time.
	MaxSkyPerSecond = 10.0
)

var ErrNoValidRecords = errors.New("no valid trend log rows to derive thresholds from")

// Thresholds is the quality bar a frame must clear to be a candidate. It is
// derived from the dataset itself, so each night is judged against its own
// conditions.
type Thresholds struct {
	SkyBackground float64 // upper bound, exclusive
	SkyNoise      float64 // upper bound, exclusive
	FWHM          float64 // upper bound, exclusive
	Ellipticity   float64 // lower bound, exclusive
}

func (t Thresholds)String() string {
	return fmt.Sprintf("sky<%.2f noise<%.2f fwhm<%.3f ell>%.3f", t.SkyBackground, t.SkyNoise, t.FWHM, t.Ellipticity)
}

// ComputeThresholds takes medians over the valid rows. Row order does not matter.
func ComputeThresholds(valid []trendlog.Record) (Thresholds, error) {
	if len(valid) == 0 {
		return Thresholds{}, ErrNoValidRecords
	}

	sky := make([]float64, len(valid))
	noise := make([]float64, len(valid))
	fwhm := make([]float64, len(valid))
	ell := make([]float64, len(valid))
	for i, r := range valid {
		sky[i] = r.SkyBackground
		noise[i] = r.SkyNoise
		fwhm[i] = r.FWHM
		ell[i] = r.Ellipticity
	}

	// Inputs are non-empty, so the medians cannot fail.
	skyMed, _ := emath.Median(sky)
	noiseMed, _ := emath.Median(noise)
	fwhmMed, _ := emath.Median(fwhm)
	ellMed, _ := emath.Median(ell)

	return Thresholds{
		SkyBackground: skyMed + SkyBackgroundMargin,
		SkyNoise:      noiseMed + SkyNoiseMargin,
		FWHM:          fwhmMed + FWHMMargin,
		Ellipticity:   ellMed - EllipticityMargin,
	}, nil
}

// Accepts reports whether r clears every threshold, and its sky level per
// second of exposure is low enough.
func (t Thresholds)Accepts(r trendlog.Record) bool {
	return r.SkyBackground < t.SkyBackground &&
		r.SkyNoise < t.SkyNoise &&
		r.FWHM < t.FWHM &&
		r.Ellipticity > t.Ellipticity &&
		r.SkyBackground / r.EffectiveExposure() <= MaxSkyPerSecond
}

// Candidates returns the records t accepts, in their original order.
func (t Thresholds)Candidates(records []trendlog.Record) []trendlog.Record {
	out := []trendlog.Record{}
	for _, r := range records {
		if t.Accepts(r) {
			out = append(out, r)
		}
	}
	return out
}
