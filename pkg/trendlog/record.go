// Package trendlog reads the per-image quality log ("trend log") written by the
// image reduction stage. Each data row describes one reduced frame.
package trendlog

import(
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Column positions within a whitespace separated data row.
const(
	ColIdentifier    = 0
	ColExposureTime  = 9
	ColSkyBackground = 10
	ColSkyNoise      = 11
	ColFWHM          = 12
	ColAux13         = 13
	ColAux14         = 14
	ColEllipticity   = 15
	ColCount         = 16
	ColAux17         = 17

	NumColumns = ColAux17 + 1
)

const(
	// Missing is written by the reduction stage when a measurement failed.
	Missing = -1.0

	// MinCount is the smallest Count a row needs to feed the threshold statistics.
	MinCount = 50.0

	// DataRowMarker starts every data row; all other lines are headers or comments.
	DataRowMarker = "/"
)

// Record is one data row of the trend log.
type Record struct {
	Identifier    string  // path of the reduced image
	ExposureTime  float64 // seconds; may be 0.00 for unknown
	SkyBackground float64
	SkyNoise      float64
	FWHM          float64 // seeing, in pixels. Smaller is sharper.
	Aux13         float64
	Aux14         float64
	Ellipticity   float64
	Count         float64
	Aux17         float64

	Line int // line number within the log, 1-based
}

func (r Record)String() string {
	return fmt.Sprintf("%s[sky=%.2f noise=%.2f fwhm=%.3f ell=%.3f exp=%.2f]",
		r.Name(), r.SkyBackground, r.SkyNoise, r.FWHM, r.Ellipticity, r.ExposureTime)
}

// Valid reports whether every measurement the statistics rely on is present,
// and enough objects were measured for them to mean something.
func (r Record)Valid() bool {
	return r.FWHM != Missing &&
		r.Aux13 != Missing &&
		r.Aux14 != Missing &&
		r.Ellipticity != Missing &&
		r.Count > MinCount &&
		r.Aux17 != Missing
}

// EffectiveExposure is the exposure time to divide by; an unknown (zero)
// exposure counts as one second. The record itself is not changed.
func (r Record)EffectiveExposure() float64 {
	if r.ExposureTime == 0.0 {
		return 1.0
	}
	return r.ExposureTime
}

// Name is the image filename without its directory.
func (r Record)Name() string {
	return filepath.Base(r.Identifier)
}

// Date is the acquisition date encoded in the filename: everything before the
// third hyphen, e.g. "2016-04-01-0123-e91.fits" -> "2016-04-01". A name with
// fewer hyphens is its own date.
func (r Record)Date() string {
	parts := strings.SplitN(r.Name(), "-", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, "-")
}

// Row renders r as a trend log data row. Columns the log carries but this
// package does not read are written as zero.
func (r Record)Row() string {
	cols := make([]string, NumColumns)
	for i := range cols {
		cols[i] = "0"
	}

	cols[ColIdentifier] = r.Identifier
	for col, v := range map[int]float64{
		ColExposureTime:  r.ExposureTime,
		ColSkyBackground: r.SkyBackground,
		ColSkyNoise:      r.SkyNoise,
		ColFWHM:          r.FWHM,
		ColAux13:         r.Aux13,
		ColAux14:         r.Aux14,
		ColEllipticity:   r.Ellipticity,
		ColCount:         r.Count,
		ColAux17:         r.Aux17,
	} {
		cols[col] = strconv.FormatFloat(v, 'f', -1, 64)
	}

	return strings.Join(cols, " ")
}
