// Package trendplot draws a night's seeing as a PNG, so a human can see at a
// glance why the reference frames were picked.
package trendplot

import(
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/refframes/pkg/refselect"
	"github.com/abworrall/refframes/pkg/trendlog"
)

const(
	DefaultWidth  = 1200
	DefaultHeight = 600

	margin = 60.0
)

var(
	background = color.Black
	axisColor  = color.Gray{Y: 0xb0}
	rejected   = color.Gray{Y: 0x60}
	selected   = color.White
)

// Plot lays out FWHM against row number. Candidate frames are coloured by
// acquisition date, rejected frames are grey, and the reference frames are
// ringed in white. The FWHM threshold is drawn as a dashed line.
type Plot struct {
	Title         string
	Width, Height int
}

func New(title string) Plot {
	return Plot{Title: title, Width: DefaultWidth, Height: DefaultHeight}
}

// Render draws every row of the selection's trend log, in file order.
func (p Plot)Render(sel refselect.Selection) *gg.Context {
	records := sel.Records
	dc := gg.NewContext(p.Width, p.Height)
	dc.SetColor(background)
	dc.Clear()

	lo, hi := fwhmRange(records, sel.Thresholds.FWHM)
	x := func(i int) float64 {
		if len(records) < 2 {
			return float64(p.Width) / 2
		}
		return margin + float64(i) * (float64(p.Width) - 2*margin) / float64(len(records)-1)
	}
	y := func(fwhm float64) float64 {
		return float64(p.Height) - margin - (fwhm - lo) / (hi - lo) * (float64(p.Height) - 2*margin)
	}

	// Axes
	dc.SetColor(axisColor)
	dc.SetLineWidth(1)
	dc.DrawLine(margin, margin, margin, float64(p.Height)-margin)
	dc.DrawLine(margin, float64(p.Height)-margin, float64(p.Width)-margin, float64(p.Height)-margin)
	dc.Stroke()
	dc.DrawStringAnchored(fmt.Sprintf("%.2f", hi), margin-6, margin, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.2f", lo), margin-6, float64(p.Height)-margin, 1, 0.5)
	dc.DrawStringAnchored("FWHM", margin, margin/2, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%d frames", len(records)), float64(p.Width)-margin, float64(p.Height)-margin/2, 1, 0.5)

	if sel.Thresholds.FWHM > 0 {
		dc.SetDash(6, 4)
		dc.DrawLine(margin, y(sel.Thresholds.FWHM), float64(p.Width)-margin, y(sel.Thresholds.FWHM))
		dc.Stroke()
		dc.SetDash()
	}

	palette := datePalette(sel.Groups)
	isCandidate := lineSet(sel.Candidates)
	isSelected := lineSet(sel.Selected)

	for i, r := range records {
		if r.FWHM == trendlog.Missing {
			continue
		}
		px, py := x(i), y(r.FWHM)

		if c, ok := palette[r.Date()]; ok && isCandidate[r.Line] {
			dc.SetColor(c)
		} else {
			dc.SetColor(rejected)
		}
		dc.DrawCircle(px, py, 3)
		dc.Fill()

		if isSelected[r.Line] {
			dc.SetColor(selected)
			dc.SetLineWidth(1.5)
			dc.DrawCircle(px, py, 7)
			dc.Stroke()
		}
	}

	dc.SetColor(selected)
	dc.DrawString(p.Title, margin, margin/2 + 16)
	dc.DrawStringAnchored(fmt.Sprintf("%s %s", sel.Case, sel.Date), float64(p.Width)-margin, margin/2, 1, 0.5)

	return dc
}

// WritePNG renders and saves the plot.
func (p Plot)WritePNG(filename string, sel refselect.Selection) error {
	if err := p.Render(sel).SavePNG(filename); err != nil {
		return fmt.Errorf("write plot '%s': %v", filename, err)
	}
	return nil
}

// fwhmRange is the vertical extent of the plot, padded so no point sits on an edge.
func fwhmRange(records []trendlog.Record, threshold float64) (float64, float64) {
	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for _, r := range records {
		if r.FWHM == trendlog.Missing { continue }
		if r.FWHM < lo { lo = r.FWHM }
		if r.FWHM > hi { hi = r.FWHM }
	}
	if threshold > 0 {
		if threshold < lo { lo = threshold }
		if threshold > hi { hi = threshold }
	}
	if lo > hi {
		return 0, 1
	}

	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return lo - pad, hi + pad
}

// datePalette spreads the candidate dates evenly around the hue circle.
func datePalette(groups []refselect.DateGroup) map[string]color.Color {
	out := map[string]color.Color{}
	for i, g := range groups {
		hue := 360.0 * float64(i) / float64(len(groups))
		out[g.Date] = colorful.Hsv(hue, 0.7, 0.95).Clamped()
	}
	return out
}

func lineSet(records []trendlog.Record) map[int]bool {
	out := map[int]bool{}
	for _, r := range records {
		out[r.Line] = true
	}
	return out
}
