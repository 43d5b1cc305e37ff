package refselect

import(
	"sort"

	"github.com/abworrall/refframes/pkg/emath"
	"github.com/abworrall/refframes/pkg/trendlog"
)

// Case says which rule picked the reference frames.
type Case int

const(
	CaseNone           Case = iota // nothing was selected, e.g. the reflist already existed
	CaseSingleNight                // exactly one date has several candidates; use that date
	CaseSharpestNight              // several dates have several candidates; use the lowest mean FWHM
	CaseSharpestFrames             // no date has several candidates; use the global FWHM minimum
)

func (c Case)String() string {
	switch c {
	case CaseSingleNight:    return "single-night"
	case CaseSharpestNight:  return "sharpest-night"
	case CaseSharpestFrames: return "sharpest-frames"
	default:                 return "none"
	}
}

// Choose applies exactly one of the three selection rules to the grouped
// candidates. It returns the rule used, the date it settled on (empty for
// CaseSharpestFrames), and the frames before any budget is applied.
func Choose(groups []DateGroup) (Case, string, []trendlog.Record) {
	multi := []DateGroup{}
	for _, g := range groups {
		if g.Len() > 1 {
			multi = append(multi, g)
		}
	}

	switch len(multi) {
	case 0:
		return CaseSharpestFrames, "", sharpestFrames(groups)

	case 1:
		return CaseSingleNight, multi[0].Date, clone(multi[0].Records)

	default:
		best := multi[0]
		bestMean := best.MeanFWHM()
		for _, g := range multi[1:] {
			mean := g.MeanFWHM()
			if mean < bestMean || (mean == bestMean && g.Date < best.Date) {
				best, bestMean = g, mean
			}
		}
		return CaseSharpestNight, best.Date, clone(best.Records)
	}
}

// sharpestFrames returns every candidate tied at the lowest FWHM, in log order.
func sharpestFrames(groups []DateGroup) []trendlog.Record {
	all := []trendlog.Record{}
	for _, g := range groups {
		all = append(all, g.Records...)
	}

	fwhm := make([]float64, len(all))
	for i, r := range all {
		fwhm[i] = r.FWHM
	}
	low, err := emath.Min(fwhm)
	if err != nil {
		return []trendlog.Record{}
	}

	out := []trendlog.Record{}
	for _, r := range all {
		if r.FWHM == low {
			out = append(out, r)
		}
	}
	return out
}

// Cap trims frames to at most maxFrames, keeping the sharpest. Frames within
// budget are returned in their given order; otherwise they are ordered by FWHM,
// ties staying in their given order. CaseSharpestFrames is never trimmed.
func Cap(c Case, frames []trendlog.Record, maxFrames int) []trendlog.Record {
	out := clone(frames)
	if c == CaseSharpestFrames || len(out) <= maxFrames {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].FWHM < out[j].FWHM })
	return out[:maxFrames]
}

func clone(in []trendlog.Record) []trendlog.Record {
	out := make([]trendlog.Record, len(in))
	copy(out, in)
	return out
}
