package refselect

import(
	"github.com/abworrall/refframes/pkg/emath"
	"github.com/abworrall/refframes/pkg/trendlog"
)

// DateGroup holds the candidates taken on one acquisition date, in log order.
type DateGroup struct {
	Date    string
	Records []trendlog.Record
}

func (g DateGroup)Len() int { return len(g.Records) }

func (g DateGroup)MeanFWHM() float64 {
	fwhm := make([]float64, len(g.Records))
	for i, r := range g.Records {
		fwhm[i] = r.FWHM
	}
	mean, _ := emath.Mean(fwhm) // groups are never empty
	return mean
}

// GroupByDate buckets records by Record.Date. Groups come back in the order
// their date was first seen.
func GroupByDate(records []trendlog.Record) []DateGroup {
	index := map[string]int{}
	groups := []DateGroup{}

	for _, r := range records {
		date := r.Date()
		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, DateGroup{Date: date})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	return groups
}
