// Package refselect picks the reference frames for a night's reduction: the
// sharpest, cleanest images in the trend log, limited to a frame budget.
package refselect

import(
	"fmt"

	"github.com/abworrall/refframes/pkg/trendlog"
)

// Selection is the outcome of running every selection stage over one trend log.
type Selection struct {
	Case       Case
	Date       string // the chosen night, for CaseSingleNight and CaseSharpestNight
	Thresholds Thresholds

	Records    []trendlog.Record // every data row of the log, in file order
	ValidRows  int               // rows the thresholds were derived from
	Candidates []trendlog.Record
	Groups     []DateGroup
	Selected   []trendlog.Record
}

func (s Selection)String() string {
	return fmt.Sprintf("Selection[%s date=%q rows=%d valid=%d candidates=%d dates=%d selected=%d]",
		s.Case, s.Date, len(s.Records), s.ValidRows, len(s.Candidates), len(s.Groups), len(s.Selected))
}

// Names returns the basenames of the selected frames, in output order.
func (s Selection)Names() []string {
	names := make([]string, len(s.Selected))
	for i, r := range s.Selected {
		names[i] = r.Name()
	}
	return names
}

// Select runs the whole selection over an already loaded log.
func Select(l trendlog.Log, maxFrames int) (Selection, error) {
	if maxFrames < 1 {
		return Selection{}, fmt.Errorf("max frames must be positive, got %d", maxFrames)
	}

	valid := l.Valid()
	s := Selection{Records: l.Records, ValidRows: len(valid)}

	th, err := ComputeThresholds(valid)
	if err != nil {
		return s, fmt.Errorf("%s: %w", l.File, err)
	}
	s.Thresholds = th
	s.Candidates = th.Candidates(l.Records)
	s.Groups = GroupByDate(s.Candidates)

	c, date, frames := Choose(s.Groups)
	s.Case = c
	s.Date = date
	s.Selected = Cap(c, frames, maxFrames)

	return s, nil
}
