package trendlog

import(
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseError reports a trend log that could not be opened, read, or typed.
type ParseError struct {
	File   string
	Line   int // 0 when the failure is not tied to a line
	Column int // -1 when the failure is not tied to a column
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line == 0:
		return fmt.Sprintf("trendlog %s: %v", e.File, e.Err)
	case e.Column < 0:
		return fmt.Sprintf("trendlog %s:%d: %v", e.File, e.Line, e.Err)
	default:
		return fmt.Sprintf("trendlog %s:%d col %d: %v", e.File, e.Line, e.Column, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Log is the in-memory form of a trend log: its data rows in file order.
type Log struct {
	File    string
	Records []Record
}

// Valid returns the records that pass Record.Valid, in file order.
func (l Log)Valid() []Record {
	out := []Record{}
	for _, r := range l.Records {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// Load reads and types the whole trend log at filename.
func Load(filename string) (Log, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Log{}, &ParseError{File: filename, Column: -1, Err: err}
	}
	defer f.Close()

	return Parse(f, filename)
}

// Parse types every data row of r. name is only used in errors.
func Parse(r io.Reader, name string) (Log, error) {
	l := Log{File: name, Records: []Record{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !strings.HasPrefix(line, DataRowMarker) {
			continue
		}

		rec, err := parseRow(strings.Fields(line))
		if err != nil {
			err.File = name
			err.Line = lineNum
			return Log{}, err
		}
		rec.Line = lineNum
		l.Records = append(l.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return Log{}, &ParseError{File: name, Line: lineNum, Column: -1, Err: err}
	}

	return l, nil
}

func parseRow(cols []string) (Record, *ParseError) {
	if len(cols) < NumColumns {
		return Record{}, &ParseError{
			Column: -1,
			Err:    fmt.Errorf("have %d columns, need at least %d", len(cols), NumColumns),
		}
	}

	rec := Record{Identifier: cols[ColIdentifier]}
	fields := []struct {
		col int
		dst *float64
	}{
		{ColExposureTime, &rec.ExposureTime},
		{ColSkyBackground, &rec.SkyBackground},
		{ColSkyNoise, &rec.SkyNoise},
		{ColFWHM, &rec.FWHM},
		{ColAux13, &rec.Aux13},
		{ColAux14, &rec.Aux14},
		{ColEllipticity, &rec.Ellipticity},
		{ColCount, &rec.Count},
		{ColAux17, &rec.Aux17},
	}

	for _, f := range fields {
		v, err := strconv.ParseFloat(cols[f.col], 64)
		if err != nil {
			return Record{}, &ParseError{Column: f.col, Err: fmt.Errorf("not a number %q", cols[f.col])}
		}
		*f.dst = v
	}

	return rec, nil
}
