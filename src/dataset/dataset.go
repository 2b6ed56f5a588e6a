package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"trackdash/src/models"
)

// LoadError reports a tracks file that is missing or not usable as a dataset.
type LoadError struct {
	Path string
	Line int // 0 when the problem is not tied to a row
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %s", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type Schema struct {
	CategoryColumn string
	NumericColumns []string
}

// Dataset is read-only once Parse returns and safe to share between goroutines.
type Dataset struct {
	columns  []string
	index    map[string]int
	category string
	numeric  []string
	numIndex map[string]int // numeric column -> position in Track.Numbers
	tracks   []models.Track
}

func Load(path string, schema Schema) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	ds, err := Parse(f, schema)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return ds, nil
}

func Parse(r io.Reader, schema Schema) (*Dataset, error) {
	br := bufio.NewReader(r)
	// spreadsheet exports often lead with a UTF-8 byte order mark
	if c, _, err := br.ReadRune(); err == nil && c != '\ufeff' {
		br.UnreadRune()
	}
	reader := csv.NewReader(br)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Err: errors.New("no header row")}
	}
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	ds := &Dataset{
		columns:  slices.Clone(header),
		index:    make(map[string]int, len(header)),
		category: schema.CategoryColumn,
		numeric:  slices.Clone(schema.NumericColumns),
		numIndex: make(map[string]int, len(schema.NumericColumns)),
	}
	for i, name := range header {
		if _, dup := ds.index[name]; !dup {
			ds.index[name] = i
		}
	}

	catPos, ok := ds.index[schema.CategoryColumn]
	if !ok {
		return nil, &LoadError{Err: fmt.Errorf("category column %q not found", schema.CategoryColumn)}
	}
	numPos := make([]int, len(ds.numeric))
	var missing []string
	for i, name := range ds.numeric {
		pos, ok := ds.index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		numPos[i] = pos
		ds.numIndex[name] = i
	}
	if len(missing) > 0 {
		return nil, &LoadError{Err: fmt.Errorf("numeric columns not found: %s", strings.Join(missing, ", "))}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var line int
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &LoadError{Line: line, Err: err}
		}
		line, _ := reader.FieldPos(0)

		track := models.Track{
			Row:      len(ds.tracks),
			Category: record[catPos],
			Fields:   record,
			Numbers:  make([]float64, len(numPos)),
		}
		for i, pos := range numPos {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[pos]), 64)
			if err != nil {
				return nil, &LoadError{Line: line, Err: fmt.Errorf("column %s: %w", ds.numeric[i], err)}
			}
			track.Numbers[i] = v
		}
		ds.tracks = append(ds.tracks, track)
	}
	return ds, nil
}

func (ds *Dataset) Columns() []string { return slices.Clone(ds.columns) }

func (ds *Dataset) CategoryColumn() string { return ds.category }

func (ds *Dataset) NumericColumns() []string { return slices.Clone(ds.numeric) }

func (ds *Dataset) Len() int { return len(ds.tracks) }

// Track returns the i-th row. The returned slices are shared and must not be modified.
func (ds *Dataset) Track(i int) models.Track { return ds.tracks[i] }

// Tracks returns every row in file order; treat the result as read-only.
func (ds *Dataset) Tracks() []models.Track { return ds.tracks[:len(ds.tracks):len(ds.tracks)] }

func (ds *Dataset) Column(name string) (int, bool) {
	i, ok := ds.index[name]
	return i, ok
}

func (ds *Dataset) IsNumeric(name string) bool {
	_, ok := ds.numIndex[name]
	return ok
}

// Number returns the parsed value of a numeric column for t.
func (ds *Dataset) Number(t models.Track, column string) (float64, bool) {
	i, ok := ds.numIndex[column]
	if !ok {
		return 0, false
	}
	return t.Numbers[i], true
}

func (ds *Dataset) Count(category string) int {
	n := 0
	for _, t := range ds.tracks {
		if t.Category == category {
			n++
		}
	}
	return n
}
