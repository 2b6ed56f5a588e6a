package models

// for structs used across the project

type Track struct {
	Row      int       // position in the source file, 0-based, header excluded
	Category string    // value of the category column (genre)
	Fields   []string  // raw cell values in schema order
	Numbers  []float64 // parsed numeric attributes, in the dataset's numeric column order
}

type PreviewRow struct {
	Row      int
	Category string
	Values   []string // projected cells, aligned with Preview.Columns
}

type Preview struct {
	Columns []string
	Rows    []PreviewRow
}

func (p Preview) Empty() bool {
	return len(p.Rows) == 0
}

// Pages splits the rows into consecutive pages of at most size rows.
func (p Preview) Pages(size int) [][]PreviewRow {
	if size <= 0 || len(p.Rows) == 0 {
		return nil
	}
	var pages [][]PreviewRow
	for start := 0; start < len(p.Rows); start += size {
		end := min(start+size, len(p.Rows))
		pages = append(pages, p.Rows[start:end])
	}
	return pages
}

type Point struct {
	Row      int
	X        float64
	Y        float64
	Category string
}

type Series struct {
	Category string
	Points   []Point
}

type PlotData struct {
	XColumn string
	YColumn string
	Points  []Point
}

func (d PlotData) Empty() bool {
	return len(d.Points) == 0
}

// Series groups points by category, categories in first-seen order.
func (d PlotData) Series() []Series {
	var out []Series
	index := map[string]int{}
	for _, p := range d.Points {
		i, ok := index[p.Category]
		if !ok {
			i = len(out)
			index[p.Category] = i
			out = append(out, Series{Category: p.Category})
		}
		out[i].Points = append(out[i].Points, p)
	}
	return out
}
