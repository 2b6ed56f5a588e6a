package view

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackdash/src/dataset"
	"trackdash/src/models"
)

// zeroRand always picks the first candidate, so samples are the leading rows.
type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func newDataset(t *testing.T, counts map[string]int, order []string) *dataset.Dataset {
	t.Helper()
	var b strings.Builder
	b.WriteString("id,track_name,artists,album_name,popularity,energy,danceability,track_genre\n")
	row := 0
	for _, genre := range order {
		for i := 0; i < counts[genre]; i++ {
			fmt.Fprintf(&b, "%d,song%d,artist%d,album%d,%d,%.2f,%.2f,%s\n",
				row, row, row, row, row%100, float64(row)/100, 1-float64(row)/100, genre)
			row++
		}
	}
	ds, err := dataset.Parse(strings.NewReader(b.String()), dataset.Schema{
		CategoryColumn: "track_genre",
		NumericColumns: []string{"energy", "danceability"},
	})
	require.NoError(t, err)
	return ds
}

func countByCategory(rows []models.PreviewRow) map[string]int {
	out := map[string]int{}
	for _, r := range rows {
		out[r.Category]++
	}
	return out
}

func TestPreviewEmptySelection(t *testing.T) {
	ds := newDataset(t, map[string]int{"pop": 3}, []string{"pop"})
	p := NewPreviewer(ds, zeroRand{}, 5, 5)

	assert.True(t, p.Preview(nil).Empty())
	assert.True(t, p.Preview([]string{}).Empty())
}

func TestPreviewScenarioA(t *testing.T) {
	ds := newDataset(t, map[string]int{"pop": 3, "rock": 2}, []string{"pop", "rock"})
	p := NewPreviewer(ds, rand.New(rand.NewPCG(1, 2)), 5, 5)

	got := p.Preview([]string{"pop", "rock"})
	assert.Len(t, got.Rows, 5)
	counts := countByCategory(got.Rows)
	assert.Equal(t, 2, counts["rock"])
	assert.Equal(t, 3, counts["pop"])

	// selection order drives output order
	assert.Equal(t, "pop", got.Rows[0].Category)
	assert.Equal(t, "rock", got.Rows[len(got.Rows)-1].Category)
}

func TestPreviewCapsPerCategory(t *testing.T) {
	counts := map[string]int{"pop": 12, "rock": 2, "jazz": 7}
	order := []string{"pop", "rock", "jazz"}
	ds := newDataset(t, counts, order)
	p := NewPreviewer(ds, rand.New(rand.NewPCG(7, 7)), 5, 5)

	for i := 0; i < 20; i++ {
		got := p.Preview([]string{"jazz", "pop", "rock"})
		byCat := countByCategory(got.Rows)
		total := 0
		for _, c := range order {
			assert.Equal(t, min(5, counts[c]), byCat[c], "category %s", c)
			total += min(5, counts[c])
		}
		assert.Len(t, got.Rows, total)

		seen := map[int]bool{}
		for _, r := range got.Rows {
			assert.False(t, seen[r.Row], "row %d sampled twice", r.Row)
			seen[r.Row] = true
		}
	}
}

func TestPreviewProjectsLeadingColumns(t *testing.T) {
	ds := newDataset(t, map[string]int{"pop": 2}, []string{"pop"})
	p := NewPreviewer(ds, zeroRand{}, 5, 5)

	got := p.Preview([]string{"pop"})
	assert.Equal(t, []string{"id", "track_name", "artists", "album_name", "popularity"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, []string{"0", "song0", "artist0", "album0", "0"}, got.Rows[0].Values)
}

func TestPreviewDeterministicWithInjectedRand(t *testing.T) {
	ds := newDataset(t, map[string]int{"pop": 8}, []string{"pop"})
	p := NewPreviewer(ds, zeroRand{}, 5, 5)

	var rows []int
	for _, r := range p.Preview([]string{"pop"}).Rows {
		rows = append(rows, r.Row)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, rows)

	a := NewPreviewer(ds, rand.New(rand.NewPCG(42, 0)), 5, 5).Preview([]string{"pop"})
	b := NewPreviewer(ds, rand.New(rand.NewPCG(42, 0)), 5, 5).Preview([]string{"pop"})
	assert.Equal(t, a, b)
}

func TestPreviewIsNotIdempotent(t *testing.T) {
	ds := newDataset(t, map[string]int{"pop": 40}, []string{"pop"})
	p := NewPreviewer(ds, rand.New(rand.NewPCG(3, 9)), 5, 5)

	first := p.Preview([]string{"pop"})
	differs := false
	for i := 0; i < 10 && !differs; i++ {
		differs = fmt.Sprint(p.Preview([]string{"pop"}).Rows) != fmt.Sprint(first.Rows)
	}
	assert.True(t, differs, "repeated previews should resample")
}

func TestPreviewUnknownAndDuplicateCategories(t *testing.T) {
	ds := newDataset(t, map[string]int{"pop": 3}, []string{"pop"})
	p := NewPreviewer(ds, zeroRand{}, 5, 5)

	assert.True(t, p.Preview([]string{"acoustic"}).Empty())
	assert.Len(t, p.Preview([]string{"pop", "pop", "acoustic"}).Rows, 3)
}

func TestScatterEmptySelection(t *testing.T) {
	ds := newDataset(t, map[string]int{"pop": 3}, []string{"pop"})
	data, err := Scatter(ds, "energy", "danceability", nil)
	require.NoError(t, err)
	assert.True(t, data.Empty())
	assert.Equal(t, models.PlotData{}, data)
}

func TestScatterScenarioB(t *testing.T) {
	ds := newDataset(t, map[string]int{"pop": 3, "rock": 2}, []string{"rock", "pop"})
	data, err := Scatter(ds, "energy", "danceability", []string{"pop"})
	require.NoError(t, err)

	want := []models.Point{
		{Row: 2, X: 0.02, Y: 0.98, Category: "pop"},
		{Row: 3, X: 0.03, Y: 0.97, Category: "pop"},
		{Row: 4, X: 0.04, Y: 0.96, Category: "pop"},
	}
	assert.Equal(t, want, data.Points)
	assert.Equal(t, "energy", data.XColumn)
	assert.Equal(t, "danceability", data.YColumn)
}

func TestScatterReturnsExactlyMatchingRows(t *testing.T) {
	counts := map[string]int{"pop": 4, "rock": 6, "jazz": 3}
	ds := newDataset(t, counts, []string{"pop", "rock", "jazz"})
	selected := []string{"jazz", "pop"}

	data, err := Scatter(ds, "danceability", "energy", selected)
	require.NoError(t, err)

	want := map[int]bool{}
	for _, tr := range ds.Tracks() {
		if tr.Category == "jazz" || tr.Category == "pop" {
			want[tr.Row] = true
		}
	}
	got := map[int]bool{}
	for _, p := range data.Points {
		got[p.Row] = true
	}
	assert.Equal(t, want, got)
	assert.Len(t, data.Points, 7)

	again, err := Scatter(ds, "danceability", "energy", selected)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestScatterRejectsNonNumericAxis(t *testing.T) {
	ds := newDataset(t, map[string]int{"pop": 3}, []string{"pop"})

	_, err := Scatter(ds, "track_name", "energy", []string{"pop"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "x axis", ve.Field)

	_, err = Scatter(ds, "energy", "bogus", nil)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "y axis", ve.Field)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, Unique([]string{"b", "a", "b"}))
	assert.Nil(t, Unique(nil))
}
