package view

import (
	"slices"
	"sync"

	"trackdash/src/dataset"
	"trackdash/src/models"
)

// Rand is the randomness a Previewer draws from; *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Previewer builds the sampled table preview. Samples differ between calls
// with the same selection; only a seeded Rand makes them repeatable.
type Previewer struct {
	ds          *dataset.Dataset
	mu          sync.Mutex // guards rnd, shared by concurrent requests
	rnd         Rand
	perCategory int
	columns     int
}

func NewPreviewer(ds *dataset.Dataset, rnd Rand, perCategory, columns int) *Previewer {
	return &Previewer{
		ds:          ds,
		rnd:         rnd,
		perCategory: perCategory,
		columns:     min(columns, len(ds.Columns())),
	}
}

// Preview samples up to perCategory rows for each selected category, in selection order.
func (p *Previewer) Preview(selected []string) models.Preview {
	preview := models.Preview{Columns: p.ds.Columns()[:p.columns]}
	selected = Unique(selected)
	if len(selected) == 0 {
		return preview
	}

	byCategory := make(map[string][]int, len(selected))
	for _, c := range selected {
		byCategory[c] = nil
	}
	for i, t := range p.ds.Tracks() {
		if rows, ok := byCategory[t.Category]; ok {
			byCategory[t.Category] = append(rows, i)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range selected {
		for _, i := range p.sample(byCategory[c]) {
			t := p.ds.Track(i)
			preview.Rows = append(preview.Rows, models.PreviewRow{
				Row:      t.Row,
				Category: t.Category,
				Values:   slices.Clone(t.Fields[:p.columns]),
			})
		}
	}
	return preview
}

// sample picks up to perCategory of rows uniformly without replacement
// (partial Fisher-Yates) and returns them in dataset order.
func (p *Previewer) sample(rows []int) []int {
	if len(rows) <= p.perCategory {
		return rows
	}
	for i := 0; i < p.perCategory; i++ {
		j := i + p.rnd.IntN(len(rows)-i)
		rows[i], rows[j] = rows[j], rows[i]
	}
	picked := rows[:p.perCategory]
	slices.Sort(picked)
	return picked
}

// Unique drops repeated values, keeping the first occurrence.
func Unique(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
