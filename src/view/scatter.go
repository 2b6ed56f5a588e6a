package view

import (
	"fmt"

	"trackdash/src/dataset"
	"trackdash/src/models"
)

// ValidationError rejects an axis that is not one of the numeric columns.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q is not a numeric attribute", e.Field, e.Value)
}

// Scatter returns every row whose category is selected as an (x, y) point, in dataset order.
func Scatter(ds *dataset.Dataset, x, y string, selected []string) (models.PlotData, error) {
	if !ds.IsNumeric(x) {
		return models.PlotData{}, &ValidationError{Field: "x axis", Value: x}
	}
	if !ds.IsNumeric(y) {
		return models.PlotData{}, &ValidationError{Field: "y axis", Value: y}
	}
	if len(selected) == 0 {
		return models.PlotData{}, nil
	}

	want := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		want[c] = struct{}{}
	}
	data := models.PlotData{XColumn: x, YColumn: y}
	for _, t := range ds.Tracks() {
		if _, ok := want[t.Category]; !ok {
			continue
		}
		xv, _ := ds.Number(t, x)
		yv, _ := ds.Number(t, y)
		data.Points = append(data.Points, models.Point{Row: t.Row, X: xv, Y: yv, Category: t.Category})
	}
	return data, nil
}
