package binding

import (
	"slices"

	"trackdash/src/dataset"
	"trackdash/src/view"
)

type Widget string

// Widget ids as they appear in the page.
const (
	TableGenres Widget = "filter_dropdown"
	PlotGenres  Widget = "group-by-dropdown"
	YAxis       Widget = "yaxis-column"
	XAxis       Widget = "xaxis-column"

	TableOutput Widget = "table-container"
	PlotOutput  Widget = "indicator-graphic"
)

// Inputs is the value of every input widget at the time of one change.
type Inputs struct {
	TableGenres []string
	PlotGenres  []string
	X           string
	Y           string
}

type State int

const (
	Empty State = iota
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// Result is what a handler hands to its output widget.
type Result interface {
	Empty() bool
}

type Handler func(Inputs) (Result, error)

type Rule struct {
	Output   Widget
	Triggers []Widget
	Handler  Handler
}

type Update struct {
	Output Widget
	State  State
	Value  Result
	Err    error // set when the change was rejected; the output keeps its previous value
}

// Rules is the page's dependency table: the preview follows the first genre
// dropdown only, the plot follows both axis groups and the second dropdown.
func Rules(ds *dataset.Dataset, previewer *view.Previewer) []Rule {
	return []Rule{
		{
			Output:   TableOutput,
			Triggers: []Widget{TableGenres},
			Handler: func(in Inputs) (Result, error) {
				return previewer.Preview(in.TableGenres), nil
			},
		},
		{
			Output:   PlotOutput,
			Triggers: []Widget{YAxis, XAxis, PlotGenres},
			Handler: func(in Inputs) (Result, error) {
				return view.Scatter(ds, in.X, in.Y, in.PlotGenres)
			},
		},
	}
}

type Dispatcher struct {
	rules []Rule
}

func NewDispatcher(rules []Rule) *Dispatcher {
	return &Dispatcher{rules: rules}
}

// Dispatch runs the rules that depend on changed. Unknown widgets produce no updates.
func (d *Dispatcher) Dispatch(changed Widget, in Inputs) []Update {
	var updates []Update
	for _, r := range d.rules {
		if slices.Contains(r.Triggers, changed) {
			updates = append(updates, run(r, in))
		}
	}
	return updates
}

// Initial runs every rule once, for the first render of the page.
func (d *Dispatcher) Initial(in Inputs) []Update {
	updates := make([]Update, 0, len(d.rules))
	for _, r := range d.rules {
		updates = append(updates, run(r, in))
	}
	return updates
}

func (d *Dispatcher) IsTrigger(w Widget) bool {
	for _, r := range d.rules {
		if slices.Contains(r.Triggers, w) {
			return true
		}
	}
	return false
}

func run(r Rule, in Inputs) Update {
	res, err := r.Handler(in)
	if err != nil {
		return Update{Output: r.Output, Err: err}
	}
	u := Update{Output: r.Output, Value: res, State: Populated}
	if res == nil || res.Empty() {
		u.State = Empty
	}
	return u
}
