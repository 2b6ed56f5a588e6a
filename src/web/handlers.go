package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"

	"trackdash/src/binding"
	"trackdash/src/debug"
	"trackdash/src/models"
	"trackdash/src/plot"
	"trackdash/src/view"
)

type tableView struct {
	State   string
	Rows    int
	Columns []string
	Pages   [][]models.PreviewRow
	OOB     bool
}

type plotView struct {
	State  string
	Points int
	SVG    template.HTML
	OOB    bool
}

type pageView struct {
	Title          string
	Description    string
	Categories     []string
	NumericColumns []string
	TableGenres    []string
	PlotGenres     []string
	X              string
	Y              string
	Table          *tableView
	Plot           *plotView
}

type updatesView struct {
	Table   *tableView
	Plot    *plotView
	Message string
}

// defaultInputs is the state every new page starts from. Default plot genres
// missing from the data are dropped rather than matched loosely.
func (s *Server) defaultInputs() binding.Inputs {
	var genres []string
	for _, g := range s.view.DefaultPlotGenres {
		if slices.Contains(s.categories, g) {
			genres = append(genres, g)
		} else {
			slog.Debug("default plot genre not in dataset", "genre", g)
		}
	}
	return binding.Inputs{
		PlotGenres: genres,
		X:          s.view.DefaultX,
		Y:          s.view.DefaultY,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	in := s.defaultInputs()
	page := pageView{
		Title:          s.view.Title,
		Description:    s.view.Description,
		Categories:     s.categories,
		NumericColumns: s.ds.NumericColumns(),
		TableGenres:    in.TableGenres,
		PlotGenres:     in.PlotGenres,
		X:              in.X,
		Y:              in.Y,
	}
	for _, u := range s.dispatcher.Initial(in) {
		if u.Err != nil {
			slog.Error("initial render failed", "output", u.Output, debug.RuntimeAttr(u.Err.Error()))
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
			return
		}
		if err := s.apply(u, false, &page.Table, &page.Plot); err != nil {
			slog.Error("initial render failed", "output", u.Output, debug.RuntimeAttr(err.Error()))
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
			return
		}
	}
	s.render(w, "page", page)
}

// handleUpdate recomputes the outputs that depend on the changed widget and
// answers with out-of-band fragments for each of them.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	trigger := r.PostForm.Get("trigger")
	if trigger == "" {
		trigger = r.Header.Get("HX-Trigger")
	}
	changed := binding.Widget(trigger)
	if !s.dispatcher.IsTrigger(changed) {
		http.Error(w, fmt.Sprintf("unknown input %q", trigger), http.StatusBadRequest)
		return
	}

	in := binding.Inputs{
		TableGenres: r.PostForm[string(binding.TableGenres)],
		PlotGenres:  r.PostForm[string(binding.PlotGenres)],
		X:           r.PostForm.Get(string(binding.XAxis)),
		Y:           r.PostForm.Get(string(binding.YAxis)),
	}

	var out updatesView
	for _, u := range s.dispatcher.Dispatch(changed, in) {
		var ve *view.ValidationError
		if errors.As(u.Err, &ve) {
			slog.Info("rejected input", "input", changed, "reason", ve.Error())
			out.Message = "Cannot plot: " + ve.Error()
			continue
		}
		if u.Err != nil {
			slog.Error("update failed", "output", u.Output, debug.RuntimeAttr(u.Err.Error()))
			http.Error(w, "update failed", http.StatusInternalServerError)
			return
		}
		if err := s.apply(u, true, &out.Table, &out.Plot); err != nil {
			slog.Error("update failed", "output", u.Output, debug.RuntimeAttr(err.Error()))
			http.Error(w, "update failed", http.StatusInternalServerError)
			return
		}
	}
	s.render(w, "updates", out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ok %d\n", s.ds.Len())
}

// apply turns an update into the view of its output widget.
func (s *Server) apply(u binding.Update, oob bool, table **tableView, plotOut **plotView) error {
	switch v := u.Value.(type) {
	case models.Preview:
		*table = &tableView{
			State:   u.State.String(),
			Rows:    len(v.Rows),
			Columns: v.Columns,
			Pages:   v.Pages(s.view.PageSize),
			OOB:     oob,
		}
	case models.PlotData:
		var buf bytes.Buffer
		if err := plot.RenderSVG(&buf, v, plot.Options{Width: s.view.ChartWidth, Height: s.view.ChartHeight}); err != nil {
			return err
		}
		*plotOut = &plotView{
			State:  u.State.String(),
			Points: len(v.Points),
			SVG:    template.HTML(buf.String()),
			OOB:    oob,
		}
	default:
		return fmt.Errorf("no widget renders %T for %s", u.Value, u.Output)
	}
	return nil
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("template failed", "template", name, debug.RuntimeAttr(err.Error()))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("response write failed", "template", name, "context", err.Error())
	}
}
