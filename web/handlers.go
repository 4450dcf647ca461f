package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"shopping-dashboard/charts"
	"shopping-dashboard/dashboard"
	"shopping-dashboard/models"
)

// errBadRequest marks event parsing failures caused by client input.
var errBadRequest = errors.New("bad request")

// eventParser turns a parsed form into a dashboard event.
type eventParser func(d *dashboard.Dashboard, s *dashboard.Session, r *http.Request) (dashboard.Event, error)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	e, err := s.session(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	e.mu.Lock()
	frame, _ := s.dash.Update(e.session, dashboard.RefreshEvent{})
	e.mu.Unlock()

	var buf bytes.Buffer
	if err := s.page.ExecuteTemplate(&buf, "page", newPageData(frame)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	e, err := s.session(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	e.mu.Lock()
	frame, _ := s.dash.Update(e.session, dashboard.RefreshEvent{})
	e.mu.Unlock()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(frame); err != nil {
		s.logger.Error("encode frame: %v", err)
		http.Error(w, "encode frame", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	kind := charts.Kind(strings.TrimSuffix(chi.URLParam(r, "kind"), ".png"))
	if !charts.HasImage(kind) {
		http.NotFound(w, r)
		return
	}

	e, err := s.session(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	e.mu.Lock()
	frame, _ := s.dash.Update(e.session, dashboard.RefreshEvent{})
	e.mu.Unlock()

	panel := frame.Panel(kind)
	var buf bytes.Buffer
	if err := charts.RenderPNG(*panel, &buf); err != nil {
		if errors.Is(err, charts.ErrNotRenderable) || errors.Is(err, charts.ErrNothingToDraw) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Error("render %s: %v", kind, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// handleEvent applies one posted event and answers with either a datastar
// patch of the dashboard or a redirect back to the page.
func (s *Server) handleEvent(parse eventParser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := s.session(w, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		e.mu.Lock()
		ev, err := parse(s.dash, e.session, r)
		if err != nil {
			e.mu.Unlock()
			switch {
			case errors.Is(err, models.ErrUnknownDimension):
				http.Error(w, err.Error(), http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}
		frame, changed := s.dash.Update(e.session, ev)
		e.mu.Unlock()

		s.logger.Debug("%s %s changed=%t", r.Method, r.URL.Path, changed)
		s.respond(w, r, frame)
	}
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, frame dashboard.Frame) {
	if r.Header.Get("Datastar-Request") != "true" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var buf bytes.Buffer
	err := s.page.ExecuteTemplate(&buf, "dashboard", newPageData(frame))

	sse := datastar.NewSSE(w, r)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElements(buf.String()); err != nil {
		s.logger.Warn("patch dashboard: %v", err)
	}
}

func reconcileEvent(d *dashboard.Dashboard, s *dashboard.Session, r *http.Request) (dashboard.Event, error) {
	dim, err := models.ParseDimension(chi.URLParam(r, "dimension"))
	if err != nil {
		return nil, err
	}
	return dashboard.ReconcileEvent{Dimension: dim, Widgets: d.Widgets(s, dim, r.Form["label"])}, nil
}

func clearEvent(_ *dashboard.Dashboard, _ *dashboard.Session, r *http.Request) (dashboard.Event, error) {
	dim, err := models.ParseDimension(chi.URLParam(r, "dimension"))
	if err != nil {
		return nil, err
	}
	return dashboard.ClearEvent{Dimension: dim}, nil
}

func sidebarEvent(d *dashboard.Dashboard, _ *dashboard.Session, r *http.Request) (dashboard.Event, error) {
	defaults := d.Defaults()
	f := models.SidebarFilters{
		Genders:    nonEmpty(r.Form["gender"]),
		Seasons:    nonEmpty(r.Form["season"]),
		Categories: nonEmpty(r.Form["category"]),
	}

	var err error
	if f.Age, err = formRange(r, "age", defaults.Age); err != nil {
		return nil, err
	}
	if f.PurchaseAmount, err = formRange(r, "amount", defaults.PurchaseAmount); err != nil {
		return nil, err
	}
	return dashboard.SidebarEvent{Filters: f}, nil
}

func resetEvent(*dashboard.Dashboard, *dashboard.Session, *http.Request) (dashboard.Event, error) {
	return dashboard.ResetEvent{}, nil
}

// formRange reads name_min and name_max. Missing bounds fall back to def.
func formRange(r *http.Request, name string, def models.NumericRange) (models.NumericRange, error) {
	lo, hi := def.Min, def.Max
	for _, b := range []struct {
		field string
		dst   *float64
	}{{name + "_min", &lo}, {name + "_max", &hi}} {
		raw := strings.TrimSpace(r.Form.Get(b.field))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return models.NumericRange{}, fmt.Errorf("%s: %q is not a finite number: %w", b.field, raw, errBadRequest)
		}
		*b.dst = v
	}
	if !def.Set && r.Form.Get(name+"_min") == "" && r.Form.Get(name+"_max") == "" {
		return models.NumericRange{}, nil
	}
	return models.NewRange(lo, hi), nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
