package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"clubdir/internal/core"
	"clubdir/internal/dataset"
)

// rowView is one rendered table row.
type rowView struct {
	Name          string
	State         string
	City          string
	Dues          string
	TotalMonthly  string
	Annual        string
	Initiation    string
	Phone         string
	Website       string
	Address       string
	Prestige      string
	Membership    string
	OtherCosts    string
}

type summaryView struct {
	Clubs       int
	AverageDues string
	States      int
	DuesRange   string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "path", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Facets   core.Facets
		DataErr  string
		Query    string
	}{Query: r.URL.RawQuery}

	provider, err := s.source.Provider(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Dataset unavailable", "error", err)
		data.DataErr = friendlyDataError(err)
	} else if facets, err := provider.Facets(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Facets error", "error", err)
		data.DataErr = friendlyDataError(err)
	} else {
		data.Facets = facets
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleResults renders the summary strip and results table partial.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	f, key, descending := parseFilter(r.URL.Query())
	view, err := s.getResults(r.Context(), f, key, descending)
	if err != nil {
		slog.ErrorContext(r.Context(), "Results error", "error", err)
		s.renderDataError(w, friendlyDataError(err))
		return
	}

	data := struct {
		Summary summaryView
		Rows    []rowView
		Query   string
	}{
		Summary: newSummaryView(view.Summary),
		Query:   r.URL.RawQuery,
	}
	for i := range view.Clubs {
		data.Rows = append(data.Rows, newRowView(&view.Clubs[i]))
	}

	if err := s.templates.ExecuteTemplate(w, "results.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "results.html")
		s.renderDataError(w, "Error rendering results")
	}
}

// handleCompare renders the side-by-side comparison partial for the clubs
// named by repeated "club" params.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	names := cleanMulti(r.URL.Query()["club"])
	if len(names) < core.MinCompareClubs {
		s.renderDataError(w, "Select at least 2 clubs to compare.")
		return
	}
	if len(names) > core.MaxCompareClubs {
		names = names[:core.MaxCompareClubs]
	}

	view, err := s.getResults(r.Context(), &core.Filter{}, core.SortByName, false)
	if err != nil {
		slog.ErrorContext(r.Context(), "Compare error", "error", err)
		s.renderDataError(w, friendlyDataError(err))
		return
	}

	var selected []core.Club
	for _, name := range names {
		for i := range view.Clubs {
			if strings.EqualFold(view.Clubs[i].Name, name) {
				selected = append(selected, view.Clubs[i])
				break
			}
		}
	}
	cmp, err := core.Compare(selected)
	if err != nil {
		s.renderDataError(w, "Select between 2 and 4 known clubs to compare.")
		return
	}

	if err := s.templates.ExecuteTemplate(w, "compare.html", cmp); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "compare.html")
		s.renderDataError(w, "Error rendering comparison")
	}
}

// handleCalculator renders the membership cost savings partial.
func (s *Server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	q := r.URL.Query()

	years := 3
	if v := strings.TrimSpace(q.Get("years")); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y >= 1 && y <= 30 {
			years = y
		}
	}
	in := core.SavingsInput{
		Current: core.CostPlan{
			MonthlyDues:   core.Money{Cents: boundOrZero(q.Get("current_dues"))},
			InitiationFee: core.Money{Cents: boundOrZero(q.Get("current_init"))},
			FoodMinimum:   core.Money{Cents: boundOrZero(q.Get("current_food"))},
		},
		Target: core.CostPlan{
			MonthlyDues:   core.Money{Cents: boundOrZero(q.Get("target_dues"))},
			InitiationFee: core.Money{Cents: boundOrZero(q.Get("target_init"))},
			FoodMinimum:   core.Money{Cents: boundOrZero(q.Get("target_food"))},
		},
		Years:             years,
		IncludeInitiation: q.Get("include_init") != "" && q.Get("include_init") != "false",
	}
	res := core.ComputeSavings(in)

	data := struct {
		Years           int
		Monthly         string
		Annual          string
		Initiation      string
		Total           string
		Increase        bool
		BreakEvenMonths string
	}{
		Years:      years,
		Monthly:    core.FormatDollars(abs(res.Monthly.Cents)),
		Annual:     core.FormatDollars(abs(res.Annual.Cents)),
		Initiation: core.FormatDollars(abs(res.Initiation.Cents)),
		Total:      core.FormatDollars(abs(res.Total.Cents)),
		Increase:   res.Total.Cents < 0,
	}
	if res.BreakEvenMonths > 0 {
		data.BreakEvenMonths = strconv.FormatFloat(res.BreakEvenMonths, 'f', 1, 64)
	}

	if err := s.templates.ExecuteTemplate(w, "calculator.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "calculator.html")
		s.renderDataError(w, "Error rendering calculator")
	}
}

func (s *Server) renderDataError(w http.ResponseWriter, msg string) {
	if s.templates != nil {
		if err := s.templates.ExecuteTemplate(w, "data_error.html", struct{ Message string }{Message: msg}); err == nil {
			return
		}
	}
	_, _ = w.Write([]byte(`<div class="data-error">` + msg + `</div>`))
}

// friendlyDataError maps loader failures onto the messages the UI shows.
// Loader errors never escape as unhandled faults.
func friendlyDataError(err error) string {
	var se *dataset.SchemaError
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		return "The club data file is missing. Add the dataset and reload the page."
	case errors.As(err, &se):
		return "The club data file is missing required columns: " + strings.Join(se.Missing, ", ") + "."
	case errors.Is(err, dataset.ErrEmptyDataset):
		return "No country club data is currently available."
	default:
		return "Club data is temporarily unavailable. Please try again."
	}
}

func newRowView(c *core.Club) rowView {
	rv := rowView{
		Name:         c.Name,
		State:        c.State,
		City:         c.City,
		Dues:         c.MonthlyDues.String(),
		TotalMonthly: c.TotalMonthlyCost().String(),
		Annual:       c.AnnualCost().String(),
		Phone:        c.ContactPhone,
		Website:      c.Website,
		Address:      c.Address,
		Prestige:     c.PrestigeLevel,
		Membership:   c.MembershipType,
		OtherCosts:   c.OtherCosts,
	}
	if c.InitiationFee.Cents > 0 {
		rv.Initiation = c.InitiationFee.String()
	} else {
		rv.Initiation = "No Fee"
	}
	return rv
}

func newSummaryView(s core.Summary) summaryView {
	sv := summaryView{
		Clubs:       s.Clubs,
		AverageDues: s.AverageDues.String(),
		States:      s.States,
	}
	if s.DuesMin.Cents == s.DuesMax.Cents {
		sv.DuesRange = s.DuesMin.String()
	} else {
		sv.DuesRange = s.DuesMin.String() + " - " + s.DuesMax.String()
	}
	return sv
}

func boundOrZero(s string) int64 {
	if v := parseBound(s); v != nil {
		return *v
	}
	return 0
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
