package http

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"clubdir/internal/core"
)

// exportColumns is the column order for CSV downloads. It mirrors the
// dataset schema so an exported file can be re-imported unchanged.
var exportColumns = []string{
	"Club Name", "State", "City", "Monthly Dues", "Contact Phone",
	"Website", "Address", "Prestige Level", "Membership Type",
	"Initiation Fee", "Other Costs",
}

type exportRecord struct {
	Name           string  `json:"name"`
	State          string  `json:"state"`
	City           string  `json:"city"`
	MonthlyDues    float64 `json:"monthly_dues"`
	ContactPhone   string  `json:"contact_phone,omitempty"`
	Website        string  `json:"website,omitempty"`
	Address        string  `json:"address,omitempty"`
	PrestigeLevel  string  `json:"prestige_level,omitempty"`
	MembershipType string  `json:"membership_type,omitempty"`
	InitiationFee  float64 `json:"initiation_fee"`
	OtherCosts     string  `json:"other_costs,omitempty"`
	TotalMonthly   float64 `json:"total_monthly_cost"`
	AnnualCost     float64 `json:"annual_cost"`
}

// handleExportCSV streams the current filtered listing as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	f, key, descending := parseFilter(r.URL.Query())
	view, err := s.getResults(r.Context(), f, key, descending)
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export error", "error", err)
		http.Error(w, friendlyDataError(err), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="country_clubs_`+time.Now().Format("20060102")+`.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		slog.ErrorContext(r.Context(), "CSV header write failed", "error", err)
		return
	}
	for i := range view.Clubs {
		c := &view.Clubs[i]
		row := []string{
			c.Name, c.State, c.City,
			formatExportAmount(c.MonthlyDues),
			c.ContactPhone, c.Website, c.Address,
			c.PrestigeLevel, c.MembershipType,
			formatExportAmount(c.InitiationFee),
			c.OtherCosts,
		}
		if err := cw.Write(row); err != nil {
			slog.ErrorContext(r.Context(), "CSV row write failed", "error", err, "club_name", c.Name)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.ErrorContext(r.Context(), "CSV flush failed", "error", err)
	}
}

// handleExportJSON serves the current filtered listing as a JSON document.
func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	f, key, descending := parseFilter(r.URL.Query())
	view, err := s.getResults(r.Context(), f, key, descending)
	if err != nil {
		slog.ErrorContext(r.Context(), "JSON export error", "error", err)
		http.Error(w, friendlyDataError(err), http.StatusServiceUnavailable)
		return
	}

	records := make([]exportRecord, 0, len(view.Clubs))
	for i := range view.Clubs {
		c := &view.Clubs[i]
		records = append(records, exportRecord{
			Name:           c.Name,
			State:          c.State,
			City:           c.City,
			MonthlyDues:    c.MonthlyDues.Dollars(),
			ContactPhone:   c.ContactPhone,
			Website:        c.Website,
			Address:        c.Address,
			PrestigeLevel:  c.PrestigeLevel,
			MembershipType: c.MembershipType,
			InitiationFee:  c.InitiationFee.Dollars(),
			OtherCosts:     c.OtherCosts,
			TotalMonthly:   c.TotalMonthlyCost().Dollars(),
			AnnualCost:     c.AnnualCost().Dollars(),
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="country_clubs_`+time.Now().Format("20060102")+`.json"`)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Exported time.Time      `json:"exported_at"`
		Count    int            `json:"count"`
		Clubs    []exportRecord `json:"clubs"`
	}{Exported: time.Now().UTC(), Count: len(records), Clubs: records}); err != nil {
		slog.ErrorContext(r.Context(), "JSON export encode failed", "error", err)
	}
}

// formatExportAmount writes a dollar amount in the same shape the loader
// accepts, so an exported file can be re-imported.
func formatExportAmount(m core.Money) string {
	return m.String()
}
