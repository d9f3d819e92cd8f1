package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clubdir/internal/core"
	"clubdir/internal/dataset"
	"clubdir/internal/directory"
)

type fakeProvider struct {
	clubs []core.Club
}

func (p *fakeProvider) List(ctx context.Context, f *core.Filter, key core.SortKey, descending bool) ([]core.Club, error) {
	out := f.Apply(p.clubs)
	core.SortClubs(out, key, descending)
	return out, nil
}

func (p *fakeProvider) Facets(ctx context.Context) (core.Facets, error) {
	return core.ComputeFacets(p.clubs), nil
}

type fakeSource struct {
	provider directory.Provider
	err      error
}

func (s *fakeSource) Provider(ctx context.Context) (directory.Provider, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.provider, nil
}

func testClubs() []core.Club {
	return []core.Club{
		{
			Name:           "Oak Hill Country Club",
			State:          "NY",
			City:           "Rochester",
			MonthlyDues:    core.Money{Cents: 35000},
			PrestigeLevel:  "High",
			MembershipType: "Full Golf",
			InitiationFee:  core.Money{Cents: 2500000},
		},
		{
			Name:        "Pebble Beach Golf Links",
			State:       "CA",
			City:        "Pebble Beach",
			MonthlyDues: core.Money{Cents: 850000},
			OtherCosts:  "Cart fees $200/month",
		},
		{
			Name:        "Torrey Pines Golf Course",
			State:       "CA",
			City:        "La Jolla",
			MonthlyDues: core.Money{Cents: 20000},
		},
	}
}

func newTestServer(t *testing.T, source directory.Source) *Server {
	t.Helper()
	s := NewServer(":0", source)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func TestIndexRendersFilters(t *testing.T) {
	s := newTestServer(t, &fakeSource{provider: &fakeProvider{clubs: testClubs()}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Country Club Directory", `value="CA"`, `value="NY"`, "Rochester"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestIndexShowsDataErrorWhenMissing(t *testing.T) {
	s := newTestServer(t, &fakeSource{err: dataset.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, page should still render", w.Code)
	}
	if !strings.Contains(w.Body.String(), "data file is missing") {
		t.Errorf("index should surface the missing dataset message")
	}
}

func TestResultsFilterAndSummary(t *testing.T) {
	s := newTestServer(t, &fakeSource{provider: &fakeProvider{clubs: testClubs()}})

	req := httptest.NewRequest(http.MethodGet, "/ui/results?state=CA&sort=dues&order=desc", nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "Oak Hill") {
		t.Errorf("NY club should be filtered out")
	}
	if !strings.Contains(body, "Pebble Beach") || !strings.Contains(body, "Torrey Pines") {
		t.Errorf("CA clubs missing from results")
	}
	// Pebble Beach: $8,500 dues + $200/month cart fees.
	if !strings.Contains(body, "$8,700") {
		t.Errorf("total monthly cost should include parsed recurring fees:\n%s", body)
	}
	if !strings.Contains(body, ">2<") {
		t.Errorf("summary should count 2 clubs")
	}
}

func TestResultsSearchByName(t *testing.T) {
	s := newTestServer(t, &fakeSource{provider: &fakeProvider{clubs: testClubs()}})

	req := httptest.NewRequest(http.MethodGet, "/ui/results?q=pebble", nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Pebble Beach") {
		t.Errorf("case-insensitive search should match")
	}
	if strings.Contains(body, "Torrey Pines") {
		t.Errorf("non-matching club should be excluded")
	}
}

func TestResultsEmptyMatch(t *testing.T) {
	s := newTestServer(t, &fakeSource{provider: &fakeProvider{clubs: testClubs()}})

	req := httptest.NewRequest(http.MethodGet, "/ui/results?q=nosuchclub", nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "No clubs match") {
		t.Errorf("empty result should render the empty state")
	}
}

func TestCompare(t *testing.T) {
	s := newTestServer(t, &fakeSource{provider: &fakeProvider{clubs: testClubs()}})

	req := httptest.NewRequest(http.MethodGet, "/ui/compare?club=Oak+Hill+Country+Club&club=Pebble+Beach+Golf+Links", nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Oak Hill Country Club") || !strings.Contains(body, "Pebble Beach Golf Links") {
		t.Fatalf("compare table missing club columns:\n%s", body)
	}
	if !strings.Contains(body, "$25,000") {
		t.Errorf("initiation fee should be formatted")
	}
	if !strings.Contains(body, "No Fee") {
		t.Errorf("zero initiation fee should read No Fee")
	}
}

func TestCompareTooFewClubs(t *testing.T) {
	s := newTestServer(t, &fakeSource{provider: &fakeProvider{clubs: testClubs()}})

	req := httptest.NewRequest(http.MethodGet, "/ui/compare?club=Oak+Hill+Country+Club", nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "at least 2") {
		t.Errorf("should prompt for more clubs")
	}
}

func TestCalculator(t *testing.T) {
	s := newTestServer(t, &fakeSource{provider: &fakeProvider{clubs: testClubs()}})

	// Target costs $400 more per month but its initiation fee is $12,000
	// cheaper, so switching breaks even after 12000/400 = 30 months.
	req := httptest.NewRequest(http.MethodGet,
		"/ui/calculator?current_dues=600&current_init=12000&target_dues=1000&years=5&include_init=true", nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "$400") {
		t.Errorf("monthly difference should be $400:\n%s", body)
	}
	if !strings.Contains(body, "30.0 months") {
		t.Errorf("break-even months missing:\n%s", body)
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(t, &fakeSource{provider: &fakeProvider{clubs: testClubs()}})

	req := httptest.NewRequest(http.MethodGet, "/export/csv?state=NY", nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("content disposition = %q", cd)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "Club Name,State,City,Monthly Dues") {
		t.Errorf("csv header wrong:\n%s", body)
	}
	if !strings.Contains(body, "Oak Hill Country Club,NY,Rochester") {
		t.Errorf("csv row missing:\n%s", body)
	}
	if strings.Contains(body, "Pebble Beach") {
		t.Errorf("filter should apply to exports")
	}
}

func TestExportJSON(t *testing.T) {
	s := newTestServer(t, &fakeSource{provider: &fakeProvider{clubs: testClubs()}})

	req := httptest.NewRequest(http.MethodGet, "/export/json", nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"count": 3`) {
		t.Errorf("json count missing:\n%s", body)
	}
	if !strings.Contains(body, `"total_monthly_cost": 8700`) {
		t.Errorf("derived costs missing:\n%s", body)
	}
}

func TestExportUnavailableDataset(t *testing.T) {
	s := newTestServer(t, &fakeSource{err: dataset.ErrEmptyDataset})

	req := httptest.NewRequest(http.MethodGet, "/export/csv", nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t, &fakeSource{provider: &fakeProvider{clubs: testClubs()}})

	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz = %d", w.Code)
	}

	w = httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("readyz = %d", w.Code)
	}

	broken := newTestServer(t, &fakeSource{err: errors.New("boom")})
	w = httptest.NewRecorder()
	broken.Server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz with broken source = %d", w.Code)
	}
}

func TestFriendlyDataError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{dataset.ErrNotFound, "data file is missing"},
		{&dataset.SchemaError{Missing: []string{"State", "City"}}, "State, City"},
		{dataset.ErrEmptyDataset, "No country club data"},
		{errors.New("weird"), "temporarily unavailable"},
	}
	for _, tc := range cases {
		if got := friendlyDataError(tc.err); !strings.Contains(got, tc.want) {
			t.Errorf("friendlyDataError(%v) = %q, want substring %q", tc.err, got, tc.want)
		}
	}
}
