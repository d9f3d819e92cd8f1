// Package dataset loads the club directory from its CSV file: it validates
// the header schema, cleans each row the way the source data needs, and
// caches the resulting immutable table for the life of the process.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"clubdir/internal/core"
)

// DefaultPath is where the directory dataset lives unless configured
// otherwise.
const DefaultPath = "data/country_clubs.csv"

// Required header columns, in canonical order. The match is case-sensitive.
var RequiredColumns = []string{
	"Club Name",
	"State",
	"City",
	"Monthly Dues",
	"Contact Phone",
	"Website",
	"Address",
}

// Optional columns carried by scraped datasets.
var OptionalColumns = []string{
	"Prestige Level",
	"Membership Type",
	"Initiation Fee",
	"Other Costs",
}

var (
	// ErrNotFound wraps fs.ErrNotExist so callers can errors.Is either way.
	ErrNotFound = fmt.Errorf("dataset file not found: %w", fs.ErrNotExist)

	// ErrEmptyDataset means the file had a header but no usable rows.
	ErrEmptyDataset = errors.New("dataset has no valid rows")
)

// SchemaError reports required columns missing from the header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "dataset header missing required columns: " + strings.Join(e.Missing, ", ")
}

// Table is the loaded directory. It is immutable after Load returns; callers
// must treat Clubs as read-only, which makes the table safe to share across
// concurrent requests.
type Table struct {
	Clubs []core.Club

	// Skipped counts source rows dropped during cleaning (unparseable dues,
	// blank name/state/city, unknown state).
	Skipped int
}

// Load reads and validates the CSV dataset at path.
//
// Row policy: rows that fail cleaning are skipped and counted, never fatal.
// A missing file returns ErrNotFound, a bad header returns *SchemaError, and
// a file with zero surviving rows returns ErrEmptyDataset.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	table, err := parse(f)
	if err != nil {
		return nil, err
	}
	if table.Skipped > 0 {
		slog.Warn("Dataset rows skipped during load", "path", path, "skipped", table.Skipped, "loaded", len(table.Clubs))
	}
	return table, nil
}

func parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-row below
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed CSV row: treated like a value that fails
			// coercion, skipped and counted by FromRows via a marker.
			rows = append(rows, nil)
			continue
		}
		rows = append(rows, record)
	}
	return FromRows(header, rows)
}

// FromRows builds a table from an already-split header and data rows. The
// CSV loader and the Google Sheets source both funnel through here so every
// source gets identical schema validation and cleaning. A nil row counts as
// skipped.
func FromRows(header []string, rows [][]string) (*Table, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, want := range RequiredColumns {
		if _, ok := cols[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	table := &Table{}
	for _, record := range rows {
		if record == nil {
			table.Skipped++
			continue
		}
		club, ok := cleanRow(record, cols)
		if !ok {
			table.Skipped++
			continue
		}
		table.Clubs = append(table.Clubs, club)
	}

	if len(table.Clubs) == 0 {
		return nil, ErrEmptyDataset
	}
	return table, nil
}

// cleanRow applies the field cleaning the source data needs: whitespace
// trimming, state normalization, currency coercion, https:// prefixes and
// removal of "nan" placeholders left by earlier exports.
func cleanRow(record []string, cols map[string]int) (core.Club, bool) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return cleanText(record[i])
	}

	club := core.Club{
		Name:           get("Club Name"),
		City:           get("City"),
		ContactPhone:   get("Contact Phone"),
		Website:        normalizeWebsite(get("Website")),
		Address:        get("Address"),
		PrestigeLevel:  get("Prestige Level"),
		MembershipType: get("Membership Type"),
		OtherCosts:     get("Other Costs"),
	}
	if club.Name == "" || club.City == "" {
		return core.Club{}, false
	}

	state, ok := NormalizeState(get("State"))
	if !ok || state == "" {
		return core.Club{}, false
	}
	club.State = state

	dues, err := core.ParseDollarsToCents(get("Monthly Dues"))
	if err != nil {
		return core.Club{}, false
	}
	club.MonthlyDues = core.Money{Cents: dues}

	// Initiation fee is optional; unparseable values fall back to zero
	// rather than dropping the row.
	if v := get("Initiation Fee"); v != "" {
		if fee, err := core.ParseDollarsToCents(v); err == nil {
			club.InitiationFee = core.Money{Cents: fee}
		}
	}

	if err := club.Validate(); err != nil {
		return core.Club{}, false
	}
	return club, true
}

func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

func normalizeWebsite(url string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}
