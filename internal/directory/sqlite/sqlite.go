// Package sqlite is the SQL-backed directory backend: the loaded table is
// bulk-inserted into an in-memory SQLite database and the sidebar filters
// compile to WHERE clauses. Nothing is persisted to disk.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"clubdir/internal/core"
	"clubdir/internal/dataset"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// New creates an in-memory database, applies migrations and loads the table.
func New(ctx context.Context, table *dataset.Table) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A second pooled connection would see an empty in-memory database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s := &Store{db: db}
	if err := s.load(ctx, table); err != nil {
		db.Close()
		return nil, err
	}
	slog.InfoContext(ctx, "SQLite directory backend ready", "clubs", len(table.Clubs))
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) load(ctx context.Context, table *dataset.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO clubs
		(name, state, city, monthly_dues_cents, contact_phone, website, address,
		 prestige_level, membership_type, initiation_fee_cents, other_costs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range table.Clubs {
		if _, err := stmt.ExecContext(ctx,
			c.Name, c.State, c.City, c.MonthlyDues.Cents,
			c.ContactPhone, c.Website, c.Address,
			c.PrestigeLevel, c.MembershipType, c.InitiationFee.Cents, c.OtherCosts,
		); err != nil {
			return fmt.Errorf("insert club %q: %w", c.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load tx: %w", err)
	}
	return nil
}

const clubColumns = `name, state, city, monthly_dues_cents, contact_phone, website,
	address, prestige_level, membership_type, initiation_fee_cents, other_costs`

func (s *Store) List(ctx context.Context, f *core.Filter, key core.SortKey, descending bool) ([]core.Club, error) {
	where, args := buildWhere(f)
	query := "SELECT " + clubColumns + " FROM clubs" + where + orderBy(key, descending)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer rows.Close()

	var out []core.Club
	for rows.Next() {
		var c core.Club
		if err := rows.Scan(&c.Name, &c.State, &c.City, &c.MonthlyDues.Cents,
			&c.ContactPhone, &c.Website, &c.Address,
			&c.PrestigeLevel, &c.MembershipType, &c.InitiationFee.Cents, &c.OtherCosts); err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clubs: %w", err)
	}
	return out, nil
}

func buildWhere(f *core.Filter) (string, []any) {
	var clauses []string
	var args []any

	if f.Search != "" {
		clauses = append(clauses, "instr(lower(name), lower(?)) > 0")
		args = append(args, f.Search)
	}
	addSet := func(expr string, values []string, lower bool) {
		if len(values) == 0 {
			return
		}
		ph := make([]string, len(values))
		for i, v := range values {
			ph[i] = "?"
			v = strings.TrimSpace(v)
			if lower {
				v = strings.ToLower(v)
			} else {
				v = strings.ToUpper(v)
			}
			args = append(args, v)
		}
		clauses = append(clauses, expr+" IN ("+strings.Join(ph, ",")+")")
	}
	addSet("upper(state)", f.States, false)
	addSet("lower(city)", f.Cities, true)
	addSet("lower(prestige_level)", f.PrestigeLevels, true)
	addSet("lower(membership_type)", f.MembershipTypes, true)

	addBound := func(expr string, v *int64) {
		if v == nil {
			return
		}
		clauses = append(clauses, expr)
		args = append(args, *v)
	}
	addBound("monthly_dues_cents >= ?", f.DuesMin)
	addBound("monthly_dues_cents <= ?", f.DuesMax)
	addBound("initiation_fee_cents >= ?", f.InitiationMin)
	addBound("initiation_fee_cents <= ?", f.InitiationMax)

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func orderBy(key core.SortKey, descending bool) string {
	col := "monthly_dues_cents"
	switch key {
	case core.SortByName:
		col = "lower(name)"
	case core.SortByState:
		col = "state"
	case core.SortByCity:
		col = "lower(city)"
	case core.SortByInitiation:
		col = "initiation_fee_cents"
	}
	dir := " ASC"
	if descending {
		dir = " DESC"
	}
	return " ORDER BY " + col + dir + ", lower(name)" + dir
}

func (s *Store) Facets(ctx context.Context) (core.Facets, error) {
	var fc core.Facets
	var err error

	if fc.States, err = s.distinct(ctx, "state"); err != nil {
		return core.Facets{}, err
	}
	if fc.Cities, err = s.distinct(ctx, "city"); err != nil {
		return core.Facets{}, err
	}
	if fc.PrestigeLevels, err = s.distinct(ctx, "prestige_level"); err != nil {
		return core.Facets{}, err
	}
	if fc.MembershipTypes, err = s.distinct(ctx, "membership_type"); err != nil {
		return core.Facets{}, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT
		COALESCE(MIN(monthly_dues_cents), 0), COALESCE(MAX(monthly_dues_cents), 0),
		COALESCE(MIN(initiation_fee_cents), 0), COALESCE(MAX(initiation_fee_cents), 0)
		FROM clubs`)
	if err := row.Scan(&fc.DuesMin.Cents, &fc.DuesMax.Cents, &fc.InitiationMin.Cents, &fc.InitiationMax.Cents); err != nil {
		return core.Facets{}, fmt.Errorf("facet bounds: %w", err)
	}
	return fc, nil
}

func (s *Store) distinct(ctx context.Context, col string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT "+col+" FROM clubs WHERE "+col+" != '' ORDER BY lower("+col+")")
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", col, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", col, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
