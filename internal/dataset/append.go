package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"clubdir/internal/core"
)

// AppendClubs appends clubs to the CSV dataset at path, creating the file
// with the canonical header when it does not exist yet. Rows are written in
// the shape Load accepts, so ingested clubs survive the next reload.
func AppendClubs(path string, clubs []core.Club) error {
	if len(clubs) == 0 {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dataset dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		header := append(append([]string{}, RequiredColumns...), OptionalColumns...)
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i := range clubs {
		c := &clubs[i]
		row := []string{
			c.Name,
			c.State,
			c.City,
			core.FormatDollars(c.MonthlyDues.Cents),
			c.ContactPhone,
			c.Website,
			c.Address,
			c.PrestigeLevel,
			c.MembershipType,
			formatOptionalFee(c.InitiationFee),
			c.OtherCosts,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", c.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

func formatOptionalFee(m core.Money) string {
	if m.Cents == 0 {
		return ""
	}
	return core.FormatDollars(m.Cents)
}
