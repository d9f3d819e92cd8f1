package core

import (
	"errors"
	"strings"
)

type (
	Money struct {
		Cents int64
	}

	// Club is one directory entry. Name, State and City are always
	// non-empty after a successful load; the remaining fields may be blank.
	Club struct {
		Name           string
		State          string // USPS code, uppercase
		City           string
		MonthlyDues    Money
		ContactPhone   string
		Website        string
		Address        string
		PrestigeLevel  string
		MembershipType string
		InitiationFee  Money
		OtherCosts     string
	}
)

var (
	ErrEmptyName     = errors.New("empty club name")
	ErrEmptyState    = errors.New("empty state")
	ErrEmptyCity     = errors.New("empty city")
	ErrInvalidAmount = errors.New("invalid amount")
)

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c Club) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 200 {
		return errors.New("club name too long (max 200 characters)")
	}
	if strings.TrimSpace(c.State) == "" {
		return ErrEmptyState
	}
	if strings.TrimSpace(c.City) == "" {
		return ErrEmptyCity
	}
	if err := c.MonthlyDues.Validate(); err != nil {
		return err
	}
	if err := c.InitiationFee.Validate(); err != nil {
		return err
	}
	return nil
}
