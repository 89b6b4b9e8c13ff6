package core

import (
	"errors"
	"time"
)

const (
	CategoryEquity Category = "Equity"
	CategoryDebt   Category = "Debt"
	CategoryGrant  Category = "Grant"
	CategoryOther  Category = "Other"
)

type (
	// Category is the derived funding category of a round.
	Category string

	Date struct {
		time.Time
	}

	// Money is an amount of US dollars held as integer cents.
	Money struct {
		Cents int64
	}

	// FundingRound is a single capital-raising event for a company.
	// Rounds are immutable once loaded: the category is computed at
	// load time and never recomputed.
	FundingRound struct {
		Company       string
		Announced     Date
		Type          string // free-text label, e.g. "Series A"
		EquityOnly    bool
		Raised        Money // may be zero when the amount is undisclosed
		LeadInvestors string
		Category      Category
	}
)

var (
	ErrNegativeAmount = errors.New("negative amount")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrEmptyCompany   = errors.New("empty organization name")
)

// NewDate creates a Date at UTC midnight for year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty reports whether the date carries no value.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// ISO returns the date formatted as YYYY-MM-DD, or "" for an empty date.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// Display returns the date formatted for headlines, e.g. "March 17, 2025".
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("January 2, 2006")
}

// Validate checks that a round is usable for aggregation.
func (r FundingRound) Validate() error {
	if r.Company == "" {
		return ErrEmptyCompany
	}
	if r.Announced.IsZero() {
		return errors.New("missing announced date")
	}
	if r.Raised.Cents < 0 {
		return ErrNegativeAmount
	}
	if !r.Category.IsValid() {
		return errors.New("invalid funding category")
	}
	return nil
}

// IsValid reports whether c is one of the four known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryEquity, CategoryDebt, CategoryGrant, CategoryOther:
		return true
	}
	return false
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}
