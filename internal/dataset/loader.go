// Package dataset loads the funding-rounds CSV and holds it as
// process-wide read-only state.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"fundboard/internal/core"
)

// Expected CSV header names, as exported by the data provider.
const (
	colCompany    = "Organization Name"
	colAnnounced  = "Announced Date"
	colType       = "Funding Type"
	colEquityOnly = "Equity Only Funding"
	colRaised     = "Money Raised (in USD)"
	colInvestors  = "Lead Investors"
)

// dateLayouts are the accepted announced-date formats. Parsing is an
// explicit allowlist so a schema drift fails the load instead of
// silently misreading dates.
var dateLayouts = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"1/2/2006",
}

// MalformedInputError reports an unusable dataset file: a missing
// required column, or a row whose date or amount cannot be parsed.
// A load that fails returns no partial dataset.
type MalformedInputError struct {
	Path   string
	Row    int // 1-based data row; 0 for header problems
	Column string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("malformed dataset %s: column %q: %v", e.Path, e.Column, e.Err)
	}
	return fmt.Sprintf("malformed dataset %s: row %d, column %q: %v", e.Path, e.Row, e.Column, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// Load reads the funding-rounds CSV at path and returns the rounds
// sorted ascending by announced date, each with its derived category.
// The sort is stable, so rounds sharing a date keep file order.
// Loading the same unchanged file twice yields identical sequences.
func Load(path string) ([]core.FundingRound, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	rounds, err := parse(path, f)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rounds, func(i, j int) bool {
		return rounds[i].Announced.Before(rounds[j].Announced.Time)
	})
	return rounds, nil
}

func parse(path string, r io.Reader) ([]core.FundingRound, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &MalformedInputError{Path: path, Column: "header", Err: err}
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colCompany, colAnnounced, colType, colEquityOnly, colRaised} {
		if _, ok := idx[required]; !ok {
			return nil, &MalformedInputError{Path: path, Column: required, Err: fmt.Errorf("required column missing")}
		}
	}
	// Lead Investors is display-only and tolerated when absent.
	investorsIdx, hasInvestors := idx[colInvestors]

	var rounds []core.FundingRound
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedInputError{Path: path, Row: row, Column: "record", Err: err}
		}

		announced, err := parseAnnounced(record[idx[colAnnounced]])
		if err != nil {
			return nil, &MalformedInputError{Path: path, Row: row, Column: colAnnounced, Err: err}
		}
		cents, err := core.ParseUSDToCents(record[idx[colRaised]])
		if err != nil {
			return nil, &MalformedInputError{Path: path, Row: row, Column: colRaised, Err: err}
		}

		fundingType := strings.TrimSpace(record[idx[colType]])
		equityOnly := strings.TrimSpace(record[idx[colEquityOnly]])
		investors := ""
		if hasInvestors {
			investors = strings.TrimSpace(record[investorsIdx])
		}

		rounds = append(rounds, core.FundingRound{
			Company:       strings.TrimSpace(record[idx[colCompany]]),
			Announced:     announced,
			Type:          fundingType,
			EquityOnly:    equityOnly == "Yes",
			Raised:        core.Money{Cents: cents},
			LeadInvestors: investors,
			Category:      core.Categorize(fundingType, equityOnly),
		})
	}
	return rounds, nil
}

func parseAnnounced(s string) (core.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return core.Date{}, fmt.Errorf("unparseable date %q", s)
}
