package core

// Ratio is a derived metric that may have no defined value, e.g. a
// debt-to-equity ratio for a company with zero equity funding. Valid
// distinguishes "not available" from a genuine zero.
type Ratio struct {
	Value float64
	Valid bool
}

// TimePoint is the per-category funding raised on one announced date.
// Only dates with at least one round produce a point; categories with
// no round on that date hold zero.
type TimePoint struct {
	Date   Date
	Equity Money
	Debt   Money
	Grant  Money
	Other  Money
}

// Total is the sum raised across all categories on this date.
func (p TimePoint) Total() Money {
	return p.Equity.Add(p.Debt).Add(p.Grant).Add(p.Other)
}

// CompanySummary is the aggregate view of one company's funding
// history. A company with no rounds yields a zeroed summary with
// sentinel (invalid/empty) latest-round and ratio fields, never an
// error.
type CompanySummary struct {
	Company   string
	Rounds    []FundingRound
	NumRounds int

	TotalRaised Money
	LatestType  string // "" when the company has no rounds
	LatestDate  Date   // empty when the company has no rounds

	// CategoryTotals always carries the Equity, Debt and Grant keys;
	// categories without rounds map to zero. Other is deliberately
	// absent here but still counted in TotalRaised and NumRounds.
	CategoryTotals map[Category]Money

	DebtToEquity   Ratio
	DebtToTotalPct float64
	EquityPct      float64

	TimeSeries []TimePoint
}

// Summarize filters rounds down to one company and computes its
// funding summary. The input is expected in ascending announced-date
// order (the loader's contract) and is not mutated; the summary keeps
// a view into the matching subsequence order.
func Summarize(rounds []FundingRound, company string) CompanySummary {
	s := CompanySummary{
		Company: company,
		CategoryTotals: map[Category]Money{
			CategoryEquity: {},
			CategoryDebt:   {},
			CategoryGrant:  {},
		},
	}

	var other Money
	pointIdx := make(map[Date]int)
	for _, r := range rounds {
		if r.Company != company {
			continue
		}
		s.Rounds = append(s.Rounds, r)
		s.TotalRaised = s.TotalRaised.Add(r.Raised)

		switch r.Category {
		case CategoryOther:
			other = other.Add(r.Raised)
		default:
			s.CategoryTotals[r.Category] = s.CategoryTotals[r.Category].Add(r.Raised)
		}

		i, ok := pointIdx[r.Announced]
		if !ok {
			i = len(s.TimeSeries)
			pointIdx[r.Announced] = i
			s.TimeSeries = append(s.TimeSeries, TimePoint{Date: r.Announced})
		}
		p := &s.TimeSeries[i]
		switch r.Category {
		case CategoryEquity:
			p.Equity = p.Equity.Add(r.Raised)
		case CategoryDebt:
			p.Debt = p.Debt.Add(r.Raised)
		case CategoryGrant:
			p.Grant = p.Grant.Add(r.Raised)
		default:
			p.Other = p.Other.Add(r.Raised)
		}
	}

	s.NumRounds = len(s.Rounds)
	if s.NumRounds > 0 {
		last := s.Rounds[s.NumRounds-1]
		s.LatestType = last.Type
		s.LatestDate = last.Announced
	}

	equity := s.CategoryTotals[CategoryEquity]
	debt := s.CategoryTotals[CategoryDebt]
	if equity.Cents > 0 {
		s.DebtToEquity = Ratio{
			Value: float64(debt.Cents) / float64(equity.Cents),
			Valid: true,
		}
	}
	if s.TotalRaised.Cents > 0 {
		s.DebtToTotalPct = float64(debt.Cents) / float64(s.TotalRaised.Cents) * 100
		s.EquityPct = float64(equity.Cents) / float64(s.TotalRaised.Cents) * 100
	}

	return s
}
