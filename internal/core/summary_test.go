package core

import (
	"math"
	"testing"
)

func usd(dollars int64) Money { return Money{Cents: dollars * 100} }

func round(company string, d Date, typ, equityOnly string, dollars int64) FundingRound {
	return FundingRound{
		Company:    company,
		Announced:  d,
		Type:       typ,
		EquityOnly: equityOnly == "Yes",
		Raised:     usd(dollars),
		Category:   Categorize(typ, equityOnly),
	}
}

func TestSummarizeTwoRounds(t *testing.T) {
	rounds := []FundingRound{
		round("CompanyX", NewDate(2020, 1, 1), "Series A", "No", 1000000),
		round("CompanyX", NewDate(2021, 1, 1), "Debt Financing", "No", 500000),
	}

	s := Summarize(rounds, "CompanyX")

	if s.TotalRaised != usd(1500000) {
		t.Fatalf("total raised = %v, want %v", s.TotalRaised, usd(1500000))
	}
	if s.NumRounds != 2 {
		t.Fatalf("num rounds = %d, want 2", s.NumRounds)
	}
	if s.LatestType != "Debt Financing" {
		t.Fatalf("latest type = %q", s.LatestType)
	}
	if s.LatestDate != NewDate(2021, 1, 1) {
		t.Fatalf("latest date = %v", s.LatestDate)
	}
	if s.CategoryTotals[CategoryEquity] != usd(1000000) ||
		s.CategoryTotals[CategoryDebt] != usd(500000) ||
		s.CategoryTotals[CategoryGrant] != usd(0) {
		t.Fatalf("category totals = %v", s.CategoryTotals)
	}
	if !s.DebtToEquity.Valid || math.Abs(s.DebtToEquity.Value-0.50) > 1e-9 {
		t.Fatalf("debt-to-equity = %+v, want 0.50", s.DebtToEquity)
	}
	if math.Abs(s.DebtToTotalPct-100.0/3) > 0.01 {
		t.Fatalf("debt-to-total pct = %f, want ~33.3", s.DebtToTotalPct)
	}
	if math.Abs(s.EquityPct-200.0/3) > 0.01 {
		t.Fatalf("equity pct = %f, want ~66.7", s.EquityPct)
	}
	if len(s.TimeSeries) != 2 {
		t.Fatalf("time series has %d points, want 2", len(s.TimeSeries))
	}
	if s.TimeSeries[0].Equity != usd(1000000) || s.TimeSeries[1].Debt != usd(500000) {
		t.Fatalf("time series = %+v", s.TimeSeries)
	}
}

func TestSummarizeNoRounds(t *testing.T) {
	rounds := []FundingRound{
		round("CompanyX", NewDate(2020, 1, 1), "Series A", "No", 1000000),
	}

	s := Summarize(rounds, "Ghost Corp")

	if s.NumRounds != 0 || s.TotalRaised.Cents != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
	if s.LatestType != "" || !s.LatestDate.IsEmpty() {
		t.Fatalf("expected sentinel latest round, got %q %v", s.LatestType, s.LatestDate)
	}
	if s.DebtToEquity.Valid {
		t.Fatalf("debt-to-equity should be not available")
	}
	if s.DebtToTotalPct != 0 || s.EquityPct != 0 {
		t.Fatalf("percentages should be zero, got %f %f", s.DebtToTotalPct, s.EquityPct)
	}
	// The three chart categories are still present, at zero.
	for _, c := range []Category{CategoryEquity, CategoryDebt, CategoryGrant} {
		if v, ok := s.CategoryTotals[c]; !ok || v.Cents != 0 {
			t.Fatalf("category %s = %v, ok=%v", c, v, ok)
		}
	}
	if len(s.TimeSeries) != 0 {
		t.Fatalf("expected no time series points")
	}
}

// Sum of the charted category totals plus Other always equals the
// total raised: nothing is double counted or dropped.
func TestSummarizeConservesTotals(t *testing.T) {
	rounds := []FundingRound{
		round("Acme", NewDate(2019, 5, 1), "Angel", "No", 250000), // Other
		round("Acme", NewDate(2020, 1, 1), "Series A", "No", 1000000),
		round("Acme", NewDate(2020, 1, 1), "Grant", "No", 50000),
		round("Acme", NewDate(2021, 7, 9), "Debt Financing", "No", 400000),
		round("Other Co", NewDate(2021, 1, 1), "Series B", "No", 9000000),
	}

	s := Summarize(rounds, "Acme")

	var charted Money
	for _, v := range s.CategoryTotals {
		charted = charted.Add(v)
	}
	var series Money
	for _, p := range s.TimeSeries {
		series = series.Add(p.Total())
	}
	other := usd(250000)
	if charted.Add(other) != s.TotalRaised {
		t.Fatalf("charted %v + other %v != total %v", charted, other, s.TotalRaised)
	}
	if series != s.TotalRaised {
		t.Fatalf("time series total %v != total %v", series, s.TotalRaised)
	}
	if s.NumRounds != 4 {
		t.Fatalf("num rounds = %d, want 4", s.NumRounds)
	}
	// Same-date rounds collapse into a single point.
	if len(s.TimeSeries) != 3 {
		t.Fatalf("time series has %d points, want 3", len(s.TimeSeries))
	}
}

func TestDebtToEquityNotAvailableOnlyWithoutEquity(t *testing.T) {
	debtOnly := []FundingRound{
		round("DebtCo", NewDate(2022, 3, 1), "Debt Financing", "No", 700000),
	}
	if s := Summarize(debtOnly, "DebtCo"); s.DebtToEquity.Valid {
		t.Fatalf("ratio should be not available with zero equity, got %+v", s.DebtToEquity)
	}

	equityOnly := []FundingRound{
		round("EqCo", NewDate(2022, 3, 1), "Series A", "No", 700000),
	}
	s := Summarize(equityOnly, "EqCo")
	if !s.DebtToEquity.Valid || s.DebtToEquity.Value != 0 {
		t.Fatalf("ratio should be a defined zero with equity and no debt, got %+v", s.DebtToEquity)
	}
}
