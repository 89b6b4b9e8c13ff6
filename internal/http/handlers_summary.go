package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"fundboard/internal/core"
	"fundboard/internal/log"
)

// categoryColors match the chart palette used across the dashboard.
var categoryColors = map[core.Category]string{
	core.CategoryEquity: "#1f77b4",
	core.CategoryDebt:   "#ff7f0e",
	core.CategoryGrant:  "#2ca02c",
}

// chartCategories is the fixed set the breakdown and stacked charts
// render; Other stays in the headline totals but off the charts.
var chartCategories = []core.Category{core.CategoryEquity, core.CategoryDebt, core.CategoryGrant}

// handleIndex renders the dashboard page with the company selector.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	companies, err := s.companies.Companies(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Company list error", log.FieldError, err)
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}

	selected := parseCompany(r)
	if selected == "" && len(companies) > 0 {
		selected = companies[0]
	}

	data := struct {
		Companies []string
		Selected  string
	}{
		Companies: companies,
		Selected:  selected,
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", log.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCompanySummary renders the company funding summary partial.
func (s *Server) handleCompanySummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	company := parseCompany(r)
	if company == "" {
		_, _ = w.Write([]byte(`<section id="company-summary" class="company-summary"><div class="placeholder">Select a company to see its funding history.</div></section>`))
		return
	}

	summary, err := s.getSummary(r.Context(), company)
	if err != nil {
		slog.ErrorContext(r.Context(), "Company summary error",
			log.FieldError, err, log.FieldCompany, company)
		_, _ = w.Write([]byte(`<section id="company-summary" class="company-summary"><div class="error">Error loading funding data</div></section>`))
		return
	}
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="company-summary" class="company-summary"><div class="placeholder">Total raised: ` + summary.TotalRaised.FormatUSD() + `</div></section>`))
		return
	}

	if err := s.templates.ExecuteTemplate(w, "company_summary.html", s.buildSummaryView(summary)); err != nil {
		slog.ErrorContext(r.Context(), "Summary template execution failed",
			log.FieldError, err, log.FieldCompany, company)
		_, _ = w.Write([]byte(`<section id="company-summary" class="company-summary"><div class="error">Error rendering summary</div></section>`))
	}
}

// handleCompanyLogo serves the resolved logo image, 404 when absent.
func (s *Server) handleCompanyLogo(w http.ResponseWriter, r *http.Request) {
	company := parseCompany(r)
	if s.logos == nil || company == "" {
		http.NotFound(w, r)
		return
	}
	path, found := s.logos.Resolve(company)
	if !found {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, path)
}

// handleAPICompanies returns the selector choices as JSON.
func (s *Server) handleAPICompanies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	companies, err := s.companies.Companies(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Company list error", log.FieldError, err)
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}
	if companies == nil {
		companies = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Companies []string `json:"companies"`
	}{Companies: companies})
}

// summaryJSON is the chart-friendly JSON shape of a company summary.
type summaryJSON struct {
	Company         string             `json:"company"`
	NumRounds       int                `json:"num_rounds"`
	TotalRaisedUSD  float64            `json:"total_raised_usd"`
	LatestRoundType string             `json:"latest_round_type,omitempty"`
	LatestRoundDate string             `json:"latest_round_date,omitempty"`
	CategoryTotals  map[string]float64 `json:"category_totals_usd"`
	DebtToEquity    *float64           `json:"debt_to_equity"` // null when not available
	DebtToTotalPct  float64            `json:"debt_to_total_pct"`
	EquityPct       float64            `json:"equity_pct"`
	TimeSeries      []timePointJSON    `json:"time_series"`
}

type timePointJSON struct {
	Date      string  `json:"date"`
	EquityUSD float64 `json:"equity_usd"`
	DebtUSD   float64 `json:"debt_usd"`
	GrantUSD  float64 `json:"grant_usd"`
	OtherUSD  float64 `json:"other_usd"`
}

// handleAPISummary returns the aggregate view for one company as JSON.
func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	company := parseCompany(r)
	if company == "" {
		http.Error(w, "missing company parameter", http.StatusBadRequest)
		return
	}

	summary, err := s.getSummary(r.Context(), company)
	if err != nil {
		slog.ErrorContext(r.Context(), "Company summary error",
			log.FieldError, err, log.FieldCompany, company)
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}

	out := summaryJSON{
		Company:         summary.Company,
		NumRounds:       summary.NumRounds,
		TotalRaisedUSD:  summary.TotalRaised.Dollars(),
		LatestRoundType: summary.LatestType,
		LatestRoundDate: summary.LatestDate.ISO(),
		CategoryTotals:  make(map[string]float64, len(summary.CategoryTotals)),
		DebtToTotalPct:  summary.DebtToTotalPct,
		EquityPct:       summary.EquityPct,
		TimeSeries:      []timePointJSON{},
	}
	for cat, amount := range summary.CategoryTotals {
		out.CategoryTotals[string(cat)] = amount.Dollars()
	}
	if summary.DebtToEquity.Valid {
		v := summary.DebtToEquity.Value
		out.DebtToEquity = &v
	}
	for _, p := range summary.TimeSeries {
		out.TimeSeries = append(out.TimeSeries, timePointJSON{
			Date:      p.Date.ISO(),
			EquityUSD: p.Equity.Dollars(),
			DebtUSD:   p.Debt.Dollars(),
			GrantUSD:  p.Grant.Dollars(),
			OtherUSD:  p.Other.Dollars(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// View models for the summary partial.

type categoryBar struct {
	Name   string
	Color  string
	Amount string
	Width  int // percent of the largest category
}

type seriesSegment struct {
	Name   string
	Color  string
	Height int // percent of the tallest date column
}

type seriesColumn struct {
	Label    string
	Total    string
	Segments []seriesSegment
}

type roundRow struct {
	Date      string
	Type      string
	Category  string
	Amount    string
	Investors string
}

type summaryView struct {
	Company      string
	CompanyQuery string
	HasRounds    bool

	TotalRaised string
	NumRounds   int
	LatestRound string

	DebtToEquity string
	DebtToTotal  string
	EquityPct    string

	Categories []categoryBar
	Series     []seriesColumn
	Rounds     []roundRow
}

func (s *Server) buildSummaryView(summary core.CompanySummary) summaryView {
	view := summaryView{
		Company:      summary.Company,
		CompanyQuery: url.QueryEscape(summary.Company),
		HasRounds:    summary.NumRounds > 0,
		TotalRaised:  summary.TotalRaised.FormatUSD(),
		NumRounds:    summary.NumRounds,
		LatestRound:  "N/A",
		DebtToEquity: "N/A",
		DebtToTotal:  formatPct(summary.DebtToTotalPct),
		EquityPct:    formatPct(summary.EquityPct),
	}
	if summary.NumRounds > 0 {
		view.LatestRound = summary.LatestType + " (" + summary.LatestDate.Display() + ")"
	}
	if summary.DebtToEquity.Valid {
		view.DebtToEquity = formatRatio(summary.DebtToEquity.Value)
	}

	// Category breakdown bars, scaled against the largest category.
	var maxCents int64
	for _, cat := range chartCategories {
		if c := summary.CategoryTotals[cat].Cents; c > maxCents {
			maxCents = c
		}
	}
	for _, cat := range chartCategories {
		amount := summary.CategoryTotals[cat]
		view.Categories = append(view.Categories, categoryBar{
			Name:   string(cat),
			Color:  categoryColors[cat],
			Amount: amount.FormatUSD(),
			Width:  scalePercent(amount.Cents, maxCents),
		})
	}

	// Stacked columns, one per announced date with activity.
	var maxTotal int64
	for _, p := range summary.TimeSeries {
		if t := p.Total().Cents; t > maxTotal {
			maxTotal = t
		}
	}
	for _, p := range summary.TimeSeries {
		col := seriesColumn{
			Label: p.Date.ISO(),
			Total: p.Total().FormatUSD(),
		}
		segments := []struct {
			cat    core.Category
			amount core.Money
		}{
			{core.CategoryEquity, p.Equity},
			{core.CategoryDebt, p.Debt},
			{core.CategoryGrant, p.Grant},
		}
		for _, seg := range segments {
			if seg.amount.IsZero() {
				continue
			}
			col.Segments = append(col.Segments, seriesSegment{
				Name:   string(seg.cat),
				Color:  categoryColors[seg.cat],
				Height: scalePercent(seg.amount.Cents, maxTotal),
			})
		}
		view.Series = append(view.Series, col)
	}

	for _, r := range summary.Rounds {
		view.Rounds = append(view.Rounds, roundRow{
			Date:      r.Announced.ISO(),
			Type:      r.Type,
			Category:  string(r.Category),
			Amount:    r.Raised.FormatUSD(),
			Investors: r.LeadInvestors,
		})
	}

	return view
}

// scalePercent maps value onto 0-100 relative to max, keeping tiny
// non-zero values visible.
func scalePercent(value, max int64) int {
	if max <= 0 || value <= 0 {
		return 0
	}
	pct := int((value*100 + max/2) / max)
	if pct < 2 {
		pct = 2
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
