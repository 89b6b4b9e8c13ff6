package core

import "strings"

// equityOnlyYes is the literal flag value the source dataset uses for
// equity-only rounds. Anything else (including "yes") means no.
const equityOnlyYes = "Yes"

// Categorize derives the funding category from the free-text funding
// type and the equity-only flag as exported by the source dataset.
//
// The branches are checked in a fixed precedence order: Grant exact
// match first, then any Debt mention, then the equity predicates,
// otherwise Other. The order matters for types matching more than one
// predicate ("Debt Equity Round" is Debt, not Equity). All substring
// checks are case-sensitive to mirror the export's labels exactly.
func Categorize(fundingType, equityOnly string) Category {
	switch {
	case fundingType == "Grant":
		return CategoryGrant
	case fundingType == "Debt Financing" || strings.Contains(fundingType, "Debt"):
		return CategoryDebt
	case equityOnly == equityOnlyYes ||
		strings.Contains(fundingType, "Series") ||
		strings.Contains(fundingType, "Venture") ||
		strings.Contains(fundingType, "Equity"):
		return CategoryEquity
	default:
		return CategoryOther
	}
}
