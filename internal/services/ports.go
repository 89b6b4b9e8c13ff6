package services

import (
	"context"

	"fundboard/internal/core"
)

// Ports for the presentation layer and for the dataset behind the
// service.
type (
	// RoundSource is the read-only dataset the service aggregates over.
	// Implemented by dataset.Store.
	RoundSource interface {
		// Rounds returns all funding rounds, ascending by announced date.
		Rounds(ctx context.Context) ([]core.FundingRound, error)
		// Companies returns the sorted distinct organization names.
		Companies(ctx context.Context) ([]string, error)
		// Version is an opaque fingerprint that changes when the
		// underlying dataset changes.
		Version(ctx context.Context) (string, error)
	}

	// CompanyLister exposes the selector choices to the UI.
	CompanyLister interface {
		Companies(ctx context.Context) ([]string, error)
	}

	// SummaryReader computes per-company funding summaries.
	SummaryReader interface {
		Summarize(ctx context.Context, company string) (core.CompanySummary, error)
		// DatasetVersion lets consumers key caches on the dataset state.
		DatasetVersion(ctx context.Context) (string, error)
	}
)
