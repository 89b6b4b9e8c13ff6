package services

import (
	"context"
	"fmt"

	"fundboard/internal/core"
	"fundboard/internal/log"
	"fundboard/internal/metrics"
)

// SummaryService aggregates the loaded dataset into per-company
// funding summaries. It is stateless between calls: every summary is
// one full pass over the shared read-only dataset, so concurrent
// requests need no coordination.
type SummaryService struct {
	source RoundSource
	logger *log.Logger
}

func NewSummaryService(source RoundSource, logger *log.Logger) *SummaryService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &SummaryService{
		source: source,
		logger: logger.WithComponent(log.ComponentSummary),
	}
}

// Companies returns the selector choices, sorted.
func (s *SummaryService) Companies(ctx context.Context) ([]string, error) {
	companies, err := s.source.Companies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// Summarize computes the funding summary for one company. An unknown
// company yields an empty summary, not an error; a stale selection
// after a dataset reload degrades gracefully.
func (s *SummaryService) Summarize(ctx context.Context, company string) (core.CompanySummary, error) {
	rounds, err := s.source.Rounds(ctx)
	if err != nil {
		return core.CompanySummary{}, fmt.Errorf("summarize %q: %w", company, err)
	}

	summary := core.Summarize(rounds, company)
	metrics.SummariesComputed.Inc()
	s.logger.DebugContext(ctx, "Summary computed",
		log.FieldOperation, log.OpSummarize,
		log.FieldCompany, company,
		log.FieldRounds, summary.NumRounds,
		log.FieldAmountCents, summary.TotalRaised.Cents)
	return summary, nil
}

// DatasetVersion exposes the dataset fingerprint for cache keying.
func (s *SummaryService) DatasetVersion(ctx context.Context) (string, error) {
	return s.source.Version(ctx)
}
