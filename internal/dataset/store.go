package dataset

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"fundboard/internal/core"
	"fundboard/internal/log"
	"fundboard/internal/metrics"
)

// Store caches the loaded dataset for the life of the process. The
// cached slice is reloaded only when the source file's fingerprint
// (mtime + size) changes; nothing mutates it after load, so it is safe
// to share across concurrent requests.
type Store struct {
	path   string
	logger *log.Logger

	mu        sync.RWMutex
	loaded    bool
	version   string
	rounds    []core.FundingRound
	companies []string
}

// NewStore creates a store for the dataset at path. Loading is lazy:
// the first read triggers the parse.
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Store{
		path:   path,
		logger: logger.WithComponent(log.ComponentDataset),
	}
}

// Rounds returns every funding round, ascending by announced date.
// Callers must treat the returned slice as read-only.
func (s *Store) Rounds(ctx context.Context) ([]core.FundingRound, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rounds, nil
}

// Companies returns the sorted distinct organization names.
func (s *Store) Companies(ctx context.Context) ([]string, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.companies))
	copy(out, s.companies)
	return out, nil
}

// Version returns an opaque fingerprint of the loaded dataset. It
// changes whenever the source file changes, which makes it usable as a
// cache-key component for values derived from the dataset.
func (s *Store) Version(ctx context.Context) (string, error) {
	if err := s.ensure(ctx); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version, nil
}

// ensure loads the dataset if it has not been loaded yet, or reloads
// it when the source file fingerprint no longer matches.
func (s *Store) ensure(ctx context.Context) error {
	current, err := s.fingerprint()
	if err != nil {
		return err
	}

	s.mu.RLock()
	upToDate := s.loaded && s.version == current
	s.mu.RUnlock()
	if upToDate {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have reloaded while we waited on the lock.
	if s.loaded && s.version == current {
		return nil
	}

	op := log.OpLoad
	if s.loaded {
		op = log.OpReload
	}

	timer := metrics.NewTimer()
	rounds, err := Load(s.path)
	if err != nil {
		metrics.DatasetLoadsTotal.WithLabelValues("error").Inc()
		s.logger.ErrorContext(ctx, "Dataset load failed",
			log.FieldOperation, op,
			log.FieldDatasetPath, s.path,
			log.FieldError, err)
		return err
	}
	timer.ObserveDatasetLoad()
	metrics.DatasetLoadsTotal.WithLabelValues("ok").Inc()

	s.rounds = rounds
	s.companies = distinctCompanies(rounds)
	s.version = current
	s.loaded = true

	metrics.DatasetRounds.Set(float64(len(s.rounds)))
	metrics.DatasetCompanies.Set(float64(len(s.companies)))
	s.logger.InfoContext(ctx, "Dataset loaded",
		log.FieldOperation, op,
		log.FieldDatasetPath, s.path,
		log.FieldDatasetVer, s.version,
		log.FieldRounds, len(s.rounds),
		log.FieldCompanies, len(s.companies))
	return nil
}

func (s *Store) fingerprint() (string, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("stat dataset: %w", err)
	}
	return fmt.Sprintf("%d-%d", fi.ModTime().UnixNano(), fi.Size()), nil
}

func distinctCompanies(rounds []core.FundingRound) []string {
	seen := make(map[string]struct{}, len(rounds))
	var out []string
	for _, r := range rounds {
		if _, ok := seen[r.Company]; ok {
			continue
		}
		seen[r.Company] = struct{}{}
		out = append(out, r.Company)
	}
	sort.Strings(out)
	return out
}
