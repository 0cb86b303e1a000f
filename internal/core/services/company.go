package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
	"github.com/custodia-labs/dri-core/internal/core/ports/driving"
	"github.com/custodia-labs/dri-core/internal/scoring"
)

// Ensure companyService implements CompanyService
var _ driving.CompanyService = (*companyService)(nil)

const (
	// LeaderboardRebuildLock is held by the replica rebuilding the index
	LeaderboardRebuildLock = "leaderboard-rebuild"
	leaderboardRebuildTTL  = time.Minute
)

// CompanyServiceConfig holds the dependencies of a CompanyService.
// Leaderboard, Cache and Lock are optional.
type CompanyServiceConfig struct {
	Store       driven.CompanyStore
	Catalogue   *domain.Catalogue
	Aggregator  *scoring.Aggregator
	Leaderboard driven.Leaderboard
	Cache       driven.ScoreCache
	Lock        driven.DistributedLock
	Logger      *slog.Logger
}

// companyService implements the CompanyService interface
type companyService struct {
	store       driven.CompanyStore
	catalogue   *domain.Catalogue
	aggregator  *scoring.Aggregator
	leaderboard driven.Leaderboard
	cache       driven.ScoreCache
	lock        driven.DistributedLock
	logger      *slog.Logger
	now         func() time.Time
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(cfg CompanyServiceConfig) driving.CompanyService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	aggregator := cfg.Aggregator
	if aggregator == nil {
		aggregator = scoring.NewAggregator(nil)
	}
	return &companyService{
		store:       cfg.Store,
		catalogue:   cfg.Catalogue,
		aggregator:  aggregator,
		leaderboard: cfg.Leaderboard,
		cache:       cfg.Cache,
		lock:        cfg.Lock,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Create stores a new company. Client supplied aggregates are ignored.
func (s *companyService) Create(ctx context.Context, in domain.CompanyInput) (*domain.Company, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	company := &domain.Company{Scores: domain.RawScores{}}
	in.Apply(company)
	s.score(company)
	company.LastUpdated = s.now()

	if err := s.store.Create(ctx, company); err != nil {
		return nil, err
	}
	s.index(ctx, company)

	s.logger.Info("company created", "company_id", company.ID, "overall", company.Overall)
	return company, nil
}

// Get retrieves a company by ID
func (s *companyService) Get(ctx context.Context, id int64) (*domain.Company, error) {
	return s.store.Get(ctx, id)
}

// List retrieves all companies
func (s *companyService) List(ctx context.Context) ([]*domain.Company, error) {
	return s.store.List(ctx)
}

// Update applies a partial update and re-aggregates
func (s *companyService) Update(ctx context.Context, id int64, in domain.CompanyInput) (*domain.Company, error) {
	if in.Name != nil {
		if err := in.Validate(); err != nil {
			return nil, err
		}
	}

	company, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Apply(company)
	if company.Scores == nil {
		company.Scores = domain.RawScores{}
	}
	s.score(company)
	company.LastUpdated = s.now()

	if err := s.store.Update(ctx, company); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	s.index(ctx, company)

	s.logger.Info("company updated", "company_id", id, "overall", company.Overall)
	return company, nil
}

// Delete removes a company and its leaderboard entry
func (s *companyService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	if s.leaderboard != nil {
		if err := s.leaderboard.Remove(ctx, id); err != nil {
			s.logger.Warn("leaderboard remove failed", "company_id", id, "error", err)
		}
	}
	s.logger.Info("company deleted", "company_id", id)
	return nil
}

// Scores returns a fresh aggregate for a stored company, cached per version
func (s *companyService) Scores(ctx context.Context, id int64) (*domain.ScoreResult, error) {
	company, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id, company.LastUpdated)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("score cache read failed", "company_id", id, "error", err)
		}
	}

	result := s.aggregator.AggregateCatalogue(s.catalogue, company.Snapshot().Scores)

	if s.cache != nil {
		if err := s.cache.Set(ctx, id, company.LastUpdated, result); err != nil {
			s.logger.Warn("score cache write failed", "company_id", id, "error", err)
		}
	}
	return &result, nil
}

// Preview aggregates raw scores without storing anything
func (s *companyService) Preview(ctx context.Context, raw domain.RawScores) domain.ScoreResult {
	return s.aggregator.AggregateCatalogue(s.catalogue, raw)
}

// Leaderboard returns companies ranked by overall score. A limit of 0 or
// less returns every company. Falls back to the store when the index fails.
func (s *companyService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if s.leaderboard != nil {
		entries, err := s.leaderboard.Top(ctx, limit)
		if err == nil {
			return entries, nil
		}
		s.logger.Warn("leaderboard index unavailable, ranking from store", "error", err)
	}

	companies, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.LeaderboardEntry, 0, len(companies))
	for _, c := range companies {
		entries = append(entries, domain.LeaderboardEntryFor(c))
	}
	domain.SortLeaderboard(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// RebuildLeaderboard re-aggregates every company against the current
// catalogue, persists changed results and replaces the index when one is
// configured. Only one replica rebuilds at a time; the others return
// immediately.
func (s *companyService) RebuildLeaderboard(ctx context.Context) error {
	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx, LeaderboardRebuildLock, leaderboardRebuildTTL)
		if err != nil {
			return err
		}
		if !acquired {
			s.logger.Info("leaderboard rebuild already running elsewhere")
			return nil
		}
		defer func() { _ = s.lock.Release(ctx, LeaderboardRebuildLock) }()
	}

	companies, err := s.store.List(ctx)
	if err != nil {
		return err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(companies))
	refreshed := 0
	for _, c := range companies {
		before := c.Result()
		s.score(c)
		if !c.Result().Equal(before) {
			if err := s.store.Update(ctx, c); err != nil {
				return err
			}
			s.invalidate(ctx, c.ID)
			refreshed++
		}
		entries = append(entries, domain.LeaderboardEntryFor(c))
	}

	if s.leaderboard != nil {
		if err := s.leaderboard.Replace(ctx, entries); err != nil {
			return err
		}
	}
	s.logger.Info("leaderboard rebuilt", "companies", len(entries), "rescored", refreshed)
	return nil
}

// score aggregates a snapshot so the result never reflects a half-applied write
func (s *companyService) score(c *domain.Company) {
	c.ApplyScores(s.aggregator.AggregateCatalogue(s.catalogue, c.Snapshot().Scores))
}

func (s *companyService) index(ctx context.Context, c *domain.Company) {
	if s.leaderboard == nil {
		return
	}
	if err := s.leaderboard.Upsert(ctx, domain.LeaderboardEntryFor(c)); err != nil {
		s.logger.Warn("leaderboard update failed", "company_id", c.ID, "error", err)
	}
}

func (s *companyService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("score cache invalidate failed", "company_id", id, "error", err)
	}
}

// Ensure indicatorService implements IndicatorService
var _ driving.IndicatorService = (*indicatorService)(nil)

type indicatorService struct {
	catalogue *domain.Catalogue
}

// NewIndicatorService exposes a loaded catalogue
func NewIndicatorService(catalogue *domain.Catalogue) driving.IndicatorService {
	return &indicatorService{catalogue: catalogue}
}

func (s *indicatorService) List(ctx context.Context) []domain.IndicatorDefinition {
	return s.catalogue.Indicators()
}

func (s *indicatorService) Get(ctx context.Context, name string) (domain.IndicatorDefinition, error) {
	ind, ok := s.catalogue.Get(name)
	if !ok {
		return domain.IndicatorDefinition{}, domain.ErrNotFound
	}
	return ind, nil
}
