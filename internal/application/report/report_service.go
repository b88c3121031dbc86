package report

import (
	"context"
	"time"

	"github.com/printshop/backend/internal/domain/report"
	"go.uber.org/zap"
)

// ReportCache caches the derived report read models. Implementations
// treat misses and backend failures alike: (nil, nil) means compute.
type ReportCache interface {
	GetDashboard(ctx context.Context) (*report.DashboardSummary, error)
	SetDashboard(ctx context.Context, summary *report.DashboardSummary) error
	GetMovementTotals(ctx context.Context, from, to time.Time) ([]report.MovementTotal, error)
	SetMovementTotals(ctx context.Context, from, to time.Time, totals []report.MovementTotal) error
	Invalidate(ctx context.Context) error
}

// Service serves the dashboard and movement reports. The figures are
// derived entirely from the other contexts' tables; a short-lived cache
// keeps repeated dashboard hits off the database. The cache is
// optional, and cache failures degrade to a direct read.
type Service struct {
	reports report.ReportRepository
	cache   ReportCache
	logger  *zap.Logger
}

// NewService creates a new report Service. cache may be nil.
func NewService(reports report.ReportRepository, cache ReportCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reports: reports,
		cache:   cache,
		logger:  logger,
	}
}

// GetDashboard returns the point-in-time financial summary
func (s *Service) GetDashboard(ctx context.Context) (*report.DashboardSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDashboard(ctx)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	summary, err := s.reports.GetDashboardSummary(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, summary); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// GetMovementTotals returns per-type movement totals over a date range.
// A zero from/to defaults to the current month.
func (s *Service) GetMovementTotals(ctx context.Context, from, to time.Time) ([]report.MovementTotal, error) {
	if from.IsZero() || to.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = now
	}

	if s.cache != nil {
		cached, err := s.cache.GetMovementTotals(ctx, from, to)
		if err != nil {
			s.logger.Warn("movement totals cache read failed", zap.Error(err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	totals, err := s.reports.GetMovementTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetMovementTotals(ctx, from, to, totals); err != nil {
			s.logger.Warn("movement totals cache write failed", zap.Error(err))
		}
	}
	return totals, nil
}

// InvalidateCache drops the cached dashboard after a write elsewhere
func (s *Service) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}
