package services

import (
	"context"
	"fmt"

	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/visit-tracker/pkg/core/pagination"
	"github.com/wadjakorntonsri/visit-tracker/pkg/metrics"
	"github.com/wadjakorntonsri/visit-tracker/pkg/ports"
)

const (
	DefaultTopDomains = 10
	MaxTopDomains     = 50
)

type AnalyticsService struct {
	repo ports.AnalyticsRepository
}

func NewAnalyticsService(repo ports.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// GetPageAnalytics returns one page of per-page aggregates. Bad page or limit
// values fail before storage is queried.
func (s *AnalyticsService) GetPageAnalytics(ctx context.Context, filter domain.AnalyticsFilter, page, limit int) ([]domain.PageAnalytics, pagination.Pagination, error) {
	if err := pagination.Validate(page, limit); err != nil {
		return nil, pagination.Pagination{}, err
	}

	total, err := s.repo.CountPages(ctx, filter)
	if err != nil {
		metrics.StorageErrors.WithLabelValues("count_pages").Inc()
		return nil, pagination.Pagination{}, fmt.Errorf("count pages: %w", err)
	}

	meta, err := pagination.New(page, limit, total)
	if err != nil {
		return nil, pagination.Pagination{}, err
	}

	items := []domain.PageAnalytics{}
	if meta.InRange() {
		items, err = s.repo.PageAnalytics(ctx, filter, meta.Offset(), limit)
		if err != nil {
			metrics.StorageErrors.WithLabelValues("page_analytics").Inc()
			return nil, pagination.Pagination{}, fmt.Errorf("page analytics: %w", err)
		}
	}

	return items, meta, nil
}

// GetSummary returns scope-wide totals and the busiest domains.
func (s *AnalyticsService) GetSummary(ctx context.Context, filter domain.AnalyticsFilter, topN int) (*ports.Summary, error) {
	if topN < 1 {
		topN = DefaultTopDomains
	}
	if topN > MaxTopDomains {
		topN = MaxTopDomains
	}

	totals, err := s.repo.TotalStatistics(ctx, filter)
	if err != nil {
		metrics.StorageErrors.WithLabelValues("total_statistics").Inc()
		return nil, fmt.Errorf("total statistics: %w", err)
	}

	top, err := s.repo.TopDomains(ctx, filter, topN)
	if err != nil {
		metrics.StorageErrors.WithLabelValues("top_domains").Inc()
		return nil, fmt.Errorf("top domains: %w", err)
	}
	if top == nil {
		top = []string{}
	}

	return &ports.Summary{Totals: totals, TopDomains: top}, nil
}

// GetPageAnalyticsByURL returns nil when the URL has no visits in range.
func (s *AnalyticsService) GetPageAnalyticsByURL(ctx context.Context, url string, filter domain.AnalyticsFilter) (*domain.PageAnalytics, error) {
	if url == "" {
		return nil, domain.InvalidArgument("URL is required")
	}

	page, err := s.repo.PageAnalyticsByURL(ctx, url, filter.DateRange())
	if err != nil {
		metrics.StorageErrors.WithLabelValues("page_analytics_by_url").Inc()
		return nil, fmt.Errorf("page analytics by url: %w", err)
	}
	return page, nil
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)
