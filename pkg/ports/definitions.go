package ports

import (
	"context"

	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/visit-tracker/pkg/core/pagination"
)

// VisitRepository defines append-only storage for visits
type VisitRepository interface {
	AppendVisit(ctx context.Context, visit *domain.Visit) error
	CountVisits(ctx context.Context) (int64, error)
	Dump(ctx context.Context) ([]domain.Visit, error) // For migration
}

// AnalyticsRepository defines the aggregate reads over stored visits
type AnalyticsRepository interface {
	// PageAnalytics returns pages ordered by total then unique visits.
	// A limit <= 0 returns every page.
	PageAnalytics(ctx context.Context, filter domain.AnalyticsFilter, offset, limit int) ([]domain.PageAnalytics, error)
	CountPages(ctx context.Context, filter domain.AnalyticsFilter) (int64, error)
	PageAnalyticsByURL(ctx context.Context, url string, dateRange *domain.DateRange) (*domain.PageAnalytics, error)
	// TopDomains orders domains by visit count. A limit <= 0 returns none.
	TopDomains(ctx context.Context, filter domain.AnalyticsFilter, limit int) ([]string, error)
	TotalStatistics(ctx context.Context, filter domain.AnalyticsFilter) (domain.Totals, error)
}

// Repository is what a storage adapter provides
type Repository interface {
	VisitRepository
	AnalyticsRepository
	Close() error
}

// TrackingService records page views
type TrackingService interface {
	RecordVisit(ctx context.Context, ip, pageURL string) error
}

// Summary is the dashboard headline for a filter scope
type Summary struct {
	Totals     domain.Totals `json:"totals"`
	TopDomains []string      `json:"top_domains"`
}

// AnalyticsService defines the read-side operations
type AnalyticsService interface {
	GetPageAnalytics(ctx context.Context, filter domain.AnalyticsFilter, page, limit int) ([]domain.PageAnalytics, pagination.Pagination, error)
	GetSummary(ctx context.Context, filter domain.AnalyticsFilter, topN int) (*Summary, error)
	GetPageAnalyticsByURL(ctx context.Context, url string, filter domain.AnalyticsFilter) (*domain.PageAnalytics, error)
}
