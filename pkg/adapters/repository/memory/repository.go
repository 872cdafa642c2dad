// Package memory keeps visits in process memory. It backs DATABASE_URL=memory:
// and the service tests; data does not survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/visit-tracker/pkg/ports"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	visits []domain.Visit
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) AppendVisit(ctx context.Context, visit *domain.Visit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	visit.ID = r.nextID
	r.nextID++
	r.visits = append(r.visits, *visit)
	return nil
}

func (r *MemoryRepository) CountVisits(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.visits)), nil
}

func (r *MemoryRepository) Dump(ctx context.Context) ([]domain.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Visit, len(r.visits))
	copy(out, r.visits)
	return out, nil
}

func (r *MemoryRepository) PageAnalytics(ctx context.Context, filter domain.AnalyticsFilter, offset, limit int) ([]domain.PageAnalytics, error) {
	pages := r.aggregate(filter)
	if limit <= 0 {
		return pages, nil
	}
	if offset < 0 || offset >= len(pages) {
		return []domain.PageAnalytics{}, nil
	}
	end := offset + limit
	if end > len(pages) {
		end = len(pages)
	}
	return pages[offset:end], nil
}

func (r *MemoryRepository) CountPages(ctx context.Context, filter domain.AnalyticsFilter) (int64, error) {
	return int64(len(r.aggregate(filter))), nil
}

func (r *MemoryRepository) PageAnalyticsByURL(ctx context.Context, url string, dateRange *domain.DateRange) (*domain.PageAnalytics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var acc *accumulator
	for _, v := range r.visits {
		if v.URL != url || (dateRange != nil && !dateRange.Contains(v.CreatedAt)) {
			continue
		}
		if acc == nil {
			acc = newAccumulator(v)
		}
		acc.add(v)
	}
	if acc == nil {
		return nil, nil
	}
	p := acc.result()
	return &p, nil
}

func (r *MemoryRepository) TopDomains(ctx context.Context, filter domain.AnalyticsFilter, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	r.mu.RLock()
	counts := map[string]int64{}
	for _, v := range r.visits {
		if filter.Matches(v) {
			counts[v.Domain]++
		}
	}
	r.mu.RUnlock()

	domains := make([]string, 0, len(counts))
	for d := range counts {
		domains = append(domains, d)
	}
	sort.Slice(domains, func(i, j int) bool {
		if counts[domains[i]] != counts[domains[j]] {
			return counts[domains[i]] > counts[domains[j]]
		}
		return domains[i] < domains[j]
	})
	if len(domains) > limit {
		domains = domains[:limit]
	}
	return domains, nil
}

func (r *MemoryRepository) TotalStatistics(ctx context.Context, filter domain.AnalyticsFilter) (domain.Totals, error) {
	r.mu.RLock()
	var t domain.Totals
	ips := map[string]struct{}{}
	pages := map[pageKey]struct{}{}
	for _, v := range r.visits {
		if !filter.Matches(v) {
			continue
		}
		t.TotalVisits++
		ips[v.IPAddress] = struct{}{}
		pages[pageKey{v.Domain, v.Path}] = struct{}{}
	}
	r.mu.RUnlock()

	t.UniqueVisits = int64(len(ips))
	t.Pages = int64(len(pages))
	return t, nil
}

func (r *MemoryRepository) Close() error {
	return nil
}

type pageKey struct {
	domain string
	path   string
}

type accumulator struct {
	page  domain.PageAnalytics
	ips   map[string]struct{}
	first time.Time
	last  time.Time
}

func newAccumulator(v domain.Visit) *accumulator {
	return &accumulator{
		page:  domain.PageAnalytics{URL: v.URL, Domain: v.Domain, Path: v.Path},
		ips:   map[string]struct{}{},
		first: v.CreatedAt,
		last:  v.CreatedAt,
	}
}

func (a *accumulator) add(v domain.Visit) {
	a.page.TotalVisits++
	a.ips[v.IPAddress] = struct{}{}
	if v.URL < a.page.URL {
		a.page.URL = v.URL
	}
	if v.CreatedAt.Before(a.first) {
		a.first = v.CreatedAt
	}
	if v.CreatedAt.After(a.last) {
		a.last = v.CreatedAt
	}
}

func (a *accumulator) result() domain.PageAnalytics {
	p := a.page
	p.UniqueVisits = int64(len(a.ips))
	p.FirstVisit = domain.Timestamp(a.first)
	p.LastVisit = domain.Timestamp(a.last)
	return p
}

// aggregate groups matching visits by (domain, path) in the same order the
// SQL adapters use.
func (r *MemoryRepository) aggregate(filter domain.AnalyticsFilter) []domain.PageAnalytics {
	r.mu.RLock()
	groups := map[pageKey]*accumulator{}
	for _, v := range r.visits {
		if !filter.Matches(v) {
			continue
		}
		key := pageKey{v.Domain, v.Path}
		acc, ok := groups[key]
		if !ok {
			acc = newAccumulator(v)
			groups[key] = acc
		}
		acc.add(v)
	}
	r.mu.RUnlock()

	pages := make([]domain.PageAnalytics, 0, len(groups))
	for _, acc := range groups {
		pages = append(pages, acc.result())
	}
	sort.Slice(pages, func(i, j int) bool {
		a, b := pages[i], pages[j]
		if a.TotalVisits != b.TotalVisits {
			return a.TotalVisits > b.TotalVisits
		}
		if a.UniqueVisits != b.UniqueVisits {
			return a.UniqueVisits > b.UniqueVisits
		}
		if a.Domain != b.Domain {
			return a.Domain < b.Domain
		}
		return a.Path < b.Path
	})
	return pages
}

var _ ports.Repository = (*MemoryRepository)(nil)
