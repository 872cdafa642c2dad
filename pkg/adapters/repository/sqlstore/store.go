// Package sqlstore implements the visit and analytics repositories over
// database/sql. Driver-specific adapters supply the connection, schema and
// placeholder style.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/visit-tracker/pkg/ports"
)

type Store struct {
	db          *sql.DB
	placeholder Placeholder
	// returningID uses INSERT ... RETURNING id instead of LastInsertId.
	returningID bool
}

func New(db *sql.DB, placeholder Placeholder, returningID bool) *Store {
	return &Store{db: db, placeholder: placeholder, returningID: returningID}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) rebind(query string) string {
	return s.placeholder.Rebind(query)
}

func (s *Store) AppendVisit(ctx context.Context, visit *domain.Visit) error {
	args := []interface{}{visit.IPAddress, visit.URL, visit.Domain, visit.Path, formatTime(visit.CreatedAt)}

	if s.returningID {
		var id int64
		err := s.db.QueryRowContext(ctx, s.rebind(insertVisitQuery+" RETURNING id"), args...).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert visit: %w", err)
		}
		visit.ID = id
		return nil
	}

	res, err := s.db.ExecContext(ctx, s.rebind(insertVisitQuery), args...)
	if err != nil {
		return fmt.Errorf("failed to insert visit: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		visit.ID = id
	}
	return nil
}

func (s *Store) CountVisits(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visits`).Scan(&count)
	return count, err
}

func (s *Store) Dump(ctx context.Context) ([]domain.Visit, error) {
	query := `SELECT id, ip_address, page_url, page_domain, page_path, created_at FROM visits ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []domain.Visit
	for rows.Next() {
		var v domain.Visit
		var createdAt dbTime
		if err := rows.Scan(&v.ID, &v.IPAddress, &v.URL, &v.Domain, &v.Path, &createdAt); err != nil {
			return nil, err
		}
		v.CreatedAt = time.Time(createdAt)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (s *Store) PageAnalytics(ctx context.Context, filter domain.AnalyticsFilter, offset, limit int) ([]domain.PageAnalytics, error) {
	query, args := pageAnalyticsQuery(filter, offset, limit)

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query page analytics: %w", err)
	}
	defer rows.Close()

	pages := []domain.PageAnalytics{}
	for rows.Next() {
		p, err := scanPageAnalytics(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page analytics: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return pages, nil
}

func (s *Store) CountPages(ctx context.Context, filter domain.AnalyticsFilter) (int64, error) {
	query, args := countPagesQuery(filter)

	var total int64
	if err := s.db.QueryRowContext(ctx, s.rebind(query), args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return total, nil
}

func (s *Store) PageAnalyticsByURL(ctx context.Context, url string, dateRange *domain.DateRange) (*domain.PageAnalytics, error) {
	query, args := pageByURLQuery(url, dateRange)

	row := s.db.QueryRowContext(ctx, s.rebind(query), args...)
	p, err := scanPageAnalytics(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query page analytics by url: %w", err)
	}
	return &p, nil
}

// TopDomains returns no domains for a non-positive limit. SQLite reads a
// negative LIMIT as unbounded and Postgres rejects it.
func (s *Store) TopDomains(ctx context.Context, filter domain.AnalyticsFilter, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	query, args := topDomainsQuery(filter, limit)

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top domains: %w", err)
	}
	defer rows.Close()

	domains := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	return domains, rows.Err()
}

func (s *Store) TotalStatistics(ctx context.Context, filter domain.AnalyticsFilter) (domain.Totals, error) {
	query, args := totalsQuery(filter)

	var t domain.Totals
	err := s.db.QueryRowContext(ctx, s.rebind(query), args...).Scan(&t.UniqueVisits, &t.TotalVisits, &t.Pages)
	if err != nil {
		return domain.Totals{}, fmt.Errorf("failed to query totals: %w", err)
	}
	return t, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPageAnalytics(row scanner) (domain.PageAnalytics, error) {
	var p domain.PageAnalytics
	var first, last dbTime
	if err := row.Scan(&p.URL, &p.Domain, &p.Path, &p.UniqueVisits, &p.TotalVisits, &first, &last); err != nil {
		return domain.PageAnalytics{}, err
	}
	p.FirstVisit = domain.Timestamp(first)
	p.LastVisit = domain.Timestamp(last)
	return p, nil
}

var _ ports.VisitRepository = (*Store)(nil)
var _ ports.AnalyticsRepository = (*Store)(nil)
