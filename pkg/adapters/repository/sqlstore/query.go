package sqlstore

import (
	"strconv"
	"strings"

	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
)

// Placeholder style of the underlying driver.
type Placeholder int

const (
	Question Placeholder = iota // ?  (sqlite, libsql)
	Dollar                      // $1 (postgres)
)

// Rebind rewrites ? placeholders for the target driver. Queries in this
// package never contain a literal question mark.
func (p Placeholder) Rebind(query string) string {
	if p != Dollar {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const (
	insertVisitQuery = `INSERT INTO visits (ip_address, page_url, page_domain, page_path, created_at) VALUES (?, ?, ?, ?, ?)`

	pageAnalyticsSelect = `
		SELECT MIN(page_url) AS page_url, page_domain, page_path,
			COUNT(DISTINCT ip_address) AS unique_visits,
			COUNT(*) AS total_visits,
			MIN(created_at) AS first_visit,
			MAX(created_at) AS last_visit
		FROM visits`

	pageAnalyticsOrder = `
		GROUP BY page_domain, page_path
		ORDER BY total_visits DESC, unique_visits DESC, page_domain ASC, page_path ASC`
)

// whereClause renders the filter as conjunctive predicates. Date bounds are
// inclusive and compared as TimestampLayout strings.
func whereClause(f domain.AnalyticsFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if r := f.DateRange(); r != nil {
		conditions = append(conditions, "created_at >= ?", "created_at <= ?")
		args = append(args, formatTime(r.Start), formatTime(r.End))
	}
	if f.HasDomainFilter() {
		conditions = append(conditions, "page_domain = ?")
		args = append(args, f.Domain())
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func pageAnalyticsQuery(f domain.AnalyticsFilter, offset, limit int) (string, []interface{}) {
	where, args := whereClause(f)
	query := pageAnalyticsSelect + where + pageAnalyticsOrder
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}
	return query, args
}

func countPagesQuery(f domain.AnalyticsFilter) (string, []interface{}) {
	where, args := whereClause(f)
	return `SELECT COUNT(*) FROM (SELECT 1 FROM visits` + where + ` GROUP BY page_domain, page_path) AS pages`, args
}

func topDomainsQuery(f domain.AnalyticsFilter, limit int) (string, []interface{}) {
	where, args := whereClause(f)
	query := `SELECT page_domain FROM visits` + where + ` GROUP BY page_domain ORDER BY COUNT(*) DESC, page_domain ASC LIMIT ?`
	return query, append(args, limit)
}

func totalsQuery(f domain.AnalyticsFilter) (string, []interface{}) {
	where, args := whereClause(f)
	query := `SELECT COUNT(DISTINCT ip_address), COUNT(*), ` +
		`(SELECT COUNT(*) FROM (SELECT 1 FROM visits` + where + ` GROUP BY page_domain, page_path) AS pages) ` +
		`FROM visits` + where
	// The subquery placeholders come first in the rendered SQL.
	all := make([]interface{}, 0, len(args)*2)
	all = append(all, args...)
	all = append(all, args...)
	return query, all
}

func pageByURLQuery(url string, r *domain.DateRange) (string, []interface{}) {
	query := `
		SELECT page_url, page_domain, page_path,
			COUNT(DISTINCT ip_address), COUNT(*), MIN(created_at), MAX(created_at)
		FROM visits WHERE page_url = ?`
	args := []interface{}{url}
	if r != nil {
		query += " AND created_at >= ? AND created_at <= ?"
		args = append(args, formatTime(r.Start), formatTime(r.End))
	}
	return query + " GROUP BY page_url, page_domain, page_path", args
}
