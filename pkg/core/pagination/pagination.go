// Package pagination slices ordered result sets into pages and describes them.
package pagination

import (
	"math"

	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination describes one page of an ordered result set.
type Pagination struct {
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	Total           int64 `json:"total"`
	TotalPages      int   `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

// Validate checks page and limit bounds without computing anything.
func Validate(page, limit int) error {
	if page < 1 {
		return domain.InvalidArgument("Page must be at least 1")
	}
	if limit < 1 || limit > MaxLimit {
		return domain.InvalidArgument("Limit must be between 1 and %d", MaxLimit)
	}
	return nil
}

// New computes metadata for page of size limit over total items.
func New(page, limit int, total int64) (Pagination, error) {
	if err := Validate(page, limit); err != nil {
		return Pagination{}, err
	}
	if total < 0 {
		total = 0
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:            page,
		Limit:           limit,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}, nil
}

// Offset is the index of the first item on the page. It saturates at
// math.MaxInt instead of wrapping for absurdly large pages.
func (p Pagination) Offset() int {
	if p.Limit <= 0 || p.Page <= 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// InRange reports whether the page holds at least one item.
func (p Pagination) InRange() bool {
	return p.Page <= p.TotalPages
}

// Paginate returns the items of page from an already ordered slice. A page
// past the end yields an empty slice, not an error.
func Paginate[T any](items []T, page, limit int) ([]T, Pagination, error) {
	p, err := New(page, limit, int64(len(items)))
	if err != nil {
		return nil, Pagination{}, err
	}

	if !p.InRange() {
		return []T{}, p, nil
	}
	offset := p.Offset()
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], p, nil
}
