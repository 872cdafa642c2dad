package pagination

import (
	"math"
	"testing"

	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		want      Pagination
		wantError string
	}{
		{
			name:  "first of several",
			page:  1,
			limit: 10,
			total: 25,
			want:  Pagination{Page: 1, Limit: 10, Total: 25, TotalPages: 3, HasNextPage: true},
		},
		{
			name:  "last page",
			page:  3,
			limit: 10,
			total: 25,
			want:  Pagination{Page: 3, Limit: 10, Total: 25, TotalPages: 3, HasPreviousPage: true},
		},
		{
			name:  "exact multiple",
			page:  2,
			limit: 5,
			total: 10,
			want:  Pagination{Page: 2, Limit: 5, Total: 10, TotalPages: 2, HasPreviousPage: true},
		},
		{
			name:  "empty",
			page:  1,
			limit: 20,
			total: 0,
			want:  Pagination{Page: 1, Limit: 20, Total: 0, TotalPages: 0},
		},
		{name: "page zero", page: 0, limit: 10, wantError: "Page must be at least 1"},
		{name: "limit zero", page: 1, limit: 0, wantError: "Limit must be between 1 and 100"},
		{name: "limit too large", page: 1, limit: 200, wantError: "Limit must be between 1 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.page, tt.limit, tt.total)
			if tt.wantError != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tt.wantError)
				}
				if !domain.IsInvalidArgument(err) {
					t.Errorf("expected invalid argument error, got %T", err)
				}
				if err.Error() != tt.wantError {
					t.Errorf("error = %q, want %q", err.Error(), tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	page, meta, err := Paginate(items, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 2 || page[0] != "c" || page[1] != "d" {
		t.Errorf("page 2 = %v, want [c d]", page)
	}
	if meta.TotalPages != 3 || !meta.HasNextPage || !meta.HasPreviousPage {
		t.Errorf("unexpected metadata %+v", meta)
	}

	page, _, _ = Paginate(items, 3, 2)
	if len(page) != 1 || page[0] != "e" {
		t.Errorf("page 3 = %v, want [e]", page)
	}
}

func TestPaginateBeyondEnd(t *testing.T) {
	items := []int{1, 2, 3}

	page, meta, err := Paginate(items, 10, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page == nil || len(page) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", page)
	}
	if meta.Total != 3 || meta.TotalPages != 2 || meta.HasNextPage {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestPaginateNeverExceedsLimit(t *testing.T) {
	items := make([]int, 57)
	for limit := 1; limit <= MaxLimit; limit += 7 {
		for page := 1; page <= 10; page++ {
			got, _, err := Paginate(items, page, limit)
			if err != nil {
				t.Fatalf("page=%d limit=%d: %v", page, limit, err)
			}
			if len(got) > limit {
				t.Fatalf("page=%d limit=%d returned %d items", page, limit, len(got))
			}
		}
	}
}

func TestOffset(t *testing.T) {
	p, _ := New(4, 25, 1000)
	if p.Offset() != 75 {
		t.Errorf("Offset() = %d, want 75", p.Offset())
	}
}

func TestPaginateHugePage(t *testing.T) {
	page, meta, err := Paginate([]int{1, 2, 3}, 92233720368547760, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page == nil || len(page) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", page)
	}
	if meta.TotalPages != 1 || meta.HasNextPage || !meta.HasPreviousPage {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestOffsetSaturates(t *testing.T) {
	p := Pagination{Page: 92233720368547760, Limit: 100}
	if p.Offset() != math.MaxInt {
		t.Errorf("Offset() = %d, want %d", p.Offset(), math.MaxInt)
	}
	p = Pagination{Page: math.MaxInt, Limit: MaxLimit}
	if p.Offset() < 0 {
		t.Errorf("Offset() wrapped to %d", p.Offset())
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		page  int
		total int64
		want  bool
	}{
		{page: 1, total: 0, want: false},
		{page: 1, total: 1, want: true},
		{page: 2, total: 20, want: false},
		{page: 2, total: 21, want: true},
		{page: math.MaxInt, total: 21, want: false},
	}
	for _, tt := range tests {
		p, err := New(tt.page, 20, tt.total)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.InRange(); got != tt.want {
			t.Errorf("page=%d total=%d InRange() = %v, want %v", tt.page, tt.total, got, tt.want)
		}
	}
}
