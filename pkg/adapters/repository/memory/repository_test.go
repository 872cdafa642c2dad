package memory

import (
	"context"
	"testing"
	"time"

	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo *MemoryRepository, rows [][2]string, at time.Time) {
	t.Helper()
	for _, row := range rows {
		v, err := domain.NewVisit(row[0], row[1], at)
		if err != nil {
			t.Fatal(err)
		}
		if err := repo.AppendVisit(context.Background(), v); err != nil {
			t.Fatal(err)
		}
	}
}

func TestAggregation(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	seed(t, repo, [][2]string{
		{"10.0.0.1", "https://example.com/blog"},
		{"10.0.0.1", "https://example.com/blog"},
		{"10.0.0.2", "https://example.com/blog"},
		{"10.0.0.3", "https://example.com/about"},
		{"10.0.0.4", "https://blog.example.com/post"},
	}, base)
	seed(t, repo, [][2]string{
		{"10.0.0.5", "https://example.com/about"},
	}, base.Add(48*time.Hour))

	pages, err := repo.PageAnalytics(ctx, domain.AnalyticsFilter{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if pages[0].Path != "/blog" || pages[0].TotalVisits != 3 || pages[0].UniqueVisits != 2 {
		t.Errorf("pages[0] = %+v", pages[0])
	}
	if pages[1].Path != "/about" || pages[1].TotalVisits != 2 || pages[1].UniqueVisits != 2 {
		t.Errorf("pages[1] = %+v", pages[1])
	}
	if pages[1].FirstVisit.String() != "2024-03-01 09:00:00" || pages[1].LastVisit.String() != "2024-03-03 09:00:00" {
		t.Errorf("first/last = %s / %s", pages[1].FirstVisit, pages[1].LastVisit)
	}

	filtered, _ := repo.PageAnalytics(ctx, domain.BuildFilter("", "", "example.com"), 0, 0)
	for _, p := range filtered {
		if p.Domain != "example.com" {
			t.Errorf("domain filter leaked %s", p.Domain)
		}
	}

	byDate, _ := repo.PageAnalytics(ctx, domain.BuildFilter("2024-03-02", "", ""), 0, 0)
	if len(byDate) != 1 || byDate[0].TotalVisits != 1 {
		t.Errorf("date filter = %+v", byDate)
	}

	count, _ := repo.CountPages(ctx, domain.AnalyticsFilter{})
	if count != 3 {
		t.Errorf("CountPages = %d", count)
	}

	slice, _ := repo.PageAnalytics(ctx, domain.AnalyticsFilter{}, 2, 2)
	if len(slice) != 1 || slice[0].Domain != "blog.example.com" {
		t.Errorf("offset slice = %+v", slice)
	}
	empty, _ := repo.PageAnalytics(ctx, domain.AnalyticsFilter{}, 5, 2)
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}
}

func TestSummaryQueries(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	seed(t, repo, [][2]string{
		{"1.1.1.1", "https://a.com/"},
		{"1.1.1.1", "https://a.com/x"},
		{"2.2.2.2", "https://b.com/"},
	}, base)

	top, _ := repo.TopDomains(ctx, domain.AnalyticsFilter{}, 10)
	if len(top) != 2 || top[0] != "a.com" || top[1] != "b.com" {
		t.Errorf("TopDomains = %v", top)
	}
	for _, limit := range []int{0, -1} {
		top, _ = repo.TopDomains(ctx, domain.AnalyticsFilter{}, limit)
		if top == nil || len(top) != 0 {
			t.Errorf("TopDomains(limit=%d) = %v, want empty", limit, top)
		}
	}

	totals, _ := repo.TotalStatistics(ctx, domain.AnalyticsFilter{})
	if totals != (domain.Totals{UniqueVisits: 2, TotalVisits: 3, Pages: 3}) {
		t.Errorf("TotalStatistics = %+v", totals)
	}

	p, _ := repo.PageAnalyticsByURL(ctx, "https://a.com/x", nil)
	if p == nil || p.TotalVisits != 1 {
		t.Errorf("PageAnalyticsByURL = %+v", p)
	}
	p, _ = repo.PageAnalyticsByURL(ctx, "https://c.com/", nil)
	if p != nil {
		t.Errorf("expected nil for unknown URL, got %+v", p)
	}
}

func TestPageAnalyticsNegativeOffset(t *testing.T) {
	repo := NewMemoryRepository()
	seed(t, repo, [][2]string{{"1.1.1.1", "https://a.com/"}}, base)

	pages, err := repo.PageAnalytics(context.Background(), domain.AnalyticsFilter{}, -5, 10)
	if err != nil || pages == nil || len(pages) != 0 {
		t.Errorf("PageAnalytics(offset=-5) = %v, %v; want empty", pages, err)
	}
}

func TestDumpIsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	seed(t, repo, [][2]string{{"1.1.1.1", "https://a.com/"}}, base)

	dump, _ := repo.Dump(context.Background())
	dump[0].Domain = "changed"

	again, _ := repo.Dump(context.Background())
	if again[0].Domain != "a.com" || again[0].ID != 1 {
		t.Errorf("Dump exposed internal state: %+v", again[0])
	}
}
