package services

import (
	"context"
	"fmt"
	"time"

	"github.com/wadjakorntonsri/visit-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/visit-tracker/pkg/logging"
	"github.com/wadjakorntonsri/visit-tracker/pkg/metrics"
	"github.com/wadjakorntonsri/visit-tracker/pkg/ports"
)

type TrackingService struct {
	repo ports.VisitRepository
	now  func() time.Time
}

func NewTrackingService(repo ports.VisitRepository) *TrackingService {
	return &TrackingService{repo: repo, now: time.Now}
}

// RecordVisit validates ip and pageURL and appends a visit. Validation
// failures return a domain.InvalidArgumentError and never reach storage.
func (s *TrackingService) RecordVisit(ctx context.Context, ip, pageURL string) error {
	visit, err := domain.NewVisit(ip, pageURL, s.now())
	if err != nil {
		metrics.VisitsRejected.WithLabelValues("validation").Inc()
		return err
	}

	// Single attempt; no retry.
	if err := s.repo.AppendVisit(ctx, visit); err != nil {
		metrics.StorageErrors.WithLabelValues("append_visit").Inc()
		return fmt.Errorf("append visit: %w", err)
	}

	metrics.VisitsRecorded.Inc()
	logging.Debug().
		Str("domain", visit.Domain).
		Str("path", visit.Path).
		Msg("visit recorded")
	return nil
}

var _ ports.TrackingService = (*TrackingService)(nil)
