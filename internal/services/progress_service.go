package services

import (
	"context"
	"sort"

	"github.com/flashflow/flashflow/internal/logger"
	"github.com/flashflow/flashflow/internal/metrics"
	"github.com/flashflow/flashflow/internal/models"
	"github.com/flashflow/flashflow/internal/store"
)

// ProgressService exposes the derived progress and mastery figures.
type ProgressService interface {
	Entries(ctx context.Context) []models.DailyProgress
	Summary(ctx context.Context) models.SummaryStats
	Distribution(ctx context.Context) []models.DistributionBucket
	TopicProgress(ctx context.Context) []models.TopicProgress
	Activity(ctx context.Context, days int) []models.ActivityPoint
	Reset(ctx context.Context) error
}

type progressService struct {
	store        *store.Store
	activityDays int
}

// NewProgressService creates a new ProgressService. activityDays is
// the default window for the review-activity series.
func NewProgressService(st *store.Store, activityDays int) ProgressService {
	return &progressService{store: st, activityDays: activityDays}
}

func (s *progressService) Entries(ctx context.Context) []models.DailyProgress {
	entries := s.store.Progress()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries
}

func (s *progressService) Summary(ctx context.Context) models.SummaryStats {
	log := logger.FromContext(ctx)
	log.Debug("building summary stats")

	cards := s.store.List()
	entries := s.store.Progress()
	now := s.store.Now()

	return models.SummaryStats{
		TotalCards:       len(cards),
		DueToday:         len(s.store.DueCards(now)),
		OverallMastery:   metrics.OverallMastery(cards),
		TotalReviews:     metrics.TotalReviews(entries),
		Streak:           metrics.Streaks(entries, now),
		AvgReviewsPerDay: metrics.AvgReviewsPerDay(entries),
	}
}

func (s *progressService) Distribution(ctx context.Context) []models.DistributionBucket {
	return metrics.Distribution(s.store.List())
}

func (s *progressService) TopicProgress(ctx context.Context) []models.TopicProgress {
	return metrics.TopicProgress(s.store.List())
}

func (s *progressService) Activity(ctx context.Context, days int) []models.ActivityPoint {
	if days <= 0 {
		days = s.activityDays
	}
	return metrics.Activity(s.store.Progress(), s.store.Now(), days)
}

func (s *progressService) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("resetting all data")

	if err := s.store.Reset(ctx); err != nil {
		log.Error("failed to reset: %v", err)
		return wrapErr(err)
	}
	return nil
}
