package service

import (
	"context"
	"time"

	"admitpath/internal/engine"
	"admitpath/internal/repository"

	"go.uber.org/zap"
)

// DeadlineSweeper periodically applies deadline_approaching advisories to
// every roadmap with milestones due inside the window. The event is
// read-only for the plan; notifications flow out through the outbox like any
// other plan update.
type DeadlineSweeper struct {
	roadmapRepo *repository.RoadmapRepository
	planService *PlanService
	logger      *zap.Logger
	withinDays  int
	interval    time.Duration
}

func NewDeadlineSweeper(
	roadmapRepo *repository.RoadmapRepository,
	planService *PlanService,
	logger *zap.Logger,
	withinDays int,
	interval time.Duration,
) *DeadlineSweeper {
	if withinDays <= 0 {
		withinDays = 7
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &DeadlineSweeper{
		roadmapRepo: roadmapRepo,
		planService: planService,
		logger:      logger,
		withinDays:  withinDays,
		interval:    interval,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *DeadlineSweeper) Start(ctx context.Context) {
	s.logger.Info("Starting deadline sweeper",
		zap.Int("within_days", s.withinDays),
		zap.Duration("interval", s.interval),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// One sweep right away so restarts never delay notifications by a
	// whole interval.
	s.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Deadline sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep applies one deadline_approaching advisory per affected roadmap.
func (s *DeadlineSweeper) Sweep(ctx context.Context) {
	ids, err := s.roadmapRepo.ListIDsWithDeadlinesWithin(ctx, s.withinDays)
	if err != nil {
		s.logger.Error("Failed to list roadmaps for deadline sweep", zap.Error(err))
		return
	}

	if len(ids) == 0 {
		s.logger.Debug("No roadmaps with approaching deadlines")
		return
	}

	s.logger.Info("Sweeping roadmaps with approaching deadlines",
		zap.Int("count", len(ids)),
	)

	for _, id := range ids {
		res, err := s.planService.ApplyEvent(ctx, id, engine.DeadlineApproaching{WithinDays: s.withinDays})
		if err != nil {
			s.logger.Error("Failed to apply deadline advisory",
				zap.String("roadmap_id", id.String()),
				zap.Error(err),
			)
			continue
		}
		if res.Notification != "" {
			s.logger.Debug("Deadline advisory queued",
				zap.String("roadmap_id", id.String()),
				zap.String("notification", res.Notification),
			)
		}
	}
}
