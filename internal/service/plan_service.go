package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	contracts "admitpath/contracts/mq"
	"admitpath/internal/engine"
	"admitpath/internal/model"
	"admitpath/internal/repository"
	"admitpath/pkg/logger"
	"admitpath/pkg/metrics"
	"admitpath/pkg/outbox"
	"admitpath/pkg/trace"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PlanService is the only path that mutates roadmap state. Every update is a
// load -> engine.Apply -> store cycle; concurrent events against the same
// roadmap are serialized by a per-roadmap lock, and the resulting MQ events
// commit through the outbox in the same transaction as the mutation.
type PlanService struct {
	db            *pgxpool.Pool
	roadmapRepo   *repository.RoadmapRepository
	milestoneRepo *repository.MilestoneRepository
	outboxRepo    *outbox.Repository
	textGen       *TextGenClient
	logger        *zap.Logger

	locks sync.Map // roadmap id -> *sync.Mutex
}

func NewPlanService(
	db *pgxpool.Pool,
	roadmapRepo *repository.RoadmapRepository,
	milestoneRepo *repository.MilestoneRepository,
	textGen *TextGenClient,
	logger *zap.Logger,
) *PlanService {
	return &PlanService{
		db:            db,
		roadmapRepo:   roadmapRepo,
		milestoneRepo: milestoneRepo,
		outboxRepo:    outbox.NewRepository(db),
		textGen:       textGen,
		logger:        logger,
	}
}

func (s *PlanService) lockFor(roadmapID uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(roadmapID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// CreateRoadmap classifies the user's segment, builds the milestone catalog
// and persists the new roadmap. Milestone prose is offered to the external
// text generator; on failure the template text stands.
func (s *PlanService) CreateRoadmap(ctx context.Context, profile model.Profile) (model.Roadmap, error) {
	log := s.loggerFor(ctx)

	segment := engine.ClassifySegment(profile.IncomeBracket, profile.BudgetBracket)
	now := time.Now()
	catalog := engine.BuildCatalog(profile.Role, profile.TargetRegion, profile.GradeLevel, segment, now)
	roadmap := engine.NewRoadmap(profile.UserID, catalog, now)

	log.Info("Building roadmap from catalog",
		zap.Int("user_id", profile.UserID),
		zap.String("role", string(profile.Role)),
		zap.String("segment", string(segment)),
		zap.Int("milestone_count", len(catalog)),
	)

	s.textGen.RewriteMilestones(ctx, profile, &roadmap)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return model.Roadmap{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.roadmapRepo.Insert(ctx, tx, &roadmap); err != nil {
		return model.Roadmap{}, err
	}
	if err := s.milestoneRepo.BulkInsert(ctx, tx, roadmap.Milestones()); err != nil {
		return model.Roadmap{}, err
	}

	roadmapID := roadmap.ID.String()
	created := contracts.RoadmapCreatedPayload{
		RoadmapID:      roadmapID,
		UserID:         profile.UserID,
		Segment:        string(segment),
		MilestoneCount: len(catalog),
		TraceID:        trace.FromContext(ctx),
	}
	if err := outbox.InsertEventInTx(ctx, tx, s.outboxRepo, "roadmap", &roadmapID, contracts.KeyRoadmapCreated, created); err != nil {
		return model.Roadmap{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Roadmap{}, fmt.Errorf("failed to commit roadmap: %w", err)
	}

	metrics.IncrementRoadmapCreated()
	log.Info("Roadmap created",
		zap.String("roadmap_id", roadmapID),
		zap.Int("user_id", profile.UserID),
	)
	return roadmap, nil
}

// ApplyEvent loads the roadmap, applies one plan event through the engine
// coordinator and persists the outcome.
func (s *PlanService) ApplyEvent(ctx context.Context, roadmapID uuid.UUID, ev engine.Event) (engine.Result, error) {
	mu := s.lockFor(roadmapID)
	mu.Lock()
	defer mu.Unlock()

	log := s.loggerFor(ctx)

	roadmap, err := s.loadRoadmap(ctx, roadmapID)
	if err != nil {
		return engine.Result{}, err
	}

	now := time.Now()
	res := engine.Apply(roadmap, ev, now)
	metrics.IncrementPlanEvent(ev.Kind())

	if err := s.persistResult(ctx, roadmap, res, ev, now); err != nil {
		return engine.Result{}, err
	}

	log.Info("Plan event applied",
		zap.String("roadmap_id", roadmapID.String()),
		zap.String("event_kind", ev.Kind()),
		zap.Float64("total_progress", res.Roadmap.TotalProgress),
		zap.Bool("has_daily_task", res.DailyTask != nil),
		zap.Bool("has_notification", res.Notification != ""),
	)
	return res, nil
}

// GetRoadmap returns the assembled roadmap without applying any event.
func (s *PlanService) GetRoadmap(ctx context.Context, roadmapID uuid.UUID) (model.Roadmap, error) {
	return s.loadRoadmap(ctx, roadmapID)
}

// GetRoadmapByUser resolves the user's most recent roadmap.
func (s *PlanService) GetRoadmapByUser(ctx context.Context, userID int) (model.Roadmap, error) {
	header, err := s.roadmapRepo.FindByUserID(ctx, userID)
	if err != nil {
		return model.Roadmap{}, fmt.Errorf("failed to load roadmap for user %d: %w", userID, err)
	}
	return s.loadRoadmap(ctx, header.ID)
}

func (s *PlanService) loadRoadmap(ctx context.Context, roadmapID uuid.UUID) (model.Roadmap, error) {
	header, err := s.roadmapRepo.FindByID(ctx, roadmapID)
	if err != nil {
		return model.Roadmap{}, fmt.Errorf("failed to load roadmap %s: %w", roadmapID, err)
	}

	milestones, err := s.milestoneRepo.FindByRoadmapID(ctx, roadmapID)
	if err != nil {
		return model.Roadmap{}, fmt.Errorf("failed to load milestones for %s: %w", roadmapID, err)
	}

	return assembleRoadmap(*header, milestones), nil
}

// assembleRoadmap regroups flat milestone rows into phases by part number.
// Rows arrive ordered by order_index, so phase order follows plan order.
func assembleRoadmap(header model.Roadmap, milestones []model.Milestone) model.Roadmap {
	phaseTitles := map[int]string{
		1: "Core preparation",
		2: "Funding strategy",
	}

	header.Phases = nil
	byPart := map[int]int{} // part -> phase slice index
	for _, m := range milestones {
		i, ok := byPart[m.Part]
		if !ok {
			header.Phases = append(header.Phases, model.Phase{
				Part:  m.Part,
				Title: phaseTitles[m.Part],
			})
			i = len(header.Phases) - 1
			byPart[m.Part] = i
		}
		header.Phases[i].Milestones = append(header.Phases[i].Milestones, m)
	}
	return header
}

// persistResult stores the engine's output and queues the announced events
// in one transaction.
func (s *PlanService) persistResult(ctx context.Context, before model.Roadmap, res engine.Result, ev engine.Event, now time.Time) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.roadmapRepo.UpdateState(ctx, tx, res.Roadmap.ID, res.Roadmap.TotalProgress, res.Roadmap.LastUpdated); err != nil {
		return err
	}

	// Only completion and re-weigh events touch milestone rows.
	switch ev.(type) {
	case engine.TaskCompleted, engine.ProfileChanged:
		beforeByID := map[uuid.UUID]model.Milestone{}
		for _, m := range before.Milestones() {
			beforeByID[m.ID] = m
		}
		for _, m := range res.Roadmap.Milestones() {
			prev := beforeByID[m.ID]
			if prev.Completed == m.Completed && prev.Priority == m.Priority && prev.Impact == m.Impact {
				continue
			}
			m.UpdatedAt = now
			if err := s.milestoneRepo.UpdateEngineState(ctx, tx, m); err != nil {
				return err
			}
		}
	}

	roadmapID := res.Roadmap.ID.String()
	traceID := trace.FromContext(ctx)

	updated := contracts.PlanUpdatedPayload{
		RoadmapID:     roadmapID,
		UserID:        res.Roadmap.UserID,
		EventKind:     ev.Kind(),
		TotalProgress: res.Roadmap.TotalProgress,
		TraceID:       traceID,
	}
	if err := outbox.InsertEventInTx(ctx, tx, s.outboxRepo, "roadmap", &roadmapID, contracts.KeyPlanUpdated, updated); err != nil {
		return err
	}

	if res.Notification != "" {
		notification := contracts.NotificationCreatedPayload{
			RoadmapID: roadmapID,
			UserID:    res.Roadmap.UserID,
			Message:   res.Notification,
			TraceID:   traceID,
		}
		if err := outbox.InsertEventInTx(ctx, tx, s.outboxRepo, "roadmap", &roadmapID, contracts.KeyNotificationCreated, notification); err != nil {
			return err
		}
	}

	if res.DailyTask != nil {
		mode := "daily"
		if _, ok := ev.(engine.StressSignal); ok {
			mode = "stress"
		}
		task := contracts.DailyTaskSelectedPayload{
			RoadmapID:   roadmapID,
			UserID:      res.Roadmap.UserID,
			MilestoneID: res.DailyTask.Milestone.ID.String(),
			Title:       res.DailyTask.Milestone.Title,
			Reason:      res.DailyTask.Reason,
			Mode:        mode,
			TraceID:     traceID,
		}
		if err := outbox.InsertEventInTx(ctx, tx, s.outboxRepo, "roadmap", &roadmapID, contracts.KeyDailyTaskSelected, task); err != nil {
			return err
		}
		metrics.IncrementDailyTaskSelected(mode)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit plan update: %w", err)
	}
	return nil
}

func (s *PlanService) loggerFor(ctx context.Context) *zap.Logger {
	return logger.WithTrace(ctx, s.logger)
}
