package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	contracts "admitpath/contracts/mq"
	"admitpath/internal/engine"
	"admitpath/internal/service"
	"admitpath/pkg/trace"
	"admitpath/pkg/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileChangedHandler struct {
	planService *service.PlanService
	deduper     *util.Deduper
	logger      *zap.Logger
}

func NewProfileChangedHandler(planService *service.PlanService, deduper *util.Deduper, logger *zap.Logger) *ProfileChangedHandler {
	return &ProfileChangedHandler{
		planService: planService,
		deduper:     deduper,
		logger:      logger,
	}
}

func (h *ProfileChangedHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p contracts.ProfileChangedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal ProfileChangedPayload", zap.Error(err))
		return err
	}

	h.logger.Info("Handling profile.changed event",
		zap.String("event_id", p.EventID),
		zap.String("roadmap_id", p.RoadmapID),
		zap.Int("user_id", p.UserID),
		zap.String("trace_id", p.TraceID),
	)

	roadmapID, err := uuid.Parse(p.RoadmapID)
	if err != nil {
		h.logger.Error("Invalid roadmap_id in profile.changed event",
			zap.String("roadmap_id", p.RoadmapID),
			zap.Error(err),
		)
		return fmt.Errorf("invalid roadmap_id: %q", p.RoadmapID)
	}

	if h.deduper != nil && p.EventID != "" {
		if !h.deduper.AcquireOnce(ctx, "profile_changed", p.EventID) {
			return nil
		}
	}

	if p.TraceID != "" {
		ctx = trace.WithContext(ctx, p.TraceID)
	}

	profile := profileFromPayload(p.UserID, p.Role, p.IncomeBracket, p.BudgetBracket, p.TargetRegion, p.GradeLevel, p.TargetInstitutions)
	profile.GPA = p.GPA

	res, err := h.planService.ApplyEvent(ctx, roadmapID, engine.ProfileChanged{Profile: profile})
	if err != nil {
		isRetryable, errType := util.IsRetryableError(err)
		h.logger.Error("Failed to apply profile change",
			zap.String("roadmap_id", p.RoadmapID),
			zap.String("error_type", errType),
			zap.Bool("retryable", isRetryable),
			zap.Error(err),
		)
		if !isRetryable {
			return nil // permanent failure, ack the message
		}
		return err // transient failure, nack and redeliver
	}

	h.logger.Info("Profile change applied",
		zap.String("roadmap_id", p.RoadmapID),
		zap.Float64("total_progress", res.Roadmap.TotalProgress),
	)
	return nil
}
