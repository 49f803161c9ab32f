package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	contracts "admitpath/contracts/mq"
	"admitpath/internal/model"
	"admitpath/internal/service"
	"admitpath/pkg/trace"
	"admitpath/pkg/util"

	"go.uber.org/zap"
)

type OnboardingCompletedHandler struct {
	planService *service.PlanService
	deduper     *util.Deduper
	logger      *zap.Logger
}

func NewOnboardingCompletedHandler(planService *service.PlanService, deduper *util.Deduper, logger *zap.Logger) *OnboardingCompletedHandler {
	return &OnboardingCompletedHandler{
		planService: planService,
		deduper:     deduper,
		logger:      logger,
	}
}

func (h *OnboardingCompletedHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p contracts.OnboardingCompletedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal OnboardingCompletedPayload", zap.Error(err))
		return err
	}

	h.logger.Info("Handling onboarding.completed event",
		zap.String("event_id", p.EventID),
		zap.Int("user_id", p.UserID),
		zap.String("role", p.Role),
		zap.String("trace_id", p.TraceID),
	)

	if p.UserID <= 0 {
		h.logger.Error("Invalid user_id in onboarding.completed event",
			zap.Int("user_id", p.UserID),
		)
		return fmt.Errorf("invalid user_id: %d", p.UserID)
	}

	if h.deduper != nil && p.EventID != "" {
		if !h.deduper.AcquireOnce(ctx, "onboarding_completed", p.EventID) {
			return nil
		}
	}

	if p.TraceID != "" {
		ctx = trace.WithContext(ctx, p.TraceID)
	}

	profile := profileFromPayload(p.UserID, p.Role, p.IncomeBracket, p.BudgetBracket, p.TargetRegion, p.GradeLevel, p.TargetInstitutions)
	roadmap, err := h.planService.CreateRoadmap(ctx, profile)
	if err != nil {
		isRetryable, errType := util.IsRetryableError(err)
		h.logger.Error("Failed to create roadmap",
			zap.Int("user_id", p.UserID),
			zap.String("error_type", errType),
			zap.Bool("retryable", isRetryable),
			zap.Error(err),
		)
		if !isRetryable {
			return nil // permanent failure, ack the message
		}
		return err // transient failure, nack and redeliver
	}

	h.logger.Info("Roadmap created from onboarding event",
		zap.String("roadmap_id", roadmap.ID.String()),
		zap.Int("user_id", p.UserID),
	)
	return nil
}

// profileFromPayload maps loosely typed wire strings onto the closed model
// enums; unknown values fall back to the neutral variants.
func profileFromPayload(userID int, role, income, budget, region string, gradeLevel int, institutions []string) model.Profile {
	p := model.Profile{
		UserID:             userID,
		Role:               model.RoleStudent,
		IncomeBracket:      model.BracketMedium,
		BudgetBracket:      model.BracketMedium,
		TargetRegion:       model.RegionOther,
		GradeLevel:         gradeLevel,
		TargetInstitutions: institutions,
	}

	if role == string(model.RoleParent) {
		p.Role = model.RoleParent
	}
	switch model.Bracket(income) {
	case model.BracketLow, model.BracketMedium, model.BracketHigh:
		p.IncomeBracket = model.Bracket(income)
	}
	switch model.Bracket(budget) {
	case model.BracketLow, model.BracketMedium, model.BracketHigh:
		p.BudgetBracket = model.Bracket(budget)
	}
	switch model.Region(region) {
	case model.RegionUS, model.RegionUK, model.RegionEurope:
		p.TargetRegion = model.Region(region)
	}
	return p
}
