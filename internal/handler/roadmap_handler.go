package handler

import (
	"errors"
	"net/http"
	"strconv"

	"admitpath/internal/engine"
	"admitpath/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoadmapHandler struct {
	planService *service.PlanService
	logger      *zap.Logger
}

func NewRoadmapHandler(planService *service.PlanService, logger *zap.Logger) *RoadmapHandler {
	return &RoadmapHandler{planService: planService, logger: logger}
}

func (h *RoadmapHandler) roadmapID(c *gin.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("Invalid roadmap id",
			zap.String("roadmap_id", idStr),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roadmap id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *RoadmapHandler) GetRoadmap(c *gin.Context) {
	id, ok := h.roadmapID(c)
	if !ok {
		return
	}

	roadmap, err := h.planService.GetRoadmap(c.Request.Context(), id)
	if err != nil {
		h.respondLoadError(c, id, err, "GetRoadmap")
		return
	}

	c.JSON(http.StatusOK, gin.H{"roadmap": roadmap})
}

// GetRoadmapByUser resolves a user's most recent roadmap.
func (h *RoadmapHandler) GetRoadmapByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	roadmap, err := h.planService.GetRoadmapByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "roadmap not found"})
			return
		}
		h.logger.Error("GetRoadmapByUser: failed",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"roadmap": roadmap})
}

func (h *RoadmapHandler) CompleteMilestone(c *gin.Context) {
	id, ok := h.roadmapID(c)
	if !ok {
		return
	}

	milestoneIDStr := c.Param("milestoneID")
	milestoneID, err := uuid.Parse(milestoneIDStr)
	if err != nil {
		h.logger.Warn("CompleteMilestone: invalid milestone id",
			zap.String("milestone_id", milestoneIDStr),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid milestone id"})
		return
	}

	h.logger.Info("CompleteMilestone request received",
		zap.String("roadmap_id", id.String()),
		zap.String("milestone_id", milestoneID.String()),
		zap.String("client_ip", c.ClientIP()),
	)

	res, err := h.planService.ApplyEvent(c.Request.Context(), id, engine.TaskCompleted{MilestoneID: milestoneID})
	if err != nil {
		h.respondLoadError(c, id, err, "CompleteMilestone")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_progress": res.Roadmap.TotalProgress,
		"daily_task":     res.DailyTask,
	})
}

func (h *RoadmapHandler) StressMode(c *gin.Context) {
	id, ok := h.roadmapID(c)
	if !ok {
		return
	}

	res, err := h.planService.ApplyEvent(c.Request.Context(), id, engine.StressSignal{})
	if err != nil {
		h.respondLoadError(c, id, err, "StressMode")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notification": res.Notification,
		"daily_task":   res.DailyTask,
	})
}

func (h *RoadmapHandler) DailyTask(c *gin.Context) {
	id, ok := h.roadmapID(c)
	if !ok {
		return
	}

	res, err := h.planService.ApplyEvent(c.Request.Context(), id, engine.ChatRequest{})
	if err != nil {
		h.respondLoadError(c, id, err, "DailyTask")
		return
	}

	if res.DailyTask == nil {
		c.JSON(http.StatusOK, gin.H{"daily_task": nil, "all_done": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_task": res.DailyTask, "all_done": false})
}

func (h *RoadmapHandler) ProgressMessage(c *gin.Context) {
	id, ok := h.roadmapID(c)
	if !ok {
		return
	}

	streakDays := 0
	if raw := c.Query("streak_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid streak_days"})
			return
		}
		streakDays = parsed
	}

	roadmap, err := h.planService.GetRoadmap(c.Request.Context(), id)
	if err != nil {
		h.respondLoadError(c, id, err, "ProgressMessage")
		return
	}

	mood := engine.EmotionalMessage(roadmap.TotalProgress, streakDays)
	c.JSON(http.StatusOK, gin.H{
		"total_progress": roadmap.TotalProgress,
		"message":        mood.Text,
		"emoji":          mood.Emoji,
	})
}

func (h *RoadmapHandler) respondLoadError(c *gin.Context, id uuid.UUID, err error, op string) {
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "roadmap not found"})
		return
	}
	h.logger.Error(op+": failed",
		zap.String("roadmap_id", id.String()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
