package httpserver

import (
	"context"
	"strconv"
	"time"

	"admitpath/internal/handler"
	"admitpath/pkg/metrics"
	"admitpath/pkg/mq"
	"admitpath/pkg/trace"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(roadmapHandler *handler.RoadmapHandler, logger *zap.Logger, db *pgxpool.Pool, consumer *mq.Consumer) *gin.Engine {
	r := gin.Default()

	r.Use(func(c *gin.Context) {
		traceID := c.GetHeader(trace.HeaderName())
		if traceID == "" {
			traceID = trace.GenerateTraceID()
		}
		c.Request = c.Request.WithContext(trace.WithContext(c.Request.Context(), traceID))
		c.Header(trace.HeaderName(), traceID)
		c.Next()
	})

	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), latency)
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		if consumer != nil && !consumer.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/roadmaps/:id", roadmapHandler.GetRoadmap)
	r.GET("/users/:userID/roadmap", roadmapHandler.GetRoadmapByUser)
	r.GET("/roadmaps/:id/daily-task", roadmapHandler.DailyTask)
	r.GET("/roadmaps/:id/progress-message", roadmapHandler.ProgressMessage)
	r.POST("/roadmaps/:id/stress", roadmapHandler.StressMode)
	r.POST("/roadmaps/:id/milestones/:milestoneID/complete", roadmapHandler.CompleteMilestone)
	return r
}
