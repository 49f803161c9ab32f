package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"admitpath/internal/model"
	"admitpath/pkg/circuitbreaker"
	"admitpath/pkg/metrics"
	"admitpath/pkg/trace"

	"go.uber.org/zap"
)

// TextGenClient calls the external milestone text generator. The engine only
// consumes structured milestone fields, so generated prose is strictly a
// nice-to-have: on breaker-open or any failure the catalog's template text
// stays in place.
type TextGenClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
	logger     *zap.Logger
}

func NewTextGenClient(baseURL string, logger *zap.Logger) *TextGenClient {
	cbConfig := circuitbreaker.DefaultConfig()
	cbConfig.FailureThreshold = 3
	cbConfig.HalfOpenMaxRequests = 2

	return &TextGenClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		cb:     circuitbreaker.NewCircuitBreaker(cbConfig),
		logger: logger,
	}
}

type textGenRequest struct {
	Role       string             `json:"role"`
	Region     string             `json:"region"`
	Milestones []textGenMilestone `json:"milestones"`
}

type textGenMilestone struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type textGenResponse struct {
	Milestones []struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"milestones"`
}

// RewriteMilestones asks the generator for personalized milestone prose and
// applies whatever came back. Failures leave the template text untouched.
func (c *TextGenClient) RewriteMilestones(ctx context.Context, profile model.Profile, roadmap *model.Roadmap) {
	if c == nil || c.baseURL == "" {
		return
	}

	req := textGenRequest{
		Role:   string(profile.Role),
		Region: string(profile.TargetRegion),
	}
	for _, m := range roadmap.Milestones() {
		req.Milestones = append(req.Milestones, textGenMilestone{
			ID:       m.ID.String(),
			Title:    m.Title,
			Category: string(m.Category),
		})
	}

	var resp textGenResponse
	err := c.cb.Execute(func() error {
		return c.call(ctx, req, &resp)
	})
	if err != nil {
		c.logger.Warn("Text generator unavailable, keeping template prose",
			zap.String("roadmap_id", roadmap.ID.String()),
			zap.String("breaker_state", c.cb.CurrentState().String()),
			zap.Error(err),
		)
		return
	}

	byID := map[string]struct{ title, description string }{}
	for _, m := range resp.Milestones {
		byID[m.ID] = struct{ title, description string }{m.Title, m.Description}
	}

	for pi := range roadmap.Phases {
		for mi := range roadmap.Phases[pi].Milestones {
			m := &roadmap.Phases[pi].Milestones[mi]
			if gen, ok := byID[m.ID.String()]; ok {
				if gen.title != "" {
					m.Title = gen.title
				}
				if gen.description != "" {
					m.Description = gen.description
				}
			}
		}
	}
}

func (c *TextGenClient) call(ctx context.Context, payload textGenRequest, out *textGenResponse) error {
	start := time.Now()

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/milestones/text", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if traceID := trace.FromContext(ctx); traceID != "" {
		req.Header.Set(trace.HeaderName(), traceID)
	}

	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		metrics.RecordTextGenCallLatency("/milestones/text", "error", latency)
		return fmt.Errorf("failed to call text generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordTextGenCallLatency("/milestones/text", fmt.Sprintf("%d", resp.StatusCode), latency)
		return fmt.Errorf("text generator returned error: %d", resp.StatusCode)
	}

	metrics.RecordTextGenCallLatency("/milestones/text", "success", latency)
	return json.NewDecoder(resp.Body).Decode(out)
}
