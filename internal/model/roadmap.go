package model

import (
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Category string

const (
	CategoryExam        Category = "exam"
	CategoryEssay       Category = "essay"
	CategoryApplication Category = "application"
	CategoryFinancial   Category = "financial"
	CategoryDocument    Category = "document"
	CategoryGeneral     Category = "general"
)

// Milestone is a single trackable step in the admission plan. Priority is
// always derived from (completed, deadline, impact); it is stored for display
// but recomputed by the engine on every mutating event. Impact is recomputed
// from BaseImpact so repeated profile changes cannot inflate it.
type Milestone struct {
	ID               uuid.UUID  `json:"id"`
	RoadmapID        uuid.UUID  `json:"roadmap_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Category         Category   `json:"category"`
	Priority         Priority   `json:"priority"`
	BaseImpact       int        `json:"base_impact"`
	Impact           int        `json:"impact"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	EFCSpecific      bool       `json:"efc_specific"`
	OrderIndex       int        `json:"order_index"`
	Part             int        `json:"part"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Phase groups milestones for display ("Part 1 of N"). Milestones keep their
// global OrderIndex inside phases.
type Phase struct {
	Part       int         `json:"part"`
	Title      string      `json:"title"`
	Milestones []Milestone `json:"milestones"`
}

// Roadmap is the full ordered plan for one user.
type Roadmap struct {
	ID            uuid.UUID `json:"id"`
	UserID        int       `json:"user_id"`
	Phases        []Phase   `json:"phases"`
	TotalProgress float64   `json:"total_progress"`
	LastUpdated   time.Time `json:"last_updated"`
	CreatedAt     time.Time `json:"created_at"`
}

// Clone returns a deep copy. The engine operates on copies so callers always
// keep the pre-event snapshot.
func (r Roadmap) Clone() Roadmap {
	out := r
	out.Phases = make([]Phase, len(r.Phases))
	for i, ph := range r.Phases {
		cp := ph
		cp.Milestones = make([]Milestone, len(ph.Milestones))
		copy(cp.Milestones, ph.Milestones)
		out.Phases[i] = cp
	}
	return out
}

// Milestones returns all milestones across phases in order-index order.
func (r Roadmap) Milestones() []Milestone {
	var all []Milestone
	for _, ph := range r.Phases {
		all = append(all, ph.Milestones...)
	}
	return all
}

// CountMilestones returns (completed, total) across all phases.
func (r Roadmap) CountMilestones() (int, int) {
	completed, total := 0, 0
	for _, ph := range r.Phases {
		for _, m := range ph.Milestones {
			total++
			if m.Completed {
				completed++
			}
		}
	}
	return completed, total
}
