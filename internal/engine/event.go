package engine

import (
	"admitpath/internal/model"

	"github.com/google/uuid"
)

// Event is the closed set of plan updates the coordinator accepts. Each kind
// carries exactly the payload it needs; an unrepresentable payload is a
// compile error, not a runtime one.
type Event interface {
	Kind() string
}

// TaskCompleted marks one milestone done.
type TaskCompleted struct {
	MilestoneID uuid.UUID
}

// StressSignal narrows the plan to a single short task.
type StressSignal struct{}

// ProfileChanged carries the fresh profile snapshot to re-weigh the plan.
type ProfileChanged struct {
	Profile model.Profile
}

// DeadlineApproaching asks for an advisory count of milestones due within
// WithinDays. Read-only: it mutates nothing but lastUpdated.
type DeadlineApproaching struct {
	WithinDays int
}

// ChatRequest asks only for the current daily task.
type ChatRequest struct{}

func (TaskCompleted) Kind() string       { return "task_completed" }
func (StressSignal) Kind() string        { return "stress_mode" }
func (ProfileChanged) Kind() string      { return "profile_change" }
func (DeadlineApproaching) Kind() string { return "deadline_approaching" }
func (ChatRequest) Kind() string         { return "chat_request" }
