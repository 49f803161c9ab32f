package mq

// Routing keys on the roadmap.events exchange.
const (
	KeyOnboardingCompleted = "onboarding.completed"
	KeyProfileChanged      = "profile.changed"
	KeyRoadmapCreated      = "roadmap.created"
	KeyPlanUpdated         = "plan.updated"
	KeyNotificationCreated = "notification.created"
	KeyDailyTaskSelected   = "daily_task.selected"
)

// OnboardingCompletedPayload creates a roadmap for a freshly onboarded user.
type OnboardingCompletedPayload struct {
	EventID            string   `json:"event_id"`
	UserID             int      `json:"user_id"`
	Role               string   `json:"role"` // student / parent
	IncomeBracket      string   `json:"income_bracket"`
	BudgetBracket      string   `json:"budget_bracket"`
	TargetRegion       string   `json:"target_region"`
	GradeLevel         int      `json:"grade_level"`
	TargetInstitutions []string `json:"target_institutions"`
	TraceID            string   `json:"trace_id,omitempty"`
}

// ProfileChangedPayload re-weighs an existing roadmap for a new profile
// snapshot.
type ProfileChangedPayload struct {
	EventID            string   `json:"event_id"`
	RoadmapID          string   `json:"roadmap_id"`
	UserID             int      `json:"user_id"`
	Role               string   `json:"role"`
	IncomeBracket      string   `json:"income_bracket"`
	BudgetBracket      string   `json:"budget_bracket"`
	TargetRegion       string   `json:"target_region"`
	GradeLevel         int      `json:"grade_level"`
	TargetInstitutions []string `json:"target_institutions"`
	GPA                float64  `json:"gpa"`
	TraceID            string   `json:"trace_id,omitempty"`
}

// RoadmapCreatedPayload announces a new roadmap.
type RoadmapCreatedPayload struct {
	RoadmapID      string `json:"roadmap_id"`
	UserID         int    `json:"user_id"`
	Segment        string `json:"segment"`
	MilestoneCount int    `json:"milestone_count"`
	TraceID        string `json:"trace_id,omitempty"`
}

// PlanUpdatedPayload announces any applied plan event with the new progress.
type PlanUpdatedPayload struct {
	RoadmapID     string  `json:"roadmap_id"`
	UserID        int     `json:"user_id"`
	EventKind     string  `json:"event_kind"`
	TotalProgress float64 `json:"total_progress"`
	TraceID       string  `json:"trace_id,omitempty"`
}

// NotificationCreatedPayload hands an advisory message to the delivery
// collaborator.
type NotificationCreatedPayload struct {
	RoadmapID string `json:"roadmap_id"`
	UserID    int    `json:"user_id"`
	Message   string `json:"message"`
	TraceID   string `json:"trace_id,omitempty"`
}

// DailyTaskSelectedPayload announces the recommended task for today.
type DailyTaskSelectedPayload struct {
	RoadmapID   string `json:"roadmap_id"`
	UserID      int    `json:"user_id"`
	MilestoneID string `json:"milestone_id"`
	Title       string `json:"title"`
	Reason      string `json:"reason"`
	Mode        string `json:"mode"` // daily / stress
	TraceID     string `json:"trace_id,omitempty"`
}
