package engine

import (
	"testing"
	"time"

	"admitpath/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// endToEndRoadmap builds 4 incomplete milestones with impacts 90/50/30/10
// and no deadlines.
func endToEndRoadmap() model.Roadmap {
	return roadmapOf(
		model.Milestone{Title: "i90", Impact: 90, BaseImpact: 90, EstimatedMinutes: 60},
		model.Milestone{Title: "i50", Impact: 50, BaseImpact: 50, EstimatedMinutes: 30},
		model.Milestone{Title: "i30", Impact: 30, BaseImpact: 30, EstimatedMinutes: 20},
		model.Milestone{Title: "i10", Impact: 10, BaseImpact: 10, EstimatedMinutes: 10},
	)
}

func TestApply_TaskCompleted_EndToEnd(t *testing.T) {
	r := endToEndRoadmap()
	target := r.Phases[0].Milestones[0]

	res := Apply(r, TaskCompleted{MilestoneID: target.ID}, testNow)

	assert.Equal(t, 25.0, res.Roadmap.TotalProgress)
	require.NotNil(t, res.DailyTask)
	assert.Equal(t, "i50", res.DailyTask.Milestone.Title)
	assert.Empty(t, res.Notification)

	done := res.Roadmap.Phases[0].Milestones[0]
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, testNow, *done.CompletedAt)
	assert.Equal(t, model.PriorityLow, done.Priority, "completed item is never urgent")
}

func TestApply_TaskCompleted_Idempotent(t *testing.T) {
	r := endToEndRoadmap()
	target := r.Phases[0].Milestones[0]

	first := Apply(r, TaskCompleted{MilestoneID: target.ID}, testNow)
	later := testNow.Add(time.Hour)
	second := Apply(first.Roadmap, TaskCompleted{MilestoneID: target.ID}, later)

	assert.Equal(t, first.Roadmap.TotalProgress, second.Roadmap.TotalProgress)
	// CompletedAt keeps the original transition time.
	assert.Equal(t, testNow, *second.Roadmap.Phases[0].Milestones[0].CompletedAt)
	assert.Equal(t, later, second.Roadmap.LastUpdated)
}

func TestApply_TaskCompleted_UnknownIDIsNoOp(t *testing.T) {
	r := endToEndRoadmap()
	res := Apply(r, TaskCompleted{MilestoneID: uuid.New()}, testNow)
	assert.Equal(t, 0.0, res.Roadmap.TotalProgress)
	completed, _ := res.Roadmap.CountMilestones()
	assert.Zero(t, completed)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	r := endToEndRoadmap()
	target := r.Phases[0].Milestones[0]
	before := r.LastUpdated

	Apply(r, TaskCompleted{MilestoneID: target.ID}, testNow)

	assert.False(t, r.Phases[0].Milestones[0].Completed)
	assert.Equal(t, 0.0, r.TotalProgress)
	assert.Equal(t, before, r.LastUpdated)
}

func TestApply_StressSignal(t *testing.T) {
	r := roadmapOf(
		model.Milestone{Title: "long", Impact: 100, EstimatedMinutes: 45},
		model.Milestone{Title: "short", Impact: 35, EstimatedMinutes: 10},
	)

	res := Apply(r, StressSignal{}, testNow)

	assert.Equal(t, stressNotification, res.Notification)
	require.NotNil(t, res.DailyTask)
	assert.Equal(t, "short", res.DailyTask.Milestone.Title)
	// Stress mode never alters progress or completion.
	assert.Equal(t, r.TotalProgress, res.Roadmap.TotalProgress)
}

func TestApply_ProfileChanged_ReweighsAndReprioritizes(t *testing.T) {
	r := roadmapOf(
		model.Milestone{Title: "essay", Category: model.CategoryEssay, BaseImpact: 70, Impact: 70, EstimatedMinutes: 90},
		model.Milestone{Title: "chores", Category: model.CategoryGeneral, BaseImpact: 75, Impact: 75, EstimatedMinutes: 30},
	)
	profile := model.Profile{
		TargetRegion:       model.RegionUS,
		TargetInstitutions: []string{"State University"},
	}

	res := Apply(r, ProfileChanged{Profile: profile}, testNow)

	essay := res.Roadmap.Phases[0].Milestones[0]
	assert.Equal(t, 85, essay.Impact, "essay bonus applied from base")
	assert.Equal(t, model.PriorityHigh, essay.Priority, "priority follows adjusted impact")
	assert.Equal(t, profileNotification, res.Notification)
	require.NotNil(t, res.DailyTask)
	assert.Equal(t, "essay", res.DailyTask.Milestone.Title)

	// A second identical profile change changes nothing.
	again := Apply(res.Roadmap, ProfileChanged{Profile: profile}, testNow)
	assert.Equal(t, 85, again.Roadmap.Phases[0].Milestones[0].Impact)
}

func TestApply_DeadlineApproaching(t *testing.T) {
	overdue := testNow.AddDate(0, 0, -1)
	soon := testNow.AddDate(0, 0, 3)
	far := testNow.AddDate(0, 0, 60)
	r := roadmapOf(
		model.Milestone{Title: "overdue", Impact: 50, EstimatedMinutes: 30, Deadline: &overdue},
		model.Milestone{Title: "soon", Impact: 50, EstimatedMinutes: 30, Deadline: &soon},
		model.Milestone{Title: "far", Impact: 50, EstimatedMinutes: 30, Deadline: &far},
		model.Milestone{Title: "none", Impact: 50, EstimatedMinutes: 30},
	)

	res := Apply(r, DeadlineApproaching{WithinDays: 7}, testNow)
	assert.Equal(t, "2 milestones are due within 7 days.", res.Notification)
	assert.Nil(t, res.DailyTask)

	// Advisory only: milestones and progress are untouched.
	assert.Equal(t, r.Phases[0].Milestones, res.Roadmap.Phases[0].Milestones)

	calm := Apply(roadmapOf(model.Milestone{Impact: 50, EstimatedMinutes: 10}), DeadlineApproaching{WithinDays: 7}, testNow)
	assert.Empty(t, calm.Notification)
}

func TestApply_ChatRequest(t *testing.T) {
	r := endToEndRoadmap()
	res := Apply(r, ChatRequest{}, testNow)

	require.NotNil(t, res.DailyTask)
	assert.Equal(t, "i90", res.DailyTask.Milestone.Title)
	assert.Empty(t, res.Notification)
}

func TestApply_EmptyRoadmapIsSafe(t *testing.T) {
	r := model.Roadmap{ID: uuid.New()}

	for _, ev := range []Event{TaskCompleted{MilestoneID: uuid.New()}, StressSignal{}, ChatRequest{}, DeadlineApproaching{WithinDays: 7}} {
		res := Apply(r, ev, testNow)
		assert.Nil(t, res.DailyTask, "event %s", ev.Kind())
		assert.Equal(t, 0.0, res.Roadmap.TotalProgress)
	}
}

func TestApply_AlwaysBumpsLastUpdated(t *testing.T) {
	r := endToEndRoadmap()
	for _, ev := range []Event{TaskCompleted{MilestoneID: uuid.New()}, StressSignal{}, ChatRequest{}, DeadlineApproaching{WithinDays: 7}, ProfileChanged{}} {
		res := Apply(r, ev, testNow)
		assert.Equal(t, testNow, res.Roadmap.LastUpdated, "event %s", ev.Kind())
	}
}
