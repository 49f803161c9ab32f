package engine

import (
	"testing"

	"admitpath/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roadmapOf(milestones ...model.Milestone) model.Roadmap {
	for i := range milestones {
		if milestones[i].ID == uuid.Nil {
			milestones[i].ID = uuid.New()
		}
		milestones[i].OrderIndex = i
		milestones[i].Part = 1
	}
	return model.Roadmap{
		ID:     uuid.New(),
		Phases: []model.Phase{{Part: 1, Title: "Core preparation", Milestones: milestones}},
	}
}

func TestSelectDailyTask_HighestImpactWins(t *testing.T) {
	r := roadmapOf(
		model.Milestone{Title: "low", Impact: 30, EstimatedMinutes: 10},
		model.Milestone{Title: "high", Impact: 90, EstimatedMinutes: 60},
	)

	sel, ok := SelectDailyTask(r)
	require.True(t, ok)
	assert.Equal(t, "high", sel.Milestone.Title)
	assert.Equal(t, 1, sel.Part)
}

func TestSelectDailyTask_ShorterTaskBreaksTie(t *testing.T) {
	r := roadmapOf(
		model.Milestone{Title: "slow", Impact: 90, EstimatedMinutes: 30},
		model.Milestone{Title: "fast", Impact: 90, EstimatedMinutes: 10},
	)

	sel, ok := SelectDailyTask(r)
	require.True(t, ok)
	assert.Equal(t, "fast", sel.Milestone.Title)
}

func TestSelectDailyTask_SkipsCompleted(t *testing.T) {
	r := roadmapOf(
		model.Milestone{Title: "done", Impact: 100, EstimatedMinutes: 5, Completed: true},
		model.Milestone{Title: "open", Impact: 40, EstimatedMinutes: 20},
	)

	sel, ok := SelectDailyTask(r)
	require.True(t, ok)
	assert.Equal(t, "open", sel.Milestone.Title)
}

func TestSelectDailyTask_EmptyRoadmap(t *testing.T) {
	_, ok := SelectDailyTask(model.Roadmap{})
	assert.False(t, ok)

	allDone := roadmapOf(model.Milestone{Impact: 50, Completed: true})
	_, ok = SelectDailyTask(allDone)
	assert.False(t, ok)
}

func TestSelectDailyTask_Deterministic(t *testing.T) {
	r := roadmapOf(
		model.Milestone{Title: "a", Impact: 70, EstimatedMinutes: 20},
		model.Milestone{Title: "b", Impact: 70, EstimatedMinutes: 20},
	)

	first, ok := SelectDailyTask(r)
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, _ := SelectDailyTask(r)
		assert.Equal(t, first.Milestone.ID, again.Milestone.ID)
	}
	// Equal impact and minutes falls back to plan order.
	assert.Equal(t, "a", first.Milestone.Title)
}

func TestSelectDailyTask_ReasonFraming(t *testing.T) {
	highImpact, _ := SelectDailyTask(roadmapOf(model.Milestone{Impact: 85, EstimatedMinutes: 120}))
	assert.Contains(t, highImpact.Reason, "biggest effect")

	quickWin, _ := SelectDailyTask(roadmapOf(model.Milestone{Impact: 40, EstimatedMinutes: 10}))
	assert.Contains(t, quickWin.Reason, "quick win")

	generic, _ := SelectDailyTask(roadmapOf(model.Milestone{Impact: 40, EstimatedMinutes: 60}))
	assert.Contains(t, generic.Reason, "effort-to-impact")
}

func TestSelectStressTask_ExcludesLongTasks(t *testing.T) {
	r := roadmapOf(
		model.Milestone{Title: "long", Impact: 100, EstimatedMinutes: 20},
		model.Milestone{Title: "short", Impact: 40, EstimatedMinutes: 10},
	)

	sel, ok := SelectStressTask(r)
	require.True(t, ok)
	assert.Equal(t, "short", sel.Milestone.Title)
}

func TestSelectStressTask_NoShortTasks(t *testing.T) {
	r := roadmapOf(model.Milestone{Impact: 100, EstimatedMinutes: 45})
	_, ok := SelectStressTask(r)
	assert.False(t, ok)
}

func TestSelectStressTask_HighestImpactShortTask(t *testing.T) {
	r := roadmapOf(
		model.Milestone{Title: "a", Impact: 40, EstimatedMinutes: 15},
		model.Milestone{Title: "b", Impact: 70, EstimatedMinutes: 15},
	)

	sel, ok := SelectStressTask(r)
	require.True(t, ok)
	assert.Equal(t, "b", sel.Milestone.Title)
}
