package engine

import (
	"testing"
	"time"

	"admitpath/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func deadlineIn(days int) *time.Time {
	d := testNow.AddDate(0, 0, days)
	return &d
}

func TestComputePriority_ImpactBoundary(t *testing.T) {
	m := model.Milestone{Impact: 80}
	assert.Equal(t, model.PriorityHigh, ComputePriority(m, testNow))

	m.Impact = 79
	assert.Equal(t, model.PriorityMedium, ComputePriority(m, testNow))

	m.Impact = 50
	assert.Equal(t, model.PriorityMedium, ComputePriority(m, testNow))

	m.Impact = 49
	assert.Equal(t, model.PriorityLow, ComputePriority(m, testNow))
}

func TestComputePriority_DeadlineOutranksImpact(t *testing.T) {
	m := model.Milestone{Impact: 1, Deadline: deadlineIn(7)}
	assert.Equal(t, model.PriorityHigh, ComputePriority(m, testNow))
}

func TestComputePriority_CompletedOutranksEverything(t *testing.T) {
	m := model.Milestone{Impact: 100, Deadline: deadlineIn(1), Completed: true}
	assert.Equal(t, model.PriorityLow, ComputePriority(m, testNow))
}

func TestComputePriority_NearDeadlineLiftsLowImpact(t *testing.T) {
	m := model.Milestone{Impact: 10, Deadline: deadlineIn(14)}
	assert.Equal(t, model.PriorityMedium, ComputePriority(m, testNow))

	m.Deadline = deadlineIn(15)
	assert.Equal(t, model.PriorityLow, ComputePriority(m, testNow))
}

func TestComputePriority_Deterministic(t *testing.T) {
	m := model.Milestone{Impact: 65, Deadline: deadlineIn(10)}
	first := ComputePriority(m, testNow)
	second := ComputePriority(m, testNow)
	assert.Equal(t, first, second)
}

func TestDaysUntil(t *testing.T) {
	days, ok := DaysUntil(testNow, nil)
	assert.False(t, ok)
	assert.Equal(t, 0, days)

	days, ok = DaysUntil(testNow, deadlineIn(7))
	require.True(t, ok)
	assert.Equal(t, 7, days)

	// A deadline later today rounds up to a full day, overdue goes negative.
	later := testNow.Add(3 * time.Hour)
	days, _ = DaysUntil(testNow, &later)
	assert.Equal(t, 1, days)

	overdue := testNow.AddDate(0, 0, -2)
	days, _ = DaysUntil(testNow, &overdue)
	assert.Equal(t, -2, days)
}

func TestAdjustImpact_RecomputesFromBase(t *testing.T) {
	profile := model.Profile{
		TargetRegion:       model.RegionUS,
		TargetInstitutions: []string{"State University"},
	}

	essay := model.Milestone{Category: model.CategoryEssay, BaseImpact: 75, Impact: 75}
	assert.Equal(t, 90, AdjustImpact(essay, profile))

	// Applying twice from an already-adjusted working score must not stack.
	essay.Impact = 90
	assert.Equal(t, 90, AdjustImpact(essay, profile))

	exam := model.Milestone{Category: model.CategoryExam, BaseImpact: 95}
	assert.Equal(t, 100, AdjustImpact(exam, profile), "clamped to 100")

	profile.TargetRegion = model.RegionUK
	assert.Equal(t, 100, AdjustImpact(exam, profile))

	profile.TargetRegion = model.RegionEurope
	assert.Equal(t, 95, AdjustImpact(exam, profile), "no exam bonus outside US/UK")

	general := model.Milestone{Category: model.CategoryGeneral, BaseImpact: 40}
	assert.Equal(t, 40, AdjustImpact(general, profile))
}
