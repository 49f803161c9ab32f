package engine

import (
	"math"
	"testing"

	"admitpath/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeProgress(t *testing.T) {
	r := roadmapOf(
		model.Milestone{Completed: true},
		model.Milestone{Completed: false},
		model.Milestone{Completed: false},
		model.Milestone{Completed: true},
	)
	RecomputeProgress(&r)
	assert.Equal(t, 50.0, r.TotalProgress)
}

func TestRecomputeProgress_EmptyRoadmapIsZero(t *testing.T) {
	r := model.Roadmap{}
	RecomputeProgress(&r)
	assert.Equal(t, 0.0, r.TotalProgress)
	assert.False(t, math.IsNaN(r.TotalProgress))
}

func TestEmotionalMessage_LadderOrder(t *testing.T) {
	cases := []struct {
		name     string
		progress float64
		streak   int
		fragment string
	}{
		{"all done", 100, 0, "Every milestone done"},
		{"almost there", 80, 0, "Almost there"},
		{"over halfway", 60, 0, "Over halfway"},
		{"long streak", 10, 7, "full week"},
		{"short streak", 10, 3, "Three days"},
		{"encouragement", 30, 0, "Solid progress"},
		{"start small", 5, 0, "Start small"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mood := EmotionalMessage(tc.progress, tc.streak)
			assert.Contains(t, mood.Text, tc.fragment)
			assert.NotEmpty(t, mood.Emoji)
		})
	}
}

func TestEmotionalMessage_ProgressRuleBeatsStreakAtBoundary(t *testing.T) {
	// progress 80 with a 10-day streak must hit the progress rule.
	mood := EmotionalMessage(80, 10)
	assert.Contains(t, mood.Text, "Almost there")
}
