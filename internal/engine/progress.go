package engine

import "admitpath/internal/model"

// RecomputeProgress refreshes the roadmap's completion ratio in place.
// An empty roadmap reports 0, never NaN.
func RecomputeProgress(r *model.Roadmap) {
	completed, total := r.CountMilestones()
	if total == 0 {
		r.TotalProgress = 0
		return
	}
	r.TotalProgress = 100 * float64(completed) / float64(total)
}

// Mood is the user-facing emotional progress message.
type Mood struct {
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
}

// EmotionalMessage picks the progress message from a top-down threshold
// ladder. The rule order is part of the contract: at progress 80 with a
// 10-day streak the progress rule wins, not the streak rule.
func EmotionalMessage(progressPercent float64, streakDays int) Mood {
	switch {
	case progressPercent >= 100:
		return Mood{"Every milestone done. You are ready for what comes next.", "🎉"}
	case progressPercent >= 80:
		return Mood{"Almost there. The finish line is in sight.", "🏁"}
	case progressPercent >= 60:
		return Mood{"Over halfway. The hardest part is behind you.", "💪"}
	case streakDays >= 7:
		return Mood{"A full week of showing up. That consistency is what gets people in.", "🔥"}
	case streakDays >= 3:
		return Mood{"Three days in a row. Keep the chain going.", "⚡"}
	case progressPercent >= 30:
		return Mood{"Solid progress. Keep chipping away.", "🌱"}
	default:
		return Mood{"Start small. One milestone today changes everything.", "✨"}
	}
}
