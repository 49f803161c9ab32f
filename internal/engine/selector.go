package engine

import (
	"sort"
	"strconv"

	"admitpath/internal/model"
)

// quickTaskMinutes is the cutoff for a task to count as "short" under
// stress mode and for the quick-win reason framing.
const quickTaskMinutes = 15

// Selection is the single recommended milestone plus where it lives and a
// human-facing reason for surfacing it.
type Selection struct {
	Milestone model.Milestone `json:"milestone"`
	Part      int             `json:"part"`
	Reason    string          `json:"reason"`
}

// SelectDailyTask picks today's single best action: the open milestone with
// the highest impact, shortest-first on ties. Returns false when everything
// is done. Selection is deterministic for a given roadmap snapshot.
func SelectDailyTask(r model.Roadmap) (Selection, bool) {
	candidates := openMilestones(r, 0)
	if len(candidates) == 0 {
		return Selection{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Impact != candidates[j].Impact {
			return candidates[i].Impact > candidates[j].Impact
		}
		if candidates[i].EstimatedMinutes != candidates[j].EstimatedMinutes {
			return candidates[i].EstimatedMinutes < candidates[j].EstimatedMinutes
		}
		return candidates[i].OrderIndex < candidates[j].OrderIndex
	})

	best := candidates[0]
	return Selection{Milestone: best, Part: best.Part, Reason: dailyReason(best)}, true
}

// SelectStressTask is the degraded-ambition variant: only milestones taking
// 15 minutes or less qualify, highest impact wins. Guarantees a single short
// action whenever one exists.
func SelectStressTask(r model.Roadmap) (Selection, bool) {
	candidates := openMilestones(r, quickTaskMinutes)
	if len(candidates) == 0 {
		return Selection{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Impact != candidates[j].Impact {
			return candidates[i].Impact > candidates[j].Impact
		}
		return candidates[i].OrderIndex < candidates[j].OrderIndex
	})

	best := candidates[0]
	return Selection{
		Milestone: best,
		Part:      best.Part,
		Reason:    "One small step is enough today. This one takes about " + minutesText(best.EstimatedMinutes) + " and still moves you forward.",
	}, true
}

// openMilestones collects incomplete milestones, optionally capped by
// estimated minutes (maxMinutes 0 means no cap).
func openMilestones(r model.Roadmap, maxMinutes int) []model.Milestone {
	var out []model.Milestone
	for _, ph := range r.Phases {
		for _, m := range ph.Milestones {
			if m.Completed {
				continue
			}
			if maxMinutes > 0 && m.EstimatedMinutes > maxMinutes {
				continue
			}
			out = append(out, m)
		}
	}
	return out
}

func dailyReason(m model.Milestone) string {
	switch {
	case m.Impact >= highImpactThreshold:
		return "This has the biggest effect on your admission odds right now."
	case m.EstimatedMinutes <= quickTaskMinutes:
		return "A quick win: about " + minutesText(m.EstimatedMinutes) + " for real progress."
	default:
		return "Best effort-to-impact ratio on your plan today."
	}
}

func minutesText(minutes int) string {
	if minutes == 1 {
		return "1 minute"
	}
	return strconv.Itoa(minutes) + " minutes"
}
