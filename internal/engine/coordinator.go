package engine

import (
	"fmt"
	"time"

	"admitpath/internal/model"
)

// Result is what one plan update produces: the new roadmap snapshot, an
// optional advisory notification and an optional recommended daily task.
// An empty Notification means none.
type Result struct {
	Roadmap      model.Roadmap
	Notification string
	DailyTask    *Selection
}

const (
	stressNotification  = "Plan narrowed to one short task. Finish it and call the day a win."
	profileNotification = "Your plan was re-weighed for your updated profile."
)

// Apply is the single entry point that advances a roadmap. It is a stateless
// reducer: the input roadmap is never touched, the returned one is a deep
// copy with the event applied. Every event bumps lastUpdated; everything
// else depends on the event kind. It never fails for well-typed input — an
// empty roadmap simply yields no daily task.
func Apply(roadmap model.Roadmap, ev Event, now time.Time) Result {
	r := roadmap.Clone()
	r.LastUpdated = now

	res := Result{}
	switch e := ev.(type) {
	case TaskCompleted:
		completeMilestone(&r, e, now)
		RecomputeProgress(&r)
		RecomputePriorities(&r, now)
		if sel, ok := SelectDailyTask(r); ok {
			res.DailyTask = &sel
		}

	case StressSignal:
		res.Notification = stressNotification
		if sel, ok := SelectStressTask(r); ok {
			res.DailyTask = &sel
		}

	case ProfileChanged:
		ApplyProfileAdjustments(&r, e.Profile)
		RecomputePriorities(&r, now)
		res.Notification = profileNotification
		if sel, ok := SelectDailyTask(r); ok {
			res.DailyTask = &sel
		}

	case DeadlineApproaching:
		if n := countDueWithin(r, e.WithinDays, now); n > 0 {
			res.Notification = deadlineNotification(n, e.WithinDays)
		}

	case ChatRequest:
		if sel, ok := SelectDailyTask(r); ok {
			res.DailyTask = &sel
		}
	}

	res.Roadmap = r
	return res
}

// completeMilestone flips the milestone to done. Completing an already
// completed milestone, or an unknown id, is a no-op.
func completeMilestone(r *model.Roadmap, e TaskCompleted, now time.Time) {
	for pi := range r.Phases {
		for mi := range r.Phases[pi].Milestones {
			m := &r.Phases[pi].Milestones[mi]
			if m.ID != e.MilestoneID {
				continue
			}
			if !m.Completed {
				m.Completed = true
				completedAt := now
				m.CompletedAt = &completedAt
				m.UpdatedAt = now
			}
			return
		}
	}
}

func countDueWithin(r model.Roadmap, withinDays int, now time.Time) int {
	n := 0
	for _, ph := range r.Phases {
		for _, m := range ph.Milestones {
			if m.Completed {
				continue
			}
			// Overdue milestones count: they are at least as urgent.
			if days, ok := DaysUntil(now, m.Deadline); ok && days <= withinDays {
				n++
			}
		}
	}
	return n
}

func deadlineNotification(count, withinDays int) string {
	if count == 1 {
		return fmt.Sprintf("1 milestone is due within %d days.", withinDays)
	}
	return fmt.Sprintf("%d milestones are due within %d days.", count, withinDays)
}
