package engine

import (
	"time"

	"admitpath/internal/model"
)

const (
	highImpactThreshold   = 80
	mediumImpactThreshold = 50

	urgentDeadlineDays = 7
	nearDeadlineDays   = 14
)

// DaysUntil returns whole days remaining from now until the deadline,
// rounded up, and whether a deadline exists at all. A deadline later today
// counts as 0 days; overdue deadlines go negative.
func DaysUntil(now time.Time, deadline *time.Time) (int, bool) {
	if deadline == nil {
		return 0, false
	}
	d := deadline.Sub(now)
	days := int(d.Hours() / 24)
	if d > 0 && d%(24*time.Hour) != 0 {
		days++
	}
	return days, true
}

// ComputePriority derives a milestone's urgency tier. The rule order is
// load-bearing: completion wins over deadlines, deadlines over impact.
func ComputePriority(m model.Milestone, now time.Time) model.Priority {
	days, hasDeadline := DaysUntil(now, m.Deadline)

	switch {
	case m.Completed:
		return model.PriorityLow
	case hasDeadline && days <= urgentDeadlineDays:
		return model.PriorityHigh
	case m.Impact >= highImpactThreshold:
		return model.PriorityHigh
	case m.Impact >= mediumImpactThreshold || (hasDeadline && days <= nearDeadlineDays):
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// RecomputePriorities refreshes every milestone's priority in place on the
// given roadmap copy. Must run after any completion or impact change; a
// stale priority is a correctness bug, not a cosmetic one.
func RecomputePriorities(r *model.Roadmap, now time.Time) {
	for pi := range r.Phases {
		for mi := range r.Phases[pi].Milestones {
			m := &r.Phases[pi].Milestones[mi]
			m.Priority = ComputePriority(*m, now)
		}
	}
}

// AdjustImpact recomputes a milestone's working impact from its immutable
// base impact and the current profile. Recomputing from base keeps repeated
// profile changes idempotent; adjustments never stack.
//
// Bonuses, additive per matching rule, clamped to 100:
//   - essay milestones when the profile names target institutions: +15
//   - exam milestones targeting the US: +10
//   - exam milestones targeting the UK: +10
func AdjustImpact(m model.Milestone, p model.Profile) int {
	impact := m.BaseImpact

	if m.Category == model.CategoryEssay && len(p.TargetInstitutions) > 0 {
		impact += 15
	}
	if m.Category == model.CategoryExam && p.TargetRegion == model.RegionUS {
		impact += 10
	}
	if m.Category == model.CategoryExam && p.TargetRegion == model.RegionUK {
		impact += 10
	}

	if impact > 100 {
		impact = 100
	}
	return impact
}

// ApplyProfileAdjustments rewrites every milestone's working impact from its
// base impact under the given profile.
func ApplyProfileAdjustments(r *model.Roadmap, p model.Profile) {
	for pi := range r.Phases {
		for mi := range r.Phases[pi].Milestones {
			m := &r.Phases[pi].Milestones[mi]
			m.Impact = AdjustImpact(*m, p)
		}
	}
}
