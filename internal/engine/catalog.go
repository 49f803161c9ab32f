package engine

import (
	"time"

	"admitpath/internal/model"

	"github.com/google/uuid"
)

// milestoneTemplate is one catalog entry before it is materialized into a
// roadmap. Title and Description are placeholder prose; the external text
// generator may rewrite them, the engine never reads them.
type milestoneTemplate struct {
	title       string
	description string
	category    model.Category
	baseImpact  int
	minutes     int
	dueInDays   int // 0 means no deadline
}

// upperGradeLevel is the lowest grade with two or fewer years left before
// graduation, on a 12-grade scale.
const upperGradeLevel = 11

func studentBaseline(gradeLevel int) []milestoneTemplate {
	ts := []milestoneTemplate{
		{"Build your university shortlist", "Research and shortlist universities that match your goals.", model.CategoryApplication, 70, 120, 30},
		{"Start standardized test prep", "Set up a study plan for your entrance exams.", model.CategoryExam, 85, 60, 45},
		{"Inventory your extracurriculars", "List activities, leadership roles and awards you can present.", model.CategoryGeneral, 55, 45, 0},
		{"Write your first essay draft", "Get a rough personal statement on paper.", model.CategoryEssay, 75, 90, 60},
		{"Choose your recommenders", "Pick teachers or mentors for recommendation letters and ask early.", model.CategoryDocument, 60, 30, 75},
	}
	if gradeLevel >= upperGradeLevel {
		ts = append(ts, milestoneTemplate{
			"Raise your current-term GPA", "Grades this term still count. Focus on the courses that move your average.",
			model.CategoryGeneral, 80, 120, 0,
		})
	}
	return ts
}

func studentSegmentBlock(segment model.Segment, region model.Region) []milestoneTemplate {
	switch segment {
	case model.SegmentLow:
		ts := []milestoneTemplate{
			{"Shortlist need-blind institutions", "Find universities that admit without looking at ability to pay.", model.CategoryApplication, 90, 90, 40},
			{"Complete the main financial aid forms", "Fill in the core need-based aid application.", model.CategoryFinancial, 95, 180, 90},
			{regionAidFormTitle(region), "Complete the aid application specific to your target region.", model.CategoryFinancial, 90, 120, 90},
			{"Search external scholarships", "Build a list of outside scholarships you qualify for.", model.CategoryFinancial, 80, 90, 0},
		}
		if region == model.RegionEurope {
			ts = append(ts, milestoneTemplate{
				"Research low and no tuition options", "Several European countries charge little or no tuition. See which fit your plan.",
				model.CategoryFinancial, 85, 60, 0,
			})
		}
		return ts
	case model.SegmentHigh:
		return []milestoneTemplate{
			{"Focus your merit scholarship search", "Target merit awards at your shortlisted universities.", model.CategoryFinancial, 60, 60, 0},
			{"Plan an early decision strategy", "Decide where an early decision application raises your odds most.", model.CategoryApplication, 70, 45, 60},
			{"Research prestige programs", "Look into honors colleges and flagship programs.", model.CategoryApplication, 65, 90, 0},
		}
	default:
		return []milestoneTemplate{
			{"Build a combined aid strategy", "Mix need-based and merit aid to close the affordability gap.", model.CategoryFinancial, 75, 60, 60},
			{"Search merit scholarships", "List merit awards with deadlines and requirements.", model.CategoryFinancial, 70, 90, 0},
			{"Consider early decision with aid", "Weigh early decision against keeping aid offers comparable.", model.CategoryApplication, 65, 45, 0},
		}
	}
}

func regionAidFormTitle(region model.Region) string {
	switch region {
	case model.RegionUS:
		return "File the federal student aid application"
	case model.RegionUK:
		return "Apply for student finance"
	case model.RegionEurope:
		return "File national aid paperwork for your target country"
	default:
		return "File the aid paperwork for your target region"
	}
}

func parentBaseline() []milestoneTemplate {
	return []milestoneTemplate{
		{"Draft the family financial plan", "Map out what you can contribute per year and the funding gap.", model.CategoryFinancial, 85, 120, 30},
		{"Set up a shared deadline tracker", "One calendar both of you check for every application date.", model.CategoryGeneral, 70, 30, 14},
		{"Prepare supporting documents", "Gather tax records, transcripts and identity documents.", model.CategoryDocument, 75, 90, 60},
		{"Schedule weekly check-ins", "A short standing conversation keeps the plan moving without nagging.", model.CategoryGeneral, 60, 15, 0},
	}
}

var parentLowSegmentExtra = milestoneTemplate{
	"Research aid options together", "Learn which need-based programs your family qualifies for.",
	model.CategoryFinancial, 90, 90, 0,
}

// BuildCatalog assembles the ordered milestone list for a new roadmap:
// a role baseline first, then exactly one segment-specific block. The result
// is deterministic for a given (role, region, gradeLevel, segment, now);
// orderIndex reflects emission order and efcSpecific marks the segment block.
func BuildCatalog(role model.Role, region model.Region, gradeLevel int, segment model.Segment, now time.Time) []model.Milestone {
	var baseline, segmentBlock []milestoneTemplate
	if role == model.RoleParent {
		baseline = parentBaseline()
		if segment == model.SegmentLow {
			segmentBlock = []milestoneTemplate{parentLowSegmentExtra}
		}
	} else {
		baseline = studentBaseline(gradeLevel)
		segmentBlock = studentSegmentBlock(segment, region)
	}

	var out []model.Milestone
	idx := 0
	emit := func(ts []milestoneTemplate, part int, efcSpecific bool) {
		for _, t := range ts {
			m := model.Milestone{
				ID:               uuid.New(),
				Title:            t.title,
				Description:      t.description,
				Category:         t.category,
				BaseImpact:       t.baseImpact,
				Impact:           t.baseImpact,
				EstimatedMinutes: t.minutes,
				EFCSpecific:      efcSpecific,
				OrderIndex:       idx,
				Part:             part,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if t.dueInDays > 0 {
				due := now.AddDate(0, 0, t.dueInDays)
				m.Deadline = &due
			}
			m.Priority = ComputePriority(m, now)
			out = append(out, m)
			idx++
		}
	}

	emit(baseline, 1, false)
	emit(segmentBlock, 2, true)
	return out
}

// NewRoadmap materializes a catalog into a fresh roadmap aggregate for the
// given user. Milestones are grouped into phases by their part number.
func NewRoadmap(userID int, catalog []model.Milestone, now time.Time) model.Roadmap {
	r := model.Roadmap{
		ID:          uuid.New(),
		UserID:      userID,
		LastUpdated: now,
		CreatedAt:   now,
	}

	phaseTitles := map[int]string{
		1: "Core preparation",
		2: "Funding strategy",
	}
	byPart := map[int][]model.Milestone{}
	var parts []int
	for _, m := range catalog {
		m.RoadmapID = r.ID
		if _, seen := byPart[m.Part]; !seen {
			parts = append(parts, m.Part)
		}
		byPart[m.Part] = append(byPart[m.Part], m)
	}
	for _, part := range parts {
		r.Phases = append(r.Phases, model.Phase{
			Part:       part,
			Title:      phaseTitles[part],
			Milestones: byPart[part],
		})
	}
	return r
}
