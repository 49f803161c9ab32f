package model

type Bracket string

const (
	BracketLow    Bracket = "low"
	BracketMedium Bracket = "medium"
	BracketHigh   Bracket = "high"
)

type Segment string

const (
	SegmentLow    Segment = "low"
	SegmentMedium Segment = "medium"
	SegmentHigh   Segment = "high"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
)

type Region string

const (
	RegionUS     Region = "us"
	RegionUK     Region = "uk"
	RegionEurope Region = "europe"
	RegionOther  Region = "other"
)

// Profile is the read-only user snapshot the engine consumes. It is owned by
// the profile collaborator; the engine never mutates or caches it.
type Profile struct {
	UserID             int      `json:"user_id"`
	Role               Role     `json:"role"`
	IncomeBracket      Bracket  `json:"income_bracket"`
	BudgetBracket      Bracket  `json:"budget_bracket"`
	TargetRegion       Region   `json:"target_region"`
	GradeLevel         int      `json:"grade_level"`
	TargetInstitutions []string `json:"target_institutions"`
	GPA                float64  `json:"gpa"`
}
