package model

import "time"

// Skill names the seven assessed dimensions.
type Skill string

// The canonical skill dimensions.
const (
	SkillTechnical      Skill = "technical"
	SkillProblemSolving Skill = "problemSolving"
	SkillCollaboration  Skill = "collaboration"
	SkillLeadership     Skill = "leadership"
	SkillCommunication  Skill = "communication"
	SkillCreativity     Skill = "creativity"
	SkillAdaptability   Skill = "adaptability"
)

// Skills lists every dimension in canonical order.
func Skills() []Skill {
	return []Skill{
		SkillTechnical,
		SkillProblemSolving,
		SkillCollaboration,
		SkillLeadership,
		SkillCommunication,
		SkillCreativity,
		SkillAdaptability,
	}
}

// SkillBreakdown maps every skill to a score in [0, 100].
type SkillBreakdown map[Skill]float64

// Strength or weakness classification levels.
const (
	LevelExceptional      = "exceptional"
	LevelStrong           = "strong"
	LevelAboveAverage     = "above_average"
	LevelCritical         = "critical"
	LevelNeedsImprovement = "needs_improvement"
	LevelBelowAverage     = "below_average"
)

// SkillRating marks a skill as a strength or weakness relative to the
// breakdown's mean.
type SkillRating struct {
	Skill Skill   `json:"skill"`
	Score float64 `json:"score"`
	Level string  `json:"level"`
}

// Recommendation types and priorities.
const (
	RecommendationSkillImprovement  = "skill_improvement"
	RecommendationCareerDevelopment = "career_development"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Recommendation is one actionable item derived from an assessment.
type Recommendation struct {
	Type                string `json:"type"`
	Priority            string `json:"priority"`
	Action              string `json:"action"`
	ExpectedImprovement string `json:"expected_improvement"`
}

// CareerPath is a matched career-path template plus the fit score.
type CareerPath struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Requirements    map[Skill]float64 `json:"requirements"`
	GrowthPotential float64           `json:"growth_potential"`
	MatchScore      float64           `json:"match_score"`
}

// Assessment is the full, immutable output record for one identity at one
// point in time. Later runs supersede, never mutate, earlier ones.
type Assessment struct {
	ShadowID        string           `json:"shadow_id"`
	Timestamp       time.Time        `json:"timestamp"`
	OverallScore    float64          `json:"overall_score"`
	SkillBreakdown  SkillBreakdown   `json:"skill_breakdown"`
	Strengths       []SkillRating    `json:"strengths"`
	Weaknesses      []SkillRating    `json:"weaknesses"`
	Recommendations []Recommendation `json:"recommendations"`
	CareerPath      *CareerPath      `json:"career_path,omitempty"`
	MarketValue     int              `json:"market_value"`
}

// CompatibilityBreakdown itemizes the four matching factors.
type CompatibilityBreakdown struct {
	SkillComplementarity       float64 `json:"skill_complementarity"`
	CommunicationCompatibility float64 `json:"communication_compatibility"`
	WorkingStyleCompatibility  float64 `json:"working_style_compatibility"`
	PersonalityFit             float64 `json:"personality_fit"`
}

// CompatibilityResult is the weighted four-factor score describing how well
// two identities would work together.
type CompatibilityResult struct {
	Score     float64                `json:"score"`
	Breakdown CompatibilityBreakdown `json:"breakdown"`
}

// TeamMatch is a ranked candidate teammate plus a recommended project role.
type TeamMatch struct {
	ShadowID        string              `json:"shadow_id"`
	Compatibility   CompatibilityResult `json:"compatibility"`
	RecommendedRole string              `json:"recommended_role"`
}

// ProjectRequirements carries optional caller constraints for a match query.
type ProjectRequirements struct {
	// MinScore overrides the engine's compatibility threshold when set.
	MinScore *float64 `json:"min_score,omitempty"`
	// FocusSkills names dimensions the project cares most about.
	FocusSkills []Skill `json:"focus_skills,omitempty"`
}

// Milestone is a suggested next target for an identity.
type Milestone struct {
	Type            string  `json:"type"`
	Target          string  `json:"target"`
	CurrentProgress float64 `json:"current_progress"`
	TargetProgress  float64 `json:"target_progress"`
	EstimatedTime   string  `json:"estimated_time"`
}

// Insights summarizes an assessment for presentation layers.
type Insights struct {
	TopStrengths     []SkillRating `json:"top_strengths"`
	ImprovementAreas []SkillRating `json:"improvement_areas"`
	CareerTrajectory *CareerPath   `json:"career_trajectory,omitempty"`
	MarketPosition   string        `json:"market_position"`
	NextMilestones   []Milestone   `json:"next_milestones"`
}

// InsightReport is an assessment enriched with derived insights.
type InsightReport struct {
	Assessment
	Insights Insights `json:"insights"`
}

// TalentEntry represents one row of the talent ranking.
type TalentEntry struct {
	Rank     int     `json:"rank"`
	ShadowID string  `json:"shadow_id"`
	Score    float64 `json:"score"`
}
