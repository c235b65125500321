package career

import (
	"fmt"
	"math"

	"github.com/zentro/shadowscout/internal/domain/model"
)

// Market value formula constants.
const (
	// DefaultBaseValue anchors the estimate when no override is configured.
	DefaultBaseValue = 50_000

	experienceCap   = 2.0
	leadershipFloor = 70
	leadershipBonus = 1.2
)

// MarketValue estimates a currency value from the overall score and skill
// mix. Monotonic non-decreasing in overall and technical scores.
func MarketValue(overall float64, breakdown model.SkillBreakdown, baseValue int) int {
	if baseValue <= 0 {
		baseValue = DefaultBaseValue
	}

	skillMultiplier := overall / 100
	experienceMultiplier := math.Min(experienceCap, 1+breakdown[model.SkillTechnical]/100)
	bonus := 1.0
	if breakdown[model.SkillLeadership] > leadershipFloor {
		bonus = leadershipBonus
	}

	return int(math.Round(float64(baseValue) * skillMultiplier * experienceMultiplier * bonus))
}

// Market position tiers by estimated value.
const (
	seniorLeadFloor = 120_000
	midSeniorFloor  = 90_000
	midFloor        = 70_000
	juniorMidFloor  = 50_000
)

// MarketPosition buckets a market value into a seniority band.
func MarketPosition(marketValue int) string {
	switch {
	case marketValue > seniorLeadFloor:
		return "Senior/Lead Level"
	case marketValue > midSeniorFloor:
		return "Mid-Senior Level"
	case marketValue > midFloor:
		return "Mid Level"
	case marketValue > juniorMidFloor:
		return "Junior-Mid Level"
	default:
		return "Entry Level"
	}
}

// Milestone generation constants.
const (
	milestoneSkillCeiling = 80
	milestoneStep         = 20
	milestonePointsPerWk  = 5
	careerTargetScore     = 90
	careerPointsPerWk     = 3
	maxMilestones         = 5
)

// NextMilestones suggests up to five targets: skill scores raised to the
// next multiple of 20, and qualification for the predicted career path.
func NextMilestones(a model.Assessment) []model.Milestone {
	var milestones []model.Milestone

	for _, skill := range model.Skills() {
		score := a.SkillBreakdown[skill]
		if score >= milestoneSkillCeiling {
			continue
		}
		nextLevel := math.Ceil(score/milestoneStep) * milestoneStep
		if nextLevel == score {
			nextLevel += milestoneStep
		}
		weeks := int(math.Ceil((nextLevel - score) / milestonePointsPerWk))
		milestones = append(milestones, model.Milestone{
			Type:            "skill",
			Target:          fmt.Sprintf("Reach %.0f in %s", nextLevel, skill),
			CurrentProgress: score,
			TargetProgress:  nextLevel,
			EstimatedTime:   fmt.Sprintf("%d weeks", weeks),
		})
	}

	if a.CareerPath != nil && a.CareerPath.MatchScore < careerTargetScore {
		weeks := int(math.Ceil((careerTargetScore - a.CareerPath.MatchScore) / careerPointsPerWk))
		milestones = append(milestones, model.Milestone{
			Type:            "career",
			Target:          fmt.Sprintf("Qualify for %s role", a.CareerPath.Name),
			CurrentProgress: a.CareerPath.MatchScore,
			TargetProgress:  careerTargetScore,
			EstimatedTime:   fmt.Sprintf("%d weeks", weeks),
		})
	}

	if len(milestones) > maxMilestones {
		milestones = milestones[:maxMilestones]
	}
	return milestones
}
