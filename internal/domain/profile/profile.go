// Package profile derives strengths, weaknesses and recommendations from a
// skill breakdown.
package profile

import (
	"fmt"
	"sort"

	"github.com/zentro/shadowscout/internal/domain/model"
)

// A skill must deviate from the breakdown mean by more than this margin to
// count as a strength or weakness.
const deviationMargin = 15

// Classification thresholds.
const (
	exceptionalFloor = 90
	strongFloor      = 75
	criticalCeiling  = 30
	improveCeiling   = 50
)

// Strengths returns skills scoring more than the margin above the mean,
// sorted descending by score.
func Strengths(breakdown model.SkillBreakdown) []model.SkillRating {
	avg := mean(breakdown)

	var strengths []model.SkillRating
	for skill, score := range breakdown {
		if score <= avg+deviationMargin {
			continue
		}
		level := model.LevelAboveAverage
		switch {
		case score > exceptionalFloor:
			level = model.LevelExceptional
		case score > strongFloor:
			level = model.LevelStrong
		}
		strengths = append(strengths, model.SkillRating{Skill: skill, Score: score, Level: level})
	}

	sort.Slice(strengths, func(i, j int) bool {
		if strengths[i].Score != strengths[j].Score {
			return strengths[i].Score > strengths[j].Score
		}
		return strengths[i].Skill < strengths[j].Skill
	})
	return strengths
}

// Weaknesses returns skills scoring more than the margin below the mean,
// sorted ascending by score.
func Weaknesses(breakdown model.SkillBreakdown) []model.SkillRating {
	avg := mean(breakdown)

	var weaknesses []model.SkillRating
	for skill, score := range breakdown {
		if score >= avg-deviationMargin {
			continue
		}
		level := model.LevelBelowAverage
		switch {
		case score < criticalCeiling:
			level = model.LevelCritical
		case score < improveCeiling:
			level = model.LevelNeedsImprovement
		}
		weaknesses = append(weaknesses, model.SkillRating{Skill: skill, Score: score, Level: level})
	}

	sort.Slice(weaknesses, func(i, j int) bool {
		if weaknesses[i].Score != weaknesses[j].Score {
			return weaknesses[i].Score < weaknesses[j].Score
		}
		return weaknesses[i].Skill < weaknesses[j].Skill
	})
	return weaknesses
}

func mean(breakdown model.SkillBreakdown) float64 {
	if len(breakdown) == 0 {
		return 0
	}
	var sum float64
	for _, score := range breakdown {
		sum += score
	}
	return sum / float64(len(breakdown))
}

// improvementActions is the static lookup behind skill recommendations.
// Only these three skills map to action items; weaknesses in other
// dimensions intentionally produce nothing.
var improvementActions = map[model.Skill]model.Recommendation{
	model.SkillTechnical: {
		Type:                model.RecommendationSkillImprovement,
		Priority:            model.PriorityHigh,
		Action:              "Focus on code missions and technical challenges",
		ExpectedImprovement: "15-25 points in 2 weeks",
	},
	model.SkillCollaboration: {
		Type:                model.RecommendationSkillImprovement,
		Priority:            model.PriorityMedium,
		Action:              "Join more squad activities and team projects",
		ExpectedImprovement: "10-20 points in 3 weeks",
	},
	model.SkillLeadership: {
		Type:                model.RecommendationSkillImprovement,
		Priority:            model.PriorityMedium,
		Action:              "Take leadership roles in faction wars and projects",
		ExpectedImprovement: "12-18 points in 4 weeks",
	},
}

// Recommendations maps weaknesses to action items and appends one career
// development item when a path was predicted.
func Recommendations(weaknesses []model.SkillRating, careerPath *model.CareerPath) []model.Recommendation {
	var recommendations []model.Recommendation

	for _, weakness := range weaknesses {
		if rec, ok := improvementActions[weakness.Skill]; ok {
			recommendations = append(recommendations, rec)
		}
	}

	if careerPath != nil {
		recommendations = append(recommendations, model.Recommendation{
			Type:                model.RecommendationCareerDevelopment,
			Priority:            model.PriorityHigh,
			Action:              fmt.Sprintf("Focus on %s track activities", careerPath.Name),
			ExpectedImprovement: fmt.Sprintf("%.0f%% career advancement", careerPath.GrowthPotential),
		})
	}

	return recommendations
}
