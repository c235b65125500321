package profile_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zentro/shadowscout/internal/domain/model"
	"github.com/zentro/shadowscout/internal/domain/profile"
)

func flatBreakdown(score float64) model.SkillBreakdown {
	breakdown := make(model.SkillBreakdown, 7)
	for _, skill := range model.Skills() {
		breakdown[skill] = score
	}
	return breakdown
}

func TestStrengths(t *testing.T) {
	Convey("Given a breakdown with one outstanding skill", t, func() {
		breakdown := flatBreakdown(50)
		breakdown[model.SkillTechnical] = 100
		// mean = 400/7 ~ 57.14

		strengths := profile.Strengths(breakdown)

		Convey("Then only the outstanding skill is a strength", func() {
			So(len(strengths), ShouldEqual, 1)
			So(strengths[0].Skill, ShouldEqual, model.SkillTechnical)
			So(strengths[0].Level, ShouldEqual, model.LevelExceptional)
		})
	})

	Convey("Given a uniform breakdown", t, func() {
		Convey("Then there are no strengths", func() {
			So(profile.Strengths(flatBreakdown(80)), ShouldBeEmpty)
		})
	})

	Convey("Given a score exactly at mean plus margin", t, func() {
		// six at 50 and one at 67.5 gives mean 52.5, so 67.5 sits on the margin.
		breakdown := flatBreakdown(50)
		breakdown[model.SkillCreativity] = 67.5

		Convey("Then the margin is strict", func() {
			So(profile.Strengths(breakdown), ShouldBeEmpty)
		})
	})

	Convey("Given several strengths", t, func() {
		breakdown := model.SkillBreakdown{
			model.SkillTechnical:      95,
			model.SkillProblemSolving: 80,
			model.SkillCollaboration:  10,
			model.SkillLeadership:     10,
			model.SkillCommunication:  10,
			model.SkillCreativity:     10,
			model.SkillAdaptability:   10,
		}
		// mean = 225/7 ~ 32.14

		strengths := profile.Strengths(breakdown)

		Convey("Then they are sorted descending by score with graded levels", func() {
			So(len(strengths), ShouldEqual, 2)
			So(strengths[0].Skill, ShouldEqual, model.SkillTechnical)
			So(strengths[0].Level, ShouldEqual, model.LevelExceptional)
			So(strengths[1].Skill, ShouldEqual, model.SkillProblemSolving)
			So(strengths[1].Level, ShouldEqual, model.LevelStrong)
		})
	})
}

func TestWeaknesses(t *testing.T) {
	Convey("Given a breakdown with one lagging skill", t, func() {
		breakdown := flatBreakdown(50)
		breakdown[model.SkillLeadership] = 0
		// mean = 300/7 ~ 42.86

		weaknesses := profile.Weaknesses(breakdown)

		Convey("Then the lagging skill is a critical weakness", func() {
			So(len(weaknesses), ShouldEqual, 1)
			So(weaknesses[0].Skill, ShouldEqual, model.SkillLeadership)
			So(weaknesses[0].Level, ShouldEqual, model.LevelCritical)
		})
	})

	Convey("Given several weaknesses", t, func() {
		breakdown := model.SkillBreakdown{
			model.SkillTechnical:      90,
			model.SkillProblemSolving: 90,
			model.SkillCollaboration:  90,
			model.SkillLeadership:     90,
			model.SkillCommunication:  90,
			model.SkillCreativity:     45,
			model.SkillAdaptability:   20,
		}
		// mean = 515/7 ~ 73.57

		weaknesses := profile.Weaknesses(breakdown)

		Convey("Then they are sorted ascending by score with graded levels", func() {
			So(len(weaknesses), ShouldEqual, 2)
			So(weaknesses[0].Skill, ShouldEqual, model.SkillAdaptability)
			So(weaknesses[0].Level, ShouldEqual, model.LevelCritical)
			So(weaknesses[1].Skill, ShouldEqual, model.SkillCreativity)
			So(weaknesses[1].Level, ShouldEqual, model.LevelNeedsImprovement)
		})
	})

	Convey("Strengths and weaknesses never overlap", t, func() {
		breakdown := model.SkillBreakdown{
			model.SkillTechnical:      100,
			model.SkillProblemSolving: 75,
			model.SkillCollaboration:  50,
			model.SkillLeadership:     25,
			model.SkillCommunication:  0,
			model.SkillCreativity:     60,
			model.SkillAdaptability:   40,
		}

		strengths := profile.Strengths(breakdown)
		weaknesses := profile.Weaknesses(breakdown)

		seen := make(map[model.Skill]bool)
		for _, s := range strengths {
			seen[s.Skill] = true
		}
		for _, w := range weaknesses {
			So(seen[w.Skill], ShouldBeFalse)
		}
	})
}

func TestRecommendations(t *testing.T) {
	Convey("Given weaknesses in mapped skills", t, func() {
		weaknesses := []model.SkillRating{
			{Skill: model.SkillTechnical, Score: 10, Level: model.LevelCritical},
			{Skill: model.SkillCollaboration, Score: 20, Level: model.LevelCritical},
			{Skill: model.SkillLeadership, Score: 25, Level: model.LevelCritical},
		}

		recs := profile.Recommendations(weaknesses, nil)

		Convey("Then each yields a skill-improvement item", func() {
			So(len(recs), ShouldEqual, 3)
			So(recs[0].Type, ShouldEqual, model.RecommendationSkillImprovement)
			So(recs[0].Priority, ShouldEqual, model.PriorityHigh)
			So(recs[0].Action, ShouldEqual, "Focus on code missions and technical challenges")
			So(recs[1].Priority, ShouldEqual, model.PriorityMedium)
			So(recs[2].ExpectedImprovement, ShouldEqual, "12-18 points in 4 weeks")
		})
	})

	Convey("Given weaknesses in unmapped skills", t, func() {
		weaknesses := []model.SkillRating{
			{Skill: model.SkillCommunication, Score: 10},
			{Skill: model.SkillCreativity, Score: 20},
			{Skill: model.SkillAdaptability, Score: 25},
			{Skill: model.SkillProblemSolving, Score: 28},
		}

		Convey("Then no items are produced for them", func() {
			So(profile.Recommendations(weaknesses, nil), ShouldBeEmpty)
		})
	})

	Convey("Given a predicted career path", t, func() {
		path := &model.CareerPath{
			ID:              "tech_lead",
			Name:            "Tech Lead",
			GrowthPotential: 95,
			MatchScore:      82,
		}

		recs := profile.Recommendations(nil, path)

		Convey("Then one career-development item is appended", func() {
			So(len(recs), ShouldEqual, 1)
			So(recs[0].Type, ShouldEqual, model.RecommendationCareerDevelopment)
			So(recs[0].Priority, ShouldEqual, model.PriorityHigh)
			So(recs[0].Action, ShouldEqual, "Focus on Tech Lead track activities")
			So(recs[0].ExpectedImprovement, ShouldEqual, "95% career advancement")
		})
	})

	Convey("Given no weaknesses and no career path", t, func() {
		Convey("Then there are no recommendations", func() {
			So(profile.Recommendations(nil, nil), ShouldBeEmpty)
		})
	})
}
