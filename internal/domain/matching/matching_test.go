package matching_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zentro/shadowscout/internal/domain/matching"
	"github.com/zentro/shadowscout/internal/domain/model"
)

func breakdownWith(values map[model.Skill]float64) model.SkillBreakdown {
	breakdown := make(model.SkillBreakdown, 7)
	for _, skill := range model.Skills() {
		breakdown[skill] = values[skill]
	}
	return breakdown
}

func TestSkillComplementarity(t *testing.T) {
	Convey("Given two profiles both above 50 in one skill", t, func() {
		a := breakdownWith(map[model.Skill]float64{model.SkillTechnical: 90})
		b := breakdownWith(map[model.Skill]float64{model.SkillTechnical: 60})

		Convey("Then the capped difference is averaged over all skills", func() {
			// diff 30, capped 30, / 7
			So(matching.SkillComplementarity(a, b), ShouldAlmostEqual, 30.0/7, 1e-9)
		})
	})

	Convey("Given a dimension where one profile is at 50 or below", t, func() {
		a := breakdownWith(map[model.Skill]float64{model.SkillTechnical: 90})
		b := breakdownWith(map[model.Skill]float64{model.SkillTechnical: 50})

		Convey("Then that dimension contributes nothing", func() {
			So(matching.SkillComplementarity(a, b), ShouldEqual, 0)
		})
	})

	Convey("Complementarity is symmetric", t, func() {
		a := breakdownWith(map[model.Skill]float64{model.SkillTechnical: 95, model.SkillCreativity: 55})
		b := breakdownWith(map[model.Skill]float64{model.SkillTechnical: 60, model.SkillCreativity: 80})

		So(matching.SkillComplementarity(a, b), ShouldEqual, matching.SkillComplementarity(b, a))
	})
}

func TestCommunicationCompatibility(t *testing.T) {
	comm := func(score float64) model.SkillBreakdown {
		return breakdownWith(map[model.Skill]float64{model.SkillCommunication: score})
	}

	Convey("Given the tiered communication rule", t, func() {
		Convey("Both above 70 scores 90", func() {
			So(matching.CommunicationCompatibility(comm(80), comm(80)), ShouldEqual, 90)
		})

		Convey("One above 70 with the other above 50 scores 75", func() {
			So(matching.CommunicationCompatibility(comm(80), comm(60)), ShouldEqual, 75)
			So(matching.CommunicationCompatibility(comm(60), comm(80)), ShouldEqual, 75)
		})

		Convey("Both above 50 scores 60", func() {
			So(matching.CommunicationCompatibility(comm(60), comm(55)), ShouldEqual, 60)
		})

		Convey("Anything lower scores 40", func() {
			So(matching.CommunicationCompatibility(comm(50), comm(90)), ShouldEqual, 40)
			So(matching.CommunicationCompatibility(comm(30), comm(30)), ShouldEqual, 40)
		})
	})
}

func TestWorkingStyleCompatibility(t *testing.T) {
	lead := func(score float64) model.SkillBreakdown {
		return breakdownWith(map[model.Skill]float64{model.SkillLeadership: score})
	}

	Convey("Given the tiered working-style rule", t, func() {
		Convey("A leader paired with a follower scores 85 either way round", func() {
			So(matching.WorkingStyleCompatibility(lead(80), lead(40)), ShouldEqual, 85)
			So(matching.WorkingStyleCompatibility(lead(40), lead(80)), ShouldEqual, 85)
		})

		Convey("Two leaders score 50", func() {
			So(matching.WorkingStyleCompatibility(lead(80), lead(90)), ShouldEqual, 50)
		})

		Convey("Two followers score 45", func() {
			So(matching.WorkingStyleCompatibility(lead(30), lead(20)), ShouldEqual, 45)
		})

		Convey("Everything else scores 70", func() {
			So(matching.WorkingStyleCompatibility(lead(65), lead(65)), ShouldEqual, 70)
			So(matching.WorkingStyleCompatibility(lead(80), lead(65)), ShouldEqual, 70)
		})
	})

	Convey("Working style is symmetric across representative pairs", t, func() {
		scores := []float64{0, 30, 45, 55, 65, 75, 90, 100}
		for _, a := range scores {
			for _, b := range scores {
				So(matching.WorkingStyleCompatibility(lead(a), lead(b)),
					ShouldEqual,
					matching.WorkingStyleCompatibility(lead(b), lead(a)))
			}
		}
	})
}

func TestPersonalityFit(t *testing.T) {
	Convey("Given identical creativity and high shared adaptability", t, func() {
		a := breakdownWith(map[model.Skill]float64{model.SkillCreativity: 70, model.SkillAdaptability: 100})
		b := breakdownWith(map[model.Skill]float64{model.SkillCreativity: 70, model.SkillAdaptability: 100})

		Convey("Then the fit caps at 100", func() {
			So(matching.PersonalityFit(a, b), ShouldEqual, 100)
		})
	})

	Convey("Given divergent creativity and no adaptability", t, func() {
		a := breakdownWith(map[model.Skill]float64{model.SkillCreativity: 100})
		b := breakdownWith(map[model.Skill]float64{model.SkillCreativity: 10})

		Convey("Then the fit is the similarity over 1.5", func() {
			// (100-90 + 0) / 1.5
			So(matching.PersonalityFit(a, b), ShouldAlmostEqual, 10/1.5, 1e-9)
		})
	})

	Convey("Personality fit is symmetric", t, func() {
		a := breakdownWith(map[model.Skill]float64{model.SkillCreativity: 88, model.SkillAdaptability: 44})
		b := breakdownWith(map[model.Skill]float64{model.SkillCreativity: 31, model.SkillAdaptability: 77})

		So(matching.PersonalityFit(a, b), ShouldEqual, matching.PersonalityFit(b, a))
	})
}

func TestCompatibility(t *testing.T) {
	Convey("Given two fully specified profiles", t, func() {
		a := breakdownWith(map[model.Skill]float64{
			model.SkillCommunication: 80,
			model.SkillLeadership:    80,
			model.SkillCreativity:    70,
			model.SkillAdaptability:  60,
		})
		b := breakdownWith(map[model.Skill]float64{
			model.SkillCommunication: 80,
			model.SkillLeadership:    40,
			model.SkillCreativity:    70,
			model.SkillAdaptability:  60,
		})

		result := matching.Compatibility(a, b)

		Convey("Then the score is the weighted sum of the four factors", func() {
			// complementarity: comm 0 diff, lead only a>50, creat 0, adapt 50- -> only comm/creat both >50 with diff 0
			// = 0
			// communication: 90, workingStyle: 85, personality: (100+30)/1.5 = 86.666...
			expected := 0*0.4 + 90*0.3 + 85*0.2 + (130/1.5)*0.1
			So(result.Score, ShouldAlmostEqual, expected, 1e-9)
			So(result.Breakdown.CommunicationCompatibility, ShouldEqual, 90)
			So(result.Breakdown.WorkingStyleCompatibility, ShouldEqual, 85)
		})

		Convey("And the score is symmetric", func() {
			reverse := matching.Compatibility(b, a)
			So(reverse.Score, ShouldAlmostEqual, result.Score, 1e-9)
		})
	})
}

func TestRecommendRole(t *testing.T) {
	Convey("Given the role decision list", t, func() {
		Convey("High leadership plus technical recommends ARCHITECT", func() {
			skills := breakdownWith(map[model.Skill]float64{
				model.SkillLeadership: 80,
				model.SkillTechnical:  75,
			})
			So(matching.RecommendRole(skills), ShouldEqual, model.RoleArchitect)
		})

		Convey("Very high technical recommends DEVELOPER", func() {
			skills := breakdownWith(map[model.Skill]float64{model.SkillTechnical: 85})
			So(matching.RecommendRole(skills), ShouldEqual, "DEVELOPER")
		})

		Convey("High creativity recommends DESIGNER", func() {
			skills := breakdownWith(map[model.Skill]float64{model.SkillCreativity: 80})
			So(matching.RecommendRole(skills), ShouldEqual, "DESIGNER")
		})

		Convey("Problem solving with solid technical recommends SECURITY", func() {
			skills := breakdownWith(map[model.Skill]float64{
				model.SkillProblemSolving: 85,
				model.SkillTechnical:      75,
			})
			So(matching.RecommendRole(skills), ShouldEqual, "SECURITY")
		})

		Convey("Moderate technical with strong problem solving recommends DATA", func() {
			skills := breakdownWith(map[model.Skill]float64{
				model.SkillProblemSolving: 75,
				model.SkillTechnical:      65,
			})
			So(matching.RecommendRole(skills), ShouldEqual, "DATA")
		})

		Convey("Everything else defaults to DEVELOPER", func() {
			So(matching.RecommendRole(breakdownWith(nil)), ShouldEqual, "DEVELOPER")
		})
	})
}

func TestMatcher_FindMatches(t *testing.T) {
	assess := func(id string, comm, lead float64) model.Assessment {
		return model.Assessment{
			ShadowID: id,
			SkillBreakdown: breakdownWith(map[model.Skill]float64{
				model.SkillCommunication: comm,
				model.SkillLeadership:    lead,
				model.SkillCreativity:    70,
				model.SkillAdaptability:  80,
			}),
		}
	}

	Convey("Given a matcher with the default threshold", t, func() {
		matcher := matching.NewMatcher()
		self := assess("self", 80, 80)

		Convey("When there are no peers", func() {
			matches := matcher.FindMatches(self, nil, model.ProjectRequirements{})

			Convey("Then the result is empty but non-nil", func() {
				So(matches, ShouldNotBeNil)
				So(matches, ShouldBeEmpty)
			})
		})

		Convey("When the only stored peer is self", func() {
			matches := matcher.FindMatches(self, []model.Assessment{self}, model.ProjectRequirements{})

			Convey("Then self is never matched", func() {
				So(matches, ShouldBeEmpty)
			})
		})

		Convey("When even a well-matched peer scores below 70", func() {
			// The factor weights cap the combined score at 66, so the
			// default threshold admits nothing. Chosen scores matter.
			peers := []model.Assessment{assess("complementary", 80, 40)}

			matches := matcher.FindMatches(self, peers, model.ProjectRequirements{})

			Convey("Then the default threshold filters it out", func() {
				So(matches, ShouldBeEmpty)
			})
		})

		Convey("When requirements carry a MinScore override", func() {
			minScore := 40.0
			peers := []model.Assessment{assess("complementary", 80, 40)}

			matches := matcher.FindMatches(self, peers, model.ProjectRequirements{MinScore: &minScore})

			Convey("Then the override replaces the matcher threshold", func() {
				So(len(matches), ShouldEqual, 1)
				So(matches[0].ShadowID, ShouldEqual, "complementary")
				So(matches[0].RecommendedRole, ShouldNotBeEmpty)
			})
		})
	})

	Convey("Given a matcher with a 50-point threshold", t, func() {
		matcher := matching.NewMatcher(matching.WithThreshold(50))
		self := assess("self", 80, 80)

		Convey("When peers have varying compatibility", func() {
			peers := []model.Assessment{
				self,
				assess("complementary", 80, 40), // comm 90, style 85
				assess("clashing", 30, 80),      // comm 40, style 50
			}

			matches := matcher.FindMatches(self, peers, model.ProjectRequirements{})

			Convey("Then only those strictly above the threshold survive", func() {
				So(len(matches), ShouldEqual, 1)
				So(matches[0].ShadowID, ShouldEqual, "complementary")
				So(matches[0].Compatibility.Score, ShouldBeGreaterThan, 50)
			})
		})

		Convey("When matches tie on score", func() {
			peers := []model.Assessment{
				assess("bravo", 80, 40),
				assess("alpha", 80, 40),
			}

			matches := matcher.FindMatches(self, peers, model.ProjectRequirements{})

			Convey("Then ordering falls back to shadow ID ascending", func() {
				So(len(matches), ShouldEqual, 2)
				So(matches[0].ShadowID, ShouldEqual, "alpha")
				So(matches[1].ShadowID, ShouldEqual, "bravo")
			})
		})
	})

	Convey("Given a matcher with a zero threshold", t, func() {
		matcher := matching.NewMatcher(matching.WithThreshold(0))
		self := assess("self", 80, 80)
		peers := []model.Assessment{assess("anyone", 30, 80)}

		Convey("Then weak matches are returned too", func() {
			matches := matcher.FindMatches(self, peers, model.ProjectRequirements{})
			So(len(matches), ShouldEqual, 1)
		})
	})
}
