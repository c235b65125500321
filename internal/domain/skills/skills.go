// Package skills computes the seven-dimensional skill breakdown from raw
// activity records.
//
// Every scorer is a pure fold over one ActivityBundle: each contributing
// activity category adds (localAverage, categoryWeight) to an immutable
// accumulator, and the final score is the weighted average clamped to
// [0, 100]. A bundle with no contributing activity scores 0, never errors.
package skills

import (
	"math"

	"github.com/zentro/shadowscout/internal/domain/model"
)

// Scoring constants.
const (
	maxScore = 100

	speedBonusWeight = 0.3
	innovationWeight = 0.5
)

// Category weights per skill, fixed by the assessment model.
const (
	technicalCodeWeight    = 0.4
	technicalCipherWeight  = 0.3
	technicalProjectWeight = 0.3

	problemMissionWeight   = 0.5
	problemCipherWeight    = 0.3
	problemDeceptionWeight = 0.2

	collabBattleWeight    = 0.4
	collabProjectWeight   = 0.4
	collabDeceptionWeight = 0.2

	leadBattleWeight  = 0.4
	leadProjectWeight = 0.4
	leadFactionWeight = 0.2

	commDeceptionWeight = 0.5
	commProjectWeight   = 0.3
	commFactionWeight   = 0.2

	createDesignWeight  = 0.4
	createProjectWeight = 0.4
	createCipherWeight  = 0.2

	adaptMissionWeight = 0.4
	adaptProjectWeight = 0.3
	adaptFactionWeight = 0.3
)

// accumulator carries the running (score, weight) totals of a scorer fold.
type accumulator struct {
	score  float64
	weight float64
}

// add folds one category contribution into the accumulator.
func (a accumulator) add(value, weight float64) accumulator {
	return accumulator{
		score:  a.score + value*weight,
		weight: a.weight + weight,
	}
}

// result normalizes the fold to [0, 100]; zero weight means zero score.
func (a accumulator) result() float64 {
	if a.weight <= 0 {
		return 0
	}
	return clamp(a.score / a.weight)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(maxScore, v))
}

// DifficultyScore grades a cipher difficulty on the 0-100 scale.
func DifficultyScore(d model.CipherDifficulty) float64 {
	switch d {
	case model.DifficultyEasy:
		return 25
	case model.DifficultyMedium:
		return 50
	case model.DifficultyHard:
		return 75
	case model.DifficultyExtreme:
		return 100
	default:
		return 0
	}
}

// Breakdown computes every skill dimension for the bundle.
func Breakdown(b model.ActivityBundle) model.SkillBreakdown {
	return model.SkillBreakdown{
		model.SkillTechnical:      Technical(b),
		model.SkillProblemSolving: ProblemSolving(b),
		model.SkillCollaboration:  Collaboration(b),
		model.SkillLeadership:     Leadership(b),
		model.SkillCommunication:  Communication(b),
		model.SkillCreativity:     Creativity(b),
		model.SkillAdaptability:   Adaptability(b),
	}
}

// Technical scores code missions, cipher solving and project technical
// contributions.
func Technical(b model.ActivityBundle) float64 {
	var acc accumulator

	codeMissions := missionsIn(b.Missions, model.CategoryCodeOps)
	if len(codeMissions) > 0 {
		avgScore := meanMissions(codeMissions, func(m model.MissionResult) float64 { return m.Score })
		speedBonus := meanMissions(codeMissions, func(m model.MissionResult) float64 { return m.SpeedBonus })
		acc = acc.add(avgScore+speedBonus*speedBonusWeight, technicalCodeWeight)
	}

	if len(b.Ciphers) > 0 {
		var difficulty float64
		solved := 0
		for _, c := range b.Ciphers {
			difficulty += DifficultyScore(c.Difficulty)
			if c.Solved {
				solved++
			}
		}
		avgDifficulty := difficulty / float64(len(b.Ciphers))
		successRate := float64(solved) / float64(len(b.Ciphers))
		acc = acc.add(avgDifficulty*successRate, technicalCipherWeight)
	}

	if len(b.Projects) > 0 {
		contribution := meanProjects(b.Projects, func(p model.ProjectContribution) float64 { return p.TechnicalContribution })
		acc = acc.add(contribution, technicalProjectWeight)
	}

	return acc.result()
}

// ProblemSolving scores security/database missions, hard cipher success and
// deception-game strategy.
func ProblemSolving(b model.ActivityBundle) float64 {
	var acc accumulator

	var analytical []model.MissionResult
	for _, m := range b.Missions {
		if m.Category == model.CategorySecurityProtocols || m.Category == model.CategoryDatabaseOps {
			analytical = append(analytical, m)
		}
	}
	if len(analytical) > 0 {
		avgScore := meanMissions(analytical, func(m model.MissionResult) float64 { return m.Score })
		innovation := meanMissions(analytical, func(m model.MissionResult) float64 { return m.InnovationPoints })
		acc = acc.add(avgScore+innovation*innovationWeight, problemMissionWeight)
	}

	var hard []model.CipherSolve
	for _, c := range b.Ciphers {
		if c.Difficulty == model.DifficultyHard || c.Difficulty == model.DifficultyExtreme {
			hard = append(hard, c)
		}
	}
	if len(hard) > 0 {
		solved := 0
		for _, c := range hard {
			if c.Solved {
				solved++
			}
		}
		successRate := float64(solved) / float64(len(hard))
		acc = acc.add(successRate*maxScore, problemCipherWeight)
	}

	if len(b.DeceptionGames) > 0 {
		wins := 0
		var strategy float64
		for _, g := range b.DeceptionGames {
			if g.Won {
				wins++
			}
			strategy += g.StrategyRating
		}
		winRate := float64(wins) / float64(len(b.DeceptionGames))
		avgStrategy := strategy / float64(len(b.DeceptionGames))
		acc = acc.add(winRate*maxScore+avgStrategy, problemDeceptionWeight)
	}

	return acc.result()
}

// Collaboration scores squad teamwork, project collaboration and non-solo
// deception-game teamwork.
func Collaboration(b model.ActivityBundle) float64 {
	var acc accumulator

	var squad []model.BattleResult
	for _, battle := range b.Battles {
		if battle.Type == model.BattleTypeSquad {
			squad = append(squad, battle)
		}
	}
	if len(squad) > 0 {
		var teamwork float64
		for _, battle := range squad {
			teamwork += battle.TeamworkRating
		}
		acc = acc.add(teamwork/float64(len(squad)), collabBattleWeight)
	}

	if len(b.Projects) > 0 {
		collab := meanProjects(b.Projects, func(p model.ProjectContribution) float64 { return p.CollaborationRating })
		acc = acc.add(collab, collabProjectWeight)
	}

	var teamGames []model.DeceptionGame
	for _, g := range b.DeceptionGames {
		if g.Role != model.RoleGhost {
			teamGames = append(teamGames, g)
		}
	}
	if len(teamGames) > 0 {
		var teamwork float64
		for _, g := range teamGames {
			teamwork += g.TeamworkRating
		}
		acc = acc.add(teamwork/float64(len(teamGames)), collabDeceptionWeight)
	}

	return acc.result()
}

// Leadership scores battles led, projects architected and faction
// leadership activities.
func Leadership(b model.ActivityBundle) float64 {
	var acc accumulator

	var led []model.BattleResult
	for _, battle := range b.Battles {
		if battle.Role == model.RoleLeader {
			led = append(led, battle)
		}
	}
	if len(led) > 0 {
		var rating float64
		for _, battle := range led {
			rating += battle.LeadershipRating
		}
		acc = acc.add(rating/float64(len(led)), leadBattleWeight)
	}

	var architected []model.ProjectContribution
	for _, p := range b.Projects {
		if p.Role == model.RoleArchitect {
			architected = append(architected, p)
		}
	}
	if len(architected) > 0 {
		rating := meanProjects(architected, func(p model.ProjectContribution) float64 { return p.LeadershipRating })
		acc = acc.add(rating, leadProjectWeight)
	}

	var factionLead []model.FactionActivity
	for _, f := range b.FactionActivities {
		if f.Type == model.FactionTypeLeadership {
			factionLead = append(factionLead, f)
		}
	}
	if len(factionLead) > 0 {
		var rating float64
		for _, f := range factionLead {
			rating += f.Rating
		}
		acc = acc.add(rating/float64(len(factionLead)), leadFactionWeight)
	}

	return acc.result()
}

// Communication scores deception-game, project and faction communication
// ratings. The deception-game rating dominates.
func Communication(b model.ActivityBundle) float64 {
	var acc accumulator

	if len(b.DeceptionGames) > 0 {
		var rating float64
		for _, g := range b.DeceptionGames {
			rating += g.CommunicationRating
		}
		acc = acc.add(rating/float64(len(b.DeceptionGames)), commDeceptionWeight)
	}

	if len(b.Projects) > 0 {
		rating := meanProjects(b.Projects, func(p model.ProjectContribution) float64 { return p.CommunicationRating })
		acc = acc.add(rating, commProjectWeight)
	}

	if len(b.FactionActivities) > 0 {
		var rating float64
		for _, f := range b.FactionActivities {
			rating += f.CommunicationRating
		}
		acc = acc.add(rating/float64(len(b.FactionActivities)), commFactionWeight)
	}

	return acc.result()
}

// Creativity scores design-mission creativity, project innovation and the
// fraction of ciphers solved with a unique approach.
func Creativity(b model.ActivityBundle) float64 {
	var acc accumulator

	design := missionsIn(b.Missions, model.CategoryDesignDives)
	if len(design) > 0 {
		rating := meanMissions(design, func(m model.MissionResult) float64 { return m.CreativityRating })
		acc = acc.add(rating, createDesignWeight)
	}

	if len(b.Projects) > 0 {
		innovation := meanProjects(b.Projects, func(p model.ProjectContribution) float64 { return p.InnovationRating })
		acc = acc.add(innovation, createProjectWeight)
	}

	if len(b.Ciphers) > 0 {
		unique := 0
		for _, c := range b.Ciphers {
			if c.UniqueSolution {
				unique++
			}
		}
		uniqueness := float64(unique) / float64(len(b.Ciphers)) * maxScore
		acc = acc.add(uniqueness, createCipherWeight)
	}

	return acc.result()
}

// Adaptability scores breadth: mission categories attempted (of 4), project
// roles held (of 5) and faction activity types tried (of 6).
func Adaptability(b model.ActivityBundle) float64 {
	var acc accumulator

	attempted := make(map[model.MissionCategory]struct{})
	for _, m := range b.Missions {
		switch m.Category {
		case model.CategoryCodeOps, model.CategoryDesignDives,
			model.CategorySecurityProtocols, model.CategoryDatabaseOps:
			attempted[m.Category] = struct{}{}
		}
	}
	if len(attempted) > 0 {
		spread := float64(len(attempted)) / model.MissionCategoryCount * maxScore
		acc = acc.add(spread, adaptMissionWeight)
	}

	if len(b.Projects) > 0 {
		roles := make(map[string]struct{})
		for _, p := range b.Projects {
			roles[p.Role] = struct{}{}
		}
		flexibility := float64(len(roles)) / model.ProjectRoleCount * maxScore
		acc = acc.add(math.Min(maxScore, flexibility), adaptProjectWeight)
	}

	if len(b.FactionActivities) > 0 {
		types := make(map[string]struct{})
		for _, f := range b.FactionActivities {
			types[f.Type] = struct{}{}
		}
		diversity := float64(len(types)) / model.FactionActivityTypeCount * maxScore
		acc = acc.add(math.Min(maxScore, diversity), adaptFactionWeight)
	}

	return acc.result()
}

func missionsIn(missions []model.MissionResult, category model.MissionCategory) []model.MissionResult {
	var out []model.MissionResult
	for _, m := range missions {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

func meanMissions(missions []model.MissionResult, field func(model.MissionResult) float64) float64 {
	var sum float64
	for _, m := range missions {
		sum += field(m)
	}
	return sum / float64(len(missions))
}

func meanProjects(projects []model.ProjectContribution, field func(model.ProjectContribution) float64) float64 {
	var sum float64
	for _, p := range projects {
		sum += field(p)
	}
	return sum / float64(len(projects))
}
