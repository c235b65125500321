// Package matching scores multi-factor team compatibility between assessed
// identities and ranks candidate teammates.
package matching

import (
	"math"
	"sort"

	"github.com/zentro/shadowscout/internal/domain/model"
)

// Factor weights for the combined compatibility score.
const (
	complementarityWeight = 0.4
	communicationWeight   = 0.3
	workingStyleWeight    = 0.2
	personalityWeight     = 0.1
)

// DefaultThreshold is the score a match must strictly exceed to be returned.
const DefaultThreshold = 70

// Compatibility computes the weighted four-factor result for two profiles.
func Compatibility(a, b model.SkillBreakdown) model.CompatibilityResult {
	breakdown := model.CompatibilityBreakdown{
		SkillComplementarity:       SkillComplementarity(a, b),
		CommunicationCompatibility: CommunicationCompatibility(a, b),
		WorkingStyleCompatibility:  WorkingStyleCompatibility(a, b),
		PersonalityFit:             PersonalityFit(a, b),
	}

	score := breakdown.SkillComplementarity*complementarityWeight +
		breakdown.CommunicationCompatibility*communicationWeight +
		breakdown.WorkingStyleCompatibility*workingStyleWeight +
		breakdown.PersonalityFit*personalityWeight

	return model.CompatibilityResult{Score: score, Breakdown: breakdown}
}

// SkillComplementarity rewards skill differences up to 30 points for every
// dimension where both profiles exceed 50, averaged over all dimensions.
// Symmetric in its arguments.
func SkillComplementarity(a, b model.SkillBreakdown) float64 {
	const (
		bothAboveFloor = 50
		diffCap        = 30
	)

	var complement float64
	skills := model.Skills()
	for _, skill := range skills {
		if a[skill] > bothAboveFloor && b[skill] > bothAboveFloor {
			complement += math.Min(math.Abs(a[skill]-b[skill]), diffCap)
		}
	}

	return math.Min(100, complement/float64(len(skills)))
}

// CommunicationCompatibility applies a tiered rule to the pair of
// communication scores. Symmetric in its arguments.
func CommunicationCompatibility(a, b model.SkillBreakdown) float64 {
	const (
		highFloor   = 70
		mediumFloor = 50
	)

	commA := a[model.SkillCommunication]
	commB := b[model.SkillCommunication]

	switch {
	case commA > highFloor && commB > highFloor:
		// Both high communicators work well together
		return 90
	case (commA > highFloor && commB > mediumFloor) || (commB > highFloor && commA > mediumFloor):
		return 75
	case commA > mediumFloor && commB > mediumFloor:
		return 60
	default:
		// Low communication scores are problematic
		return 40
	}
}

// WorkingStyleCompatibility applies a tiered rule to the pair of leadership
// scores. The leader/follower branch checks both orderings, keeping the
// result symmetric.
func WorkingStyleCompatibility(a, b model.SkillBreakdown) float64 {
	const (
		leaderFloor    = 70
		followerCeil   = 60
		bothLowCeiling = 50
	)

	leadA := a[model.SkillLeadership]
	leadB := b[model.SkillLeadership]

	switch {
	case (leadA > leaderFloor && leadB < followerCeil) || (leadB > leaderFloor && leadA < followerCeil):
		// One leader, one follower is ideal
		return 85
	case leadA > leaderFloor && leadB > leaderFloor:
		// Two leaders can clash
		return 50
	case leadA < bothLowCeiling && leadB < bothLowCeiling:
		// Two followers need external leadership
		return 45
	default:
		return 70
	}
}

// PersonalityFit blends creativity similarity with shared adaptability.
// Symmetric in its arguments.
func PersonalityFit(a, b model.SkillBreakdown) float64 {
	creativityFit := 100 - math.Abs(a[model.SkillCreativity]-b[model.SkillCreativity])
	adaptabilityBonus := math.Min(a[model.SkillAdaptability], b[model.SkillAdaptability]) * 0.5

	return math.Min(100, (creativityFit+adaptabilityBonus)/1.5)
}

// RecommendRole derives a project role from a candidate's skill breakdown
// via a fixed decision list.
func RecommendRole(skills model.SkillBreakdown) string {
	switch {
	case skills[model.SkillLeadership] > 75 && skills[model.SkillTechnical] > 70:
		return model.RoleArchitect
	case skills[model.SkillTechnical] > 80:
		return "DEVELOPER"
	case skills[model.SkillCreativity] > 75:
		return "DESIGNER"
	case skills[model.SkillProblemSolving] > 80 && skills[model.SkillTechnical] > 70:
		return "SECURITY"
	case skills[model.SkillTechnical] > 60 && skills[model.SkillProblemSolving] > 70:
		return "DATA"
	default:
		return "DEVELOPER"
	}
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithThreshold sets the compatibility score matches must strictly exceed.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		if threshold >= 0 && threshold <= 100 {
			m.threshold = threshold
		}
	}
}

// Matcher ranks stored peers by compatibility with one identity.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher with configuration options.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{threshold: DefaultThreshold}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// FindMatches scores every peer against self, keeps those strictly above the
// threshold (or req.MinScore when provided) and returns them sorted by score
// descending, shadow ID ascending on ties.
func (m *Matcher) FindMatches(self model.Assessment, peers []model.Assessment, req model.ProjectRequirements) []model.TeamMatch {
	threshold := m.threshold
	if req.MinScore != nil {
		threshold = *req.MinScore
	}

	matches := make([]model.TeamMatch, 0)
	for _, peer := range peers {
		if peer.ShadowID == self.ShadowID {
			continue
		}

		compatibility := Compatibility(self.SkillBreakdown, peer.SkillBreakdown)
		if compatibility.Score <= threshold {
			continue
		}

		matches = append(matches, model.TeamMatch{
			ShadowID:        peer.ShadowID,
			Compatibility:   compatibility,
			RecommendedRole: RecommendRole(peer.SkillBreakdown),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Compatibility.Score != matches[j].Compatibility.Score {
			return matches[i].Compatibility.Score > matches[j].Compatibility.Score
		}
		return matches[i].ShadowID < matches[j].ShadowID
	})

	return matches
}
