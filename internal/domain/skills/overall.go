package skills

import (
	"github.com/zentro/shadowscout/internal/domain/model"
)

// Default overall-score weights. Skills absent from the table fall back to
// defaultOverallWeight, keeping the combination convex.
const defaultOverallWeight = 0.1

func defaultOverallWeights() map[model.Skill]float64 {
	return map[model.Skill]float64{
		model.SkillTechnical:      0.3,
		model.SkillProblemSolving: 0.25,
		model.SkillCollaboration:  0.15,
	}
}

// AggregatorOption applies a configuration option to the Aggregator.
type AggregatorOption func(*Aggregator)

// WithOverallWeights sets overall-score weights from a configuration map
// keyed by skill name. Non-positive weights are ignored.
func WithOverallWeights(weights map[string]float64, defaultWeight float64) AggregatorOption {
	return func(a *Aggregator) {
		if len(weights) > 0 {
			// Copy the weights map to avoid external modifications
			a.weights = make(map[model.Skill]float64)
			for skill, weight := range weights {
				if weight > 0 {
					a.weights[model.Skill(skill)] = weight
				}
			}
		}
		if defaultWeight > 0 {
			a.defaultWeight = defaultWeight
		}
	}
}

// Aggregator combines a skill breakdown into one overall score.
type Aggregator struct {
	weights       map[model.Skill]float64
	defaultWeight float64
}

// NewAggregator creates an aggregator with configuration options.
func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		weights:       defaultOverallWeights(),
		defaultWeight: defaultOverallWeight,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Overall computes the weighted average of the breakdown. Inputs are already
// clamped to [0, 100] and the weights form a convex combination, so the
// result needs no further clamping.
func (a *Aggregator) Overall(breakdown model.SkillBreakdown) float64 {
	var totalScore, totalWeight float64

	for skill, score := range breakdown {
		weight, ok := a.weights[skill]
		if !ok {
			weight = a.defaultWeight
		}
		totalScore += score * weight
		totalWeight += weight
	}

	if totalWeight <= 0 {
		return 0
	}
	return totalScore / totalWeight
}
