// Package career predicts a best-fit career path and estimates market value
// from a skill breakdown.
package career

import (
	"math"

	"github.com/zentro/shadowscout/internal/domain/model"
)

// Template is a static catalog entry: minimum skill thresholds plus a
// growth-potential constant. Thresholds are always positive by construction.
type Template struct {
	ID              string
	Name            string
	Requirements    map[model.Skill]float64
	GrowthPotential float64
}

// DefaultCatalog returns the built-in path templates. Order matters: ties in
// match score resolve to the earliest entry.
func DefaultCatalog() []Template {
	return []Template{
		{
			ID:   "fullstack_developer",
			Name: "Full-Stack Developer",
			Requirements: map[model.Skill]float64{
				model.SkillTechnical:      70,
				model.SkillProblemSolving: 65,
				model.SkillAdaptability:   60,
			},
			GrowthPotential: 85,
		},
		{
			ID:   "security_specialist",
			Name: "Security Specialist",
			Requirements: map[model.Skill]float64{
				model.SkillTechnical:      75,
				model.SkillProblemSolving: 80,
				model.SkillCreativity:     60,
			},
			GrowthPotential: 90,
		},
		{
			ID:   "tech_lead",
			Name: "Technical Lead",
			Requirements: map[model.Skill]float64{
				model.SkillTechnical:     70,
				model.SkillLeadership:    75,
				model.SkillCommunication: 70,
			},
			GrowthPotential: 95,
		},
		{
			ID:   "product_manager",
			Name: "Product Manager",
			Requirements: map[model.Skill]float64{
				model.SkillCollaboration: 80,
				model.SkillCommunication: 85,
				model.SkillLeadership:    70,
			},
			GrowthPotential: 88,
		},
		{
			ID:   "ai_engineer",
			Name: "AI/ML Engineer",
			Requirements: map[model.Skill]float64{
				model.SkillTechnical:      85,
				model.SkillProblemSolving: 80,
				model.SkillCreativity:     75,
			},
			GrowthPotential: 92,
		},
	}
}

// Option applies a configuration option to the Predictor.
type Option func(*Predictor)

// WithCatalog replaces the built-in template catalog.
func WithCatalog(catalog []Template) Option {
	return func(p *Predictor) {
		if len(catalog) > 0 {
			p.catalog = catalog
		}
	}
}

// Predictor searches the catalog for the template a breakdown fits best.
type Predictor struct {
	catalog []Template
}

// NewPredictor creates a predictor with configuration options.
func NewPredictor(opts ...Option) *Predictor {
	p := &Predictor{catalog: DefaultCatalog()}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Predict returns the best-fit path, or nil when the catalog is empty.
// Comparison is strictly-greater, so equal scores keep the earliest entry;
// an all-zero breakdown therefore predicts the first catalog entry with
// MatchScore 0.
func (p *Predictor) Predict(breakdown model.SkillBreakdown) *model.CareerPath {
	var best *model.CareerPath
	bestScore := 0.0

	for _, tpl := range p.catalog {
		var fit float64
		for skill, required := range tpl.Requirements {
			fit += math.Min(breakdown[skill]/required, 1)
		}
		matchScore := fit / float64(len(tpl.Requirements)) * 100

		if best == nil || matchScore > bestScore {
			bestScore = matchScore
			requirements := make(map[model.Skill]float64, len(tpl.Requirements))
			for skill, required := range tpl.Requirements {
				requirements[skill] = required
			}
			best = &model.CareerPath{
				ID:              tpl.ID,
				Name:            tpl.Name,
				Requirements:    requirements,
				GrowthPotential: tpl.GrowthPotential,
				MatchScore:      matchScore,
			}
		}
	}

	return best
}
