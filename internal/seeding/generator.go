package seeding

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/zentro/shadowscout/internal/domain/model"
	"github.com/zentro/shadowscout/pkg/logger"
)

const randomFloatDivisor = 1000000

// randomFloat returns a random float64 in [0.0, 1.0) using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomPick returns a random element of choices.
func randomPick[T any](choices []T) T {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(choices))))
	return choices[n.Int64()]
}

// rating returns a random rating in [lo, hi].
func rating(lo, hi float64) float64 {
	return lo + randomFloat()*(hi-lo)
}

var missionCategories = []model.MissionCategory{
	model.CategoryCodeOps,
	model.CategoryDesignDives,
	model.CategorySecurityProtocols,
	model.CategoryDatabaseOps,
}

var cipherDifficulties = []model.CipherDifficulty{
	model.DifficultyEasy,
	model.DifficultyMedium,
	model.DifficultyHard,
	model.DifficultyExtreme,
}

var battleRoles = []string{model.RoleLeader, "striker", "support"}

var projectRoles = []string{model.RoleLeader, "developer", "designer", "analyst", "tester"}

var deceptionRoles = []string{model.RoleArchitect, model.RoleGhost, "citizen"}

var factionTypes = []string{model.FactionTypeLeadership, "raid", "defense", "diplomacy", "recruitment", "logistics"}

var eventKinds = []string{
	model.KindMission,
	model.KindCipher,
	model.KindBattle,
	model.KindProject,
	model.KindDeception,
	model.KindFaction,
}

// GenerateEvents creates activity submissions for NumShadows identities,
// EventsPerShadow each, with randomized but plausible records.
func GenerateEvents(ctx context.Context, config *Config, stats *Stats) ([]Submission, error) {
	logger.Get().Info(ctx, "generating activity events",
		logger.Int("shadows", config.NumShadows),
		logger.Int("eventsPerShadow", config.EventsPerShadow),
	)

	total := config.NumShadows * config.EventsPerShadow
	events := make([]Submission, 0, total)

	for s := 0; s < config.NumShadows; s++ {
		shadowID := uuid.New().String()
		for i := 0; i < config.EventsPerShadow; i++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			events = append(events, generateSingleEvent(s*config.EventsPerShadow+i, shadowID))
		}
	}

	stats.EventsGenerated = len(events)
	logger.Get().Info(ctx, "generated activity events", logger.Int("count", len(events)))

	return events, nil
}

// generateSingleEvent creates one randomized activity event for an identity.
func generateSingleEvent(index int, shadowID string) Submission {
	event := model.ActivityEvent{
		EventID:  "activity_" + strconv.Itoa(index) + "_" + uuid.New().String(),
		ShadowID: shadowID,
		Kind:     randomPick(eventKinds),
	}

	switch event.Kind {
	case model.KindMission:
		event.Mission = &model.MissionResult{
			Category:         randomPick(missionCategories),
			Score:            rating(30, 100),
			SpeedBonus:       rating(0, 20),
			InnovationPoints: rating(0, 15),
			CreativityRating: rating(20, 100),
		}
	case model.KindCipher:
		event.Cipher = &model.CipherSolve{
			Difficulty:     randomPick(cipherDifficulties),
			Solved:         randomFloat() < 0.7,
			UniqueSolution: randomFloat() < 0.2,
		}
	case model.KindBattle:
		event.Battle = &model.BattleResult{
			Type:             model.BattleTypeSquad,
			Role:             randomPick(battleRoles),
			TeamworkRating:   rating(20, 100),
			LeadershipRating: rating(10, 95),
		}
	case model.KindProject:
		event.Project = &model.ProjectContribution{
			Role:                  randomPick(projectRoles),
			TechnicalContribution: rating(20, 100),
			CollaborationRating:   rating(20, 100),
			CommunicationRating:   rating(20, 100),
			InnovationRating:      rating(10, 100),
			LeadershipRating:      rating(10, 95),
		}
	case model.KindDeception:
		event.Deception = &model.DeceptionGame{
			Role:                randomPick(deceptionRoles),
			Won:                 randomFloat() < 0.5,
			StrategyRating:      rating(20, 100),
			TeamworkRating:      rating(20, 100),
			CommunicationRating: rating(20, 100),
		}
	case model.KindFaction:
		event.Faction = &model.FactionActivity{
			Type:                randomPick(factionTypes),
			Rating:              rating(20, 100),
			CommunicationRating: rating(20, 100),
		}
	}

	return Submission{
		ActivityEvent: event,
		TS:            time.Now().UTC().Format(time.RFC3339),
	}
}
