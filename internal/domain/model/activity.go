// Package model contains domain models passed between layers.
package model

// MissionCategory identifies the mission track an identity attempted.
type MissionCategory string

// Mission categories recognized by the scorers.
const (
	CategoryCodeOps           MissionCategory = "code_ops"
	CategoryDesignDives       MissionCategory = "design_dives"
	CategorySecurityProtocols MissionCategory = "security_protocols"
	CategoryDatabaseOps       MissionCategory = "database_ops"
)

// MissionCategoryCount is the fixed denominator for mission diversity.
const MissionCategoryCount = 4

// CipherDifficulty grades a cipher challenge.
type CipherDifficulty string

// Cipher difficulty grades.
const (
	DifficultyEasy    CipherDifficulty = "easy"
	DifficultyMedium  CipherDifficulty = "medium"
	DifficultyHard    CipherDifficulty = "hard"
	DifficultyExtreme CipherDifficulty = "extreme"
)

// Project and battle roles.
const (
	RoleLeader    = "leader"
	RoleArchitect = "ARCHITECT"
	RoleGhost     = "GHOST"

	BattleTypeSquad = "squad"

	FactionTypeLeadership = "leadership"
)

// Fixed denominators for the adaptability scorer.
const (
	ProjectRoleCount         = 5
	FactionActivityTypeCount = 6
)

// MissionResult records one completed mission. Missing numeric fields
// default to zero at the ingestion boundary.
type MissionResult struct {
	Category         MissionCategory `json:"category"`
	Score            float64         `json:"score"`
	SpeedBonus       float64         `json:"speed_bonus"`
	InnovationPoints float64         `json:"innovation_points"`
	CreativityRating float64         `json:"creativity_rating"`
}

// CipherSolve records one cipher attempt.
type CipherSolve struct {
	Difficulty     CipherDifficulty `json:"difficulty"`
	Solved         bool             `json:"solved"`
	UniqueSolution bool             `json:"unique_solution"`
}

// BattleResult records participation in an arena or squad battle.
type BattleResult struct {
	Type             string  `json:"type"`
	Role             string  `json:"role"`
	TeamworkRating   float64 `json:"teamwork_rating"`
	LeadershipRating float64 `json:"leadership_rating"`
}

// ProjectContribution records one project engagement.
type ProjectContribution struct {
	Role                  string  `json:"role"`
	TechnicalContribution float64 `json:"technical_contribution"`
	CollaborationRating   float64 `json:"collaboration_rating"`
	CommunicationRating   float64 `json:"communication_rating"`
	InnovationRating      float64 `json:"innovation_rating"`
	LeadershipRating      float64 `json:"leadership_rating"`
}

// DeceptionGame records one social-deduction game result.
type DeceptionGame struct {
	Role                string  `json:"role"`
	Won                 bool    `json:"won"`
	StrategyRating      float64 `json:"strategy_rating"`
	TeamworkRating      float64 `json:"teamwork_rating"`
	CommunicationRating float64 `json:"communication_rating"`
}

// FactionActivity records one faction engagement.
type FactionActivity struct {
	Type                string  `json:"type"`
	Rating              float64 `json:"rating"`
	CommunicationRating float64 `json:"communication_rating"`
}

// ActivityBundle is the complete set of category-grouped activity records
// supplied for one assessment run. Records are immutable once ingested.
type ActivityBundle struct {
	Missions          []MissionResult       `json:"missions"`
	Ciphers           []CipherSolve         `json:"ciphers"`
	Battles           []BattleResult        `json:"battles"`
	Projects          []ProjectContribution `json:"projects"`
	DeceptionGames    []DeceptionGame       `json:"deception_games"`
	FactionActivities []FactionActivity     `json:"faction_activities"`
}

// Empty reports whether the bundle carries no records at all.
func (b ActivityBundle) Empty() bool {
	return len(b.Missions) == 0 &&
		len(b.Ciphers) == 0 &&
		len(b.Battles) == 0 &&
		len(b.Projects) == 0 &&
		len(b.DeceptionGames) == 0 &&
		len(b.FactionActivities) == 0
}

// ActivityEvent carries one activity record for asynchronous ingestion.
// Exactly one record pointer is expected to be set; Kind names it.
type ActivityEvent struct {
	EventID  string `json:"event_id"`
	ShadowID string `json:"shadow_id"`
	Kind     string `json:"kind"`

	Mission   *MissionResult       `json:"mission,omitempty"`
	Cipher    *CipherSolve         `json:"cipher,omitempty"`
	Battle    *BattleResult        `json:"battle,omitempty"`
	Project   *ProjectContribution `json:"project,omitempty"`
	Deception *DeceptionGame       `json:"deception,omitempty"`
	Faction   *FactionActivity     `json:"faction,omitempty"`
}

// Event kinds accepted by the ingestion pipeline.
const (
	KindMission   = "mission"
	KindCipher    = "cipher"
	KindBattle    = "battle"
	KindProject   = "project"
	KindDeception = "deception"
	KindFaction   = "faction"
)

// Record returns the populated variant, or nil if the event is malformed.
func (e ActivityEvent) Record() any {
	switch e.Kind {
	case KindMission:
		if e.Mission != nil {
			return *e.Mission
		}
	case KindCipher:
		if e.Cipher != nil {
			return *e.Cipher
		}
	case KindBattle:
		if e.Battle != nil {
			return *e.Battle
		}
	case KindProject:
		if e.Project != nil {
			return *e.Project
		}
	case KindDeception:
		if e.Deception != nil {
			return *e.Deception
		}
	case KindFaction:
		if e.Faction != nil {
			return *e.Faction
		}
	}
	return nil
}

// Apply folds the event's record into the bundle, returning the grown bundle.
// Malformed events (no matching record) leave the bundle unchanged.
func (b ActivityBundle) Apply(e ActivityEvent) ActivityBundle {
	switch rec := e.Record().(type) {
	case MissionResult:
		b.Missions = append(b.Missions, rec)
	case CipherSolve:
		b.Ciphers = append(b.Ciphers, rec)
	case BattleResult:
		b.Battles = append(b.Battles, rec)
	case ProjectContribution:
		b.Projects = append(b.Projects, rec)
	case DeceptionGame:
		b.DeceptionGames = append(b.DeceptionGames, rec)
	case FactionActivity:
		b.FactionActivities = append(b.FactionActivities, rec)
	}
	return b
}
