package models

// EvolutionReqs are the progress thresholds a card needs before it may
// evolve. Opaque data beyond numeric comparison.
type EvolutionReqs struct {
	Votes   int `json:"votes"`
	Creates int `json:"creates"`
}

// PredefinedRankard is a collectible card definition owned by the backend.
type PredefinedRankard struct {
	Id       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	ImageUrl string `json:"image_url" db:"image_url"`
	// Stage 1..3, 3 is the final form
	Stage int `json:"stage" db:"stage"`
	// Rarity enum
	//
	// RarityComum RarityRaro RarityEpico RarityLendario
	Rarity        Rarity         `json:"rarity,omitempty" db:"rarity"`
	EvolutionReqs *EvolutionReqs `json:"evolution_reqs,omitempty" db:"evolution_reqs"`
}

// UserCard links a viewer to a predefined card they own.
type UserCard struct {
	Id               string `json:"id" db:"id"`
	PredefinedCardId string `json:"predefined_card_id" db:"predefined_card_id"`
}

type User struct {
	Id        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	AvatarUrl string `json:"avatar_url" db:"avatar_url"`
	Username  string `json:"username" db:"username"`
	// Role enum
	//
	// RoleUser RoleAdmin
	Role Role `json:"role" db:"role"`
	// CreationPoints currency earned by voting, spent on polls and eggs
	CreationPoints int `json:"creation_points" db:"creation_points"`
	// OnboardingCompleted gates the LOCAL and ROLÊ feeds
	OnboardingCompleted bool `json:"onboarding_completed" db:"onboarding_completed"`
	// PreferredCity empty until onboarding sets it
	PreferredCity string     `json:"preferred_city,omitempty" db:"preferred_city"`
	RankCards     []UserCard `json:"rank_cards"`
	// Collection progress counters, compared against EvolutionReqs only
	RankcardVoteProgress   int `json:"rankcard_vote_progress" db:"rankcard_vote_progress"`
	RankcardCreateProgress int `json:"rankcard_create_progress" db:"rankcard_create_progress"`
}
