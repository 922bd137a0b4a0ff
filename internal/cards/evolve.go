package cards

import (
	"rankiou/internal/models"
)

// EggCost in creation points for a new egg after the free first one.
const EggCost = 100

const finalStage = 3

// CanEvolve compares the viewer's progress counters against the card's
// thresholds. The thresholds themselves are opaque backend data; this is the
// only contract the engine has with the progression rules.
func CanEvolve(user *models.User, card *models.PredefinedRankard) bool {
	if user == nil || card == nil {
		return false
	}
	if card.Stage >= finalStage || card.EvolutionReqs == nil {
		return false
	}
	return user.RankcardVoteProgress >= card.EvolutionReqs.Votes &&
		user.RankcardCreateProgress >= card.EvolutionReqs.Creates
}

// CanBuyEgg reports whether the viewer affords a new egg. The first egg is
// free when the collection is empty.
func CanBuyEgg(user *models.User) bool {
	if user == nil {
		return false
	}
	if len(user.RankCards) == 0 {
		return true
	}
	return user.CreationPoints >= EggCost
}

// Owned joins the viewer's cards with their definitions, dropping orphans
// whose definition no longer exists.
func Owned(user *models.User, defs []models.PredefinedRankard) []OwnedCard {
	if user == nil {
		return nil
	}
	byID := make(map[string]*models.PredefinedRankard, len(defs))
	for i := range defs {
		byID[defs[i].Id] = &defs[i]
	}
	out := make([]OwnedCard, 0, len(user.RankCards))
	for _, uc := range user.RankCards {
		def, ok := byID[uc.PredefinedCardId]
		if !ok {
			continue
		}
		out = append(out, OwnedCard{
			UserCardId: uc.Id,
			Card:       *def,
			Evolvable:  CanEvolve(user, def),
		})
	}
	return out
}

type OwnedCard struct {
	UserCardId string                   `json:"user_card_id"`
	Card       models.PredefinedRankard `json:"card"`
	Evolvable  bool                     `json:"evolvable"`
}
