package models

type Scope string
type Category string
type PollType string
type PollStatus string
type AdStatus string
type Role string
type Rarity string

type SortOrder string
type CategoryFilter string
type ShowFilter string

const (
	// ScopeMundo global feed, visible to everyone
	ScopeMundo Scope = "MUNDO"
	// ScopeLocal city-bound feed
	ScopeLocal Scope = "LOCAL"
	// ScopeRole city+weekday-bound event feed
	ScopeRole Scope = "ROLÊ"
)

const (
	CategoryGeral      Category = "GERAL"
	CategoryEsportes   Category = "ESPORTES"
	CategoryComida     Category = "COMIDA & BEBIDA"
	CategoryFilmes     Category = "FILMES & SÉRIES"
	CategoryGames      Category = "GAMES"
	CategoryTecnologia Category = "TECNOLOGIA"
	CategoryLazer      Category = "LAZER"
)

const (
	// PollTypeEnquete fixed single-choice poll
	PollTypeEnquete PollType = "ENQUETE"
	// PollTypePerguntas open poll, viewers may append their own answer
	PollTypePerguntas PollType = "PERGUNTAS"
)

const (
	PollStatusApproved PollStatus = "APPROVED"
	PollStatusPending  PollStatus = "PENDING"
	PollStatusRejected PollStatus = "REJECTED"
)

const (
	AdStatusActive AdStatus = "ACTIVE"
	AdStatusPaused AdStatus = "PAUSED"
)

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const (
	RarityComum    Rarity = "COMUM"
	RarityRaro     Rarity = "RARO"
	RarityEpico    Rarity = "ÉPICO"
	RarityLendario Rarity = "LENDÁRIO"
)

const (
	SortMaisRecentes SortOrder = "MAIS RECENTES"
	SortMaisVotadas  SortOrder = "MAIS VOTADAS"
)

// FilterTudo is shared by CategoryFilter and ShowFilter as the no-op value.
const FilterTudo = "TUDO"

const (
	ShowTudo       ShowFilter = FilterTudo
	ShowVotadas    ShowFilter = "VOTADAS"
	ShowNaoVotadas ShowFilter = "NÃO VOTADAS"
)

// Categories in backend schema order, used for create-poll validation.
var Categories = []Category{
	CategoryGeral,
	CategoryEsportes,
	CategoryComida,
	CategoryFilmes,
	CategoryGames,
	CategoryTecnologia,
	CategoryLazer,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

func (s Scope) Valid() bool {
	return s == ScopeMundo || s == ScopeLocal || s == ScopeRole
}

// Localized means polls/ads of this scope carry a location_city.
func (s Scope) Localized() bool {
	return s == ScopeLocal || s == ScopeRole
}
