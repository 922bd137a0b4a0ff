package models

// Advertisement is read-only sponsored content interleaved into the MUNDO and
// LOCAL feeds. Never shown in ROLÊ.
type Advertisement struct {
	Id         string `json:"id" db:"id"`
	Advertiser string `json:"advertiser" db:"advertiser"`
	Title      string `json:"title" db:"title"`
	CtaText    string `json:"cta_text" db:"cta_text"`
	CtaUrl     string `json:"cta_url" db:"cta_url"`
	ImageUrl   string `json:"image_url" db:"image_url"`
	// Scope enum, ROLÊ is not a valid ad scope
	//
	// ScopeMundo ScopeLocal
	Scope Scope `json:"scope" db:"scope"`
	// LocationCity set iff scope is LOCAL
	LocationCity string `json:"location_city,omitempty" db:"location_city"`
	// Status enum
	//
	// AdStatusActive AdStatusPaused
	Status AdStatus `json:"status" db:"status"`
}

func (a *Advertisement) ItemID() string { return a.Id }
