package feed

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"rankiou/internal/models"
)

// Item is one feed entry, either a *models.Poll or a *models.Advertisement.
type Item interface {
	ItemID() string
}

// ErrLocationRequired distinguishes "viewer may not see this scope yet" from
// a valid feed that happens to be empty. LOCAL and ROLÊ require sign-in plus
// completed onboarding.
var ErrLocationRequired = errors.New("sign in and configure a city to see this feed")

// One ad after every adCadence polls, never after the last one.
const adCadence = 5

// GateOpen reports whether the viewer may browse the given scope.
func GateOpen(active models.Scope, viewer models.Viewer) bool {
	if !active.Localized() {
		return true
	}
	return viewer.Onboarded()
}

// Compose filters, sorts and ad-interleaves one scope's content into the
// ordered sequence the viewer sees. Inputs arrive pre-filtered by scope/city
// at the query boundary but are re-checked here; a stale collection must
// never leak another city's polls.
func Compose(polls []models.Poll, ads []models.Advertisement, active models.Scope, viewer models.Viewer, filter models.FilterState, today time.Weekday) ([]Item, error) {
	if !GateOpen(active, viewer) {
		return nil, ErrLocationRequired
	}

	kept := make([]models.Poll, 0, len(polls))
	for _, p := range polls {
		if p.Status != models.PollStatusApproved {
			continue
		}
		if !inScope(&p, active, viewer, today) {
			continue
		}
		if filter.CategoryFilter != models.FilterTudo && p.Category != models.Category(filter.CategoryFilter) {
			continue
		}
		switch filter.ShowFilter {
		case models.ShowVotadas:
			if !p.Voted() {
				continue
			}
		case models.ShowNaoVotadas:
			if p.Voted() {
				continue
			}
		}
		if term := filter.SearchTerm; term != "" &&
			!strings.Contains(strings.ToLower(p.Title), strings.ToLower(term)) {
			continue
		}
		kept = append(kept, p)
	}

	// Ties keep their prior relative order, so the sort must be stable.
	if filter.SortOrder == models.SortMaisVotadas {
		slices.SortStableFunc(kept, func(a, b models.Poll) int {
			return b.TotalVotes - a.TotalVotes
		})
	} else {
		slices.SortStableFunc(kept, func(a, b models.Poll) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	pool := eligibleAds(ads, active, viewer)
	return interleave(kept, pool), nil
}

func inScope(p *models.Poll, active models.Scope, viewer models.Viewer, today time.Weekday) bool {
	switch active {
	case models.ScopeMundo:
		return p.Scope == models.ScopeMundo
	case models.ScopeLocal:
		return p.Scope == models.ScopeLocal && p.LocationCity == viewer.City()
	case models.ScopeRole:
		if p.Scope != models.ScopeRole || p.LocationCity != viewer.City() {
			return false
		}
		day, ok := ExtractWeekday(p.Title)
		// Days never wrap past Saturday; last week's events stay hidden
		// until the backend bot reposts them.
		return ok && day >= today
	}
	return false
}

func eligibleAds(ads []models.Advertisement, active models.Scope, viewer models.Viewer) []models.Advertisement {
	// Sponsored content never enters the event feed.
	if active == models.ScopeRole {
		return nil
	}
	pool := make([]models.Advertisement, 0, len(ads))
	for _, ad := range ads {
		if ad.Status != models.AdStatusActive {
			continue
		}
		switch active {
		case models.ScopeMundo:
			if ad.Scope == models.ScopeMundo {
				pool = append(pool, ad)
			}
		case models.ScopeLocal:
			if viewer.Authenticated && viewer.City() != "" &&
				ad.Scope == models.ScopeLocal && ad.LocationCity == viewer.City() {
				pool = append(pool, ad)
			}
		}
	}
	return pool
}

// interleave inserts one ad after every adCadence-th poll, round-robin over
// the pool. Deterministic for a given input; the last item is always a poll.
func interleave(polls []models.Poll, pool []models.Advertisement) []Item {
	items := make([]Item, 0, len(polls)+len(polls)/adCadence)
	if len(pool) == 0 {
		for i := range polls {
			items = append(items, &polls[i])
		}
		return items
	}

	adCursor := 0
	for i := range polls {
		items = append(items, &polls[i])
		if (i+1)%adCadence == 0 && i < len(polls)-1 {
			items = append(items, &pool[adCursor%len(pool)])
			adCursor++
		}
	}
	return items
}
