package feed

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"rankiou/internal/models"
)

var baseTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func approvedPoll(id, title string, scope models.Scope, city string, votes int, age time.Duration) models.Poll {
	return models.Poll{
		Id:           id,
		Title:        title,
		Category:     models.CategoryGeral,
		Type:         models.PollTypeEnquete,
		Scope:        scope,
		LocationCity: city,
		Options: []models.Option{
			{Text: "Sim", Votes: votes},
			{Text: "Não", Votes: 0},
		},
		TotalVotes: votes,
		CreatedAt:  baseTime.Add(-age),
		Status:     models.PollStatusApproved,
	}
}

func onboarded(city string) models.Viewer {
	return models.Viewer{
		Authenticated: true,
		User: &models.User{
			Id:                  "viewer-1",
			OnboardingCompleted: true,
			PreferredCity:       city,
		},
	}
}

func defaultFilter() models.FilterState { return models.DefaultFilterState() }

func pollIDs(t *testing.T, items []Item) []string {
	t.Helper()
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := it.(*models.Poll); !ok {
			t.Fatalf("unexpected non-poll item %q", it.ItemID())
		}
		ids = append(ids, it.ItemID())
	}
	return ids
}

func TestComposeDropsUnapprovedAndForeignScopes(t *testing.T) {
	pending := approvedPoll("p-pending", "Pendente", models.ScopeMundo, "", 0, time.Hour)
	pending.Status = models.PollStatusPending
	rejected := approvedPoll("p-rejected", "Rejeitada", models.ScopeMundo, "", 0, time.Hour)
	rejected.Status = models.PollStatusRejected

	polls := []models.Poll{
		approvedPoll("p-1", "Global", models.ScopeMundo, "", 3, time.Hour),
		pending,
		rejected,
		approvedPoll("p-local", "Da cidade", models.ScopeLocal, "Recife", 9, time.Hour),
	}

	items, err := Compose(polls, nil, models.ScopeMundo, models.Guest(), defaultFilter(), time.Wednesday)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	got := pollIDs(t, items)
	if len(got) != 1 || got[0] != "p-1" {
		t.Errorf("got %v, want [p-1]", got)
	}
}

func TestComposeLocalRequiresExactCityMatch(t *testing.T) {
	polls := []models.Poll{
		approvedPoll("p-recife", "Praia hoje?", models.ScopeLocal, "Recife", 1, time.Hour),
		approvedPoll("p-olinda", "Frevo?", models.ScopeLocal, "Olinda", 1, time.Hour),
		approvedPoll("p-mundo", "Global", models.ScopeMundo, "", 1, time.Hour),
	}

	items, err := Compose(polls, nil, models.ScopeLocal, onboarded("Recife"), defaultFilter(), time.Wednesday)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	got := pollIDs(t, items)
	if len(got) != 1 || got[0] != "p-recife" {
		t.Errorf("got %v, want [p-recife]", got)
	}
}

func TestComposeGate(t *testing.T) {
	tests := []struct {
		name    string
		scope   models.Scope
		viewer  models.Viewer
		gateErr bool
	}{
		{"guest mundo", models.ScopeMundo, models.Guest(), false},
		{"guest local", models.ScopeLocal, models.Guest(), true},
		{"guest role", models.ScopeRole, models.Guest(), true},
		{
			name:  "authenticated but not onboarded",
			scope: models.ScopeLocal,
			viewer: models.Viewer{
				Authenticated: true,
				User:          &models.User{Id: "u1"},
			},
			gateErr: true,
		},
		{"onboarded local", models.ScopeLocal, onboarded("Recife"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(nil, nil, tt.scope, tt.viewer, defaultFilter(), time.Wednesday)
			if tt.gateErr {
				if !errors.Is(err, ErrLocationRequired) {
					t.Fatalf("err = %v, want ErrLocationRequired", err)
				}
			} else if err != nil {
				t.Fatalf("Compose: %v", err)
			}
		})
	}
}

func TestComposeGateIsNotAnEmptyFeed(t *testing.T) {
	// A closed gate must be distinguishable from zero matches.
	items, err := Compose(nil, nil, models.ScopeLocal, models.Guest(), defaultFilter(), time.Wednesday)
	if err == nil {
		t.Fatalf("expected ErrLocationRequired, got %d items", len(items))
	}

	items, err = Compose(nil, nil, models.ScopeMundo, models.Guest(), defaultFilter(), time.Wednesday)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected an empty, valid feed, got %d items", len(items))
	}
}

func TestComposeRoleWeekdayWindow(t *testing.T) {
	event := approvedPoll("p-hh", "Happy hour SEXTA-FEIRA", models.ScopeRole, "Recife", 4, time.Hour)

	tests := []struct {
		name  string
		today time.Weekday
		want  int
	}{
		{"evaluated on wednesday", time.Wednesday, 1},
		{"evaluated on friday itself", time.Friday, 1},
		{"evaluated on saturday", time.Saturday, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Compose([]models.Poll{event}, nil, models.ScopeRole, onboarded("Recife"), defaultFilter(), tt.today)
			if err != nil {
				t.Fatalf("Compose: %v", err)
			}
			if len(items) != tt.want {
				t.Errorf("got %d items, want %d", len(items), tt.want)
			}
		})
	}
}

func TestComposeRoleDropsUndatedAndForeignEvents(t *testing.T) {
	polls := []models.Poll{
		approvedPoll("p-undated", "Festa surpresa", models.ScopeRole, "Recife", 0, time.Hour),
		approvedPoll("p-elsewhere", "Samba SÁBADO", models.ScopeRole, "Olinda", 0, time.Hour),
		approvedPoll("p-ok", "Samba SÁBADO", models.ScopeRole, "Recife", 0, time.Hour),
	}

	items, err := Compose(polls, nil, models.ScopeRole, onboarded("Recife"), defaultFilter(), time.Monday)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	got := pollIDs(t, items)
	if len(got) != 1 || got[0] != "p-ok" {
		t.Errorf("got %v, want [p-ok]", got)
	}
}

func TestComposeSearchTerm(t *testing.T) {
	polls := []models.Poll{
		approvedPoll("p-pizza", "Melhor pizza da cidade?", models.ScopeMundo, "", 0, time.Hour),
		approvedPoll("p-time", "Time do coração", models.ScopeMundo, "", 0, time.Hour),
	}
	filter := defaultFilter()
	filter.SearchTerm = "pizza"

	items, err := Compose(polls, nil, models.ScopeMundo, models.Guest(), filter, time.Wednesday)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	got := pollIDs(t, items)
	if len(got) != 1 || got[0] != "p-pizza" {
		t.Errorf("search %q got %v, want [p-pizza]", filter.SearchTerm, got)
	}

	// Case-insensitive both ways.
	filter.SearchTerm = "PIZZA"
	items, _ = Compose(polls, nil, models.ScopeMundo, models.Guest(), filter, time.Wednesday)
	if got := pollIDs(t, items); len(got) != 1 || got[0] != "p-pizza" {
		t.Errorf("search %q got %v, want [p-pizza]", filter.SearchTerm, got)
	}
}

func TestComposeCategoryAndShowFilters(t *testing.T) {
	voted := approvedPoll("p-voted", "Já votei", models.ScopeMundo, "", 5, time.Hour)
	voted.UserVote = "Sim"
	games := approvedPoll("p-games", "Qual console?", models.ScopeMundo, "", 2, 2*time.Hour)
	games.Category = models.CategoryGames
	fresh := approvedPoll("p-fresh", "Novidade", models.ScopeMundo, "", 0, 3*time.Hour)

	polls := []models.Poll{voted, games, fresh}

	filter := defaultFilter()
	filter.CategoryFilter = models.CategoryFilter(models.CategoryGames)
	items, err := Compose(polls, nil, models.ScopeMundo, models.Guest(), filter, time.Wednesday)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := pollIDs(t, items); len(got) != 1 || got[0] != "p-games" {
		t.Errorf("category filter got %v, want [p-games]", got)
	}

	filter = defaultFilter()
	filter.ShowFilter = models.ShowVotadas
	items, _ = Compose(polls, nil, models.ScopeMundo, models.Guest(), filter, time.Wednesday)
	if got := pollIDs(t, items); len(got) != 1 || got[0] != "p-voted" {
		t.Errorf("VOTADAS got %v, want [p-voted]", got)
	}

	filter.ShowFilter = models.ShowNaoVotadas
	items, _ = Compose(polls, nil, models.ScopeMundo, models.Guest(), filter, time.Wednesday)
	if got := pollIDs(t, items); len(got) != 2 || got[0] != "p-games" || got[1] != "p-fresh" {
		t.Errorf("NÃO VOTADAS got %v, want [p-games p-fresh]", got)
	}
}

func TestComposeSortMaisVotadas(t *testing.T) {
	polls := []models.Poll{
		approvedPoll("p-3", "Três", models.ScopeMundo, "", 3, time.Hour),
		approvedPoll("p-10", "Dez", models.ScopeMundo, "", 10, 2*time.Hour),
		approvedPoll("p-1", "Um", models.ScopeMundo, "", 1, 3*time.Hour),
	}
	filter := defaultFilter()
	filter.SortOrder = models.SortMaisVotadas

	items, err := Compose(polls, nil, models.ScopeMundo, models.Guest(), filter, time.Wednesday)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	got := pollIDs(t, items)
	want := []string{"p-10", "p-3", "p-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestComposeSortTiesAreStable(t *testing.T) {
	// Equal tallies keep the input's relative order.
	polls := []models.Poll{
		approvedPoll("p-a", "A", models.ScopeMundo, "", 5, time.Hour),
		approvedPoll("p-b", "B", models.ScopeMundo, "", 5, 2*time.Hour),
		approvedPoll("p-c", "C", models.ScopeMundo, "", 5, 30*time.Minute),
	}
	filter := defaultFilter()
	filter.SortOrder = models.SortMaisVotadas

	items, err := Compose(polls, nil, models.ScopeMundo, models.Guest(), filter, time.Wednesday)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	got := pollIDs(t, items)
	want := []string{"p-a", "p-b", "p-c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestComposeSortMaisRecentes(t *testing.T) {
	polls := []models.Poll{
		approvedPoll("p-old", "Velha", models.ScopeMundo, "", 100, 48*time.Hour),
		approvedPoll("p-new", "Nova", models.ScopeMundo, "", 0, time.Minute),
		approvedPoll("p-mid", "Média", models.ScopeMundo, "", 50, 24*time.Hour),
	}

	items, err := Compose(polls, nil, models.ScopeMundo, models.Guest(), defaultFilter(), time.Wednesday)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	got := pollIDs(t, items)
	want := []string{"p-new", "p-mid", "p-old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func activeAd(id string, scope models.Scope, city string) models.Advertisement {
	return models.Advertisement{
		Id:           id,
		Advertiser:   "Anunciante",
		Title:        "Oferta",
		CtaText:      "Clique",
		CtaUrl:       "https://example.com",
		Scope:        scope,
		LocationCity: city,
		Status:       models.AdStatusActive,
	}
}

func TestComposeAdInterleaving(t *testing.T) {
	polls := make([]models.Poll, 0, 12)
	for i := 1; i <= 12; i++ {
		polls = append(polls, approvedPoll(
			fmt.Sprintf("p-%02d", i), fmt.Sprintf("Enquete %d", i),
			models.ScopeMundo, "", 0, time.Duration(i)*time.Hour,
		))
	}
	ads := []models.Advertisement{
		activeAd("ad-1", models.ScopeMundo, ""),
		activeAd("ad-2", models.ScopeMundo, ""),
	}

	items, err := Compose(polls, ads, models.ScopeMundo, models.Guest(), defaultFilter(), time.Wednesday)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// 12 polls + ads after the 5th and 10th; none after the 12th.
	if len(items) != 14 {
		t.Fatalf("got %d items, want 14", len(items))
	}
	for i, it := range items {
		_, isAd := it.(*models.Advertisement)
		wantAd := i == 5 || i == 11
		if isAd != wantAd {
			t.Errorf("position %d: isAd = %v, want %v", i, isAd, wantAd)
		}
	}
	if _, isAd := items[len(items)-1].(*models.Advertisement); isAd {
		t.Error("feed must never end with an ad")
	}

	// Round-robin draw is deterministic.
	if items[5].ItemID() != "ad-1" || items[11].ItemID() != "ad-2" {
		t.Errorf("ad order = [%s %s], want [ad-1 ad-2]", items[5].ItemID(), items[11].ItemID())
	}
}

func TestComposeAdPoolCyclesRoundRobin(t *testing.T) {
	polls := make([]models.Poll, 0, 11)
	for i := 1; i <= 11; i++ {
		polls = append(polls, approvedPoll(
			fmt.Sprintf("p-%02d", i), "Enquete", models.ScopeMundo, "", 0,
			time.Duration(i)*time.Hour,
		))
	}
	ads := []models.Advertisement{activeAd("ad-only", models.ScopeMundo, "")}

	items, err := Compose(polls, ads, models.ScopeMundo, models.Guest(), defaultFilter(), time.Wednesday)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if items[5].ItemID() != "ad-only" || items[11].ItemID() != "ad-only" {
		t.Error("a single ad should repeat at every slot")
	}
}

func TestComposeNoAdsCases(t *testing.T) {
	mundoPolls := make([]models.Poll, 0, 6)
	for i := 1; i <= 6; i++ {
		mundoPolls = append(mundoPolls, approvedPoll(
			fmt.Sprintf("p-%d", i), "Enquete", models.ScopeMundo, "", 0,
			time.Duration(i)*time.Hour,
		))
	}

	t.Run("empty pool returns polls unchanged", func(t *testing.T) {
		paused := activeAd("ad-paused", models.ScopeMundo, "")
		paused.Status = models.AdStatusPaused
		items, err := Compose(mundoPolls, []models.Advertisement{paused}, models.ScopeMundo, models.Guest(), defaultFilter(), time.Wednesday)
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if len(items) != 6 {
			t.Errorf("got %d items, want 6 polls and no ads", len(items))
		}
	})

	t.Run("role feed never carries ads", func(t *testing.T) {
		events := make([]models.Poll, 0, 6)
		for i := 1; i <= 6; i++ {
			events = append(events, approvedPoll(
				fmt.Sprintf("e-%d", i), "Festa SÁBADO", models.ScopeRole, "Recife", 0,
				time.Duration(i)*time.Hour,
			))
		}
		ads := []models.Advertisement{activeAd("ad-1", models.ScopeMundo, "")}
		items, err := Compose(events, ads, models.ScopeRole, onboarded("Recife"), defaultFilter(), time.Monday)
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		for _, it := range items {
			if _, isAd := it.(*models.Advertisement); isAd {
				t.Fatal("found an ad in the ROLÊ feed")
			}
		}
	})

	t.Run("local ads need a configured city", func(t *testing.T) {
		viewer := onboarded("Recife")
		localPolls := make([]models.Poll, 0, 6)
		for i := 1; i <= 6; i++ {
			localPolls = append(localPolls, approvedPoll(
				fmt.Sprintf("l-%d", i), "Enquete", models.ScopeLocal, "Recife", 0,
				time.Duration(i)*time.Hour,
			))
		}
		ads := []models.Advertisement{
			activeAd("ad-recife", models.ScopeLocal, "Recife"),
			activeAd("ad-olinda", models.ScopeLocal, "Olinda"),
			activeAd("ad-mundo", models.ScopeMundo, ""),
		}
		items, err := Compose(localPolls, ads, models.ScopeLocal, viewer, defaultFilter(), time.Wednesday)
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		var adIDs []string
		for _, it := range items {
			if _, isAd := it.(*models.Advertisement); isAd {
				adIDs = append(adIDs, it.ItemID())
			}
		}
		if len(adIDs) != 1 || adIDs[0] != "ad-recife" {
			t.Errorf("got ads %v, want only ad-recife", adIDs)
		}
	})
}
