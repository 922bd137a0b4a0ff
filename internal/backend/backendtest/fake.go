// Package backendtest provides an in-memory Service fake for tests.
package backendtest

import (
	"context"
	"sync"

	"rankiou/internal/backend"
	"rankiou/internal/models"
)

type Fake struct {
	mu sync.Mutex

	Polls     []models.Poll
	Ads       []models.Advertisement
	Profile   models.User
	Favorites []models.Poll
	Pending   []models.Poll
	Cards     []models.PredefinedRankard

	// FavoriteResult is what ToggleFavorite reports as authoritative.
	FavoriteResult bool
	// Created echoes back from CreatePoll when Errs has no entry for it.
	Created models.Poll

	// Errs fails the named operation ("SubmitVote", "CreatePoll", ...).
	Errs map[string]error

	calls []string
}

var _ backend.Service = (*Fake)(nil)

func (f *Fake) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	if f.Errs != nil {
		return f.Errs[op]
	}
	return nil
}

// Calls returns a copy of the operations seen so far.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount counts invocations of one operation.
func (f *Fake) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *Fake) FetchPolls(ctx context.Context, scope models.Scope, city string) ([]models.Poll, error) {
	if err := f.record("FetchPolls"); err != nil {
		return nil, err
	}
	return append([]models.Poll(nil), f.Polls...), nil
}

func (f *Fake) FetchAdvertisements(ctx context.Context, scope models.Scope, city string) ([]models.Advertisement, error) {
	if err := f.record("FetchAdvertisements"); err != nil {
		return nil, err
	}
	return append([]models.Advertisement(nil), f.Ads...), nil
}

func (f *Fake) SubmitVote(ctx context.Context, userID, pollID, optionText string) error {
	return f.record("SubmitVote")
}

func (f *Fake) SubmitVoteChange(ctx context.Context, userID, pollID, newOptionText string) error {
	return f.record("SubmitVoteChange")
}

func (f *Fake) SubmitAddOption(ctx context.Context, userID, pollID, text string) error {
	return f.record("SubmitAddOption")
}

func (f *Fake) ToggleFavorite(ctx context.Context, userID, pollID string) (bool, error) {
	if err := f.record("ToggleFavorite"); err != nil {
		return false, err
	}
	return f.FavoriteResult, nil
}

func (f *Fake) CreatePoll(ctx context.Context, authorID string, draft models.PollDraft) (models.Poll, error) {
	if err := f.record("CreatePoll"); err != nil {
		return models.Poll{}, err
	}
	return f.Created, nil
}

func (f *Fake) FetchProfile(ctx context.Context, userID string) (models.User, error) {
	if err := f.record("FetchProfile"); err != nil {
		return models.User{}, err
	}
	return f.Profile, nil
}

func (f *Fake) SaveCity(ctx context.Context, userID, city string) error {
	return f.record("SaveCity")
}

func (f *Fake) FetchFavorites(ctx context.Context, userID string) ([]models.Poll, error) {
	if err := f.record("FetchFavorites"); err != nil {
		return nil, err
	}
	return append([]models.Poll(nil), f.Favorites...), nil
}

func (f *Fake) FetchPendingPolls(ctx context.Context) ([]models.Poll, error) {
	if err := f.record("FetchPendingPolls"); err != nil {
		return nil, err
	}
	return append([]models.Poll(nil), f.Pending...), nil
}

func (f *Fake) SetPollStatus(ctx context.Context, pollID string, status models.PollStatus, reason string) error {
	return f.record("SetPollStatus")
}

func (f *Fake) FetchRankards(ctx context.Context) ([]models.PredefinedRankard, error) {
	if err := f.record("FetchRankards"); err != nil {
		return nil, err
	}
	return append([]models.PredefinedRankard(nil), f.Cards...), nil
}
