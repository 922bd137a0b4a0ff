package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"rankiou/internal/backend"
	"rankiou/internal/feed"
	"rankiou/internal/models"
	"rankiou/pkg/async"
)

// Caller contract violations. The UI layer gates these before they reach the
// engine; seeing one here means an invariant broke upstream.
var (
	ErrPollNotFound    = errors.New("poll not in local collection")
	ErrNotApproved     = errors.New("poll is not approved for interaction")
	ErrAlreadyVoted    = errors.New("viewer already voted on this poll")
	ErrNoExistingVote  = errors.New("viewer has no vote to change on this poll")
	ErrUnknownOption   = errors.New("option text not found on poll")
	ErrDuplicateOption = errors.New("option text already exists on poll")
	ErrEmptyOption     = errors.New("option text is empty")
	ErrNotOpenPoll     = errors.New("poll does not accept new options")
)

// State holds one viewer's transient poll collection. Local mutations are
// applied synchronously and confirmed remotely after the fact; the remote
// result never rolls a vote back, it only corrects favorites and full
// reloads.
type State struct {
	mu       sync.Mutex
	viewerID string
	remote   backend.Service

	activeScope models.Scope
	polls       []models.Poll
	loadedAt    time.Time
	filter      models.FilterState
	search      *feed.Debouncer
}

func New(viewerID string, remote backend.Service) *State {
	return &State{
		viewerID: viewerID,
		remote:   remote,
		filter:   models.DefaultFilterState(),
		search:   feed.NewDebouncer(feed.DefaultSearchSettle),
	}
}

// Replace swaps in a freshly fetched collection. Last reload wins, no merge:
// optimistic edits against the previous collection are discarded, and any
// confirmation still in flight for them becomes inert.
func (s *State) Replace(polls []models.Poll) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls = polls
	s.loadedAt = time.Now()
}

// Activate switches the browsed scope and swaps in its freshly fetched
// collection in one step.
func (s *State) Activate(scope models.Scope, polls []models.Poll) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeScope = scope
	s.polls = polls
	s.loadedAt = time.Now()
}

// Stale reports whether the collection is older than ttl. A never-loaded
// state is always stale.
func (s *State) Stale(ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.loadedAt) > ttl
}

// ActiveScope is the scope the current collection was fetched for, empty
// before the first load.
func (s *State) ActiveScope() models.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeScope
}

// Snapshot copies the collection for the composer; callers may not reach the
// live slices.
func (s *State) Snapshot() []models.Poll {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Poll, len(s.polls))
	copy(out, s.polls)
	for i := range out {
		opts := make([]models.Option, len(out[i].Options))
		copy(opts, out[i].Options)
		out[i].Options = opts
	}
	return out
}

// CastVote applies a first vote optimistically, then confirms it remotely.
// The renderer sees the new tallies before any network round-trip.
func (s *State) CastVote(pollID, optionText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(pollID)
	if p == nil {
		return ErrPollNotFound
	}
	if p.Status != models.PollStatusApproved {
		return ErrNotApproved
	}
	if p.Voted() {
		return ErrAlreadyVoted
	}
	i := p.OptionIndex(optionText)
	if i < 0 {
		return ErrUnknownOption
	}

	p.UserVote = models.VoteChoice(optionText)
	p.Options[i].Votes++
	p.TotalVotes++

	async.Confirm("vote", pollID, func(ctx context.Context) error {
		return s.remote.SubmitVote(ctx, s.viewerID, pollID, optionText)
	})
	return nil
}

// ChangeVote moves an existing vote to another option. Not a new vote:
// TotalVotes is unchanged. Idempotent when the target equals the current
// vote.
func (s *State) ChangeVote(pollID, newOptionText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(pollID)
	if p == nil {
		return ErrPollNotFound
	}
	if p.Status != models.PollStatusApproved {
		return ErrNotApproved
	}
	if !p.Voted() {
		return ErrNoExistingVote
	}
	if string(p.UserVote) == newOptionText {
		return nil
	}
	to := p.OptionIndex(newOptionText)
	if to < 0 {
		return ErrUnknownOption
	}

	// The old option may already read 0 after a reload raced this change;
	// tallies never go negative.
	if from := p.OptionIndex(string(p.UserVote)); from >= 0 && p.Options[from].Votes > 0 {
		p.Options[from].Votes--
	}
	p.Options[to].Votes++
	p.UserVote = models.VoteChoice(newOptionText)

	async.Confirm("change_vote", pollID, func(ctx context.Context) error {
		return s.remote.SubmitVoteChange(ctx, s.viewerID, pollID, newOptionText)
	})
	return nil
}

// AddOption answers a PERGUNTAS poll: the option is appended and the
// submitter's vote lands on it in one combined remote operation.
func (s *State) AddOption(pollID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyOption
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(pollID)
	if p == nil {
		return ErrPollNotFound
	}
	if p.Status != models.PollStatusApproved {
		return ErrNotApproved
	}
	if p.Type != models.PollTypePerguntas {
		return ErrNotOpenPoll
	}
	if p.Voted() {
		return ErrAlreadyVoted
	}
	if p.OptionIndex(text) >= 0 {
		return ErrDuplicateOption
	}

	p.Options = append(p.Options, models.Option{Text: text, Votes: 1})
	p.UserVote = models.VoteChoice(text)
	p.TotalVotes++

	async.Confirm("add_option", pollID, func(ctx context.Context) error {
		return s.remote.SubmitAddOption(ctx, s.viewerID, pollID, text)
	})
	return nil
}

// ToggleFavorite flips the flag optimistically and returns the guess. The
// backend's authoritative answer overwrites it once the call resolves,
// settling rapid double-clicks racing network latency. Keyed by poll id, so
// a reply for a since-reloaded poll is a no-op.
func (s *State) ToggleFavorite(pollID string) (bool, error) {
	s.mu.Lock()
	p := s.find(pollID)
	if p == nil {
		s.mu.Unlock()
		return false, ErrPollNotFound
	}
	if p.Status != models.PollStatusApproved {
		s.mu.Unlock()
		return false, ErrNotApproved
	}
	p.IsFavorited = !p.IsFavorited
	guess := p.IsFavorited
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		final, err := s.remote.ToggleFavorite(ctx, s.viewerID, pollID)
		if err != nil {
			log.Warn().Err(err).Str("poll_id", pollID).Msg("favorite toggle unconfirmed")
			return
		}
		s.applyFavorite(pollID, final)
	}()
	return guess, nil
}

func (s *State) applyFavorite(pollID string, final bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.find(pollID); p != nil {
		p.IsFavorited = final
	}
}

// Filter returns the committed filter state.
func (s *State) Filter() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *State) SetSortOrder(o models.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SortOrder = o
}

func (s *State) SetCategoryFilter(c models.CategoryFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.CategoryFilter = c
}

func (s *State) SetShowFilter(f models.ShowFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.ShowFilter = f
}

// SubmitSearch routes the raw term through the settle delay before it lands
// in the filter state.
func (s *State) SubmitSearch(term string) {
	s.search.Submit(term, func(committed string) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.filter.SearchTerm = committed
	})
}

// SetSearchTerm commits immediately, bypassing the debounce. Used when the
// term arrives as a query parameter rather than keystrokes.
func (s *State) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SearchTerm = term
}

// find returns the live record; callers hold s.mu.
func (s *State) find(pollID string) *models.Poll {
	for i := range s.polls {
		if s.polls[i].Id == pollID {
			return &s.polls[i]
		}
	}
	return nil
}
