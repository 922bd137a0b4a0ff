package backend

import (
	"context"
	"fmt"

	"rankiou/internal/models"
)

// Service is the narrow contract against the managed data backend. Row reads
// are pre-filtered at the query boundary; vote state is tracked client-side,
// so FetchPolls never populates UserVote.
type Service interface {
	FetchPolls(ctx context.Context, scope models.Scope, city string) ([]models.Poll, error)
	FetchAdvertisements(ctx context.Context, scope models.Scope, city string) ([]models.Advertisement, error)

	SubmitVote(ctx context.Context, userID, pollID, optionText string) error
	SubmitVoteChange(ctx context.Context, userID, pollID, newOptionText string) error
	// SubmitAddOption is the combined answer-and-vote primitive: the backend
	// appends the option and registers the submitter's vote atomically.
	SubmitAddOption(ctx context.Context, userID, pollID, text string) error
	// ToggleFavorite returns the authoritative favorite state after the flip.
	ToggleFavorite(ctx context.Context, userID, pollID string) (bool, error)

	CreatePoll(ctx context.Context, authorID string, draft models.PollDraft) (models.Poll, error)

	FetchProfile(ctx context.Context, userID string) (models.User, error)
	SaveCity(ctx context.Context, userID, city string) error
	FetchFavorites(ctx context.Context, userID string) ([]models.Poll, error)

	FetchPendingPolls(ctx context.Context) ([]models.Poll, error)
	SetPollStatus(ctx context.Context, pollID string, status models.PollStatus, reason string) error

	FetchRankards(ctx context.Context) ([]models.PredefinedRankard, error)
}

// RemoteError carries the backend's human-readable reason. CreatePoll
// failures surface it verbatim to the viewer.
type RemoteError struct {
	Status int
	Reason string
}

func (e *RemoteError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}
