package async

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// confirmTimeout bounds a remote confirmation; local state was already
// mutated, so there is nothing to wait longer for.
const confirmTimeout = time.Second * 10

// Confirm issues a remote confirmation for an already-applied local mutation.
// Failures are logged and the optimistic state is kept; the next full reload
// corrects any drift.
func Confirm(op, pollID string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Warn().Err(err).Str("op", op).Str("poll_id", pollID).
				Msg("remote confirmation failed, keeping optimistic state")
		}
	}()
}
