package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"rankiou/internal/backend"
	"rankiou/internal/models"
)

type PollHandle struct {
	svc backend.Service
}

func RegisterPolls(r fiber.Router, svc backend.Service) {
	handler := PollHandle{svc: svc}

	r.Post("/", handler.CreatePoll)
}

// CreatePoll is the one write that blocks on the backend: the viewer must
// see the backend's reason (insufficient points, banned words) verbatim when
// it refuses.
func (h *PollHandle) CreatePoll(ctx *fiber.Ctx) error {
	viewer := ViewerFrom(ctx)
	if !viewer.Authenticated {
		return unauthorized(ctx)
	}

	var draft models.PollDraft
	if err := ctx.BodyParser(&draft); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "400",
			"message": "invalid body",
		})
	}
	if msg := validateDraft(&draft, viewer); msg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "400",
			"message": msg,
		})
	}

	opID := uuid.NewString()
	created, err := h.svc.CreatePoll(ctx.Context(), viewer.User.Id, draft)
	if err != nil {
		log.Warn().Err(err).Str("op_id", opID).Str("author", viewer.User.Id).Msg("poll creation refused")
		var remote *backend.RemoteError
		if errors.As(err, &remote) && remote.Reason != "" {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"code":    "422",
				"message": remote.Reason,
			})
		}
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"code":    "502",
			"message": "Não foi possível criar a enquete. Tente novamente.",
		})
	}

	log.Info().Str("op_id", opID).Str("poll_id", created.Id).Msg("poll created")
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"code": "201",
		"data": created,
	})
}

// validateDraft normalizes the draft in place and returns a user-facing
// message when it cannot be submitted.
func validateDraft(d *models.PollDraft, viewer models.Viewer) string {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return "title is required"
	}
	if !d.Category.Valid() {
		return "unknown category"
	}
	if d.Type == "" {
		d.Type = models.PollTypeEnquete
	}
	if d.Type != models.PollTypeEnquete && d.Type != models.PollTypePerguntas {
		return "unknown poll type"
	}
	if !d.Scope.Valid() {
		return "unknown scope"
	}

	if d.Scope == models.ScopeMundo {
		d.LocationCity = ""
	} else {
		if d.LocationCity == "" {
			d.LocationCity = viewer.City()
		}
		if d.LocationCity == "" {
			return "a city is required for local polls"
		}
	}

	opts := d.Options[:0]
	seen := make(map[string]bool, len(d.Options))
	for _, o := range d.Options {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		opts = append(opts, o)
	}
	d.Options = opts
	if d.Type == models.PollTypeEnquete && len(d.Options) < 2 {
		return "an ENQUETE needs at least two options"
	}
	return ""
}
