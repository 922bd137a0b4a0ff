package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rankiou/internal/session"
)

type VoteHandle struct {
	hub *session.Hub
}

func RegisterVotes(r fiber.Router, hub *session.Hub) {
	handler := VoteHandle{hub: hub}

	r.Post("/:id/vote", handler.CastVote)
	r.Post("/:id/change-vote", handler.ChangeVote)
	r.Post("/:id/options", handler.AddOption)
	r.Post("/:id/favorite", handler.ToggleFavorite)
}

type optionBody struct {
	Option string `json:"option"`
}

// CastVote registers a first vote. The response reflects the optimistic
// local state; remote confirmation happens after the reply.
func (h *VoteHandle) CastVote(ctx *fiber.Ctx) error {
	st, body, ok := h.parse(ctx)
	if !ok {
		return nil
	}
	return h.reply(ctx, st.CastVote(ctx.Params("id"), body.Option))
}

// ChangeVote moves an existing vote; voting for the current option is a
// no-op, not an error.
func (h *VoteHandle) ChangeVote(ctx *fiber.Ctx) error {
	st, body, ok := h.parse(ctx)
	if !ok {
		return nil
	}
	return h.reply(ctx, st.ChangeVote(ctx.Params("id"), body.Option))
}

// AddOption answers an open poll, appending the option and voting for it in
// one step.
func (h *VoteHandle) AddOption(ctx *fiber.Ctx) error {
	st, body, ok := h.parse(ctx)
	if !ok {
		return nil
	}
	return h.reply(ctx, st.AddOption(ctx.Params("id"), body.Option))
}

func (h *VoteHandle) ToggleFavorite(ctx *fiber.Ctx) error {
	viewer := ViewerFrom(ctx)
	if !viewer.Authenticated {
		return unauthorized(ctx)
	}

	st := h.hub.Get(viewerID(viewer))
	guess, err := st.ToggleFavorite(ctx.Params("id"))
	if err != nil {
		return h.reply(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"code":      "200",
		"favorited": guess,
	})
}

// parse gates auth and reads the option body; on failure the response is
// already written and ok is false.
func (h *VoteHandle) parse(ctx *fiber.Ctx) (*session.State, optionBody, bool) {
	viewer := ViewerFrom(ctx)
	if !viewer.Authenticated {
		_ = unauthorized(ctx)
		return nil, optionBody{}, false
	}

	var body optionBody
	if err := ctx.BodyParser(&body); err != nil || body.Option == "" {
		_ = ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "400",
			"message": "option is required",
		})
		return nil, optionBody{}, false
	}

	return h.hub.Get(viewerID(viewer)), body, true
}

// reply maps engine errors onto statuses. Precondition violations are caller
// contract breaches the UI should have gated; they come back as conflicts,
// never as silent corrections.
func (h *VoteHandle) reply(ctx *fiber.Ctx, err error) error {
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"code": "200", "message": "ok"})
	case errors.Is(err, session.ErrPollNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"code": "404", "message": err.Error(),
		})
	case errors.Is(err, session.ErrEmptyOption),
		errors.Is(err, session.ErrUnknownOption):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code": "400", "message": err.Error(),
		})
	default:
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code": "409", "message": err.Error(),
		})
	}
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"code":    "401",
		"message": "login required",
	})
}
