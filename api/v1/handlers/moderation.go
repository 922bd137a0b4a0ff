package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rankiou/internal/backend"
	"rankiou/internal/models"
)

type ModerationHandle struct {
	svc backend.Service
}

func RegisterModeration(r fiber.Router, svc backend.Service) {
	handler := ModerationHandle{svc: svc}

	r.Use(handler.RequireAdmin)

	r.Get("/pending", handler.ListPending)
	r.Post("/:id/status", handler.SetStatus)
}

func (h *ModerationHandle) RequireAdmin(c *fiber.Ctx) error {
	if !ViewerFrom(c).Admin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"code":    "403",
			"message": "admin only",
		})
	}
	return c.Next()
}

func (h *ModerationHandle) ListPending(ctx *fiber.Ctx) error {
	polls, err := h.svc.FetchPendingPolls(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"code":    "502",
			"message": "Erro ao carregar a fila de moderação",
		})
	}
	return ctx.JSON(fiber.Map{
		"code": "200",
		"data": polls,
	})
}

// SetStatus accepts or rejects a pending poll. The decision itself is made
// outside this system; only the state transition lives here, and a rejection
// must carry its reason.
func (h *ModerationHandle) SetStatus(ctx *fiber.Ctx) error {
	var body struct {
		Status models.PollStatus `json:"status"`
		Reason string            `json:"reason"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "400",
			"message": "invalid body",
		})
	}
	if body.Status != models.PollStatusApproved && body.Status != models.PollStatusRejected {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "400",
			"message": "status must be APPROVED or REJECTED",
		})
	}
	if body.Status == models.PollStatusRejected && body.Reason == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "400",
			"message": "a rejection needs a reason",
		})
	}
	if body.Status == models.PollStatusApproved {
		body.Reason = ""
	}

	if err := h.svc.SetPollStatus(ctx.Context(), ctx.Params("id"), body.Status, body.Reason); err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"code":    "502",
			"message": "Erro ao atualizar o status",
		})
	}
	return ctx.JSON(fiber.Map{
		"code":    "200",
		"message": "ok",
	})
}
