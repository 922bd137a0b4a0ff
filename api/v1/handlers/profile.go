package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rankiou/internal/backend"
)

type ProfileHandle struct {
	svc backend.Service
}

func RegisterProfile(r fiber.Router, svc backend.Service) {
	handler := ProfileHandle{svc: svc}

	r.Get("/", handler.GetProfile)
	r.Post("/city", handler.SaveCity)
}

func (h *ProfileHandle) GetProfile(ctx *fiber.Ctx) error {
	viewer := ViewerFrom(ctx)
	if !viewer.Authenticated {
		return unauthorized(ctx)
	}
	return ctx.JSON(fiber.Map{
		"code": "200",
		"data": viewer.User,
	})
}

// SaveCity completes onboarding: it sets the preferred city and flips the
// gate for the LOCAL and ROLÊ feeds in one backend call.
func (h *ProfileHandle) SaveCity(ctx *fiber.Ctx) error {
	viewer := ViewerFrom(ctx)
	if !viewer.Authenticated {
		return unauthorized(ctx)
	}

	var body struct {
		City string `json:"city"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "400",
			"message": "invalid body",
		})
	}
	body.City = strings.TrimSpace(body.City)
	if body.City == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "400",
			"message": "city is required",
		})
	}

	if err := h.svc.SaveCity(ctx.Context(), viewer.User.Id, body.City); err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"code":    "502",
			"message": "Erro ao salvar a cidade",
		})
	}
	return ctx.JSON(fiber.Map{
		"code":    "200",
		"message": "ok",
	})
}
