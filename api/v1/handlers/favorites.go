package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rankiou/internal/backend"
)

type FavoritesHandle struct {
	svc backend.Service
}

func RegisterFavorites(r fiber.Router, svc backend.Service) {
	handler := FavoritesHandle{svc: svc}

	r.Get("/", handler.ListFavorites)
}

// ListFavorites is the "Acompanhar" view: every poll the viewer favorited,
// newest first, straight from the backend.
func (h *FavoritesHandle) ListFavorites(ctx *fiber.Ctx) error {
	viewer := ViewerFrom(ctx)
	if !viewer.Authenticated {
		return unauthorized(ctx)
	}

	polls, err := h.svc.FetchFavorites(ctx.Context(), viewer.User.Id)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"code":    "502",
			"message": "Erro ao carregar favoritos",
		})
	}
	return ctx.JSON(fiber.Map{
		"code": "200",
		"data": polls,
	})
}
