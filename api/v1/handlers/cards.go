package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rankiou/internal/backend"
	"rankiou/internal/cards"
)

type CardsHandle struct {
	svc backend.Service
}

func RegisterCards(r fiber.Router, svc backend.Service) {
	handler := CardsHandle{svc: svc}

	r.Get("/", handler.GetCollection)
}

// GetCollection joins the viewer's cards with their definitions and marks
// which ones are eligible to evolve or whether a new egg is affordable. The
// evolution itself is a backend operation.
func (h *CardsHandle) GetCollection(ctx *fiber.Ctx) error {
	viewer := ViewerFrom(ctx)
	if !viewer.Authenticated {
		return unauthorized(ctx)
	}

	defs, err := h.svc.FetchRankards(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"code":    "502",
			"message": "Erro ao carregar os Rankards",
		})
	}

	return ctx.JSON(fiber.Map{
		"code": "200",
		"data": fiber.Map{
			"cards":       cards.Owned(viewer.User, defs),
			"can_buy_egg": cards.CanBuyEgg(viewer.User),
			"egg_cost":    cards.EggCost,
		},
	})
}
