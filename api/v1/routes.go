package v1

import (
	"rankiou/api/v1/handlers"
	"rankiou/internal/backend"
	"rankiou/internal/session"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, svc backend.Service, hub *session.Hub) {
	api := app.Group("/api/v1")
	api.Use(handlers.Identity(svc))

	handlers.RegisterFeed(api.Group("/feed"), svc, hub)

	polls := api.Group("/polls")
	handlers.RegisterPolls(polls, svc)
	handlers.RegisterVotes(polls, hub)

	handlers.RegisterFavorites(api.Group("/favorites"), svc)
	handlers.RegisterProfile(api.Group("/profile"), svc)
	handlers.RegisterModeration(api.Group("/moderation"), svc)
	handlers.RegisterCards(api.Group("/cards"), svc)
	handlers.RegisterSystem(api.Group("/system"), hub)
}
