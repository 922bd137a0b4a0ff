package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"rankiou/internal/backend"
	"rankiou/internal/feed"
	"rankiou/internal/models"
	"rankiou/internal/session"
)

type FeedHandle struct {
	svc backend.Service
	hub *session.Hub
}

func RegisterFeed(r fiber.Router, svc backend.Service, hub *session.Hub) {
	handler := FeedHandle{svc: svc, hub: hub}

	r.Get("/", handler.GetFeed)
	r.Post("/search", handler.SubmitSearch)
}

// SubmitSearch feeds keystroke-level input through the settle delay; the
// term only reaches the filter state once typing pauses, so the feed is not
// recomposed per keystroke.
func (h *FeedHandle) SubmitSearch(ctx *fiber.Ctx) error {
	var body struct {
		Term string `json:"term"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "400",
			"message": "invalid body",
		})
	}

	st := h.hub.Get(sessionKey(ctx, ViewerFrom(ctx)))
	st.SubmitSearch(body.Term)
	return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"code":    "202",
		"message": "ok",
	})
}

// feedTTL caps how long a session serves its cached poll collection; past
// it the next request refetches, so a viewer parked on one scope still sees
// new polls.
const feedTTL = time.Minute

// GetFeed composes the viewer's current feed for one scope. Poll collections
// are cached per session and refetched on scope switch, staleness, or
// explicit refresh; ads are fetched per request.
func (h *FeedHandle) GetFeed(ctx *fiber.Ctx) error {
	viewer := ViewerFrom(ctx)

	scope := models.Scope(ctx.Query("scope", string(models.ScopeMundo)))
	if !scope.Valid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "400",
			"message": "unknown scope",
		})
	}

	// Gate before touching the backend: a closed gate is a configuration
	// prompt, not an empty feed.
	if !feed.GateOpen(scope, viewer) {
		return ctx.Status(fiber.StatusPreconditionRequired).JSON(fiber.Map{
			"code":    "428",
			"state":   "LOCATION_REQUIRED",
			"message": "Para ver este conteúdo, faça login e configure sua cidade.",
		})
	}

	st := h.hub.Get(sessionKey(ctx, viewer))
	h.applyFilterParams(ctx, st)

	if st.ActiveScope() != scope || st.Stale(feedTTL) || ctx.QueryBool("refresh") {
		polls, err := h.svc.FetchPolls(ctx.Context(), scope, viewer.City())
		if err != nil {
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"code":    "502",
				"message": "Erro ao carregar enquetes",
			})
		}
		st.Activate(scope, polls)
	}

	adScope := models.ScopeMundo
	if scope == models.ScopeLocal {
		adScope = models.ScopeLocal
	}
	ads, err := h.svc.FetchAdvertisements(ctx.Context(), adScope, viewer.City())
	if err != nil {
		// Ads are best-effort; the feed renders without them.
		log.Warn().Err(err).Msg("advertisement fetch failed")
		ads = nil
	}

	items, err := feed.Compose(st.Snapshot(), ads, scope, viewer, st.Filter(), time.Now().Weekday())
	if err != nil {
		return ctx.Status(fiber.StatusPreconditionRequired).JSON(fiber.Map{
			"code":    "428",
			"state":   "LOCATION_REQUIRED",
			"message": "Para ver este conteúdo, faça login e configure sua cidade.",
		})
	}

	state := "OK"
	if len(items) == 0 {
		state = "EMPTY"
	}
	return ctx.JSON(fiber.Map{
		"code":  "200",
		"state": state,
		"data":  items,
	})
}

// applyFilterParams commits any filter controls sent with the request. A `q`
// parameter commits the term immediately, bypassing the debounce; absent
// controls keep their session values.
func (h *FeedHandle) applyFilterParams(ctx *fiber.Ctx, st *session.State) {
	if v := ctx.Query("sort"); v != "" {
		st.SetSortOrder(models.SortOrder(v))
	}
	if v := ctx.Query("category"); v != "" {
		st.SetCategoryFilter(models.CategoryFilter(v))
	}
	if v := ctx.Query("show"); v != "" {
		st.SetShowFilter(models.ShowFilter(v))
	}
	if ctx.Context().QueryArgs().Has("q") {
		st.SetSearchTerm(ctx.Query("q"))
	}
}
