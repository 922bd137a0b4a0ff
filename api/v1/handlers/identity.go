package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"rankiou/internal/backend"
	"rankiou/internal/models"
	"rankiou/pkg/third/oauthid"
)

const viewerKey = "viewer"

const sessionCookie = "rankiou_session"

// Identity resolves the bearer token into a per-request Viewer value. A
// missing or bad token degrades to guest rather than failing the request;
// handlers that need auth check the viewer themselves.
func Identity(svc backend.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer := models.Guest()

		auth := c.Get(fiber.HeaderAuthorization)
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			if base, valid := oauthid.Verify(token); valid {
				user := mergeProfile(c, svc, base)
				viewer = models.Viewer{Authenticated: true, User: &user}
			}
		}

		c.Locals(viewerKey, viewer)
		return c.Next()
	}
}

// mergeProfile overlays the backend profile row on the provider claims. A
// profile fetch failure leaves the claims-only user: authenticated but not
// onboarded, which keeps the LOCAL and ROLÊ gates closed.
func mergeProfile(c *fiber.Ctx, svc backend.Service, base models.User) models.User {
	profile, err := svc.FetchProfile(c.Context(), base.Id)
	if err != nil {
		log.Warn().Err(err).Str("user_id", base.Id).Msg("profile fetch failed, using claims only")
		return base
	}

	user := base
	if profile.Name != "" {
		user.Name = profile.Name
	}
	if profile.AvatarUrl != "" {
		user.AvatarUrl = profile.AvatarUrl
	}
	if profile.Username != "" {
		user.Username = profile.Username
	}
	if profile.Role != "" {
		user.Role = profile.Role
	}
	user.CreationPoints = profile.CreationPoints
	user.OnboardingCompleted = profile.OnboardingCompleted
	user.PreferredCity = profile.PreferredCity
	user.RankCards = profile.RankCards
	user.RankcardVoteProgress = profile.RankcardVoteProgress
	user.RankcardCreateProgress = profile.RankcardCreateProgress
	return user
}

// ViewerFrom reads the identity the middleware resolved.
func ViewerFrom(c *fiber.Ctx) models.Viewer {
	if v, ok := c.Locals(viewerKey).(models.Viewer); ok {
		return v
	}
	return models.Guest()
}

func viewerID(v models.Viewer) string {
	if v.Authenticated && v.User != nil {
		return v.User.Id
	}
	return ""
}

// sessionKey picks the hub key for this request: the user id when signed
// in, otherwise a per-browser cookie. Guests never share a session, so one
// guest's filter choices cannot leak into another's feed.
func sessionKey(c *fiber.Ctx, v models.Viewer) string {
	if id := viewerID(v); id != "" {
		return id
	}
	sid := c.Cookies(sessionCookie)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return "guest:" + sid
}
