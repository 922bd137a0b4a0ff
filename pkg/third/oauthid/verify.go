package oauthid

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"rankiou/internal/models"
)

var userinfoUrl = "https://www.googleapis.com/oauth2/v3/userinfo"

func init() {
	if u := os.Getenv("APP_OAUTH_USERINFO_URL"); u != "" {
		userinfoUrl = u
	}
}

// Verify resolves an OAuth access token against the identity provider and
// maps the claims to a base profile. Returns false for missing, expired or
// forged tokens; the caller treats that viewer as unauthenticated.
func Verify(token string) (models.User, bool) {
	if token == "" {
		return models.User{}, false
	}

	req, err := http.NewRequest(http.MethodGet, userinfoUrl, nil)
	if err != nil {
		return models.User{}, false
	}
	req.Header.Set("Authorization", "Bearer "+token)

	cli := http.Client{Timeout: time.Second * 5}
	resp, err := cli.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("identity provider unreachable")
		return models.User{}, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		log.Debug().Int("status", resp.StatusCode).Msg("identity provider rejected token")
		return models.User{}, false
	}

	var claims userinfo
	ret, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(ret, &claims); err != nil {
		log.Warn().Err(err).Msg("identity provider response unreadable")
		return models.User{}, false
	}
	if claims.Sub == "" {
		return models.User{}, false
	}

	return mapClaims(claims), true
}

// mapClaims fills the provider-derived fields; backend profile rows override
// these once merged.
func mapClaims(c userinfo) models.User {
	base := "usuario"
	if c.Email != "" {
		base = strings.SplitN(c.Email, "@", 2)[0]
	}
	name := c.Name
	if name == "" {
		name = base
	}
	avatar := c.Picture
	if avatar == "" {
		avatar = "https://api.dicebear.com/7.x/identicon/svg?seed=" + c.Sub
	}
	return models.User{
		Id:        c.Sub,
		Name:      name,
		AvatarUrl: avatar,
		Username:  base,
		Role:      models.RoleUser,
	}
}

type userinfo struct {
	Sub           string `json:"sub"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Locale        string `json:"locale"`
}
