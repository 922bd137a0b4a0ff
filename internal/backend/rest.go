package backend

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	strconv2 "github.com/savsgio/gotils/strconv"

	"rankiou/internal/models"
)

// RestClient talks to the managed backend over its row-query and RPC HTTP
// surface. Every request carries the project key and an HMAC signature of the
// request path.
type RestClient struct {
	baseURL string
	key     string
	cli     *http.Client
}

var _ Service = (*RestClient)(nil)

func NewRestClient(baseURL, key string) *RestClient {
	return &RestClient{
		baseURL: baseURL,
		key:     key,
		cli:     &http.Client{Timeout: time.Second * 5},
	}
}

func (c *RestClient) sign(path string) string {
	mac := hmac.New(sha256.New, strconv2.S2B(c.key))
	mac.Write(strconv2.S2B(path))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *RestClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("x-rankiou-sign", c.sign(path))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.cli.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("backend request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var remote struct {
			Message string `json:"message"`
		}
		raw, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(raw, &remote)
		log.Warn().Int("status", resp.StatusCode).Str("path", path).
			Str("reason", remote.Message).Msg("backend rejected request")
		return &RemoteError{Status: resp.StatusCode, Reason: remote.Message}
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("backend response unreadable")
		return err
	}
	return nil
}

func (c *RestClient) FetchPolls(ctx context.Context, scope models.Scope, city string) ([]models.Poll, error) {
	q := make(url.Values)
	if scope != "" {
		q.Set("scope", string(scope))
	}
	if scope.Localized() && city != "" {
		q.Set("location_city", city)
	}
	q.Set("order", "created_at.desc")

	var polls []models.Poll
	if err := c.do(ctx, http.MethodGet, "/rest/polls", q, nil, &polls); err != nil {
		return nil, err
	}
	// UserVote and IsFavorited are viewer-local; the row query never sets
	// them even when the backend echoes other viewers' tallies.
	for i := range polls {
		polls[i].UserVote = ""
		polls[i].IsFavorited = false
	}
	return polls, nil
}

func (c *RestClient) FetchAdvertisements(ctx context.Context, scope models.Scope, city string) ([]models.Advertisement, error) {
	q := make(url.Values)
	q.Set("status", string(models.AdStatusActive))
	q.Set("scope", string(scope))
	if scope == models.ScopeLocal && city != "" {
		q.Set("location_city", city)
	}

	var ads []models.Advertisement
	if err := c.do(ctx, http.MethodGet, "/rest/advertisements", q, nil, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

func (c *RestClient) SubmitVote(ctx context.Context, userID, pollID, optionText string) error {
	return c.do(ctx, http.MethodPost, "/rpc/vote_on_poll", nil, map[string]string{
		"p_user_id":     userID,
		"p_poll_id":     pollID,
		"p_option_text": optionText,
	}, nil)
}

func (c *RestClient) SubmitVoteChange(ctx context.Context, userID, pollID, newOptionText string) error {
	return c.do(ctx, http.MethodPost, "/rpc/change_vote", nil, map[string]string{
		"p_user_id":         userID,
		"p_poll_id":         pollID,
		"p_new_option_text": newOptionText,
	}, nil)
}

func (c *RestClient) SubmitAddOption(ctx context.Context, userID, pollID, text string) error {
	return c.do(ctx, http.MethodPost, "/rpc/add_option_and_vote", nil, map[string]string{
		"p_user_id":     userID,
		"p_poll_id":     pollID,
		"p_option_text": text,
	}, nil)
}

func (c *RestClient) ToggleFavorite(ctx context.Context, userID, pollID string) (bool, error) {
	var favorited bool
	err := c.do(ctx, http.MethodPost, "/rpc/toggle_favorite", nil, map[string]string{
		"p_user_id": userID,
		"p_poll_id": pollID,
	}, &favorited)
	return favorited, err
}

func (c *RestClient) CreatePoll(ctx context.Context, authorID string, draft models.PollDraft) (models.Poll, error) {
	var created models.Poll
	err := c.do(ctx, http.MethodPost, "/rpc/create_poll", nil, map[string]any{
		"p_author_id": authorID,
		"p_title":     draft.Title,
		"p_category":  draft.Category,
		"p_type":      draft.Type,
		"p_scope":     draft.Scope,
		"p_city":      draft.LocationCity,
		"p_options":   draft.Options,
	}, &created)
	return created, err
}

func (c *RestClient) FetchProfile(ctx context.Context, userID string) (models.User, error) {
	q := make(url.Values)
	q.Set("id", userID)

	var profile models.User
	err := c.do(ctx, http.MethodGet, "/rest/profiles", q, nil, &profile)
	return profile, err
}

func (c *RestClient) SaveCity(ctx context.Context, userID, city string) error {
	return c.do(ctx, http.MethodPost, "/rpc/save_city", nil, map[string]string{
		"p_user_id": userID,
		"p_city":    city,
	}, nil)
}

func (c *RestClient) FetchFavorites(ctx context.Context, userID string) ([]models.Poll, error) {
	q := make(url.Values)
	q.Set("user_id", userID)
	q.Set("order", "created_at.desc")

	var polls []models.Poll
	if err := c.do(ctx, http.MethodGet, "/rest/favorites", q, nil, &polls); err != nil {
		return nil, err
	}
	for i := range polls {
		polls[i].IsFavorited = true
	}
	return polls, nil
}

func (c *RestClient) FetchPendingPolls(ctx context.Context) ([]models.Poll, error) {
	q := make(url.Values)
	q.Set("status", string(models.PollStatusPending))
	q.Set("order", "created_at.desc")

	var polls []models.Poll
	if err := c.do(ctx, http.MethodGet, "/rest/polls", q, nil, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

func (c *RestClient) SetPollStatus(ctx context.Context, pollID string, status models.PollStatus, reason string) error {
	return c.do(ctx, http.MethodPost, "/rpc/admin_set_poll_status", nil, map[string]string{
		"p_poll_id": pollID,
		"p_status":  string(status),
		"p_reason":  reason,
	}, nil)
}

func (c *RestClient) FetchRankards(ctx context.Context) ([]models.PredefinedRankard, error) {
	var cards []models.PredefinedRankard
	if err := c.do(ctx, http.MethodGet, "/rest/predefined_rankards", nil, nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}
