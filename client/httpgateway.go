package client

import (
	"Scorekeeper/session"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// defaultTimeout bounds every request. The core retries only on explicit
// user action, so a hung call must come back on its own.
const defaultTimeout = 15 * time.Second

// HTTPGateway talks to the Scorekeeper server and implements
// session.Gateway and session.SelectionStore. The bearer token is set by
// the auth provider after login; anonymous reads work without one.
type HTTPGateway struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string
}

// NewHTTPGateway builds a gateway for the given server base URL.
func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// SetToken installs (or clears) the bearer token.
func (g *HTTPGateway) SetToken(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

func (g *HTTPGateway) bearer() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// do runs a request and decodes the JSON body into out (skipped when out
// is nil). Transport failures and 5xx map to ErrRemoteUnavailable; 401
// to ErrNotAuthenticated; 409 to ErrConflict. Invite-specific statuses
// are handled by the callers that know the token context.
func (g *HTTPGateway) do(ctx context.Context, method, path string, form url.Values, out interface{}) (int, error) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if tok := g.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, session.ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return resp.StatusCode, session.ErrNotAuthenticated
	case resp.StatusCode == http.StatusConflict:
		return resp.StatusCode, session.ErrConflict
	case resp.StatusCode >= 500:
		return resp.StatusCode, fmt.Errorf("%s %s: %w", method, path, session.ErrRemoteUnavailable)
	case resp.StatusCode >= 400:
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return resp.StatusCode, fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// ListCampaigns implements session.Gateway.
func (g *HTTPGateway) ListCampaigns(ctx context.Context) ([]session.Campaign, error) {
	var resp struct {
		Playgroups []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"playgroups"`
	}
	if _, err := g.do(ctx, http.MethodGet, "/auth/playgroups", nil, &resp); err != nil {
		return nil, err
	}
	campaigns := make([]session.Campaign, 0, len(resp.Playgroups))
	for _, pg := range resp.Playgroups {
		campaigns = append(campaigns, session.Campaign{ID: pg.ID, Name: pg.Name, Role: pg.Role})
	}
	return campaigns, nil
}

// FetchSnapshot implements session.Gateway with the one batched read.
func (g *HTTPGateway) FetchSnapshot(ctx context.Context, campaignID string) (*session.Snapshot, error) {
	var resp struct {
		PlaygroupID string `json:"playgroup_id"`
		Players     []struct {
			ID        string  `json:"id"`
			Name      string  `json:"name"`
			ClaimedBy *string `json:"claimed_by"`
			Image     string  `json:"image"`
			Color     string  `json:"color"`
		} `json:"players"`
		Games []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Image string `json:"image"`
		} `json:"games"`
		Entries []struct {
			ID            string `json:"id"`
			Date          string `json:"date"`
			GameID        string `json:"game_id"`
			Game          string `json:"game"`
			PlayerID      string `json:"player_id"`
			Player        string `json:"player"`
			CreatedByName string `json:"created_by_name"`
			UpdatedByName string `json:"updated_by_name"`
		} `json:"entries"`
	}
	path := "/playgroups/" + url.PathEscape(campaignID) + "/data"
	if _, err := g.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	snap := &session.Snapshot{CampaignID: resp.PlaygroupID}
	for _, p := range resp.Players {
		claimedBy := ""
		if p.ClaimedBy != nil {
			claimedBy = *p.ClaimedBy
		}
		snap.Players = append(snap.Players, session.Player{
			ID: p.ID, Name: p.Name, ClaimedBy: claimedBy, Image: p.Image, Color: p.Color,
		})
	}
	for _, gm := range resp.Games {
		snap.Games = append(snap.Games, session.Game{ID: gm.ID, Name: gm.Name, Image: gm.Image})
	}
	for _, e := range resp.Entries {
		snap.Entries = append(snap.Entries, session.Entry{
			ID: e.ID, GameID: e.GameID, GameName: e.Game,
			PlayerID: e.PlayerID, PlayerName: e.Player,
			Date: e.Date, CreatedByName: e.CreatedByName, UpdatedByName: e.UpdatedByName,
		})
	}
	return snap, nil
}

// ResolveInvite implements session.Gateway. 404 and 410 both mean the
// link itself is dead, reported distinctly from connectivity trouble.
func (g *HTTPGateway) ResolveInvite(ctx context.Context, token string) (*session.Invite, error) {
	var resp struct {
		PlaygroupID   string `json:"playgroup_id"`
		PlaygroupName string `json:"playgroup_name"`
	}
	status, err := g.do(ctx, http.MethodGet, "/invites/"+url.PathEscape(token), nil, &resp)
	if status == http.StatusNotFound || status == http.StatusGone {
		return nil, session.ErrInvalidOrExpiredToken
	}
	if err != nil {
		return nil, err
	}
	return &session.Invite{Token: token, CampaignID: resp.PlaygroupID, CampaignName: resp.PlaygroupName}, nil
}

// RedeemInvite implements session.Gateway.
func (g *HTTPGateway) RedeemInvite(ctx context.Context, token string) (*session.Invite, error) {
	var resp struct {
		PlaygroupID   string `json:"playgroup_id"`
		PlaygroupName string `json:"playgroup_name"`
	}
	path := "/auth/invites/" + url.PathEscape(token) + "/redeem"
	status, err := g.do(ctx, http.MethodPost, path, nil, &resp)
	if status == http.StatusNotFound || status == http.StatusGone {
		return nil, session.ErrInvalidOrExpiredToken
	}
	if err != nil {
		return nil, err
	}
	return &session.Invite{Token: token, CampaignID: resp.PlaygroupID, CampaignName: resp.PlaygroupName}, nil
}

// EnterAdminMode implements session.Gateway.
func (g *HTTPGateway) EnterAdminMode(ctx context.Context, passphrase string) error {
	form := url.Values{"passphrase": {passphrase}}
	_, err := g.do(ctx, http.MethodPost, "/auth/admin/enter", form, nil)
	return err
}

// ExitAdminMode implements session.Gateway.
func (g *HTTPGateway) ExitAdminMode(ctx context.Context) error {
	_, err := g.do(ctx, http.MethodPost, "/auth/admin/exit", nil, nil)
	return err
}

// Get implements session.SelectionStore. The server discards a stored id
// the user is no longer a member of, so "" here already means "no valid
// selection".
func (g *HTTPGateway) Get() (string, error) {
	var resp struct {
		PlaygroupID string `json:"playgroup_id"`
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if _, err := g.do(ctx, http.MethodGet, "/auth/me/selection", nil, &resp); err != nil {
		return "", err
	}
	return resp.PlaygroupID, nil
}

// Set implements session.SelectionStore.
func (g *HTTPGateway) Set(campaignID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	form := url.Values{"playgroup_id": {campaignID}}
	_, err := g.do(ctx, http.MethodPut, "/auth/me/selection", form, nil)
	return err
}

// Remove implements session.SelectionStore.
func (g *HTTPGateway) Remove() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	_, err := g.do(ctx, http.MethodDelete, "/auth/me/selection", nil, nil)
	return err
}
