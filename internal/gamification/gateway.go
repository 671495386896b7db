package gamification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"questboard/internal/model"
	"questboard/internal/repository"
)

// RepoGateway runs the increment in-process against the authoritative
// repository. Used when the hook lives in the same process as the database.
type RepoGateway struct {
	repo *repository.ProgressRepository
}

func NewRepoGateway(repo *repository.ProgressRepository) *RepoGateway {
	return &RepoGateway{repo: repo}
}

func (g *RepoGateway) AddXP(ctx context.Context, memberID string, amount int) (*model.Member, bool, error) {
	return g.repo.AddXP(ctx, memberID, amount)
}

// HTTPGateway calls a remote increment endpoint:
// POST {base}/members/{id}/xp with {"amount": n}.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway wraps the endpoint at baseURL. A nil client gets a default
// with a 10 second timeout.
func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPGateway{baseURL: baseURL, client: client}
}

type xpRequest struct {
	Amount int `json:"amount"`
}

type xpResponse struct {
	Member     model.Member `json:"member"`
	WasLevelUp bool         `json:"was_level_up"`
}

func (g *HTTPGateway) AddXP(ctx context.Context, memberID string, amount int) (*model.Member, bool, error) {
	body, err := json.Marshal(xpRequest{Amount: amount})
	if err != nil {
		return nil, false, fmt.Errorf("xp request: %w", err)
	}

	endpoint := g.baseURL + "/members/" + url.PathEscape(memberID) + "/xp"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("xp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("xp request: %w", err)
	}
	defer resp.Body.Close()

	// Any 2xx is success; everything else is a transport failure.
	if resp.StatusCode == http.StatusNotFound {
		return nil, false, repository.ErrMemberNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, false, fmt.Errorf("xp request: unexpected status %d", resp.StatusCode)
	}

	var out xpResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("xp request: decode: %w", err)
	}
	return &out.Member, out.WasLevelUp, nil
}
