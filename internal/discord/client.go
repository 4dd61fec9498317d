package discord

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// APIClient handles communication with the WagerBoard core API
type APIClient struct {
	BaseURL    string
	Client     *http.Client
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
		APIKey:     apiKey,
		MaxRetries: 3,
		RetryDelay: 500 * time.Millisecond,
	}
}

// APIError is a non-2xx answer from the core API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return "API error: " + e.Message
}

// IsNotFound reports whether err is a 404 from the core API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// doRequest performs an HTTP request, retrying transport failures and 5xx
// answers with exponential backoff
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.BaseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := c.RetryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// 502 carries an upstream error the API already retried
		if resp.StatusCode < 500 || resp.StatusCode == http.StatusBadGateway {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequestAndParse performs the request and decodes a 2xx body into out.
// Error bodies become *APIError.
func (c *APIClient) doRequestAndParse(method, path string, body, out interface{}) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Ping checks that the core API answers its liveness probe
func (c *APIClient) Ping() error {
	resp, err := c.Client.Get(c.BaseURL + "/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthz returned status %d", resp.StatusCode)
	}
	return nil
}

func identityQuery(discordID, username string) url.Values {
	params := url.Values{}
	params.Set("platform", domain.PlatformDiscord)
	params.Set("platform_id", discordID)
	if username != "" {
		params.Set("username", username)
	}
	return params
}

// LeaderboardResult is the top of the current period
type LeaderboardResult struct {
	Period  domain.Period             `json:"period"`
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// RankResult is one user's standing
type RankResult struct {
	Period domain.Period           `json:"period"`
	Entry  domain.LeaderboardEntry `json:"entry"`
}

// SetPeriodParams configures the current leaderboard period
type SetPeriodParams struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	PrizeFirst     string `json:"prize_first"`
	PrizeSecond    string `json:"prize_second"`
	PrizeThird     string `json:"prize_third"`
	BonusThreshold string `json:"bonus_threshold,omitempty"`
	BonusReward    string `json:"bonus_reward,omitempty"`
	UpdatedBy      string `json:"updated_by,omitempty"`
}

// GetLeaderboard returns the top entries of the current period. limit 0 uses the server default.
func (c *APIClient) GetLeaderboard(limit int) (*LeaderboardResult, error) {
	path := "/api/v1/leaderboard"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var result LeaderboardResult
	if err := c.doRequestAndParse(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRank returns the rank of a Discord user, falling back to username when unlinked
func (c *APIClient) GetRank(discordID, username string) (*RankResult, error) {
	path := "/api/v1/leaderboard/rank?" + identityQuery(discordID, username).Encode()
	var result RankResult
	if err := c.doRequestAndParse(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLeaderboardInfo returns the current period, prizes and participation
func (c *APIClient) GetLeaderboardInfo() (*domain.LeaderboardInfo, error) {
	var result domain.LeaderboardInfo
	if err := c.doRequestAndParse(http.MethodGet, "/api/v1/leaderboard/info", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetPeriod configures the current leaderboard period
func (c *APIClient) SetPeriod(params SetPeriodParams) (*domain.PeriodConfig, error) {
	var result domain.PeriodConfig
	if err := c.doRequestAndParse(http.MethodPost, "/api/v1/admin/leaderboard/period", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTickets returns a Discord user's lottery tickets for the current period
func (c *APIClient) GetTickets(discordID, username string) (*domain.UserTickets, error) {
	path := "/api/v1/lottery/tickets?" + identityQuery(discordID, username).Encode()
	var result domain.UserTickets
	if err := c.doRequestAndParse(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DrawLottery draws winners for the current period. seed may be nil.
func (c *APIClient) DrawLottery(winners int, seed *int64, drawnBy string) (*domain.LotteryDraw, error) {
	req := map[string]interface{}{
		"winners":  winners,
		"drawn_by": drawnBy,
	}
	if seed != nil {
		req["seed"] = *seed
	}
	var result domain.LotteryDraw
	if err := c.doRequestAndParse(http.MethodPost, "/api/v1/admin/lottery/draw", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLatestDraw returns the draw of the current period
func (c *APIClient) GetLatestDraw() (*domain.LotteryDraw, error) {
	var result domain.LotteryDraw
	if err := c.doRequestAndParse(http.MethodGet, "/api/v1/lottery/draw", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListMilestones returns all milestones ascending by amount
func (c *APIClient) ListMilestones() ([]domain.Milestone, error) {
	var result []domain.Milestone
	if err := c.doRequestAndParse(http.MethodGet, "/api/v1/milestones", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// MilestoneParams describes a milestone to create or update
type MilestoneParams struct {
	Amount     string `json:"amount"`
	RewardRole string `json:"reward_role"`
	RewardText string `json:"reward_text"`
}

// CreateMilestone adds a milestone
func (c *APIClient) CreateMilestone(params MilestoneParams) (*domain.Milestone, error) {
	var result domain.Milestone
	if err := c.doRequestAndParse(http.MethodPost, "/api/v1/admin/milestones", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateMilestone replaces a milestone
func (c *APIClient) UpdateMilestone(id int64, params MilestoneParams) (*domain.Milestone, error) {
	var result domain.Milestone
	path := fmt.Sprintf("/api/v1/admin/milestones/%d", id)
	if err := c.doRequestAndParse(http.MethodPut, path, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteMilestone removes a milestone
func (c *APIClient) DeleteMilestone(id int64) error {
	path := fmt.Sprintf("/api/v1/admin/milestones/%d", id)
	return c.doRequestAndParse(http.MethodDelete, path, nil, nil)
}

// GetProgress evaluates a Discord user's milestone progress given the roles they hold
func (c *APIClient) GetProgress(discordID, username string, heldRoles []string) (*domain.Progression, error) {
	if heldRoles == nil {
		heldRoles = []string{}
	}
	req := map[string]interface{}{
		"platform":    domain.PlatformDiscord,
		"platform_id": discordID,
		"username":    username,
		"held_roles":  heldRoles,
	}
	var result domain.Progression
	if err := c.doRequestAndParse(http.MethodPost, "/api/v1/milestones/progress", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
