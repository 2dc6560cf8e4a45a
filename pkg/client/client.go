// Package client is the Go SDK for the word-watch API. Moderation bots embed
// it instead of hand-rolling HTTP calls; every method maps to one API
// operation and returns the same coded errors the server produces.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	dErrors "wordwatch/pkg/domain-errors"
	"wordwatch/pkg/models"
)

// Client talks to one word-watch deployment.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ---- server scope ----

// ServerExists reports whether the server has an aggregate profile.
func (c *Client) ServerExists(ctx context.Context, serverID int64) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	err := c.do(ctx, http.MethodGet, "/servers/check_if_exists/"+formatID(serverID), nil, &resp)
	return resp.Exists, err
}

// InitializeServer creates the aggregate profile for a server the bot just
// joined.
func (c *Client) InitializeServer(ctx context.Context, serverID int64) (*models.ServerProfile, error) {
	var profile models.ServerProfile
	if err := c.do(ctx, http.MethodPost, "/servers/create_profile/"+formatID(serverID), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetServerProfile returns the full aggregate profile.
func (c *Client) GetServerProfile(ctx context.Context, serverID int64) (*models.ServerProfile, error) {
	var profile models.ServerProfile
	if err := c.do(ctx, http.MethodGet, "/servers/get_profile/"+formatID(serverID), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddFlaggedWords flags words on the server and propagates them to every
// member profile.
func (c *Client) AddFlaggedWords(ctx context.Context, serverID int64, words []string) (*models.FlagWordsResult, error) {
	var result models.FlagWordsResult
	if err := c.do(ctx, http.MethodPatch, "/servers/flag_words/"+formatID(serverID), words, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveFlaggedWords unflags words on the server and removes them from every
// member profile.
func (c *Client) RemoveFlaggedWords(ctx context.Context, serverID int64, words []string) (*models.UnflagWordsResult, error) {
	var result models.UnflagWordsResult
	if err := c.do(ctx, http.MethodPatch, "/servers/unflag_words/"+formatID(serverID), words, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetServerWordCount returns one word's server-wide counter.
func (c *Client) GetServerWordCount(ctx context.Context, serverID int64, word string) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	path := "/servers/get_word_count/" + formatID(serverID) + "?word=" + url.QueryEscape(word)
	err := c.do(ctx, http.MethodGet, path, nil, &resp)
	return resp.Count, err
}

// GetServerFlaggedWords returns the server vocabulary with counts.
func (c *Client) GetServerFlaggedWords(ctx context.Context, serverID int64) (map[string]int64, error) {
	var resp struct {
		Words map[string]int64 `json:"words"`
	}
	err := c.do(ctx, http.MethodGet, "/servers/get_flagged_words/"+formatID(serverID), nil, &resp)
	return resp.Words, err
}

// GetServerTotalWords returns the server's total word counter.
func (c *Client) GetServerTotalWords(ctx context.Context, serverID int64) (int64, error) {
	var resp struct {
		TotalWords int64 `json:"total_words"`
	}
	err := c.do(ctx, http.MethodGet, "/servers/get_total_words/"+formatID(serverID), nil, &resp)
	return resp.TotalWords, err
}

// GetServerTotalFlaggedWords returns the server's flagged-word counter.
func (c *Client) GetServerTotalFlaggedWords(ctx context.Context, serverID int64) (int64, error) {
	var resp struct {
		TotalFlaggedWords int64 `json:"total_flagged_words"`
	}
	err := c.do(ctx, http.MethodGet, "/servers/get_total_flagged_words/"+formatID(serverID), nil, &resp)
	return resp.TotalFlaggedWords, err
}

// ---- user scope ----

// UserExists reports whether the member has a profile on the server.
func (c *Client) UserExists(ctx context.Context, serverID, userID int64) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	err := c.do(ctx, http.MethodGet, "/users/check_if_exists/"+pairPath(serverID, userID), nil, &resp)
	return resp.Exists, err
}

// CreateUserProfile creates a member profile seeded from the server
// vocabulary.
func (c *Client) CreateUserProfile(ctx context.Context, serverID, userID int64) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodPost, "/users/create_profile/"+pairPath(serverID, userID), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateUserProfiles bulk-creates member profiles. Existing members come back
// as conflicts, not errors.
func (c *Client) CreateUserProfiles(ctx context.Context, serverID int64, userIDs []int64) (*models.CreateManyResult, error) {
	var result models.CreateManyResult
	if err := c.do(ctx, http.MethodPost, "/users/create_multiple_profiles/"+formatID(serverID), userIDs, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUserProfile returns the full member profile.
func (c *Client) GetUserProfile(ctx context.Context, serverID, userID int64) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/users/get_profile/"+pairPath(serverID, userID), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserFlaggedWords returns the member's word map.
func (c *Client) GetUserFlaggedWords(ctx context.Context, serverID, userID int64) (map[string]int64, error) {
	var resp struct {
		Words map[string]int64 `json:"words"`
	}
	err := c.do(ctx, http.MethodGet, "/users/get_flagged_words/"+pairPath(serverID, userID), nil, &resp)
	return resp.Words, err
}

// GetUserWordCount returns one word's counter for a member.
func (c *Client) GetUserWordCount(ctx context.Context, serverID, userID int64, word string) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	path := "/users/get_word_count/" + pairPath(serverID, userID) + "?word=" + url.QueryEscape(word)
	err := c.do(ctx, http.MethodGet, path, nil, &resp)
	return resp.Count, err
}

// RemoveUser deletes the member profile and rolls its counts out of the
// server aggregate.
func (c *Client) RemoveUser(ctx context.Context, serverID, userID int64) error {
	return c.do(ctx, http.MethodDelete, "/users/remove_profile/"+pairPath(serverID, userID), nil, nil)
}

// ReportUsage pushes one member's scan result: flagged-word deltas land on
// the server aggregate and the member profile, and the total word count is
// added to both totals. Either half may be empty.
func (c *Client) ReportUsage(ctx context.Context, serverID, userID int64, deltas map[string]int64, totalWords int64) error {
	if len(deltas) > 0 {
		if err := c.do(ctx, http.MethodPut, "/users/update_user_flags/"+pairPath(serverID, userID), deltas, nil); err != nil {
			return err
		}
	}
	if totalWords != 0 {
		if err := c.do(ctx, http.MethodPut, "/users/update_user_total_words/"+pairPath(serverID, userID), totalWords, nil); err != nil {
			return err
		}
	}
	return nil
}

// UsageReport is one member's scan result for batch reporting.
type UsageReport struct {
	UserID     int64
	Deltas     map[string]int64
	TotalWords int64
}

// ReportUsageBatch pushes many members' scan results concurrently. The first
// failure cancels the remaining requests; already-applied reports stay
// applied, matching the server's own partial-progress semantics.
func (c *Client) ReportUsageBatch(ctx context.Context, serverID int64, reports []UsageReport) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(reportConcurrency)
	for _, report := range reports {
		report := report
		g.Go(func() error {
			return c.ReportUsage(ctx, serverID, report.UserID, report.Deltas, report.TotalWords)
		})
	}
	return g.Wait()
}

// reportConcurrency caps parallel requests per batch so a large server sweep
// does not exhaust the API's rate budget in one burst.
const reportConcurrency = 8

// ---- transport ----

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError rebuilds the server's coded error from the envelope, so callers
// branch with dErrors.HasCode exactly as server-side code does.
func decodeError(resp *http.Response) error {
	var envelope struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
		return dErrors.Newf(dErrors.CodeInternal, "unexpected response status %d", resp.StatusCode)
	}
	msg := envelope.Description
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return dErrors.New(dErrors.Code(envelope.Error), msg)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func pairPath(serverID, userID int64) string {
	return formatID(serverID) + "/" + formatID(userID)
}
