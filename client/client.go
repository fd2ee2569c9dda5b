// Package client is the Go SDK for the platform API. It owns the session
// lifecycle (login, silent refresh, auto-repair, logout) and the read-side
// views built from fetched data: classification tables and jornada calendars.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Riverafc7/esports-club-platform/models"
	"github.com/Riverafc7/esports-club-platform/schedule"
	"github.com/Riverafc7/esports-club-platform/standings"
)

// ErrConnection stands in for any transport-level failure. Server-rejected
// requests carry an *APIError instead.
var ErrConnection = errors.New("connection error, please try again")

// APIError is a non-2xx response with the server's message preserved.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do runs one JSON round trip. A nil body sends no payload; accessToken adds
// the Bearer header when non-empty. Transport failures map to ErrConnection,
// non-2xx statuses to *APIError with the server's message field.
func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(data)}
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// serverMessage digs the human-readable message out of an error envelope.
func serverMessage(data []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		return envelope.Error
	}
	return ""
}

type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Username     string `json:"username"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/register", "", body, nil)
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var out TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/refresh", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/api/logout", accessToken, nil, nil)
}

type Profile struct {
	ID         int     `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	ProfilePic *string `json:"profilePic"`
}

func (c *Client) Profile(ctx context.Context, accessToken string) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Tournaments(ctx context.Context) ([]models.Tournament, error) {
	var out []models.Tournament
	if err := c.do(ctx, http.MethodGet, "/api/tournaments", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Tournament(ctx context.Context, id int) (*models.Tournament, error) {
	var out models.Tournament
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tournaments/%d", id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TournamentTeams(ctx context.Context, id int) ([]models.Team, error) {
	var out []models.Team
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tournament/%d/teams", id), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TournamentStandings(ctx context.Context, id int) ([]standings.Row, error) {
	var out []standings.Row
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tournament/%d/stats", id), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TournamentMatches fetches a tournament's calendar, normalizing any legacy
// field names the upstream may still emit.
func (c *Client) TournamentMatches(ctx context.Context, id int) ([]models.Match, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tournament/%d/matches", id), "", nil, &raw); err != nil {
		return nil, err
	}
	return schedule.DecodeMatches(raw)
}

func (c *Client) TeamCalendar(ctx context.Context, accessToken string) ([]schedule.Round, error) {
	var out []schedule.Round
	if err := c.do(ctx, http.MethodGet, "/api/team/calendar", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterTeam(ctx context.Context, accessToken string, tournamentID int) error {
	body := map[string]int{"tournament_id": tournamentID}
	return c.do(ctx, http.MethodPost, "/api/tournament/register", accessToken, body, nil)
}

func (c *Client) LeaveTournament(ctx context.Context, accessToken string, tournamentID int) error {
	body := map[string]int{"tournament_id": tournamentID}
	return c.do(ctx, http.MethodPost, "/api/tournament/leave", accessToken, body, nil)
}
