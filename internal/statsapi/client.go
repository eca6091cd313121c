// Package statsapi is a small client for the public MLB Stats API.
package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
)

// Sentinel errors for the two failure classes of a remote call.
var (
	ErrRequest = errors.New("stats api request failed")
	ErrDecode  = errors.New("stats api response malformed")
)

// maxErrorBody caps how much of a failed response body is echoed into an error.
const maxErrorBody = 512

// Client handles Stats API requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

var _ contract.StatsClient = &Client{} // Compile-time check

// NewClient creates a new Stats API client.
func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// ScheduleURL returns the schedule endpoint for a sport and calendar date.
func (c *Client) ScheduleURL(sportID int, date time.Time) string {
	q := url.Values{}
	q.Set("sportId", strconv.Itoa(sportID))
	q.Set("date", date.Format(contract.ScheduleDateFormat))
	return fmt.Sprintf("%s/api/v1/schedule/games/?%s", c.baseURL, q.Encode())
}

// GameFeedURL returns the detail endpoint of a game, preferring the link from the schedule.
func (c *Client) GameFeedURL(game schema.ScheduledGame) string {
	if game.Link != "" {
		if strings.HasPrefix(game.Link, "http://") || strings.HasPrefix(game.Link, "https://") {
			return game.Link
		}
		return c.baseURL + "/" + strings.TrimLeft(game.Link, "/")
	}
	return fmt.Sprintf("%s/api/v1.1/game/%d/feed/live", c.baseURL, game.GamePk)
}

// FetchSchedule fetches the games scheduled on a date.
func (c *Client) FetchSchedule(ctx context.Context, sportID int, date time.Time) (schema.Schedule, error) {
	var schedule schema.Schedule
	body, err := c.fetch(ctx, c.ScheduleURL(sportID, date))
	if err != nil {
		return schedule, err
	}
	if err := json.Unmarshal(body, &schedule); err != nil {
		return schedule, fmt.Errorf("%w: decoding schedule for %s: %v", ErrDecode, date.Format(contract.DateFormat), err)
	}
	return schedule, nil
}

// FetchGameFeed fetches the live feed of a game and returns the body verbatim.
func (c *Client) FetchGameFeed(ctx context.Context, game schema.ScheduledGame) ([]byte, error) {
	body, err := c.fetch(ctx, c.GameFeedURL(game))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: game %d feed is not valid JSON", ErrDecode, game.GamePk)
	}
	return body, nil
}

// fetch makes an HTTP GET request and returns the raw body.
func (c *Client) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrRequest, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status=%d url=%s body=%s", ErrRequest, resp.StatusCode, target, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrRequest, err)
	}
	return body, nil
}
