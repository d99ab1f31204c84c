// lrclib.net API client
//
// Wraps the public lyrics endpoints (GET /api/search, GET /api/get) and maps
// their wire schema onto [Candidate]. All knowledge of lrclib field names
// stays inside this package; callers only see Candidate values.
package lrclib

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

	"github.com/desertthunder/lrcdl/internal/shared"
)

const defaultBaseURL string = "https://lrclib.net"

const defaultUserAgent string = "lrcdl/0.2.0 (https://github.com/desertthunder/lrcdl)"

// Candidate is one search result from the lyrics service.
//
// Synced holds LRC-format text with per-line timestamps; Plain holds the
// untimed text. Either may be empty.
type Candidate struct {
	ID           int64   `json:"id"`
	Artist       string  `json:"artistName"`
	Title        string  `json:"trackName"`
	Album        string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	Synced       string  `json:"syncedLyrics"`
	Plain        string  `json:"plainLyrics"`
}

// HasLyrics reports whether the candidate carries any lyric content.
// Whitespace-only fields count as absent.
func (c Candidate) HasLyrics() bool {
	return strings.TrimSpace(c.Synced) != "" || strings.TrimSpace(c.Plain) != ""
}

// Content returns the preferred lyric text verbatim: synced when available, plain otherwise.
func (c Candidate) Content() string {
	if strings.TrimSpace(c.Synced) != "" {
		return c.Synced
	}
	return c.Plain
}

// Client queries the lrclib.net API. Stateless per call; pacing between
// calls is owned by the batch driver, not the client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a lrclib API client.
//
// An empty baseURL selects the public lrclib.net instance and a nil client
// falls back to a default with a 15 second timeout.
func NewClient(baseURL, userAgent string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: client,
	}
}

// Search queries GET /api/search with the artist and title and returns the
// candidates in the service's own relevance order.
//
// An empty result set is a successful call with zero candidates; transport,
// status and decode failures all wrap [shared.ErrLookup].
func (c *Client) Search(ctx context.Context, artist, title string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("artist_name", artist)
	params.Set("track_name", title)

	body, err := c.get(ctx, "/api/search", params)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParseResponse, err)
	}

	return candidates, nil
}

// Get queries GET /api/get, the service's exact-signature lookup.
//
// Album and duration narrow the match when known; duration is in seconds and
// ignored when <= 0. A 404 from the service means "no record" and returns
// (nil, nil) rather than an error.
func (c *Client) Get(ctx context.Context, artist, title, album string, duration int) (*Candidate, error) {
	params := url.Values{}
	params.Set("artist_name", artist)
	params.Set("track_name", title)
	if album != "" {
		params.Set("album_name", album)
	}
	if duration > 0 {
		params.Set("duration", strconv.Itoa(duration))
	}

	body, err := c.get(ctx, "/api/get", params)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var candidate Candidate
	if err := json.Unmarshal(body, &candidate); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParseResponse, err)
	}

	return &candidate, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", shared.ErrLookup, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrLookup, err)
	}

	return body, nil
}

// statusError reports a non-success response code while remaining
// matchable against [shared.ErrServiceStatus] and [shared.ErrLookup].
type statusError struct {
	code int
}

func (e statusError) Error() string {
	return fmt.Sprintf("%v: %d", shared.ErrServiceStatus, e.code)
}

func (e statusError) Unwrap() error {
	return shared.ErrServiceStatus
}

func notFound(err error) bool {
	var se statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}
