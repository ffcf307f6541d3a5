// Package calendar wraps the external calendar service behind a typed
// client. Events are never persisted locally; every listing is a live
// fetch scoped by a half-open [timeMin, timeMax) window.
package calendar

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
)

// Event is the provider-independent shape of a calendar event.
type Event struct {
	ID          string    `json:"id,omitempty"`
	CalendarID  string    `json:"calendar_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
	ColorTag    string    `json:"color_tag,omitempty"`
}

// Calendar identifies a calendar on the external service.
type Calendar struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// APIError is returned when the calendar service responds with a
// non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("calendar service returned %d: %s", e.StatusCode, e.Body)
}

// Client talks to the calendar service over its REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a calendar client. baseURL is the service root
// without a trailing slash.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ListCalendars returns the calendars visible to the configured key.
func (c *Client) ListCalendars(ctx context.Context) ([]Calendar, error) {
	var calendars []Calendar
	if err := c.do(ctx, http.MethodGet, "/calendars", nil, nil, &calendars); err != nil {
		return nil, err
	}
	return calendars, nil
}

// ListEvents fetches events in [timeMin, timeMax). Timestamps are sent
// as RFC 3339 with explicit offsets. maxResults <= 0 means no cap.
func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, maxResults int) ([]Event, error) {
	query := url.Values{}
	query.Set("timeMin", timeMin.Format(time.RFC3339))
	query.Set("timeMax", timeMax.Format(time.RFC3339))
	if maxResults > 0 {
		query.Set("maxResults", strconv.Itoa(maxResults))
	}

	var events []Event
	path := fmt.Sprintf("/calendars/%s/events", url.PathEscape(calendarID))
	if err := c.do(ctx, http.MethodGet, path, query, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent creates an event and returns it with the assigned ID.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, event Event) (*Event, error) {
	var created Event
	path := fmt.Sprintf("/calendars/%s/events", url.PathEscape(calendarID))
	if err := c.do(ctx, http.MethodPost, path, nil, event, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEvent replaces an event's fields.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, event Event) (*Event, error) {
	var updated Event
	path := fmt.Sprintf("/calendars/%s/events/%s", url.PathEscape(calendarID), url.PathEscape(eventID))
	if err := c.do(ctx, http.MethodPut, path, nil, event, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	path := fmt.Sprintf("/calendars/%s/events/%s", url.PathEscape(calendarID), url.PathEscape(eventID))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode calendar response: %w", err)
	}
	return nil
}
