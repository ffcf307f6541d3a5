package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEvents_SendsWindowAndAuth(t *testing.T) {
	timeMin := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	timeMax := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/fam-cal/events", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, timeMin.Format(time.RFC3339), r.URL.Query().Get("timeMin"))
		assert.Equal(t, timeMax.Format(time.RFC3339), r.URL.Query().Get("timeMax"))
		assert.Equal(t, "10", r.URL.Query().Get("maxResults"))

		json.NewEncoder(w).Encode([]Event{
			{ID: "ev1", Title: "Dentist", Start: timeMin, End: timeMin.Add(time.Hour)},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	events, err := client.ListEvents(context.Background(), "fam-cal", timeMin, timeMax, 10)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev1", events[0].ID)
	assert.Equal(t, "Dentist", events[0].Title)
}

func TestCreateEvent_PostsJSONBody(t *testing.T) {
	start := time.Date(2024, time.June, 15, 18, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var event Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		assert.Equal(t, "Soccer practice", event.Title)

		event.ID = "ev2"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(event)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	created, err := client.CreateEvent(context.Background(), "fam-cal", Event{
		Title: "Soccer practice",
		Start: start,
		End:   start.Add(time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, "ev2", created.ID)
}

func TestDeleteEvent_NoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/calendars/fam-cal/events/ev3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	assert.NoError(t, client.DeleteEvent(context.Background(), "fam-cal", "ev3"))
}

func TestListEvents_NonSuccessBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.ListEvents(context.Background(), "fam-cal", time.Now(), time.Now().Add(time.Hour), 0)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}
