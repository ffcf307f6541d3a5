package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hearthhq/hearth-api/internal/calendar"
	"github.com/hearthhq/hearth-api/internal/palette"
)

func TestToEventDTO_ResolvesColorTag(t *testing.T) {
	start := time.Date(2024, time.June, 10, 18, 0, 0, 0, time.UTC)
	event := calendar.Event{
		ID:       "evt-1",
		Title:    "Soccer practice",
		Start:    start,
		End:      start.Add(time.Hour),
		ColorTag: "blue",
	}

	dto := ToEventDTO(event)
	assert.Equal(t, "blue", dto.ColorTag)
	assert.Equal(t, "#3B82F6", dto.ColorHex)
}

func TestToEventDTO_UnknownTagGetsDefault(t *testing.T) {
	dto := ToEventDTO(calendar.Event{Title: "Dentist"})
	assert.Empty(t, dto.ColorTag)
	assert.Equal(t, palette.DefaultHex, dto.ColorHex)
}

func TestToEventListResponse(t *testing.T) {
	events := []calendar.Event{
		{ID: "evt-1", Title: "Soccer practice", ColorTag: "green"},
		{ID: "evt-2", Title: "Dentist"},
	}

	response := ToEventListResponse(events)
	assert.Len(t, response.Events, 2)
	assert.Equal(t, "#22C55E", response.Events[0].ColorHex)
	assert.Equal(t, palette.DefaultHex, response.Events[1].ColorHex)
}
