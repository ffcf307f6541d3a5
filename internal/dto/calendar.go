package dto

import (
	"time"

	"github.com/hearthhq/hearth-api/internal/calendar"
	"github.com/hearthhq/hearth-api/internal/palette"
)

// EventDTO represents a calendar event in API responses, with the
// color tag resolved to its display RGB value
type EventDTO struct {
	ID          string    `json:"id,omitempty"`
	CalendarID  string    `json:"calendar_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
	ColorTag    string    `json:"color_tag,omitempty"`
	ColorHex    string    `json:"color_hex"`
}

// EventListResponse represents a list of calendar events
type EventListResponse struct {
	Events []EventDTO `json:"events"`
}

// ToEventDTO converts a calendar event to EventDTO
func ToEventDTO(event calendar.Event) EventDTO {
	return EventDTO{
		ID:          event.ID,
		CalendarID:  event.CalendarID,
		Title:       event.Title,
		Description: event.Description,
		Start:       event.Start,
		End:         event.End,
		Location:    event.Location,
		Attendees:   event.Attendees,
		ColorTag:    event.ColorTag,
		ColorHex:    palette.Hex(event.ColorTag),
	}
}

// ToEventListResponse converts calendar events to EventListResponse
func ToEventListResponse(events []calendar.Event) EventListResponse {
	items := make([]EventDTO, len(events))
	for i, event := range events {
		items[i] = ToEventDTO(event)
	}
	return EventListResponse{Events: items}
}
