package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hearthhq/hearth-api/internal/calendar"
	"github.com/hearthhq/hearth-api/internal/dto"
	apierrors "github.com/hearthhq/hearth-api/internal/errors"
	"github.com/hearthhq/hearth-api/internal/middleware"
)

// CalendarHandler proxies family calendar operations to the external
// calendar service. Events are never stored locally.
type CalendarHandler struct {
	client *calendar.Client
}

// NewCalendarHandler creates a new CalendarHandler. client may be nil
// when no calendar service is configured.
func NewCalendarHandler(client *calendar.Client) *CalendarHandler {
	return &CalendarHandler{
		client: client,
	}
}

// ListEvents returns the family's events in a half-open time window.
// Defaults to the next 14 days when no window is given.
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	calendarID, ok := h.familyCalendarID(c)
	if !ok {
		return
	}

	now := time.Now()
	timeMin := now
	timeMax := now.AddDate(0, 0, 14)

	if minStr := c.Query("time_min"); minStr != "" {
		parsed, err := time.Parse(time.RFC3339, minStr)
		if err != nil {
			apierrors.BadRequest(c, "time_min must be RFC 3339")
			return
		}
		timeMin = parsed
	}
	if maxStr := c.Query("time_max"); maxStr != "" {
		parsed, err := time.Parse(time.RFC3339, maxStr)
		if err != nil {
			apierrors.BadRequest(c, "time_max must be RFC 3339")
			return
		}
		timeMax = parsed
	}
	if !timeMax.After(timeMin) {
		apierrors.BadRequest(c, "time_max must be after time_min")
		return
	}

	events, err := h.client.ListEvents(c.Request.Context(), calendarID, timeMin, timeMax, 0)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventListResponse(events))
}

// CreateEvent creates an event on the family calendar.
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	calendarID, ok := h.familyCalendarID(c)
	if !ok {
		return
	}

	var event calendar.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if event.Title == "" || event.Start.IsZero() || event.End.IsZero() {
		apierrors.BadRequest(c, "title, start and end are required")
		return
	}
	if !event.End.After(event.Start) {
		apierrors.BadRequest(c, "end must be after start")
		return
	}

	created, err := h.client.CreateEvent(c.Request.Context(), calendarID, event)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventDTO(*created))
}

// UpdateEvent replaces an event on the family calendar.
func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	calendarID, ok := h.familyCalendarID(c)
	if !ok {
		return
	}

	eventID := c.Param("eventId")
	if eventID == "" {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	var event calendar.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.client.UpdateEvent(c.Request.Context(), calendarID, eventID, event)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*updated))
}

// DeleteEvent removes an event from the family calendar.
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	calendarID, ok := h.familyCalendarID(c)
	if !ok {
		return
	}

	eventID := c.Param("eventId")
	if eventID == "" {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.client.DeleteEvent(c.Request.Context(), calendarID, eventID); err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
	})
}

// familyCalendarID resolves the linked calendar for the family loaded
// by RequireFamilyAccess. Writes the error response itself on failure.
func (h *CalendarHandler) familyCalendarID(c *gin.Context) (string, bool) {
	if h.client == nil {
		apierrors.ServiceUnavailable(c, "Calendar service is not configured")
		return "", false
	}

	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return "", false
	}
	if family.CalendarID == "" {
		apierrors.BadRequest(c, "Family has no linked calendar")
		return "", false
	}

	return family.CalendarID, true
}

func respondCalendarError(c *gin.Context, err error) {
	var apiErr *calendar.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			apierrors.NotFound(c, "Event not found")
			return
		}
		apierrors.BadGateway(c, "Calendar service error")
		return
	}
	apierrors.BadGateway(c, "Calendar service unreachable")
}
