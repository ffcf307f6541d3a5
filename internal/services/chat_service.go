package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hearthhq/hearth-api/internal/calendar"
	"github.com/hearthhq/hearth-api/internal/constants"
	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/repository"
	"github.com/hearthhq/hearth-api/internal/utils"
)

var (
	ErrAssistantNotConfigured = errors.New("assistant is not configured")
	ErrMessageRequired        = errors.New("message is required")
	ErrAssistantFailed        = errors.New("assistant request failed")
)

// CalendarClient is the slice of the calendar proxy the chat service
// needs: a live window read for grounding and create for extracted
// commands.
type CalendarClient interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, maxResults int) ([]calendar.Event, error)
	CreateEvent(ctx context.Context, calendarID string, event calendar.Event) (*calendar.Event, error)
}

// ChatService orchestrates assistant turns: it snapshots family state,
// generates a grounded reply, persists the turn, and executes any
// extracted calendar command.
type ChatService struct {
	chatRepo   repository.ChatRepository
	familyRepo repository.FamilyRepository
	todoRepo   repository.TodoRepository
	choreRepo  repository.ChoreRepository
	assistant  *AssistantService
	calClient  CalendarClient
}

// NewChatService creates a new ChatService. assistant and calClient may
// be nil when the deployment has no API keys configured.
func NewChatService(
	chatRepo repository.ChatRepository,
	familyRepo repository.FamilyRepository,
	todoRepo repository.TodoRepository,
	choreRepo repository.ChoreRepository,
	assistant *AssistantService,
	calClient CalendarClient,
) *ChatService {
	return &ChatService{
		chatRepo:   chatRepo,
		familyRepo: familyRepo,
		todoRepo:   todoRepo,
		choreRepo:  choreRepo,
		assistant:  assistant,
		calClient:  calClient,
	}
}

// History returns the most recent turns for a family, oldest first.
func (s *ChatService) History(familyID uint64) ([]models.ChatMessage, error) {
	messages, err := s.chatRepo.ListByFamily(familyID, constants.MaxChatHistoryTurns)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return messages, nil
}

// HistoryPage returns one page of turns for scrollback, newest first,
// along with the total turn count.
func (s *ChatService) HistoryPage(familyID uint64, params utils.PaginationParams) ([]models.ChatMessage, int64, error) {
	messages, total, err := s.chatRepo.ListPageByFamily(familyID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load chat history page: %w", err)
	}
	return messages, total, nil
}

// SendResult is the outcome of one assistant turn.
type SendResult struct {
	Turn         *models.ChatMessage
	CreatedEvent *calendar.Event
}

// Send runs one assistant turn for a family member. When the message
// extracts to a create command with a complete payload and the family
// has a linked calendar, the event is created before the reply is
// generated so the reply can acknowledge it.
func (s *ChatService) Send(ctx context.Context, familyID, userID uint64, text string) (*SendResult, error) {
	if s.assistant == nil {
		return nil, ErrAssistantNotConfigured
	}
	if text == "" {
		return nil, ErrMessageRequired
	}

	family, err := s.familyRepo.FindByID(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load family: %w", err)
	}

	result := &SendResult{}

	// Command extraction runs first so a created event shows up in the
	// grounding snapshot.
	if s.calClient != nil && family.CalendarID != "" {
		command, err := s.assistant.ExtractCommand(ctx, text)
		if err == nil && command.Action == CommandCreate && command.HasRequiredEventFields() {
			if event := s.createExtractedEvent(ctx, family.CalendarID, command); event != nil {
				result.CreatedEvent = event
			}
		}
	}

	actx, err := s.buildContext(ctx, family)
	if err != nil {
		return nil, err
	}

	history, err := s.History(familyID)
	if err != nil {
		return nil, err
	}
	turns := make([]ChatTurn, 0, len(history)+1)
	for _, m := range history {
		turns = append(turns, ChatTurn{Message: m.Message, Response: m.Response})
	}
	turns = append(turns, ChatTurn{Message: text})

	reply, err := s.assistant.GenerateReply(ctx, turns, actx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssistantFailed, err)
	}

	turn := &models.ChatMessage{
		FamilyID: familyID,
		UserID:   userID,
		Message:  text,
		Response: reply,
	}
	if err := s.chatRepo.CreateTurn(turn); err != nil {
		return nil, fmt.Errorf("failed to persist chat turn: %w", err)
	}

	result.Turn = turn
	return result, nil
}

func (s *ChatService) createExtractedEvent(ctx context.Context, calendarID string, command *ExtractedCommand) *calendar.Event {
	start, err := time.Parse(time.RFC3339, command.Event.Start)
	if err != nil {
		return nil
	}
	end, err := time.Parse(time.RFC3339, command.Event.End)
	if err != nil {
		return nil
	}

	created, err := s.calClient.CreateEvent(ctx, calendarID, calendar.Event{
		Title:       command.Event.Title,
		Description: command.Event.Description,
		Start:       start,
		End:         end,
		Location:    command.Event.Location,
	})
	if err != nil {
		return nil
	}
	return created
}

func (s *ChatService) buildContext(ctx context.Context, family *models.Family) (AssistantContext, error) {
	actx := AssistantContext{FamilyName: family.Name}

	members, err := s.familyRepo.ListMembers(family.ID)
	if err != nil {
		return actx, fmt.Errorf("failed to load members: %w", err)
	}
	for _, m := range members {
		actx.Members = append(actx.Members, MemberSummary{
			Name: m.User.DisplayName,
			Role: string(m.Role),
		})
	}

	pending := models.TodoStatusPending
	todos, err := s.todoRepo.ListByFamily(family.ID, &pending)
	if err != nil {
		return actx, fmt.Errorf("failed to load todos: %w", err)
	}
	for _, t := range todos {
		summary := TodoSummary{Title: t.Title, Priority: string(t.Priority)}
		if t.DueDate != nil {
			summary.DueDate = t.DueDate.Format(time.RFC3339)
		}
		actx.OpenTodos = append(actx.OpenTodos, summary)
	}

	chores, err := s.choreRepo.ListByFamily(family.ID)
	if err != nil {
		return actx, fmt.Errorf("failed to load chores: %w", err)
	}
	for _, c := range chores {
		summary := ChoreSummary{Title: c.Title, Frequency: string(c.Frequency)}
		if c.AssignedTo != nil {
			summary.AssignedTo = c.AssignedTo.DisplayName
		}
		if c.NextDue != nil {
			summary.NextDue = c.NextDue.Format(time.RFC3339)
		}
		actx.Chores = append(actx.Chores, summary)
	}

	if s.calClient != nil && family.CalendarID != "" {
		now := time.Now()
		events, err := s.calClient.ListEvents(ctx, family.CalendarID, now, now.AddDate(0, 0, 14), constants.MaxContextEvents)
		// A calendar outage degrades grounding but never blocks the chat.
		if err == nil {
			for _, e := range events {
				actx.UpcomingEvents = append(actx.UpcomingEvents, EventSummary{
					Title: e.Title,
					Start: e.Start.Format(time.RFC3339),
					End:   e.End.Format(time.RFC3339),
				})
			}
		}
	}

	return actx, nil
}
