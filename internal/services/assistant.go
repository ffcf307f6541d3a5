package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// AssistantService wraps the hosted language model behind the two
// operations the app needs: grounded reply generation and command
// extraction from free text.
type AssistantService struct {
	client *openai.Client
}

func NewAssistantService(apiKey string) *AssistantService {
	return &AssistantService{
		client: openai.NewClient(apiKey),
	}
}

// ChatTurn is one prior (message, response) pair replayed to the model.
type ChatTurn struct {
	Message  string
	Response string
}

// MemberSummary is a roster entry in the assistant context.
type MemberSummary struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// EventSummary is an upcoming event in the assistant context.
type EventSummary struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// TodoSummary is an open to-do in the assistant context.
type TodoSummary struct {
	Title    string `json:"title"`
	DueDate  string `json:"due_date,omitempty"`
	Priority string `json:"priority"`
}

// ChoreSummary is a chore in the assistant context.
type ChoreSummary struct {
	Title      string `json:"title"`
	Frequency  string `json:"frequency"`
	AssignedTo string `json:"assigned_to,omitempty"`
	NextDue    string `json:"next_due,omitempty"`
}

// AssistantContext is the structured snapshot passed for grounding.
// Plain serializable data only; the model sees it as JSON.
type AssistantContext struct {
	FamilyName     string          `json:"family_name"`
	Members        []MemberSummary `json:"members"`
	UpcomingEvents []EventSummary  `json:"upcoming_events"`
	OpenTodos      []TodoSummary   `json:"open_todos"`
	Chores         []ChoreSummary  `json:"chores"`
}

// GenerateReply produces an assistant reply grounded on the family
// snapshot and the recent conversation history.
func (s *AssistantService) GenerateReply(ctx context.Context, history []ChatTurn, actx AssistantContext) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	snapshot, err := json.Marshal(actx)
	if err != nil {
		return "", fmt.Errorf("failed to encode assistant context: %w", err)
	}

	system := fmt.Sprintf(`You are a friendly scheduling assistant for a family. Answer questions about the family's calendar, to-dos, and chores, and help plan their week.

Current time: %s

Family snapshot (JSON):
%s

Keep answers short and practical. If asked about something not in the snapshot, say you don't have that information.`,
		time.Now().Format(time.RFC3339), string(snapshot))

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
	}
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: turn.Message,
		})
		// The final turn is the message being answered and has no
		// response yet.
		if turn.Response != "" {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: turn.Response,
			})
		}
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       openai.GPT4o,
			Messages:    messages,
			Temperature: 0.7,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// CommandAction is the kind of calendar operation extracted from text.
type CommandAction string

const (
	CommandCreate CommandAction = "create"
	CommandUpdate CommandAction = "update"
	CommandDelete CommandAction = "delete"
	CommandQuery  CommandAction = "query"
	CommandNone   CommandAction = "none"
)

// EventDetails is the loosely structured payload of an extracted
// command. Only title/start/end are checked before acting on a create.
type EventDetails struct {
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// ExtractedCommand is the result of command extraction.
type ExtractedCommand struct {
	Action CommandAction `json:"action"`
	Event  EventDetails  `json:"event"`
}

// HasRequiredEventFields reports whether the payload carries the three
// fields a create command needs.
func (c *ExtractedCommand) HasRequiredEventFields() bool {
	return strings.TrimSpace(c.Event.Title) != "" &&
		strings.TrimSpace(c.Event.Start) != "" &&
		strings.TrimSpace(c.Event.End) != ""
}

// ExtractCommand asks the model whether the text contains a calendar
// command and returns the action plus event details.
func (s *AssistantService) ExtractCommand(ctx context.Context, text string) (*ExtractedCommand, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a command extraction assistant. Decide whether the following message asks for a calendar operation.

Current time: %s

Message:
%s

Respond with JSON only, in this exact shape:
{
  "action": "create" | "update" | "delete" | "query" | "none",
  "event": {
    "title": "event title",
    "start": "start time in ISO 8601, e.g. 2025-10-28T18:00:00Z",
    "end": "end time in ISO 8601",
    "location": "optional location",
    "description": "optional description"
  }
}

Rules:
- Use "none" when the message is not asking for a calendar operation.
- Convert relative expressions ("tomorrow", "next friday") into concrete ISO 8601 times.
- Leave fields you cannot determine as empty strings.
- Return JSON only, no surrounding prose.`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var command ExtractedCommand
	if err := json.Unmarshal([]byte(content), &command); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	switch command.Action {
	case CommandCreate, CommandUpdate, CommandDelete, CommandQuery, CommandNone:
	default:
		command.Action = CommandNone
	}

	return &command, nil
}
