package constants

// Session
const (
	SessionCookieName = "hearth_session"
	ContextKeyUserID  = "user_id"
)

// Context keys set by access-control middleware
const (
	ContextKeyFamily       = "family"
	ContextKeyFamilyMember = "family_member"
	ContextKeyChore        = "chore"
	ContextKeyTodo         = "todo"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Chat
const (
	// MaxChatHistoryTurns is how many prior turns are replayed to the model.
	MaxChatHistoryTurns = 20
	// MaxContextEvents caps the upcoming-events snapshot in assistant context.
	MaxContextEvents = 10
)

// Chores
const (
	// MinRotationMembers is the smallest rotation roster a chore may have.
	MinRotationMembers = 2
)
