package schedule

import "time"

// DueState is the read-time classification of a chore relative to now.
// It is never persisted; listings recompute it on every read.
type DueState string

const (
	StateOverdue           DueState = "overdue"
	StateDueToday          DueState = "due_today"
	StateUpcoming          DueState = "upcoming"
	StateNoDueDate         DueState = "no_due_date"
	StateRecentlyCompleted DueState = "recently_completed"
)

// dueStateOrder defines the group/sort order for chore listings.
var dueStateOrder = map[DueState]int{
	StateOverdue:           0,
	StateDueToday:          1,
	StateUpcoming:          2,
	StateNoDueDate:         3,
	StateRecentlyCompleted: 4,
}

// Order returns the sort rank of the state within a grouped listing.
func (s DueState) Order() int {
	return dueStateOrder[s]
}

// Classify buckets a chore by its due date and last completion.
//
// A completion within the current calendar week (Mon-Sun) wins over
// every due-date check. A due date strictly in the past only counts as
// overdue when it is not the same calendar day as now; a due date on
// today's calendar day is due-today regardless of clock time.
func Classify(due, lastCompleted *time.Time, now time.Time) DueState {
	if lastCompleted != nil && sameWeek(*lastCompleted, now) {
		return StateRecentlyCompleted
	}
	if due == nil {
		return StateNoDueDate
	}
	if due.Before(now) && !sameDay(*due, now) {
		return StateOverdue
	}
	if sameDay(*due, now) {
		return StateDueToday
	}
	return StateUpcoming
}

// TodoBucket is the grouping ladder for to-do listings. The numeric
// order of the constants is the display and sort order.
type TodoBucket int

const (
	BucketOverdue TodoBucket = iota
	BucketToday
	BucketTomorrow
	BucketThisWeek
	BucketLater
	BucketNoDueDate
)

func (b TodoBucket) String() string {
	switch b {
	case BucketOverdue:
		return "overdue"
	case BucketToday:
		return "today"
	case BucketTomorrow:
		return "tomorrow"
	case BucketThisWeek:
		return "this_week"
	case BucketLater:
		return "later"
	default:
		return "no_due_date"
	}
}

// ClassifyTodo buckets a to-do by its due date. Unlike chores, to-dos
// have no recurrence, so completion state is handled by the caller.
func ClassifyTodo(due *time.Time, now time.Time) TodoBucket {
	if due == nil {
		return BucketNoDueDate
	}
	if due.Before(now) && !sameDay(*due, now) {
		return BucketOverdue
	}
	if sameDay(*due, now) {
		return BucketToday
	}
	if sameDay(*due, now.AddDate(0, 0, 1)) {
		return BucketTomorrow
	}
	if due.Before(endOfWeek(now)) {
		return BucketThisWeek
	}
	return BucketLater
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// startOfWeek returns midnight on the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// endOfWeek returns midnight on the Monday after t's week (exclusive bound).
func endOfWeek(t time.Time) time.Time {
	return startOfWeek(t).AddDate(0, 0, 7)
}

func sameWeek(a, b time.Time) bool {
	a = a.In(b.Location())
	return startOfWeek(a).Equal(startOfWeek(b))
}
