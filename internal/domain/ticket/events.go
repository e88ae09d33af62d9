package ticket

import (
	"time"
)

// Lifecycle events handed to the notifier. Delivery is fire-and-forget:
// a failed notification never affects the transition that produced it.

type CreatedEvent struct {
	TicketID  uint
	Number    string
	Category  string
	Subject   string
	CreatorID uint
	Timestamp time.Time
}

type StatusChangedEvent struct {
	TicketID  uint
	Number    string
	OldStatus string
	NewStatus string
	ChangedBy uint
	Timestamp time.Time
}

type AssignedEvent struct {
	TicketID   uint
	Number     string
	AssigneeID uint
	AssignedBy uint
	Timestamp  time.Time
}

type ReopenedEvent struct {
	TicketID   uint
	Number     string
	Reason     string
	ReopenedBy uint
	Timestamp  time.Time
}

type CommentAddedEvent struct {
	TicketID   uint
	Number     string
	CommentID  uint
	AuthorID   uint
	IsInternal bool
	Timestamp  time.Time
}
