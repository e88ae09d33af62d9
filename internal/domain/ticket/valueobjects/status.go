package valueobjects

import "fmt"

// Status is a ticket workflow state. Complaints and suggestions have disjoint
// state sets and independent transition tables; which table applies is decided
// by the ticket's category.
type Status string

const (
	// Complaint states.
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
	StatusRejected   Status = "rejected"

	// Suggestion states.
	StatusSubmitted Status = "submitted"
	StatusReviewed  Status = "reviewed"
	StatusDismissed Status = "dismissed"
)

var complaintStatuses = map[Status]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusClosed:     true,
	StatusRejected:   true,
}

var suggestionStatuses = map[Status]bool{
	StatusSubmitted: true,
	StatusReviewed:  true,
	StatusDismissed: true,
}

// complaintTransitions is the complaint workflow. resolved -> open is the
// reopen path; closed and rejected have no outbound edges.
var complaintTransitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusRejected},
	StatusInProgress: {StatusResolved, StatusRejected},
	StatusResolved:   {StatusClosed, StatusOpen},
	StatusClosed:     {},
	StatusRejected:   {},
}

// suggestionTransitions is the suggestion workflow. reviewed and dismissed
// are terminal.
var suggestionTransitions = map[Status][]Status{
	StatusSubmitted: {StatusReviewed, StatusDismissed},
	StatusReviewed:  {},
	StatusDismissed: {},
}

func (s Status) String() string {
	return string(s)
}

// IsValidFor reports whether the status belongs to the category's state set.
func (s Status) IsValidFor(c Category) bool {
	switch c {
	case CategoryComplaint:
		return complaintStatuses[s]
	case CategorySuggestion:
		return suggestionStatuses[s]
	default:
		return false
	}
}

// CanTransitionTo reports whether the edge s -> next exists in the
// category's transition table.
func (s Status) CanTransitionTo(next Status, c Category) bool {
	var table map[Status][]Status
	switch c {
	case CategoryComplaint:
		table = complaintTransitions
	case CategorySuggestion:
		table = suggestionTransitions
	default:
		return false
	}

	allowed, ok := table[s]
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsTerminalFor reports whether the status has no outbound edges in the
// category's transition table.
func (s Status) IsTerminalFor(c Category) bool {
	var table map[Status][]Status
	switch c {
	case CategoryComplaint:
		table = complaintTransitions
	case CategorySuggestion:
		table = suggestionTransitions
	default:
		return false
	}
	allowed, ok := table[s]
	return ok && len(allowed) == 0
}

func (s Status) IsOpen() bool {
	return s == StatusOpen
}

func (s Status) IsInProgress() bool {
	return s == StatusInProgress
}

func (s Status) IsResolved() bool {
	return s == StatusResolved
}

func (s Status) IsClosed() bool {
	return s == StatusClosed
}

func (s Status) IsRejected() bool {
	return s == StatusRejected
}

// InitialStatus returns the status assigned at creation for the category.
// It is never configurable by the caller.
func InitialStatus(c Category) Status {
	if c.IsSuggestion() {
		return StatusSubmitted
	}
	return StatusOpen
}

// NewStatus parses a status string and validates it against the category's
// state set.
func NewStatus(s string, c Category) (Status, error) {
	st := Status(s)
	if !st.IsValidFor(c) {
		return "", fmt.Errorf("invalid status %q for category %q", s, c)
	}
	return st, nil
}
