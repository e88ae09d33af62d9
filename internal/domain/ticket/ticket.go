package ticket

import (
	"fmt"
	"time"

	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	"github.com/visitra-hq/visitra/internal/shared/biztime"
	"github.com/visitra-hq/visitra/internal/shared/errors"
)

const (
	maxSubjectLength     = 200
	maxDescriptionLength = 5000
	maxReasonLength      = 2000
)

// Ticket is the aggregate root of the support-ticket core. Status changes go
// through the category's transition table; resolution and rejection text are
// required by the transitions that consume them. Tickets are never physically
// deleted, they only reach terminal states.
type Ticket struct {
	id              uint
	number          string
	category        vo.Category
	subject         string
	description     string
	status          vo.Status
	creatorID       uint
	hostID          *uint
	assigneeID      *uint
	resolution      string
	rejectionReason string
	createdAt       time.Time
	updatedAt       time.Time
	resolvedAt      *time.Time
	closedAt        *time.Time
	comments        []*Comment
}

// NewTicket creates a ticket in the category's initial state. The hostID is
// the creator's organizational host context snapshot at submission time, if
// any.
func NewTicket(
	category vo.Category,
	subject string,
	description string,
	creatorID uint,
	hostID *uint,
) (*Ticket, error) {
	if !category.IsValid() {
		return nil, errors.NewValidationError("invalid category")
	}
	if len(subject) == 0 {
		return nil, errors.NewValidationError("subject is required")
	}
	if len(subject) > maxSubjectLength {
		return nil, errors.NewValidationError(fmt.Sprintf("subject exceeds maximum length of %d characters", maxSubjectLength))
	}
	if len(description) == 0 {
		return nil, errors.NewValidationError("description is required")
	}
	if len(description) > maxDescriptionLength {
		return nil, errors.NewValidationError(fmt.Sprintf("description exceeds maximum length of %d characters", maxDescriptionLength))
	}
	if creatorID == 0 {
		return nil, errors.NewValidationError("creator ID is required")
	}

	now := biztime.TruncateToMilli(biztime.NowUTC())

	return &Ticket{
		category:    category,
		subject:     subject,
		description: description,
		status:      vo.InitialStatus(category),
		creatorID:   creatorID,
		hostID:      hostID,
		createdAt:   now,
		updatedAt:   now,
		comments:    []*Comment{},
	}, nil
}

// ReconstructTicket rebuilds a ticket from persistence. Comments are loaded
// separately by the repository.
func ReconstructTicket(
	id uint,
	number string,
	category vo.Category,
	subject string,
	description string,
	status vo.Status,
	creatorID uint,
	hostID *uint,
	assigneeID *uint,
	resolution string,
	rejectionReason string,
	createdAt, updatedAt time.Time,
	resolvedAt, closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if !status.IsValidFor(category) {
		return nil, fmt.Errorf("status %q is not valid for category %q", status, category)
	}

	return &Ticket{
		id:              id,
		number:          number,
		category:        category,
		subject:         subject,
		description:     description,
		status:          status,
		creatorID:       creatorID,
		hostID:          hostID,
		assigneeID:      assigneeID,
		resolution:      resolution,
		rejectionReason: rejectionReason,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		resolvedAt:      resolvedAt,
		closedAt:        closedAt,
		comments:        []*Comment{},
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Number() string {
	return t.number
}

func (t *Ticket) Category() vo.Category {
	return t.category
}

func (t *Ticket) Subject() string {
	return t.subject
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.Status {
	return t.status
}

func (t *Ticket) CreatorID() uint {
	return t.creatorID
}

func (t *Ticket) HostID() *uint {
	return t.hostID
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) Resolution() string {
	return t.resolution
}

func (t *Ticket) RejectionReason() string {
	return t.rejectionReason
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ResolvedAt() *time.Time {
	return t.resolvedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) Comments() []*Comment {
	commentsCopy := make([]*Comment, len(t.comments))
	copy(commentsCopy, t.comments)
	return commentsCopy
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// ChangeStatus applies a transition from the category's table. Transitions
// into resolved require a non-empty resolution; transitions into rejected
// require a non-empty rejection reason. The resolved -> open edge is reserved
// for Reopen and is rejected here.
func (t *Ticket) ChangeStatus(next vo.Status, resolution, rejectionReason string) error {
	if !next.IsValidFor(t.category) {
		return errors.NewInvalidTransitionError(t.category.String(), t.status.String(), next.String())
	}

	if !t.status.CanTransitionTo(next, t.category) {
		return errors.NewInvalidTransitionError(t.category.String(), t.status.String(), next.String())
	}

	if t.status.IsResolved() && next.IsOpen() {
		return errors.NewPreconditionFailedError("reopening a resolved complaint requires the reopen operation")
	}

	now := biztime.TruncateToMilli(biztime.NowUTC())

	switch {
	case next.IsResolved():
		if len(resolution) == 0 {
			return errors.NewPreconditionFailedError("resolution text is required to resolve a ticket")
		}
		if len(resolution) > maxReasonLength {
			return errors.NewValidationError(fmt.Sprintf("resolution exceeds maximum length of %d characters", maxReasonLength))
		}
		t.resolution = resolution
		t.resolvedAt = &now
	case next.IsRejected():
		if len(rejectionReason) == 0 {
			return errors.NewPreconditionFailedError("rejection reason is required to reject a ticket")
		}
		if len(rejectionReason) > maxReasonLength {
			return errors.NewValidationError(fmt.Sprintf("rejection reason exceeds maximum length of %d characters", maxReasonLength))
		}
		t.rejectionReason = rejectionReason
	case next.IsClosed():
		t.closedAt = &now
	}

	t.status = next
	t.updatedAt = now

	return nil
}

// Assign sets the assignee. Suggestions never carry an assignee; whether the
// assignee exists and is privileged is checked by the caller against the user
// directory.
func (t *Ticket) Assign(assigneeID uint) error {
	if t.category.IsSuggestion() {
		return errors.NewPreconditionFailedError("suggestions cannot be assigned")
	}
	if assigneeID == 0 {
		return errors.NewValidationError("assignee ID cannot be zero")
	}

	t.assigneeID = &assigneeID
	t.updatedAt = biztime.TruncateToMilli(biztime.NowUTC())

	return nil
}

// Reopen moves a resolved complaint back to open, clearing the resolved
// timestamp and preserving the assignee. The creator-only restriction is
// enforced by the caller, which also appends the rationale comment in the
// same transaction.
func (t *Ticket) Reopen() error {
	if !t.category.IsComplaint() || !t.status.IsResolved() {
		return errors.NewInvalidTransitionError(t.category.String(), t.status.String(), vo.StatusOpen.String())
	}

	t.status = vo.StatusOpen
	t.resolvedAt = nil
	t.updatedAt = biztime.TruncateToMilli(biztime.NowUTC())

	return nil
}

func (t *Ticket) AddComment(comment *Comment) error {
	if comment == nil {
		return fmt.Errorf("comment cannot be nil")
	}
	if comment.TicketID() != t.id {
		return fmt.Errorf("comment ticket ID mismatch")
	}

	// Comments do not touch the ticket row, so updatedAt stays put and the
	// optimistic-concurrency timestamp remains stable across comment adds.
	t.comments = append(t.comments, comment)

	return nil
}

// CanBeViewedBy reports ticket-level read access: privileged viewers see
// everything, others only their own tickets.
func (t *Ticket) CanBeViewedBy(viewerID uint, role authorization.UserRole) bool {
	if role.IsPrivileged() {
		return true
	}
	return t.creatorID == viewerID
}

// VisibleCommentsFor returns the ticket's comments with internal comments
// removed for non-privileged viewers.
func (t *Ticket) VisibleCommentsFor(viewerID uint, role authorization.UserRole) []*Comment {
	if role.IsPrivileged() {
		return t.Comments()
	}

	visible := make([]*Comment, 0, len(t.comments))
	for _, c := range t.comments {
		if !c.IsInternal() {
			visible = append(visible, c)
		}
	}
	return visible
}

func (t *Ticket) Validate() error {
	if len(t.subject) == 0 {
		return fmt.Errorf("subject is required")
	}
	if len(t.description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !t.category.IsValid() {
		return fmt.Errorf("invalid category")
	}
	if !t.status.IsValidFor(t.category) {
		return fmt.Errorf("invalid status")
	}
	if t.creatorID == 0 {
		return fmt.Errorf("creator ID is required")
	}
	if t.status.IsResolved() && len(t.resolution) == 0 {
		return fmt.Errorf("resolved ticket requires resolution text")
	}
	if t.status.IsRejected() && len(t.rejectionReason) == 0 {
		return fmt.Errorf("rejected ticket requires rejection reason")
	}
	if t.category.IsSuggestion() && t.assigneeID != nil {
		return fmt.Errorf("suggestions cannot carry an assignee")
	}
	return nil
}
