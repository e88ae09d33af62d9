package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/visitra-hq/visitra/internal/application/ticket/dto"
	"github.com/visitra-hq/visitra/internal/domain/ticket"
	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	"github.com/visitra-hq/visitra/internal/domain/user"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	"github.com/visitra-hq/visitra/internal/shared/biztime"
	"github.com/visitra-hq/visitra/internal/shared/errors"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

// UpdateTicketCommand is a privileged edit of a ticket: a status change, an
// assignment, or both. ExpectedUpdatedAt is the caller's last-seen
// modification time; when set, a mismatch rejects the whole update before
// any other validation. When absent the check is skipped and the update is
// last-write-wins, for callers that cannot track state.
type UpdateTicketCommand struct {
	TicketID          uint
	Status            *string
	AssigneeID        *uint
	Resolution        string
	RejectionReason   string
	ExpectedUpdatedAt *time.Time
	UpdatedBy         uint
	UpdaterRole       authorization.UserRole
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
	notifier   Notifier
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	notifier Notifier,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "updated_by", cmd.UpdatedBy)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.UpdatedBy == 0 {
		return nil, errors.NewValidationError("updated by user ID is required")
	}
	if !cmd.UpdaterRole.IsPrivileged() {
		return nil, errors.NewForbiddenError("only privileged users can update tickets")
	}
	if cmd.Status == nil && cmd.AssigneeID == nil {
		return nil, errors.NewValidationError("nothing to update")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	if err := uc.checkNotStale(t, cmd.ExpectedUpdatedAt); err != nil {
		uc.logger.Warnw("stale ticket update rejected",
			"ticket_id", cmd.TicketID,
			"expected_updated_at", cmd.ExpectedUpdatedAt,
			"actual_updated_at", t.UpdatedAt(),
		)
		return nil, err
	}

	oldStatus := t.Status()

	var assigned *uint
	if cmd.AssigneeID != nil {
		if err := uc.assign(ctx, t, *cmd.AssigneeID); err != nil {
			return nil, err
		}
		assigned = cmd.AssigneeID
	}

	var statusChanged bool
	if cmd.Status != nil {
		next, err := vo.NewStatus(*cmd.Status, t.Category())
		if err != nil {
			return nil, errors.NewInvalidTransitionError(t.Category().String(), t.Status().String(), *cmd.Status)
		}
		if err := t.ChangeStatus(next, cmd.Resolution, cmd.RejectionReason); err != nil {
			return nil, err
		}
		statusChanged = true
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	if statusChanged {
		uc.notifier.StatusChanged(ticket.StatusChangedEvent{
			TicketID:  t.ID(),
			Number:    t.Number(),
			OldStatus: oldStatus.String(),
			NewStatus: t.Status().String(),
			ChangedBy: cmd.UpdatedBy,
			Timestamp: t.UpdatedAt(),
		})
	}
	if assigned != nil {
		uc.notifier.TicketAssigned(ticket.AssignedEvent{
			TicketID:   t.ID(),
			Number:     t.Number(),
			AssigneeID: *assigned,
			AssignedBy: cmd.UpdatedBy,
			Timestamp:  t.UpdatedAt(),
		})
	}

	uc.logger.Infow("ticket updated successfully",
		"ticket_id", t.ID(),
		"old_status", oldStatus,
		"new_status", t.Status(),
	)

	result := dto.FromTicket(t, cmd.UpdatedBy, cmd.UpdaterRole)
	return &result, nil
}

// checkNotStale is the optimistic-concurrency guard. Timestamps compare at
// millisecond precision, matching storage.
func (uc *UpdateTicketUseCase) checkNotStale(t *ticket.Ticket, expected *time.Time) error {
	if expected == nil {
		return nil
	}
	actual := biztime.TruncateToMilli(t.UpdatedAt())
	if !biztime.TruncateToMilli(*expected).Equal(actual) {
		return errors.NewStaleUpdateError(
			expected.UTC().Format(time.RFC3339Nano),
			actual.Format(time.RFC3339Nano),
		)
	}
	return nil
}

func (uc *UpdateTicketUseCase) assign(ctx context.Context, t *ticket.Ticket, assigneeID uint) error {
	// Suggestions reject assignment before the assignee is even looked up.
	if t.Category().IsSuggestion() {
		return errors.NewPreconditionFailedError("suggestions cannot be assigned")
	}

	assignee, err := uc.userRepo.GetByID(ctx, assigneeID)
	if err != nil {
		return errors.NewNotFoundError(fmt.Sprintf("assignee %d not found", assigneeID))
	}
	if !assignee.IsPrivileged() {
		return errors.NewPreconditionFailedError("assignee must be a privileged user")
	}

	return t.Assign(assigneeID)
}
