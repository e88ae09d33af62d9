package usecases

import (
	"context"
	"fmt"

	"github.com/visitra-hq/visitra/internal/application/ticket/dto"
	"github.com/visitra-hq/visitra/internal/domain/ticket"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	"github.com/visitra-hq/visitra/internal/shared/errors"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

// ReopenTicketCommand reopens a resolved complaint. Only the original
// creator may reopen; the rationale is appended as a non-internal comment in
// the same transaction as the status change.
type ReopenTicketCommand struct {
	TicketID    uint
	Comment     string
	RequesterID uint
}

type ReopenTicketUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	tx          TransactionRunner
	sanitizer   Sanitizer
	notifier    Notifier
	logger      logger.Interface
}

func NewReopenTicketUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	tx TransactionRunner,
	sanitizer Sanitizer,
	notifier Notifier,
	logger logger.Interface,
) *ReopenTicketUseCase {
	return &ReopenTicketUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		tx:          tx,
		sanitizer:   sanitizer,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *ReopenTicketUseCase) Execute(ctx context.Context, cmd ReopenTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing reopen ticket use case", "ticket_id", cmd.TicketID, "requester_id", cmd.RequesterID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if len(cmd.Comment) == 0 {
		return nil, errors.NewValidationError("reopen comment is required")
	}
	if cmd.RequesterID == 0 {
		return nil, errors.NewValidationError("requester ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	if t.CreatorID() != cmd.RequesterID {
		uc.logger.Warnw("non-creator attempted to reopen ticket", "ticket_id", cmd.TicketID, "requester_id", cmd.RequesterID)
		return nil, errors.NewForbiddenError("only the ticket creator can reopen it")
	}

	if err := t.Reopen(); err != nil {
		return nil, err
	}

	comment, err := ticket.NewComment(t.ID(), cmd.RequesterID, uc.sanitizer.Sanitize(cmd.Comment), false)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	// Status change and rationale comment land together or not at all.
	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return uc.commentRepo.Save(txCtx, comment)
	})
	if err != nil {
		uc.logger.Errorw("failed to reopen ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to reopen ticket")
	}

	if err := t.AddComment(comment); err != nil {
		uc.logger.Warnw("failed to attach reopen comment to aggregate", "ticket_id", cmd.TicketID, "error", err)
	}

	uc.notifier.TicketReopened(ticket.ReopenedEvent{
		TicketID:   t.ID(),
		Number:     t.Number(),
		Reason:     comment.Content(),
		ReopenedBy: cmd.RequesterID,
		Timestamp:  t.UpdatedAt(),
	})

	uc.logger.Infow("ticket reopened successfully", "ticket_id", cmd.TicketID)

	result := dto.FromTicket(t, cmd.RequesterID, authorization.RoleUser)
	return &result, nil
}
