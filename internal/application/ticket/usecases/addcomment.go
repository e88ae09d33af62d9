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

type AddCommentCommand struct {
	TicketID   uint
	Message    string
	IsInternal bool
	AuthorID   uint
	AuthorRole authorization.UserRole
}

type AddCommentUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	sanitizer   Sanitizer
	notifier    Notifier
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	sanitizer Sanitizer,
	notifier Notifier,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		sanitizer:   sanitizer,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "author_id", cmd.AuthorID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.AuthorID == 0 {
		return nil, errors.NewValidationError("author ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	if !t.CanBeViewedBy(cmd.AuthorID, cmd.AuthorRole) {
		return nil, errors.NewForbiddenError("user cannot comment on this ticket")
	}

	// Only privileged authors may mark a comment internal.
	if cmd.IsInternal && !cmd.AuthorRole.IsPrivileged() {
		return nil, errors.NewForbiddenError("only privileged users can add internal comments")
	}

	comment, err := ticket.NewComment(t.ID(), cmd.AuthorID, uc.sanitizer.Sanitize(cmd.Message), cmd.IsInternal)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Save(ctx, comment); err != nil {
		uc.logger.Errorw("failed to save comment", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to save comment")
	}

	uc.notifier.CommentAdded(ticket.CommentAddedEvent{
		TicketID:   t.ID(),
		Number:     t.Number(),
		CommentID:  comment.ID(),
		AuthorID:   cmd.AuthorID,
		IsInternal: cmd.IsInternal,
		Timestamp:  comment.CreatedAt(),
	})

	uc.logger.Infow("comment added successfully", "ticket_id", cmd.TicketID, "comment_id", comment.ID())

	result := dto.FromComment(comment)
	return &result, nil
}
