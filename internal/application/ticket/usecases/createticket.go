package usecases

import (
	"context"
	"time"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	"github.com/visitra-hq/visitra/internal/domain/user"
	"github.com/visitra-hq/visitra/internal/shared/errors"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

type CreateTicketCommand struct {
	Category    string
	Subject     string
	Description string
	CreatorID   uint
}

type CreateTicketResult struct {
	TicketID  uint
	Number    string
	Status    string
	CreatedAt time.Time
}

// CreateTicketUseCase allocates a ticket number and inserts the ticket in
// one transaction, so concurrent creations in the same category never
// collide on a number.
type CreateTicketUseCase struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
	allocator  ticket.NumberAllocator
	tx         TransactionRunner
	sanitizer  Sanitizer
	notifier   Notifier
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	allocator ticket.NumberAllocator,
	tx TransactionRunner,
	sanitizer Sanitizer,
	notifier Notifier,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		allocator:  allocator,
		tx:         tx,
		sanitizer:  sanitizer,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "category", cmd.Category, "creator_id", cmd.CreatorID)

	category, err := vo.NewCategory(cmd.Category)
	if err != nil {
		return nil, errors.NewValidationError("invalid category")
	}
	if cmd.CreatorID == 0 {
		return nil, errors.NewValidationError("creator ID is required")
	}

	creator, err := uc.userRepo.GetByID(ctx, cmd.CreatorID)
	if err != nil {
		uc.logger.Errorw("failed to resolve creator", "creator_id", cmd.CreatorID, "error", err)
		return nil, errors.NewNotFoundError("creator not found")
	}

	subject := uc.sanitizer.Sanitize(cmd.Subject)
	description := uc.sanitizer.Sanitize(cmd.Description)

	newTicket, err := ticket.NewTicket(category, subject, description, cmd.CreatorID, creator.HostID())
	if err != nil {
		return nil, err
	}

	// Number allocation and insert share one transaction; a uniqueness
	// conflict rolls back the whole creation and the caller retries.
	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		number, err := uc.allocator.NextNumber(txCtx, category)
		if err != nil {
			return err
		}
		if err := newTicket.SetNumber(number); err != nil {
			return err
		}
		return uc.ticketRepo.Save(txCtx, newTicket)
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "category", cmd.Category, "error", err)
		return nil, err
	}

	uc.notifier.TicketCreated(ticket.CreatedEvent{
		TicketID:  newTicket.ID(),
		Number:    newTicket.Number(),
		Category:  newTicket.Category().String(),
		Subject:   newTicket.Subject(),
		CreatorID: newTicket.CreatorID(),
		Timestamp: newTicket.CreatedAt(),
	})

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "number", newTicket.Number())

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		Number:    newTicket.Number(),
		Status:    newTicket.Status().String(),
		CreatedAt: newTicket.CreatedAt(),
	}, nil
}
