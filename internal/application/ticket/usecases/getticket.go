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

type GetTicketQuery struct {
	TicketID   uint
	ViewerID   uint
	ViewerRole authorization.UserRole
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", query.TicketID))
	}

	if !t.CanBeViewedBy(query.ViewerID, query.ViewerRole) {
		return nil, errors.NewForbiddenError("user cannot access this ticket")
	}

	result := dto.FromTicket(t, query.ViewerID, query.ViewerRole)
	return &result, nil
}
