package usecases

import (
	"context"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	"github.com/visitra-hq/visitra/internal/shared/errors"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

type GetTicketStatsQuery struct {
	Category   *string
	ViewerRole authorization.UserRole
}

type TicketStatsResult struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query GetTicketStatsQuery) (*TicketStatsResult, error) {
	if !query.ViewerRole.IsPrivileged() {
		return nil, errors.NewForbiddenError("only privileged users can view ticket statistics")
	}

	var category *vo.Category
	if query.Category != nil {
		c, err := vo.NewCategory(*query.Category)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		category = &c
	}

	counts, err := uc.ticketRepo.CountByStatus(ctx, category)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by status", "error", err)
		return nil, errors.NewInternalError("failed to compute ticket statistics")
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return &TicketStatsResult{
		Total:    total,
		ByStatus: counts,
	}, nil
}
