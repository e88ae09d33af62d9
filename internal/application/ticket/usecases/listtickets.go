package usecases

import (
	"context"
	"fmt"

	"github.com/visitra-hq/visitra/internal/application/ticket/dto"
	"github.com/visitra-hq/visitra/internal/domain/ticket"
	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	"github.com/visitra-hq/visitra/internal/shared/errors"
	"github.com/visitra-hq/visitra/internal/shared/logger"
	"github.com/visitra-hq/visitra/internal/shared/query"
)

type ListTicketsQuery struct {
	Status     *string
	Category   *string
	AssigneeID *uint
	HostID     *uint
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
	ViewerID   uint
	ViewerRole authorization.UserRole
}

type ListTicketsResult struct {
	Tickets  []dto.TicketDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	filter := ticket.Filter{
		BaseFilter: query.BaseFilter{
			PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
			SortFilter: query.SortFilter{SortBy: q.SortBy, SortOrder: q.SortOrder},
		},
		AssigneeID: q.AssigneeID,
		HostID:     q.HostID,
	}

	if q.Category != nil {
		category, err := vo.NewCategory(*q.Category)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Category = &category
	}

	if q.Status != nil {
		// State sets are disjoint between categories, so a bare status
		// filter is unambiguous. With a category filter it must match
		// that category's state set.
		status := vo.Status(*q.Status)
		if filter.Category != nil {
			if !status.IsValidFor(*filter.Category) {
				return nil, errors.NewValidationError(
					fmt.Sprintf("invalid status %q for category %q", *q.Status, *filter.Category))
			}
		} else if !status.IsValidFor(vo.CategoryComplaint) && !status.IsValidFor(vo.CategorySuggestion) {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid status %q", *q.Status))
		}
		filter.Status = &status
	}

	// Scoping happens in the query itself: non-privileged viewers only ever
	// see rows they created, so totals and pages stay consistent.
	filter = filter.ScopedFor(q.ViewerID, q.ViewerRole)

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	items := make([]dto.TicketDTO, len(tickets))
	for i, t := range tickets {
		items[i] = dto.FromTicketSummary(t)
	}

	return &ListTicketsResult{
		Tickets:  items,
		Total:    total,
		Page:     q.Page,
		PageSize: filter.Limit(),
	}, nil
}
