package usecases

import (
	"context"
	"time"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	"github.com/visitra-hq/visitra/internal/shared/biztime"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

// DefaultAutoCloseAfterDays is the grace period between a complaint being
// resolved and the sweep closing it.
const DefaultAutoCloseAfterDays = 7

type AutoCloseUseCase struct {
	ticketRepo ticket.Repository
	notifier   Notifier
	afterDays  int
	logger     logger.Interface
}

func NewAutoCloseUseCase(
	ticketRepo ticket.Repository,
	notifier Notifier,
	afterDays int,
	logger logger.Interface,
) *AutoCloseUseCase {
	if afterDays <= 0 {
		afterDays = DefaultAutoCloseAfterDays
	}
	return &AutoCloseUseCase{
		ticketRepo: ticketRepo,
		notifier:   notifier,
		afterDays:  afterDays,
		logger:     logger,
	}
}

// Execute closes resolved complaints whose resolution is older than the grace
// period. Each ticket is processed independently; a failure on one is logged
// and the sweep moves on. Returns the number of tickets closed.
func (uc *AutoCloseUseCase) Execute(ctx context.Context) (int, error) {
	cutoff := biztime.NowUTC().Add(-time.Duration(uc.afterDays) * 24 * time.Hour)
	uc.logger.Infow("starting auto-close sweep", "cutoff", cutoff, "after_days", uc.afterDays)

	candidates, err := uc.ticketRepo.ListResolvedBefore(ctx, vo.CategoryComplaint, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to list auto-close candidates", "error", err)
		return 0, err
	}

	closed := 0
	for _, t := range candidates {
		oldStatus := t.Status().String()

		if err := t.ChangeStatus(vo.StatusClosed, "", ""); err != nil {
			uc.logger.Warnw("skipping ticket in auto-close sweep",
				"ticket_id", t.ID(),
				"number", t.Number(),
				"error", err,
			)
			continue
		}

		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			uc.logger.Errorw("failed to auto-close ticket",
				"ticket_id", t.ID(),
				"number", t.Number(),
				"error", err,
			)
			continue
		}

		uc.notifier.StatusChanged(ticket.StatusChangedEvent{
			TicketID:  t.ID(),
			Number:    t.Number(),
			OldStatus: oldStatus,
			NewStatus: t.Status().String(),
			Timestamp: t.UpdatedAt(),
		})

		closed++
	}

	uc.logger.Infow("auto-close sweep finished", "candidates", len(candidates), "closed", closed)
	return closed, nil
}
