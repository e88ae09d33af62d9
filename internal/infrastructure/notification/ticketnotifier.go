package notification

import (
	"context"
	"time"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	"github.com/visitra-hq/visitra/internal/domain/user"
	"github.com/visitra-hq/visitra/internal/shared/goroutine"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

const deliveryTimeout = 30 * time.Second

// EmailSender sends the per-event ticket emails.
type EmailSender interface {
	SendTicketCreated(to, number, subject string) error
	SendStatusChanged(to, number, oldStatus, newStatus string) error
	SendTicketAssigned(to, number string) error
	SendTicketReopened(to, number, reason string) error
	SendCommentAdded(to, number string) error
}

// EmailNotifier delivers ticket lifecycle events by email. Every delivery
// runs in its own goroutine; failures are logged and never reach the
// operation that raised the event.
type EmailNotifier struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
	sender     EmailSender
	logger     logger.Interface
}

func NewEmailNotifier(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	sender EmailSender,
	logger logger.Interface,
) *EmailNotifier {
	return &EmailNotifier{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		sender:     sender,
		logger:     logger,
	}
}

func (n *EmailNotifier) TicketCreated(event ticket.CreatedEvent) {
	goroutine.SafeGo(n.logger, "notify.ticket_created", func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()

		email, ok := n.emailOf(ctx, event.CreatorID)
		if !ok {
			return
		}
		if err := n.sender.SendTicketCreated(email, event.Number, event.Subject); err != nil {
			n.logger.Warnw("failed to send ticket created email",
				"ticket_number", event.Number, "error", err)
		}
	})
}

func (n *EmailNotifier) StatusChanged(event ticket.StatusChangedEvent) {
	goroutine.SafeGo(n.logger, "notify.status_changed", func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()

		t, err := n.ticketRepo.GetByID(ctx, event.TicketID)
		if err != nil {
			n.logger.Warnw("failed to load ticket for notification",
				"ticket_id", event.TicketID, "error", err)
			return
		}
		// The actor already knows what they did.
		if t.CreatorID() == event.ChangedBy {
			return
		}
		email, ok := n.emailOf(ctx, t.CreatorID())
		if !ok {
			return
		}
		if err := n.sender.SendStatusChanged(email, event.Number, event.OldStatus, event.NewStatus); err != nil {
			n.logger.Warnw("failed to send status changed email",
				"ticket_number", event.Number, "error", err)
		}
	})
}

func (n *EmailNotifier) TicketAssigned(event ticket.AssignedEvent) {
	goroutine.SafeGo(n.logger, "notify.ticket_assigned", func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()

		if event.AssigneeID == event.AssignedBy {
			return
		}
		email, ok := n.emailOf(ctx, event.AssigneeID)
		if !ok {
			return
		}
		if err := n.sender.SendTicketAssigned(email, event.Number); err != nil {
			n.logger.Warnw("failed to send ticket assigned email",
				"ticket_number", event.Number, "error", err)
		}
	})
}

func (n *EmailNotifier) TicketReopened(event ticket.ReopenedEvent) {
	goroutine.SafeGo(n.logger, "notify.ticket_reopened", func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()

		t, err := n.ticketRepo.GetByID(ctx, event.TicketID)
		if err != nil {
			n.logger.Warnw("failed to load ticket for notification",
				"ticket_id", event.TicketID, "error", err)
			return
		}
		if t.AssigneeID() == nil {
			return
		}
		email, ok := n.emailOf(ctx, *t.AssigneeID())
		if !ok {
			return
		}
		if err := n.sender.SendTicketReopened(email, event.Number, event.Reason); err != nil {
			n.logger.Warnw("failed to send ticket reopened email",
				"ticket_number", event.Number, "error", err)
		}
	})
}

func (n *EmailNotifier) CommentAdded(event ticket.CommentAddedEvent) {
	// Internal notes stay inside the support team.
	if event.IsInternal {
		return
	}
	goroutine.SafeGo(n.logger, "notify.comment_added", func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()

		t, err := n.ticketRepo.GetByID(ctx, event.TicketID)
		if err != nil {
			n.logger.Warnw("failed to load ticket for notification",
				"ticket_id", event.TicketID, "error", err)
			return
		}
		if t.CreatorID() == event.AuthorID {
			return
		}
		email, ok := n.emailOf(ctx, t.CreatorID())
		if !ok {
			return
		}
		if err := n.sender.SendCommentAdded(email, event.Number); err != nil {
			n.logger.Warnw("failed to send comment added email",
				"ticket_number", event.Number, "error", err)
		}
	})
}

func (n *EmailNotifier) emailOf(ctx context.Context, userID uint) (string, bool) {
	u, err := n.userRepo.GetByID(ctx, userID)
	if err != nil {
		n.logger.Warnw("failed to load user for notification",
			"user_id", userID, "error", err)
		return "", false
	}
	return u.Email(), true
}
