package ticket

import (
	"context"
	"time"

	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	"github.com/visitra-hq/visitra/internal/shared/query"
)

// Repository is the ticket persistence port. GetByID and GetByNumber load
// the ticket's comments.
type Repository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByNumber(ctx context.Context, number string) (*Ticket, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, int64, error)
	// ListResolvedBefore returns tickets of the category whose status is
	// resolved and whose resolved timestamp is before the cutoff. Used by
	// the auto-close sweep.
	ListResolvedBefore(ctx context.Context, category vo.Category, cutoff time.Time) ([]*Ticket, error)
	// CountByStatus returns ticket counts grouped by status, optionally
	// restricted to one category. Read-only dashboard support.
	CountByStatus(ctx context.Context, category *vo.Category) (map[string]int64, error)
}

// CommentRepository persists ticket comments.
type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Comment, error)
}

// AttachmentRepository persists attachment metadata. The binary payload
// lives in the blob store under the attachment's storage key.
type AttachmentRepository interface {
	Save(ctx context.Context, attachment *Attachment) error
	GetByID(ctx context.Context, attachmentID uint) (*Attachment, error)
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Attachment, error)
	CountByTicketID(ctx context.Context, ticketID uint) (int64, error)
}

// Filter is the query specification passed to List. Authorization scoping
// happens through ScopedFor, never by post-filtering results.
type Filter struct {
	query.BaseFilter

	Status     *vo.Status
	Category   *vo.Category
	CreatorID  *uint
	AssigneeID *uint
	HostID     *uint
}

// ScopedFor restricts the filter to the viewer's own tickets when the viewer
// is not privileged. Privileged viewers keep the filter as-is.
func (f Filter) ScopedFor(viewerID uint, role authorization.UserRole) Filter {
	if !role.IsPrivileged() {
		f.CreatorID = &viewerID
	}
	return f
}
