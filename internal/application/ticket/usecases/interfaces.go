package usecases

import (
	"context"
	"io"

	"github.com/visitra-hq/visitra/internal/application/ticket/dto"
	"github.com/visitra-hq/visitra/internal/domain/ticket"
)

// TransactionRunner runs a function inside a storage transaction. Multi-write
// operations (create's number allocation + insert, reopen's status change +
// comment) go through it so the writes are all-or-nothing.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BlobStore stores attachment payloads. Keys are generated fresh per upload
// from time and randomness plus the original file extension; a blob under a
// given key is written exactly once and never mutated.
type BlobStore interface {
	GenerateKey(originalName string) string
	Put(ctx context.Context, key string, data []byte) error
	// Get returns a reader for the blob. A missing blob yields an error
	// satisfying errors.Is(err, fs.ErrNotExist).
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Notifier receives lifecycle events. Implementations dispatch in the
// background; delivery failures are logged and never surfaced to the caller.
type Notifier interface {
	TicketCreated(event ticket.CreatedEvent)
	StatusChanged(event ticket.StatusChangedEvent)
	TicketAssigned(event ticket.AssignedEvent)
	TicketReopened(event ticket.ReopenedEvent)
	CommentAdded(event ticket.CommentAddedEvent)
}

// Sanitizer strips markup from user-supplied text before it is stored.
type Sanitizer interface {
	Sanitize(s string) string
}

// AttachmentPolicy carries the attachment limits. Zero values fall back to
// the domain defaults.
type AttachmentPolicy struct {
	MaxPerTicket int
	MaxBytes     int64
	AllowedTypes []string
}

func (p AttachmentPolicy) maxPerTicket() int {
	if p.MaxPerTicket > 0 {
		return p.MaxPerTicket
	}
	return ticket.MaxAttachmentsPerTicket
}

func (p AttachmentPolicy) maxBytes() int64 {
	if p.MaxBytes > 0 {
		return p.MaxBytes
	}
	return ticket.DefaultMaxAttachmentBytes
}

func (p AttachmentPolicy) allowedTypes() []string {
	if len(p.AllowedTypes) > 0 {
		return p.AllowedTypes
	}
	return ticket.DefaultAllowedMIMETypes
}

func (p AttachmentPolicy) allowsMIMEType(mimeType string) bool {
	for _, allowed := range p.allowedTypes() {
		if allowed == mimeType {
			return true
		}
	}
	return false
}

// Executor interfaces consumed by the HTTP handlers.

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error)
}

type ReopenTicketExecutor interface {
	Execute(ctx context.Context, cmd ReopenTicketCommand) (*dto.TicketDTO, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error)
}

type AddAttachmentExecutor interface {
	Execute(ctx context.Context, cmd AddAttachmentCommand) (*dto.AttachmentDTO, error)
}

type GetAttachmentExecutor interface {
	Execute(ctx context.Context, query GetAttachmentQuery) (*AttachmentStream, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, query GetTicketStatsQuery) (*TicketStatsResult, error)
}
