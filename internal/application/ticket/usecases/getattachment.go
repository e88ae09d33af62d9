package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	"github.com/visitra-hq/visitra/internal/shared/errors"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

type GetAttachmentQuery struct {
	TicketID     uint
	AttachmentID uint
	ViewerID     uint
	ViewerRole   authorization.UserRole
}

// AttachmentStream is the downloadable payload. The caller owns Stream and
// must close it.
type AttachmentStream struct {
	Stream   io.ReadCloser
	FileName string
	MIMEType string
	Size     int64
}

type GetAttachmentUseCase struct {
	ticketRepo     ticket.Repository
	attachmentRepo ticket.AttachmentRepository
	blobStore      BlobStore
	logger         logger.Interface
}

func NewGetAttachmentUseCase(
	ticketRepo ticket.Repository,
	attachmentRepo ticket.AttachmentRepository,
	blobStore BlobStore,
	logger logger.Interface,
) *GetAttachmentUseCase {
	return &GetAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		blobStore:      blobStore,
		logger:         logger,
	}
}

func (uc *GetAttachmentUseCase) Execute(ctx context.Context, query GetAttachmentQuery) (*AttachmentStream, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if query.AttachmentID == 0 {
		return nil, errors.NewValidationError("attachment ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", query.TicketID))
	}

	if !t.CanBeViewedBy(query.ViewerID, query.ViewerRole) {
		return nil, errors.NewForbiddenError("user cannot access this ticket")
	}

	attachment, err := uc.attachmentRepo.GetByID(ctx, query.AttachmentID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("attachment %d not found", query.AttachmentID))
	}
	if attachment.TicketID() != t.ID() {
		return nil, errors.NewNotFoundError(fmt.Sprintf("attachment %d not found", query.AttachmentID))
	}

	stream, err := uc.blobStore.Get(ctx, attachment.StorageKey())
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			// The metadata row exists but the blob is gone. This should be
			// impossible under the write protocol and is surfaced loudly.
			uc.logger.Errorw("attachment blob missing",
				"ticket_id", t.ID(),
				"attachment_id", attachment.ID(),
				"key", attachment.StorageKey(),
			)
			return nil, errors.NewIntegrityError(
				fmt.Sprintf("attachment %d is missing its stored content", attachment.ID()))
		}
		uc.logger.Errorw("failed to open attachment blob",
			"attachment_id", attachment.ID(),
			"key", attachment.StorageKey(),
			"error", err,
		)
		return nil, errors.NewInternalError("failed to open attachment")
	}

	return &AttachmentStream{
		Stream:   stream,
		FileName: attachment.FileName(),
		MIMEType: attachment.MIMEType(),
		Size:     attachment.Size(),
	}, nil
}
