package usecases

import (
	"context"
	"fmt"

	"github.com/visitra-hq/visitra/internal/application/ticket/dto"
	"github.com/visitra-hq/visitra/internal/domain/ticket"
	"github.com/visitra-hq/visitra/internal/domain/user"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	"github.com/visitra-hq/visitra/internal/shared/errors"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

type AddAttachmentCommand struct {
	TicketID     uint
	FileName     string
	MIMEType     string
	Data         []byte
	UploaderID   uint
	UploaderRole authorization.UserRole
}

type AddAttachmentUseCase struct {
	ticketRepo     ticket.Repository
	attachmentRepo ticket.AttachmentRepository
	userRepo       user.Repository
	blobStore      BlobStore
	policy         AttachmentPolicy
	logger         logger.Interface
}

func NewAddAttachmentUseCase(
	ticketRepo ticket.Repository,
	attachmentRepo ticket.AttachmentRepository,
	userRepo user.Repository,
	blobStore BlobStore,
	policy AttachmentPolicy,
	logger logger.Interface,
) *AddAttachmentUseCase {
	return &AddAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		userRepo:       userRepo,
		blobStore:      blobStore,
		policy:         policy,
		logger:         logger,
	}
}

func (uc *AddAttachmentUseCase) Execute(ctx context.Context, cmd AddAttachmentCommand) (*dto.AttachmentDTO, error) {
	uc.logger.Infow("executing add attachment use case",
		"ticket_id", cmd.TicketID,
		"file_name", cmd.FileName,
		"size", len(cmd.Data),
	)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	// All preconditions are checked before the blob is written so a rejected
	// upload leaves no trace in storage.
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	// Uploads follow the same access rule as reads: the creator or a
	// privileged actor, nobody else.
	if !t.CanBeViewedBy(cmd.UploaderID, cmd.UploaderRole) {
		return nil, errors.NewForbiddenError("only the ticket creator or support staff may add attachments")
	}

	count, err := uc.attachmentRepo.CountByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to count attachments", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to count attachments")
	}
	if count >= int64(uc.policy.maxPerTicket()) {
		return nil, errors.NewPreconditionFailedError(
			fmt.Sprintf("ticket already has the maximum of %d attachments", uc.policy.maxPerTicket()))
	}

	exists, err := uc.userRepo.Exists(ctx, cmd.UploaderID)
	if err != nil {
		uc.logger.Errorw("failed to check uploader", "uploader_id", cmd.UploaderID, "error", err)
		return nil, errors.NewInternalError("failed to check uploader")
	}
	if !exists {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %d not found", cmd.UploaderID))
	}

	if int64(len(cmd.Data)) > uc.policy.maxBytes() {
		return nil, errors.NewPreconditionFailedError(
			fmt.Sprintf("file exceeds the maximum size of %d bytes", uc.policy.maxBytes()))
	}

	if !uc.policy.allowsMIMEType(cmd.MIMEType) {
		return nil, errors.NewPreconditionFailedError(
			fmt.Sprintf("file type %s is not allowed", cmd.MIMEType))
	}

	key := uc.blobStore.GenerateKey(cmd.FileName)
	if err := uc.blobStore.Put(ctx, key, cmd.Data); err != nil {
		uc.logger.Errorw("failed to store attachment blob", "ticket_id", t.ID(), "key", key, "error", err)
		return nil, errors.NewInternalError("failed to store attachment")
	}

	attachment, err := ticket.NewAttachment(t.ID(), cmd.FileName, key, int64(len(cmd.Data)), cmd.MIMEType, cmd.UploaderID)
	if err != nil {
		uc.deleteBlob(ctx, key)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.attachmentRepo.Save(ctx, attachment); err != nil {
		// The blob without its metadata row is unreachable; remove it so the
		// failed upload leaves nothing behind.
		uc.logger.Errorw("failed to save attachment metadata", "ticket_id", t.ID(), "key", key, "error", err)
		uc.deleteBlob(ctx, key)
		return nil, errors.NewInternalError("failed to save attachment")
	}

	uc.logger.Infow("attachment added successfully",
		"ticket_id", t.ID(),
		"attachment_id", attachment.ID(),
		"key", key,
	)

	result := dto.FromAttachment(attachment)
	return &result, nil
}

func (uc *AddAttachmentUseCase) validateCommand(cmd AddAttachmentCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.FileName == "" {
		return errors.NewValidationError("file name is required")
	}
	if cmd.MIMEType == "" {
		return errors.NewValidationError("MIME type is required")
	}
	if len(cmd.Data) == 0 {
		return errors.NewValidationError("file content is required")
	}
	if cmd.UploaderID == 0 {
		return errors.NewValidationError("uploader ID is required")
	}
	return nil
}

func (uc *AddAttachmentUseCase) deleteBlob(ctx context.Context, key string) {
	if err := uc.blobStore.Delete(ctx, key); err != nil {
		uc.logger.Warnw("failed to delete orphaned blob", "key", key, "error", err)
	}
}
