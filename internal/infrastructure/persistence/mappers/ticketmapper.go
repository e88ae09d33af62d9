package mappers

import (
	"fmt"
	"time"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	"github.com/visitra-hq/visitra/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)
	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:              t.ID(),
		Number:          t.Number(),
		Category:        t.Category().String(),
		Subject:         t.Subject(),
		Description:     t.Description(),
		Status:          t.Status().String(),
		CreatorID:       t.CreatorID(),
		HostID:          t.HostID(),
		AssigneeID:      t.AssigneeID(),
		Resolution:      t.Resolution(),
		RejectionReason: t.RejectionReason(),
		CreatedAt:       t.CreatedAt().UnixMilli(),
		UpdatedAt:       t.UpdatedAt().UnixMilli(),
	}

	if t.ResolvedAt() != nil {
		resolved := t.ResolvedAt().UnixMilli()
		model.ResolvedAt = &resolved
	}

	if t.ClosedAt() != nil {
		closed := t.ClosedAt().UnixMilli()
		model.ClosedAt = &closed
	}

	return model
}

// ToDomain converts a ticket persistence model to a domain entity. Comments
// must be loaded separately by the repository.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	category, err := vo.NewCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid stored category (id=%d): %w", model.ID, err)
	}
	status, err := vo.NewStatus(model.Status, category)
	if err != nil {
		return nil, fmt.Errorf("invalid stored status (id=%d): %w", model.ID, err)
	}

	var resolvedAt, closedAt *time.Time
	if model.ResolvedAt != nil {
		t := millisToTime(*model.ResolvedAt)
		resolvedAt = &t
	}
	if model.ClosedAt != nil {
		t := millisToTime(*model.ClosedAt)
		closedAt = &t
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Number,
		category,
		model.Subject,
		model.Description,
		status,
		model.CreatorID,
		model.HostID,
		model.AssigneeID,
		model.Resolution,
		model.RejectionReason,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
		resolvedAt,
		closedAt,
	)
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		AuthorID:   c.AuthorID(),
		Content:    c.Content(),
		IsInternal: c.IsInternal(),
		CreatedAt:  c.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.AuthorID,
		model.Content,
		model.IsInternal,
		millisToTime(model.CreatedAt),
	)
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:         a.ID(),
		TicketID:   a.TicketID(),
		FileName:   a.FileName(),
		StorageKey: a.StorageKey(),
		Size:       a.Size(),
		MIMEType:   a.MIMEType(),
		UploaderID: a.UploaderID(),
		CreatedAt:  a.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.FileName,
		model.StorageKey,
		model.Size,
		model.MIMEType,
		model.UploaderID,
		millisToTime(model.CreatedAt),
	)
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
