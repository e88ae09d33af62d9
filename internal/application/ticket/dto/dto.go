package dto

import (
	"time"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
)

// TicketDTO is the read model returned by get/list operations. Comments are
// already visibility-filtered for the requesting viewer.
type TicketDTO struct {
	ID              uint         `json:"id"`
	Number          string       `json:"number"`
	Category        string       `json:"category"`
	Subject         string       `json:"subject"`
	Description     string       `json:"description"`
	Status          string       `json:"status"`
	CreatorID       uint         `json:"creator_id"`
	HostID          *uint        `json:"host_id,omitempty"`
	AssigneeID      *uint        `json:"assignee_id,omitempty"`
	Resolution      string       `json:"resolution,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	ResolvedAt      *time.Time   `json:"resolved_at,omitempty"`
	ClosedAt        *time.Time   `json:"closed_at,omitempty"`
	Comments        []CommentDTO `json:"comments,omitempty"`
}

type CommentDTO struct {
	ID         uint      `json:"id"`
	TicketID   uint      `json:"ticket_id"`
	AuthorID   uint      `json:"author_id"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

type AttachmentDTO struct {
	ID         uint      `json:"id"`
	TicketID   uint      `json:"ticket_id"`
	FileName   string    `json:"file_name"`
	Size       int64     `json:"size"`
	MIMEType   string    `json:"mime_type"`
	UploaderID uint      `json:"uploader_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromTicket builds a DTO for the viewer, applying comment visibility.
func FromTicket(t *ticket.Ticket, viewerID uint, role authorization.UserRole) TicketDTO {
	visible := t.VisibleCommentsFor(viewerID, role)
	comments := make([]CommentDTO, len(visible))
	for i, c := range visible {
		comments[i] = FromComment(c)
	}

	return TicketDTO{
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
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
		ResolvedAt:      t.ResolvedAt(),
		ClosedAt:        t.ClosedAt(),
		Comments:        comments,
	}
}

// FromTicketSummary builds a DTO without comments, for list responses.
func FromTicketSummary(t *ticket.Ticket) TicketDTO {
	return TicketDTO{
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
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
		ResolvedAt:      t.ResolvedAt(),
		ClosedAt:        t.ClosedAt(),
	}
}

func FromComment(c *ticket.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		AuthorID:   c.AuthorID(),
		Content:    c.Content(),
		IsInternal: c.IsInternal(),
		CreatedAt:  c.CreatedAt(),
	}
}

func FromAttachment(a *ticket.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:         a.ID(),
		TicketID:   a.TicketID(),
		FileName:   a.FileName(),
		Size:       a.Size(),
		MIMEType:   a.MIMEType(),
		UploaderID: a.UploaderID(),
		CreatedAt:  a.CreatedAt(),
	}
}
