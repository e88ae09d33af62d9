package ticket

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/visitra-hq/visitra/internal/application/ticket/usecases"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	"github.com/visitra-hq/visitra/internal/shared/errors"
)

type CreateTicketRequest struct {
	Category    string `json:"category" binding:"required"`
	Subject     string `json:"subject" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
}

func (r *CreateTicketRequest) ToCommand(creatorID uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Category:    r.Category,
		Subject:     r.Subject,
		Description: r.Description,
		CreatorID:   creatorID,
	}
}

// UpdateTicketRequest covers status changes and assignment. ExpectedUpdatedAt
// carries the caller's last-seen change timestamp; when present the update
// is rejected with a conflict if the ticket changed in the meantime.
type UpdateTicketRequest struct {
	Status            *string    `json:"status,omitempty"`
	AssigneeID        *uint      `json:"assignee_id,omitempty"`
	Resolution        string     `json:"resolution,omitempty" binding:"max=5000"`
	RejectionReason   string     `json:"rejection_reason,omitempty" binding:"max=5000"`
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

func (r *UpdateTicketRequest) ToCommand(ticketID, updatedBy uint, role authorization.UserRole) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		TicketID:          ticketID,
		Status:            r.Status,
		AssigneeID:        r.AssigneeID,
		Resolution:        r.Resolution,
		RejectionReason:   r.RejectionReason,
		ExpectedUpdatedAt: r.ExpectedUpdatedAt,
		UpdatedBy:         updatedBy,
		UpdaterRole:       role,
	}
}

type ReopenTicketRequest struct {
	Comment string `json:"comment" binding:"required,max=5000"`
}

type AddCommentRequest struct {
	Message    string `json:"message" binding:"required,max=5000"`
	IsInternal bool   `json:"is_internal"`
}

type ListTicketsRequest struct {
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
	Status     *string
	Category   *string
	AssigneeID *uint
	HostID     *uint
}

func (r *ListTicketsRequest) ToQuery(viewerID uint, role authorization.UserRole) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Status:     r.Status,
		Category:   r.Category,
		AssigneeID: r.AssigneeID,
		HostID:     r.HostID,
		Page:       r.Page,
		PageSize:   r.PageSize,
		SortBy:     r.SortBy,
		SortOrder:  r.SortOrder,
		ViewerID:   viewerID,
		ViewerRole: role,
	}
}

func parseListTicketsRequest(c *gin.Context) (*ListTicketsRequest, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	req := &ListTicketsRequest{
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if status := c.Query("status"); status != "" {
		req.Status = &status
	}

	if category := c.Query("category"); category != "" {
		req.Category = &category
	}

	if assigneeIDStr := c.Query("assignee_id"); assigneeIDStr != "" {
		assigneeID, err := strconv.ParseUint(assigneeIDStr, 10, 32)
		if err != nil {
			return nil, errors.NewValidationError("Invalid assignee_id")
		}
		id := uint(assigneeID)
		req.AssigneeID = &id
	}

	if hostIDStr := c.Query("host_id"); hostIDStr != "" {
		hostID, err := strconv.ParseUint(hostIDStr, 10, 32)
		if err != nil {
			return nil, errors.NewValidationError("Invalid host_id")
		}
		id := uint(hostID)
		req.HostID = &id
	}

	return req, nil
}
