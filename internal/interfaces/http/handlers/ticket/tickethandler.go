package ticket

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/visitra-hq/visitra/internal/application/ticket/usecases"
	"github.com/visitra-hq/visitra/internal/interfaces/http/middleware"
	"github.com/visitra-hq/visitra/internal/shared/errors"
	"github.com/visitra-hq/visitra/internal/shared/logger"
	"github.com/visitra-hq/visitra/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC   usecases.CreateTicketExecutor
	updateTicketUC   usecases.UpdateTicketExecutor
	reopenTicketUC   usecases.ReopenTicketExecutor
	addCommentUC     usecases.AddCommentExecutor
	addAttachmentUC  usecases.AddAttachmentExecutor
	getAttachmentUC  usecases.GetAttachmentExecutor
	getTicketUC      usecases.GetTicketExecutor
	listTicketsUC    usecases.ListTicketsExecutor
	getTicketStatsUC usecases.GetTicketStatsExecutor
	logger           logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	reopenTicketUC usecases.ReopenTicketExecutor,
	addCommentUC usecases.AddCommentExecutor,
	addAttachmentUC usecases.AddAttachmentExecutor,
	getAttachmentUC usecases.GetAttachmentExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketStatsUC usecases.GetTicketStatsExecutor,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:   createTicketUC,
		updateTicketUC:   updateTicketUC,
		reopenTicketUC:   reopenTicketUC,
		addCommentUC:     addCommentUC,
		addAttachmentUC:  addAttachmentUC,
		getAttachmentUC:  getAttachmentUC,
		getTicketUC:      getTicketUC,
		listTicketsUC:    listTicketsUC,
		getTicketStatsUC: getTicketStatsUC,
		logger:           logger.NewLogger(),
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := req.ToCommand(middleware.UserIDFromContext(c))

	result, err := h.createTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetTicketQuery{
		TicketID:   ticketID,
		ViewerID:   middleware.UserIDFromContext(c),
		ViewerRole: middleware.RoleFromContext(c),
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	req, err := parseListTicketsRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := req.ToQuery(middleware.UserIDFromContext(c), middleware.RoleFromContext(c))

	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// UpdateTicket handles PATCH /tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := req.ToCommand(ticketID, middleware.UserIDFromContext(c), middleware.RoleFromContext(c))

	result, err := h.updateTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// ReopenTicket handles POST /tickets/:id/reopen
func (h *TicketHandler) ReopenTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReopenTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ReopenTicketCommand{
		TicketID:    ticketID,
		Comment:     req.Comment,
		RequesterID: middleware.UserIDFromContext(c),
	}

	result, err := h.reopenTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket reopened successfully", result)
}

// AddComment handles POST /tickets/:id/comments
func (h *TicketHandler) AddComment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.AddCommentCommand{
		TicketID:   ticketID,
		Message:    req.Message,
		IsInternal: req.IsInternal,
		AuthorID:   middleware.UserIDFromContext(c),
		AuthorRole: middleware.RoleFromContext(c),
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// AddAttachment handles POST /tickets/:id/attachments
func (h *TicketHandler) AddAttachment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("attachment file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("failed to read attachment file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("failed to read attachment file"))
		return
	}

	cmd := usecases.AddAttachmentCommand{
		TicketID:     ticketID,
		FileName:     fileHeader.Filename,
		MIMEType:     fileHeader.Header.Get("Content-Type"),
		Data:         data,
		UploaderID:   middleware.UserIDFromContext(c),
		UploaderRole: middleware.RoleFromContext(c),
	}

	result, err := h.addAttachmentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachment uploaded successfully")
}

// GetAttachment handles GET /tickets/:id/attachments/:attachment_id
func (h *TicketHandler) GetAttachment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	attachmentID, err := parseUintParam(c, "attachment_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetAttachmentQuery{
		TicketID:     ticketID,
		AttachmentID: attachmentID,
		ViewerID:     middleware.UserIDFromContext(c),
		ViewerRole:   middleware.RoleFromContext(c),
	}

	stream, err := h.getAttachmentUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer stream.Stream.Close()

	c.Header("Content-Disposition", `attachment; filename="`+stream.FileName+`"`)
	c.DataFromReader(http.StatusOK, stream.Size, stream.MIMEType, stream.Stream, nil)
}

// GetTicketStats handles GET /tickets/stats
func (h *TicketHandler) GetTicketStats(c *gin.Context) {
	query := usecases.GetTicketStatsQuery{
		ViewerRole: middleware.RoleFromContext(c),
	}

	if category := c.Query("category"); category != "" {
		query.Category = &category
	}

	result, err := h.getTicketStatsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func parseTicketID(c *gin.Context) (uint, error) {
	return parseUintParam(c, "id")
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}
