package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/visitra-hq/visitra/internal/interfaces/http/handlers/ticket"
	"github.com/visitra-hq/visitra/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	AuthMiddleware *middleware.AuthMiddleware
	SubmitLimiter  *middleware.SubmitLimiter
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		tickets.POST("",
			config.SubmitLimiter.Limit(),
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)
		tickets.GET("/stats",
			config.AuthMiddleware.RequirePrivileged(),
			config.TicketHandler.GetTicketStats)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		tickets.POST("/:id/reopen",
			config.TicketHandler.ReopenTicket)
		tickets.POST("/:id/comments",
			config.TicketHandler.AddComment)
		tickets.POST("/:id/attachments",
			config.TicketHandler.AddAttachment)
		tickets.GET("/:id/attachments/:attachment_id",
			config.TicketHandler.GetAttachment)

		// Generic parameterized routes (must come LAST)
		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
		// Status changes and assignment share PATCH; the body decides which.
		tickets.PATCH("/:id",
			config.AuthMiddleware.RequirePrivileged(),
			config.TicketHandler.UpdateTicket)
	}
}
