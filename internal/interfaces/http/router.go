package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/visitra-hq/visitra/internal/application/ticket/usecases"
	"github.com/visitra-hq/visitra/internal/infrastructure/auth"
	"github.com/visitra-hq/visitra/internal/infrastructure/config"
	"github.com/visitra-hq/visitra/internal/infrastructure/email"
	"github.com/visitra-hq/visitra/internal/infrastructure/notification"
	"github.com/visitra-hq/visitra/internal/infrastructure/ratelimit"
	"github.com/visitra-hq/visitra/internal/infrastructure/repository"
	"github.com/visitra-hq/visitra/internal/infrastructure/services"
	"github.com/visitra-hq/visitra/internal/infrastructure/storage"
	tickethandlers "github.com/visitra-hq/visitra/internal/interfaces/http/handlers/ticket"
	"github.com/visitra-hq/visitra/internal/interfaces/http/middleware"
	"github.com/visitra-hq/visitra/internal/interfaces/http/routes"
	sharedDB "github.com/visitra-hq/visitra/internal/shared/db"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

// Router wires the ticket service's HTTP surface.
type Router struct {
	engine         *gin.Engine
	ticketHandler  *tickethandlers.TicketHandler
	authMiddleware *middleware.AuthMiddleware
	submitLimiter  *middleware.SubmitLimiter
	autoCloseUC    *usecases.AutoCloseUseCase
	logger         logger.Interface
}

// NewRouter builds the full dependency graph: repositories, domain services,
// use cases, handlers and middleware.
func NewRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log logger.Interface) (*Router, error) {
	engine := gin.New()

	ticketRepo := repository.NewTicketRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	txManager := sharedDB.NewTransactionManager(db)
	allocator := services.NewTicketNumberAllocator(db)
	sanitizer := services.NewTextSanitizer()

	blobStore, err := storage.NewLocalBlobStore(cfg.Storage.BasePath)
	if err != nil {
		return nil, err
	}

	emailService := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		BaseURL:     cfg.Server.BaseURL,
	})
	notifier := notification.NewEmailNotifier(ticketRepo, userRepo, emailService, log)

	policy := usecases.AttachmentPolicy{
		MaxPerTicket: cfg.Ticket.MaxAttachmentsPerTicket,
		MaxBytes:     cfg.Ticket.MaxAttachmentBytes,
		AllowedTypes: cfg.Ticket.AllowedAttachmentTypes,
	}

	createTicketUC := usecases.NewCreateTicketUseCase(ticketRepo, userRepo, allocator, txManager, sanitizer, notifier, log)
	updateTicketUC := usecases.NewUpdateTicketUseCase(ticketRepo, userRepo, notifier, log)
	reopenTicketUC := usecases.NewReopenTicketUseCase(ticketRepo, commentRepo, txManager, sanitizer, notifier, log)
	addCommentUC := usecases.NewAddCommentUseCase(ticketRepo, commentRepo, sanitizer, notifier, log)
	addAttachmentUC := usecases.NewAddAttachmentUseCase(ticketRepo, attachmentRepo, userRepo, blobStore, policy, log)
	getAttachmentUC := usecases.NewGetAttachmentUseCase(ticketRepo, attachmentRepo, blobStore, log)
	getTicketUC := usecases.NewGetTicketUseCase(ticketRepo, log)
	listTicketsUC := usecases.NewListTicketsUseCase(ticketRepo, log)
	getTicketStatsUC := usecases.NewGetTicketStatsUseCase(ticketRepo, log)
	autoCloseUC := usecases.NewAutoCloseUseCase(ticketRepo, notifier, cfg.Ticket.AutoCloseAfterDays, log)

	ticketHandler := tickethandlers.NewTicketHandler(
		createTicketUC, updateTicketUC, reopenTicketUC,
		addCommentUC, addAttachmentUC, getAttachmentUC,
		getTicketUC, listTicketsUC, getTicketStatsUC,
	)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	rateLimiter := ratelimit.NewRedisSubmitLimiter(redisClient, ratelimit.SubmitLimitConfig{
		PerMinute: 5,
		PerHour:   30,
		PerDay:    100,
	})
	submitLimiter := middleware.NewSubmitLimiter(rateLimiter, log)

	return &Router{
		engine:         engine,
		ticketHandler:  ticketHandler,
		authMiddleware: authMiddleware,
		submitLimiter:  submitLimiter,
		autoCloseUC:    autoCloseUC,
		logger:         log,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:  r.ticketHandler,
		AuthMiddleware: r.authMiddleware,
		SubmitLimiter:  r.submitLimiter,
	})
}

// AutoCloseUseCase exposes the sweep for the scheduler.
func (r *Router) AutoCloseUseCase() *usecases.AutoCloseUseCase {
	return r.autoCloseUC
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
