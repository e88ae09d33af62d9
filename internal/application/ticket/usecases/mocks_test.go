package usecases

import (
	"context"
	"io"
	"time"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	"github.com/visitra-hq/visitra/internal/domain/user"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc               func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc             func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc            func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	GetByNumberFunc        func(ctx context.Context, number string) (*ticket.Ticket, error)
	ListFunc               func(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error)
	ListResolvedBeforeFunc func(ctx context.Context, category vo.Category, cutoff time.Time) ([]*ticket.Ticket, error)
	CountByStatusFunc      func(ctx context.Context, category *vo.Category) (map[string]int64, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) ListResolvedBefore(ctx context.Context, category vo.Category, cutoff time.Time) ([]*ticket.Ticket, error) {
	if m.ListResolvedBeforeFunc != nil {
		return m.ListResolvedBeforeFunc(ctx, category, cutoff)
	}
	return nil, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context, category *vo.Category) (map[string]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, category)
	}
	return nil, nil
}

type mockCommentRepository struct {
	SaveFunc          func(ctx context.Context, comment *ticket.Comment) error
	GetByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
}

func (m *mockCommentRepository) Save(ctx context.Context, comment *ticket.Comment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockAttachmentRepository struct {
	SaveFunc            func(ctx context.Context, attachment *ticket.Attachment) error
	GetByIDFunc         func(ctx context.Context, attachmentID uint) (*ticket.Attachment, error)
	GetByTicketIDFunc   func(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error)
	CountByTicketIDFunc func(ctx context.Context, ticketID uint) (int64, error)
}

func (m *mockAttachmentRepository) Save(ctx context.Context, attachment *ticket.Attachment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, attachment)
	}
	return nil
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, attachmentID uint) (*ticket.Attachment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, attachmentID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) CountByTicketID(ctx context.Context, ticketID uint) (int64, error) {
	if m.CountByTicketIDFunc != nil {
		return m.CountByTicketIDFunc(ctx, ticketID)
	}
	return 0, nil
}

type mockUserRepository struct {
	GetByIDFunc    func(ctx context.Context, id uint) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	ExistsFunc     func(ctx context.Context, id uint) (bool, error)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

type mockNumberAllocator struct {
	NextNumberFunc func(ctx context.Context, category vo.Category) (string, error)
}

func (m *mockNumberAllocator) NextNumber(ctx context.Context, category vo.Category) (string, error) {
	if m.NextNumberFunc != nil {
		return m.NextNumberFunc(ctx, category)
	}
	return ticket.FormatNumber(category, 1), nil
}

// mockTransactionRunner runs the function inline unless overridden.
type mockTransactionRunner struct {
	RunFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, fn)
	}
	return fn(ctx)
}

// mockSanitizer passes text through unless overridden.
type mockSanitizer struct {
	SanitizeFunc func(s string) string
}

func (m *mockSanitizer) Sanitize(s string) string {
	if m.SanitizeFunc != nil {
		return m.SanitizeFunc(s)
	}
	return s
}

// mockNotifier records every event it receives.
type mockNotifier struct {
	CreatedEvents  []ticket.CreatedEvent
	StatusEvents   []ticket.StatusChangedEvent
	AssignedEvents []ticket.AssignedEvent
	ReopenedEvents []ticket.ReopenedEvent
	CommentEvents  []ticket.CommentAddedEvent
}

func (m *mockNotifier) TicketCreated(event ticket.CreatedEvent) {
	m.CreatedEvents = append(m.CreatedEvents, event)
}

func (m *mockNotifier) StatusChanged(event ticket.StatusChangedEvent) {
	m.StatusEvents = append(m.StatusEvents, event)
}

func (m *mockNotifier) TicketAssigned(event ticket.AssignedEvent) {
	m.AssignedEvents = append(m.AssignedEvents, event)
}

func (m *mockNotifier) TicketReopened(event ticket.ReopenedEvent) {
	m.ReopenedEvents = append(m.ReopenedEvents, event)
}

func (m *mockNotifier) CommentAdded(event ticket.CommentAddedEvent) {
	m.CommentEvents = append(m.CommentEvents, event)
}

type mockBlobStore struct {
	GenerateKeyFunc func(originalName string) string
	PutFunc         func(ctx context.Context, key string, data []byte) error
	GetFunc         func(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteFunc      func(ctx context.Context, key string) error

	PutKeys    []string
	DeleteKeys []string
}

func (m *mockBlobStore) GenerateKey(originalName string) string {
	if m.GenerateKeyFunc != nil {
		return m.GenerateKeyFunc(originalName)
	}
	return "blob/" + originalName
}

func (m *mockBlobStore) Put(ctx context.Context, key string, data []byte) error {
	m.PutKeys = append(m.PutKeys, key)
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, data)
	}
	return nil
}

func (m *mockBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	m.DeleteKeys = append(m.DeleteKeys, key)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
