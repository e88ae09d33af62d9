package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	"github.com/visitra-hq/visitra/internal/domain/user"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	apperrors "github.com/visitra-hq/visitra/internal/shared/errors"
)

func TestCreateTicketUseCase_Execute_Success(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		wantNumber string
		wantStatus string
	}{
		{
			name:       "complaint starts open with CMP number",
			category:   "complaint",
			wantNumber: "CMP-0001",
			wantStatus: "open",
		},
		{
			name:       "suggestion starts submitted with SGT number",
			category:   "suggestion",
			wantNumber: "SGT-0001",
			wantStatus: "submitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *ticket.Ticket
			ticketRepo := &mockTicketRepository{
				SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
					saved = tk
					return tk.SetID(42)
				},
			}
			userRepo := &mockUserRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
					return newTestUser(t, id, authorization.RoleUser), nil
				},
			}
			notifier := &mockNotifier{}

			uc := NewCreateTicketUseCase(
				ticketRepo, userRepo,
				&mockNumberAllocator{},
				&mockTransactionRunner{},
				&mockSanitizer{},
				notifier,
				&mockLogger{},
			)

			result, err := uc.Execute(context.Background(), CreateTicketCommand{
				Category:    tt.category,
				Subject:     "test subject",
				Description: "test description",
				CreatorID:   7,
			})

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, uint(42), result.TicketID)
			assert.Equal(t, tt.wantNumber, result.Number)
			assert.Equal(t, tt.wantStatus, result.Status)

			require.NotNil(t, saved)
			assert.Equal(t, tt.wantNumber, saved.Number())

			require.Len(t, notifier.CreatedEvents, 1)
			assert.Equal(t, tt.wantNumber, notifier.CreatedEvents[0].Number)
			assert.Equal(t, uint(7), notifier.CreatedEvents[0].CreatorID)
		})
	}
}

func TestCreateTicketUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		cmd      CreateTicketCommand
		wantType apperrors.ErrorType
	}{
		{
			name: "invalid category",
			cmd: CreateTicketCommand{
				Category:    "complaints",
				Subject:     "subject",
				Description: "description",
				CreatorID:   7,
			},
			wantType: apperrors.ErrorTypeValidation,
		},
		{
			name: "missing creator",
			cmd: CreateTicketCommand{
				Category:    "complaint",
				Subject:     "subject",
				Description: "description",
			},
			wantType: apperrors.ErrorTypeValidation,
		},
		{
			name: "missing subject",
			cmd: CreateTicketCommand{
				Category:    "complaint",
				Description: "description",
				CreatorID:   7,
			},
			wantType: apperrors.ErrorTypeValidation,
		},
		{
			name: "missing description",
			cmd: CreateTicketCommand{
				Category:  "suggestion",
				Subject:   "subject",
				CreatorID: 7,
			},
			wantType: apperrors.ErrorTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
					return newTestUser(t, id, authorization.RoleUser), nil
				},
			}

			uc := NewCreateTicketUseCase(
				&mockTicketRepository{}, userRepo,
				&mockNumberAllocator{},
				&mockTransactionRunner{},
				&mockSanitizer{},
				&mockNotifier{},
				&mockLogger{},
			)

			result, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestCreateTicketUseCase_Execute_CreatorNotFound(t *testing.T) {
	userRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return nil, errors.New("record not found")
		},
	}

	uc := NewCreateTicketUseCase(
		&mockTicketRepository{}, userRepo,
		&mockNumberAllocator{},
		&mockTransactionRunner{},
		&mockSanitizer{},
		&mockNotifier{},
		&mockLogger{},
	)

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Category:    "complaint",
		Subject:     "subject",
		Description: "description",
		CreatorID:   99,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCreateTicketUseCase_Execute_HostIDSnapshot(t *testing.T) {
	var saved *ticket.Ticket
	ticketRepo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			saved = tk
			return tk.SetID(1)
		},
	}
	userRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return user.ReconstructUser(id, "host@example.com", "Hosted User", authorization.RoleUser, uintPtr(12))
		},
	}

	uc := NewCreateTicketUseCase(
		ticketRepo, userRepo,
		&mockNumberAllocator{},
		&mockTransactionRunner{},
		&mockSanitizer{},
		&mockNotifier{},
		&mockLogger{},
	)

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Category:    "complaint",
		Subject:     "subject",
		Description: "description",
		CreatorID:   7,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	require.NotNil(t, saved.HostID())
	assert.Equal(t, uint(12), *saved.HostID())
}

func TestCreateTicketUseCase_Execute_AllocationFailureRollsBack(t *testing.T) {
	saveCalled := false
	ticketRepo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			saveCalled = true
			return nil
		},
	}
	userRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return newTestUser(t, id, authorization.RoleUser), nil
		},
	}
	uc := NewCreateTicketUseCase(
		ticketRepo, userRepo,
		&mockNumberAllocator{},
		&mockTransactionRunner{
			RunFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
				return errors.New("tx rolled back")
			},
		},
		&mockSanitizer{},
		&mockNotifier{},
		&mockLogger{},
	)

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Category:    "complaint",
		Subject:     "subject",
		Description: "description",
		CreatorID:   7,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.False(t, saveCalled)
}

func TestCreateTicketUseCase_Execute_SanitizesInput(t *testing.T) {
	var saved *ticket.Ticket
	ticketRepo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			saved = tk
			return tk.SetID(1)
		},
	}
	userRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return newTestUser(t, id, authorization.RoleUser), nil
		},
	}

	uc := NewCreateTicketUseCase(
		ticketRepo, userRepo,
		&mockNumberAllocator{},
		&mockTransactionRunner{},
		&mockSanitizer{
			SanitizeFunc: func(s string) string { return "clean" },
		},
		&mockNotifier{},
		&mockLogger{},
	)

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Category:    "complaint",
		Subject:     "<script>bad</script>",
		Description: "<img src=x>",
		CreatorID:   7,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "clean", saved.Subject())
	assert.Equal(t, "clean", saved.Description())
}
