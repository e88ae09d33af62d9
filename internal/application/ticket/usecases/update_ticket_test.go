package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	"github.com/visitra-hq/visitra/internal/domain/user"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	apperrors "github.com/visitra-hq/visitra/internal/shared/errors"
)

func newUpdateUseCase(t *testing.T, ticketRepo *mockTicketRepository, userRepo *mockUserRepository, notifier *mockNotifier) *UpdateTicketUseCase {
	t.Helper()
	if userRepo == nil {
		userRepo = &mockUserRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
				return newTestUser(t, id, authorization.RoleAgent), nil
			},
		}
	}
	if notifier == nil {
		notifier = &mockNotifier{}
	}
	return NewUpdateTicketUseCase(ticketRepo, userRepo, notifier, &mockLogger{})
}

func TestUpdateTicketUseCase_Execute_StatusTransitions(t *testing.T) {
	tests := []struct {
		name       string
		current    vo.Status
		next       string
		resolution string
		reason     string
	}{
		{name: "open to in_progress", current: vo.StatusOpen, next: "in_progress"},
		{name: "open to rejected", current: vo.StatusOpen, next: "rejected", reason: "duplicate report"},
		{name: "in_progress to resolved", current: vo.StatusInProgress, next: "resolved", resolution: "replaced the scanner"},
		{name: "in_progress to rejected", current: vo.StatusInProgress, next: "rejected", reason: "cannot reproduce"},
		{name: "resolved to closed", current: vo.StatusResolved, next: "closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := newTestComplaint(t, 1, tt.current, 7)
			ticketRepo := &mockTicketRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
					return existing, nil
				},
			}
			notifier := &mockNotifier{}
			uc := newUpdateUseCase(t, ticketRepo, nil, notifier)

			result, err := uc.Execute(context.Background(), UpdateTicketCommand{
				TicketID:        1,
				Status:          strPtr(tt.next),
				Resolution:      tt.resolution,
				RejectionReason: tt.reason,
				UpdatedBy:       5,
				UpdaterRole:     authorization.RoleAgent,
			})

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.next, result.Status)

			require.Len(t, notifier.StatusEvents, 1)
			assert.Equal(t, tt.current.String(), notifier.StatusEvents[0].OldStatus)
			assert.Equal(t, tt.next, notifier.StatusEvents[0].NewStatus)
		})
	}
}

func TestUpdateTicketUseCase_Execute_SuggestionTransitions(t *testing.T) {
	tests := []struct {
		name string
		next string
	}{
		{name: "submitted to reviewed", next: "reviewed"},
		{name: "submitted to dismissed", next: "dismissed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := newTestSuggestion(t, 2, vo.StatusSubmitted, 7)
			ticketRepo := &mockTicketRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
					return existing, nil
				},
			}
			uc := newUpdateUseCase(t, ticketRepo, nil, nil)

			result, err := uc.Execute(context.Background(), UpdateTicketCommand{
				TicketID:    2,
				Status:      strPtr(tt.next),
				UpdatedBy:   5,
				UpdaterRole: authorization.RoleAdmin,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.next, result.Status)
		})
	}
}

func TestUpdateTicketUseCase_Execute_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current vo.Status
		next    string
	}{
		{name: "open to resolved skips in_progress", current: vo.StatusOpen, next: "resolved"},
		{name: "open to closed", current: vo.StatusOpen, next: "closed"},
		{name: "closed is terminal", current: vo.StatusClosed, next: "open"},
		{name: "rejected is terminal", current: vo.StatusRejected, next: "in_progress"},
		{name: "suggestion status on complaint", current: vo.StatusOpen, next: "reviewed"},
		{name: "unknown status", current: vo.StatusOpen, next: "archived"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := newTestComplaint(t, 1, tt.current, 7)
			ticketRepo := &mockTicketRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
					return existing, nil
				},
				UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
					t.Fatal("Update must not be called for an invalid transition")
					return nil
				},
			}
			uc := newUpdateUseCase(t, ticketRepo, nil, nil)

			result, err := uc.Execute(context.Background(), UpdateTicketCommand{
				TicketID:    1,
				Status:      strPtr(tt.next),
				Resolution:  "anything",
				UpdatedBy:   5,
				UpdaterRole: authorization.RoleAgent,
			})

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition), "got %v", err)
			assert.Equal(t, tt.current, existing.Status())
		})
	}
}

func TestUpdateTicketUseCase_Execute_ResolvedToOpenRequiresReopen(t *testing.T) {
	existing := newTestComplaint(t, 1, vo.StatusResolved, 7)
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	uc := newUpdateUseCase(t, ticketRepo, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:    1,
		Status:      strPtr("open"),
		UpdatedBy:   5,
		UpdaterRole: authorization.RoleAgent,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePreconditionFailed), "got %v", err)
	assert.Equal(t, vo.StatusResolved, existing.Status())
}

func TestUpdateTicketUseCase_Execute_ResolutionAndReasonRequired(t *testing.T) {
	tests := []struct {
		name    string
		current vo.Status
		next    string
	}{
		{name: "resolve without resolution", current: vo.StatusInProgress, next: "resolved"},
		{name: "reject without reason", current: vo.StatusOpen, next: "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := newTestComplaint(t, 1, tt.current, 7)
			ticketRepo := &mockTicketRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
					return existing, nil
				},
			}
			uc := newUpdateUseCase(t, ticketRepo, nil, nil)

			_, err := uc.Execute(context.Background(), UpdateTicketCommand{
				TicketID:    1,
				Status:      strPtr(tt.next),
				UpdatedBy:   5,
				UpdaterRole: authorization.RoleAgent,
			})

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePreconditionFailed), "got %v", err)
			assert.Equal(t, tt.current, existing.Status())
		})
	}
}

func TestUpdateTicketUseCase_Execute_ResolvedStampsTimestamp(t *testing.T) {
	existing := newTestComplaint(t, 1, vo.StatusInProgress, 7)
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	uc := newUpdateUseCase(t, ticketRepo, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:    1,
		Status:      strPtr("resolved"),
		Resolution:  "swapped the badge reader",
		UpdatedBy:   5,
		UpdaterRole: authorization.RoleAgent,
	})

	require.NoError(t, err)
	require.NotNil(t, result.ResolvedAt)
	assert.Equal(t, "swapped the badge reader", result.Resolution)
	assert.Equal(t, result.UpdatedAt, *result.ResolvedAt)
}

func TestUpdateTicketUseCase_Execute_StaleTimestampRejected(t *testing.T) {
	existing := newTestComplaint(t, 1, vo.StatusOpen, 7)
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			t.Fatal("Update must not be called for a stale request")
			return nil
		},
	}
	uc := newUpdateUseCase(t, ticketRepo, nil, nil)

	stale := existing.UpdatedAt().Add(-time.Minute)
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:          1,
		Status:            strPtr("in_progress"),
		ExpectedUpdatedAt: &stale,
		UpdatedBy:         5,
		UpdaterRole:       authorization.RoleAgent,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict), "got %v", err)
	assert.Equal(t, vo.StatusOpen, existing.Status())
}

func TestUpdateTicketUseCase_Execute_MatchingTimestampAccepted(t *testing.T) {
	existing := newTestComplaint(t, 1, vo.StatusOpen, 7)
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	uc := newUpdateUseCase(t, ticketRepo, nil, nil)

	// Echo the stored timestamp with sub-millisecond noise; storage holds
	// millis, so the comparison must still match.
	expected := existing.UpdatedAt().Add(300 * time.Microsecond)
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:          1,
		Status:            strPtr("in_progress"),
		ExpectedUpdatedAt: &expected,
		UpdatedBy:         5,
		UpdaterRole:       authorization.RoleAgent,
	})

	require.NoError(t, err)
	assert.Equal(t, "in_progress", result.Status)
}

func TestUpdateTicketUseCase_Execute_NoTimestampIsLastWriteWins(t *testing.T) {
	existing := newTestComplaint(t, 1, vo.StatusOpen, 7)
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	uc := newUpdateUseCase(t, ticketRepo, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:    1,
		Status:      strPtr("in_progress"),
		UpdatedBy:   5,
		UpdaterRole: authorization.RoleAgent,
	})

	require.NoError(t, err)
	assert.Equal(t, "in_progress", result.Status)
}

func TestUpdateTicketUseCase_Execute_Assignment(t *testing.T) {
	existing := newTestComplaint(t, 1, vo.StatusOpen, 7)
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	userRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return newTestUser(t, id, authorization.RoleAgent), nil
		},
	}
	notifier := &mockNotifier{}
	uc := newUpdateUseCase(t, ticketRepo, userRepo, notifier)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:    1,
		AssigneeID:  uintPtr(9),
		UpdatedBy:   5,
		UpdaterRole: authorization.RoleAdmin,
	})

	require.NoError(t, err)
	require.NotNil(t, result.AssigneeID)
	assert.Equal(t, uint(9), *result.AssigneeID)

	require.Len(t, notifier.AssignedEvents, 1)
	assert.Equal(t, uint(9), notifier.AssignedEvents[0].AssigneeID)
	assert.Empty(t, notifier.StatusEvents)
}

func TestUpdateTicketUseCase_Execute_AssignmentRules(t *testing.T) {
	tests := []struct {
		name     string
		ticket   func(t *testing.T) *ticket.Ticket
		assignee func(ctx context.Context, id uint) (*user.User, error)
		wantType apperrors.ErrorType
	}{
		{
			name:   "suggestions cannot be assigned",
			ticket: func(t *testing.T) *ticket.Ticket { return newTestSuggestion(t, 2, vo.StatusSubmitted, 7) },
			assignee: func(ctx context.Context, id uint) (*user.User, error) {
				// Even a nonexistent assignee must not matter for suggestions.
				return nil, errors.New("record not found")
			},
			wantType: apperrors.ErrorTypePreconditionFailed,
		},
		{
			name:   "assignee not found",
			ticket: func(t *testing.T) *ticket.Ticket { return newTestComplaint(t, 1, vo.StatusOpen, 7) },
			assignee: func(ctx context.Context, id uint) (*user.User, error) {
				return nil, errors.New("record not found")
			},
			wantType: apperrors.ErrorTypeNotFound,
		},
		{
			name:   "assignee must be privileged",
			ticket: func(t *testing.T) *ticket.Ticket { return newTestComplaint(t, 1, vo.StatusOpen, 7) },
			assignee: func(ctx context.Context, id uint) (*user.User, error) {
				return newTestUser(t, id, authorization.RoleUser), nil
			},
			wantType: apperrors.ErrorTypePreconditionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := tt.ticket(t)
			ticketRepo := &mockTicketRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
					return existing, nil
				},
			}
			userRepo := &mockUserRepository{GetByIDFunc: tt.assignee}
			uc := newUpdateUseCase(t, ticketRepo, userRepo, nil)

			result, err := uc.Execute(context.Background(), UpdateTicketCommand{
				TicketID:    existing.ID(),
				AssigneeID:  uintPtr(9),
				UpdatedBy:   5,
				UpdaterRole: authorization.RoleAdmin,
			})

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
			assert.Nil(t, existing.AssigneeID())
		})
	}
}

func TestUpdateTicketUseCase_Execute_NonPrivilegedForbidden(t *testing.T) {
	uc := newUpdateUseCase(t, &mockTicketRepository{}, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:    1,
		Status:      strPtr("in_progress"),
		UpdatedBy:   7,
		UpdaterRole: authorization.RoleUser,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
}

func TestUpdateTicketUseCase_Execute_NothingToUpdate(t *testing.T) {
	uc := newUpdateUseCase(t, &mockTicketRepository{}, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:    1,
		UpdatedBy:   5,
		UpdaterRole: authorization.RoleAgent,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestUpdateTicketUseCase_Execute_TicketNotFound(t *testing.T) {
	ticketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return nil, errors.New("record not found")
		},
	}
	uc := newUpdateUseCase(t, ticketRepo, nil, nil)

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:    404,
		Status:      strPtr("in_progress"),
		UpdatedBy:   5,
		UpdaterRole: authorization.RoleAgent,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
