package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	"github.com/visitra-hq/visitra/internal/domain/user"
	"github.com/visitra-hq/visitra/internal/shared/authorization"
	"github.com/visitra-hq/visitra/internal/shared/biztime"
)

func newTestComplaint(t *testing.T, id uint, status vo.Status, creatorID uint) *ticket.Ticket {
	t.Helper()

	resolution := ""
	var resolvedAt *time.Time
	if status == vo.StatusResolved || status == vo.StatusClosed {
		resolution = "fixed the issue"
		at := biztime.TruncateToMilli(time.Now().Add(-time.Hour).UTC())
		resolvedAt = &at
	}
	rejectionReason := ""
	if status == vo.StatusRejected {
		rejectionReason = "not actionable"
	}

	created := biztime.TruncateToMilli(time.Now().Add(-2 * time.Hour).UTC())
	updated := biztime.TruncateToMilli(time.Now().Add(-time.Hour).UTC())

	tk, err := ticket.ReconstructTicket(
		id,
		ticket.FormatNumber(vo.CategoryComplaint, int(id)),
		vo.CategoryComplaint,
		"broken gate scanner",
		"the scanner at the east gate rejects valid badges",
		status,
		creatorID,
		nil,
		nil,
		resolution,
		rejectionReason,
		created, updated,
		resolvedAt, nil,
	)
	require.NoError(t, err)
	return tk
}

func newTestSuggestion(t *testing.T, id uint, status vo.Status, creatorID uint) *ticket.Ticket {
	t.Helper()

	created := biztime.TruncateToMilli(time.Now().Add(-2 * time.Hour).UTC())
	updated := biztime.TruncateToMilli(time.Now().Add(-time.Hour).UTC())

	tk, err := ticket.ReconstructTicket(
		id,
		ticket.FormatNumber(vo.CategorySuggestion, int(id)),
		vo.CategorySuggestion,
		"add bicycle parking",
		"visitors keep asking where to leave their bikes",
		status,
		creatorID,
		nil,
		nil,
		"",
		"",
		created, updated,
		nil, nil,
	)
	require.NoError(t, err)
	return tk
}

func newTestUser(t *testing.T, id uint, role authorization.UserRole) *user.User {
	t.Helper()

	u, err := user.ReconstructUser(id, "user@example.com", "Test User", role, nil)
	require.NoError(t, err)
	return u
}

func uintPtr(v uint) *uint {
	return &v
}

func strPtr(s string) *string {
	return &s
}
