package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
)

func TestAttachmentRepository(t *testing.T) {
	db := setupTestDB(t)
	ticketRepo := NewTicketRepository(db)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, "With attachments", vo.CategoryComplaint, 1, "CMP-0001")
	require.NoError(t, ticketRepo.Save(ctx, tk))

	newAttachment := func(name, key string) *ticket.Attachment {
		a, err := ticket.NewAttachment(tk.ID(), name, key, 1024, "image/png", 1)
		require.NoError(t, err)
		return a
	}

	t.Run("save assigns an ID", func(t *testing.T) {
		a := newAttachment("photo.png", "2026/08/key-1.png")
		err := repo.Save(ctx, a)
		assert.NoError(t, err)
		assert.NotZero(t, a.ID())
	})

	t.Run("get by ID round trips metadata", func(t *testing.T) {
		a := newAttachment("floorplan.png", "2026/08/key-2.png")
		require.NoError(t, repo.Save(ctx, a))

		found, err := repo.GetByID(ctx, a.ID())
		assert.NoError(t, err)
		assert.Equal(t, tk.ID(), found.TicketID())
		assert.Equal(t, "floorplan.png", found.FileName())
		assert.Equal(t, "2026/08/key-2.png", found.StorageKey())
		assert.Equal(t, int64(1024), found.Size())
	})

	t.Run("duplicate storage key fails", func(t *testing.T) {
		a := newAttachment("copy.png", "2026/08/key-1.png")
		err := repo.Save(ctx, a)
		assert.Error(t, err)
	})

	t.Run("count by ticket ID", func(t *testing.T) {
		count, err := repo.CountByTicketID(ctx, tk.ID())
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.CountByTicketID(ctx, 999)
		assert.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("get non-existent attachment", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 99999)
		assert.Error(t, err)
		assert.Nil(t, found)
	})
}
