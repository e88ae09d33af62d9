package services

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/visitra-hq/visitra/internal/domain/ticket"
	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
	db "github.com/visitra-hq/visitra/internal/shared/db"
)

// TicketNumberAllocator hands out sequential ticket numbers per category.
// The mutex serializes allocations within this process; the MAX(number)
// query runs on the caller's transaction, so the number and the ticket row
// commit or roll back together. The unique index on tickets.number catches
// races between processes.
type TicketNumberAllocator struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewTicketNumberAllocator(db *gorm.DB) *TicketNumberAllocator {
	return &TicketNumberAllocator{db: db}
}

func (a *TicketNumberAllocator) NextNumber(ctx context.Context, category vo.Category) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx := db.GetTxFromContext(ctx, a.db)
	pattern := category.NumberPrefix() + "-%"

	var numbers []string
	if err := tx.
		Table("tickets").
		Where("number LIKE ?", pattern).
		Pluck("number", &numbers).Error; err != nil {
		return "", fmt.Errorf("failed to load existing ticket numbers: %w", err)
	}

	// MAX(number) on a string column misorders once the sequence outgrows
	// its zero padding, so compare parsed sequences instead.
	maxSeq := 0
	for _, number := range numbers {
		if seq := ticket.ParseSequence(category, number); seq > maxSeq {
			maxSeq = seq
		}
	}

	return ticket.FormatNumber(category, maxSeq+1), nil
}
