package ticket

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	vo "github.com/visitra-hq/visitra/internal/domain/ticket/valueobjects"
)

// NumberAllocator produces the next ticket number for a category. The
// allocation must happen inside the same transaction as the ticket insert so
// two concurrent creations never observe the same highest existing number.
// On a uniqueness conflict the whole creation fails and the caller retries;
// a number is never silently skipped or reissued.
type NumberAllocator interface {
	NextNumber(ctx context.Context, category vo.Category) (string, error)
}

// FormatNumber renders a ticket number as <PREFIX>-<sequence>, zero-padded
// to four digits; past 9999 the sequence keeps its natural width.
func FormatNumber(category vo.Category, sequence int) string {
	return fmt.Sprintf("%s-%04d", category.NumberPrefix(), sequence)
}

// ParseSequence extracts the numeric sequence from a ticket number with the
// category's prefix. Returns 0 for numbers that do not match.
func ParseSequence(category vo.Category, number string) int {
	prefix := category.NumberPrefix() + "-"
	if !strings.HasPrefix(number, prefix) {
		return 0
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(number, prefix))
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}
