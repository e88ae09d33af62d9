package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer strips all HTML from user-supplied text. Ticket subjects,
// descriptions and comments are stored as plain text.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *TextSanitizer) Sanitize(text string) string {
	return strings.TrimSpace(s.policy.Sanitize(text))
}
