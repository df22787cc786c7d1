package rules

import (
	"errors"
	"strings"
)

const DefaultMaxMessageLength = 2000

var (
	ErrEmptyContent   = errors.New("message content is empty")
	ErrContentTooLong = errors.New("message content is too long")
)

// NormalizeContent trims surrounding whitespace and enforces the length
// limit. maxLength <= 0 falls back to DefaultMaxMessageLength.
func NormalizeContent(content string, maxLength int) (string, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxMessageLength
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyContent
	}
	if len([]rune(trimmed)) > maxLength {
		return "", ErrContentTooLong
	}

	return trimmed, nil
}
