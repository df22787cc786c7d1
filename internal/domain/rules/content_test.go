package rules

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeContentTrimsWhitespace(t *testing.T) {
	got, err := NormalizeContent("  hello there \n", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello there" {
		t.Fatalf("unexpected content: got %q", got)
	}
}

func TestNormalizeContentRejectsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n "} {
		if _, err := NormalizeContent(raw, 0); !errors.Is(err, ErrEmptyContent) {
			t.Fatalf("expected ErrEmptyContent for %q, got %v", raw, err)
		}
	}
}

func TestNormalizeContentRejectsTooLong(t *testing.T) {
	if _, err := NormalizeContent(strings.Repeat("a", 11), 10); !errors.Is(err, ErrContentTooLong) {
		t.Fatalf("expected ErrContentTooLong, got %v", err)
	}

	got, err := NormalizeContent(strings.Repeat("a", 10), 10)
	if err != nil {
		t.Fatalf("unexpected error at limit: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("unexpected length: %d", len(got))
	}
}
