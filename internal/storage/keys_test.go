package storage_test

import (
	"errors"
	"testing"

	"clipvault/internal/services"
	"clipvault/internal/storage"
)

func TestNormalizeKeyComposesUnicode(t *testing.T) {
	// Katakana KA plus a combining voiced sound mark composes to GA.
	decomposed := "\u30ab\u3099.mp4"
	composed := "\u30ac.mp4"
	if got := storage.NormalizeKey(decomposed); got != composed {
		t.Fatalf("NormalizeKey(%q) = %q, want %q", decomposed, got, composed)
	}
	if got := storage.NormalizeKey("  final.mp4  "); got != "final.mp4" {
		t.Fatalf("expected surrounding space trimmed, got %q", got)
	}
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"final.mp4", "準決勝 2024.mov", "video-1.mkv"} {
		if err := storage.ValidateKey(key); err != nil {
			t.Fatalf("ValidateKey(%q) returned error: %v", key, err)
		}
	}

	for _, key := range []string{"", ".", "..", "a/b.mp4", `a\b.mp4`, "bad\x00.mp4"} {
		err := storage.ValidateKey(key)
		if err == nil {
			t.Fatalf("expected error for %q", key)
		}
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("expected validation marker for %q, got %v", key, err)
		}
		if msg := services.UserMessage(err, ""); msg != "invalid file name" {
			t.Fatalf("expected stable user message for %q, got %q", key, msg)
		}
	}
}
