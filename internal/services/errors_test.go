package services_test

import (
	"errors"
	"strings"
	"testing"

	"clipvault/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrStoreAccess, "catalog", "list players", "fetch failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrStoreAccess) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"catalog", "list players", "fetch failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "rowstore", "append", "", nil)
	if !errors.Is(err, services.ErrStoreAccess) {
		t.Fatalf("expected default marker, got %v", err)
	}
}

func TestUserMessageSurvivesWrapping(t *testing.T) {
	inner := services.WithUserMessage("specified record not found", services.ErrNotFound)
	outer := services.Wrap(services.ErrStoreAccess, "catalog", "update", "locate row", inner)

	if got := services.UserMessage(outer, "failed to update record"); got != "specified record not found" {
		t.Fatalf("expected specific message to survive, got %q", got)
	}
	if !errors.Is(outer, services.ErrNotFound) {
		t.Fatalf("expected not-found marker on chain, got %v", outer)
	}
}

func TestUserMessageFallback(t *testing.T) {
	err := errors.New("tcp dial timeout")
	if got := services.UserMessage(err, "failed to fetch players"); got != "failed to fetch players" {
		t.Fatalf("expected fallback message, got %q", got)
	}
	if got := services.UserMessage(nil, "unused"); got != "" {
		t.Fatalf("expected empty message for nil error, got %q", got)
	}
}
