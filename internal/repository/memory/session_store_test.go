package memory

import (
	"context"
	"testing"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()

	got, err := s.LoadSession(ctx)
	if err != nil || got != nil {
		t.Fatalf("expected empty store, got %+v %v", got, err)
	}

	if err := s.SaveSession(ctx, models.Session{Authenticated: true, User: models.User{ID: "1"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ = s.LoadSession(ctx)
	if got == nil || !got.Authenticated || got.User.ID != "1" {
		t.Fatalf("unexpected session %+v", got)
	}

	got.User.ID = "mutated"
	again, _ := s.LoadSession(ctx)
	if again.User.ID != "1" {
		t.Fatalf("stored session leaked through returned pointer")
	}

	if err := s.ClearSession(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := s.LoadSession(ctx); got != nil {
		t.Fatalf("expected cleared store")
	}
}
