package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/credential-service/internal/core/domain"
)

func TestUserService_List_ExcludesHashes(t *testing.T) {
	f := newFixture(t)
	_, _ = f.svc.Register(context.Background(), "Alice", "alice@x.com", "pw1")
	_, _ = f.svc.Register(context.Background(), "Bob", "bob@x.com", "pw2")

	svc := NewUserService(f.repo, zerolog.Nop())
	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 users, got %d", len(views))
	}
	if views[0].Email != "alice@x.com" || views[1].Email != "bob@x.com" {
		t.Fatalf("expected store order, got %+v", views)
	}

	raw, err := json.Marshal(views)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "$2a$") || strings.Contains(strings.ToLower(string(raw)), "password") {
		t.Fatalf("listing leaked secret material: %s", raw)
	}
}

func TestUserService_List_Empty(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", views)
	}
}

func TestUserService_List_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.listErr = errors.Join(domain.ErrStoreUnavailable, errors.New("cursor failed"))
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.List(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
