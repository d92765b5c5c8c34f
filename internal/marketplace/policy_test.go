package marketplace

import (
	"context"
	"errors"
	"testing"

	"github.com/Leganyst/myhaircut/internal/model"
)

func TestStrictPolicy_CatalogEdits(t *testing.T) {
	m, _ := newTestMarketplace(t, WithPolicy(StrictPolicy{}))
	ctx := context.Background()

	if _, err := m.AddService(ctx, "h1", "X", dec("10"), 10); !errors.Is(err, ErrForbidden) {
		t.Fatalf("guest edit: expected ErrForbidden, got %v", err)
	}

	mustLogin(t, m, model.RoleProvider, "ahmed@example.com")
	if err := m.AddGalleryImage(ctx, "h2", "img://x"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign edit: expected ErrForbidden, got %v", err)
	}
	if len(mustMember(t, m, "h2").Gallery) != 1 {
		t.Fatalf("forbidden edit must not change state")
	}
	if err := m.AddGalleryImage(ctx, "h1", "img://x"); err != nil {
		t.Fatalf("own edit: %v", err)
	}
}

func TestStrictPolicy_AccountManagement(t *testing.T) {
	m, _ := newTestMarketplace(t,
		WithPolicy(StrictPolicy{}),
		WithAdmin(AdminCredentials{Emails: []string{"root@x.com"}, Password: "pw"}),
	)
	ctx := context.Background()

	mustLogin(t, m, model.RoleClient, "client@x.com")
	if err := m.SetActive(ctx, "h1", false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("client: expected ErrForbidden, got %v", err)
	}
	if err := m.DeleteMember(ctx, "h1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("client: expected ErrForbidden, got %v", err)
	}

	if _, err := m.Login(ctx, model.RoleClient, "root@x.com", "pw"); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if err := m.SetActive(ctx, "h1", false); err != nil {
		t.Fatalf("admin suspend: %v", err)
	}
}

func TestStrictPolicy_Validation(t *testing.T) {
	m, _ := newTestMarketplace(t, WithPolicy(StrictPolicy{}))
	ctx := context.Background()
	mustLogin(t, m, model.RoleProvider, "ahmed@example.com")

	if _, err := m.AddService(ctx, "h1", "X", dec("-1"), 10); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("negative price: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := m.AddService(ctx, "h1", "X", dec("10"), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero duration: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := m.AddReview(ctx, model.Review{ProviderID: "h1", Rating: 6}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("rating 6: expected ErrInvalidArgument, got %v", err)
	}
}

func TestOpenPolicy_AllowsEverything(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()

	if _, err := m.AddService(ctx, "h1", "", dec("-5"), 0); err != nil {
		t.Fatalf("open policy must not validate: %v", err)
	}
	if err := m.DeleteMember(ctx, "h2"); err != nil {
		t.Fatalf("open policy must allow deletion: %v", err)
	}
}
