package marketplace

import (
	"context"
	"errors"
	"testing"
)

func TestNavigateAndSelectProvider(t *testing.T) {
	m, store := newTestMarketplace(t)
	ctx := context.Background()

	if err := m.Navigate(ctx, PageSearch); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if store.last.Page != PageSearch {
		t.Fatalf("page must be persisted, got %q", store.last.Page)
	}

	if err := m.SelectProvider(ctx, "h2"); err != nil {
		t.Fatalf("select provider: %v", err)
	}
	if m.Page() != PageProfile {
		t.Fatalf("page = %q", m.Page())
	}
	p, ok := m.SelectedProvider()
	if !ok || p.ID != "h2" {
		t.Fatalf("selected = %+v", p)
	}

	// недоступный мастер заменяется первым активным
	if err := m.SetActive(ctx, "h2", false); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if p, _ := m.SelectedProvider(); p.ID != "h1" {
		t.Fatalf("fallback = %q, want h1", p.ID)
	}
}

func TestNavigate_EmptyPage(t *testing.T) {
	m, _ := newTestMarketplace(t)
	if err := m.Navigate(context.Background(), " "); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
