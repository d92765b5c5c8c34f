package marketplace

import (
	"context"
	"testing"
)

func TestCatalog_AddAndRemoveService(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()

	svc, err := m.AddService(ctx, "h1", "Coupe Enfant", dec("100"), 25)
	if err != nil {
		t.Fatalf("add service: %v", err)
	}
	if svc.ID == "" || svc.Name != "Coupe Enfant" || svc.Duration != 25 {
		t.Fatalf("unexpected service: %+v", svc)
	}
	if got := len(mustMember(t, m, "h1").Services); got != 3 {
		t.Fatalf("services = %d, want 3", got)
	}

	if err := m.RemoveService(ctx, "h1", "s1"); err != nil {
		t.Fatalf("remove service: %v", err)
	}
	services := mustMember(t, m, "h1").Services
	if len(services) != 2 || services[0].ID != "s2" || services[1].ID != svc.ID {
		t.Fatalf("unexpected services after remove: %+v", services)
	}
}

func TestCatalog_UnknownProviderIsNoop(t *testing.T) {
	m, store := newTestMarketplace(t)

	svc, err := m.AddService(context.Background(), "nope", "X", dec("1"), 1)
	if err != nil || svc.ID != "" {
		t.Fatalf("expected silent no-op, got %+v / %v", svc, err)
	}
	if store.saves != 0 {
		t.Fatalf("no-op must not persist")
	}
}

func TestCatalog_GalleryByIndex(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := m.AddGalleryImage(ctx, "h2", "img://same"); err != nil {
			t.Fatalf("add image: %v", err)
		}
	}
	if got := len(mustMember(t, m, "h2").Gallery); got != 3 {
		t.Fatalf("duplicates must be kept, gallery = %d", got)
	}

	if err := m.RemoveGalleryImage(ctx, "h2", 1); err != nil {
		t.Fatalf("remove image: %v", err)
	}
	gallery := mustMember(t, m, "h2").Gallery
	if len(gallery) != 2 || gallery[1] != "img://same" {
		t.Fatalf("only one copy must be removed: %v", gallery)
	}

	if err := m.RemoveGalleryImage(ctx, "h2", 10); err != nil {
		t.Fatalf("out of range index must be a no-op: %v", err)
	}
}
