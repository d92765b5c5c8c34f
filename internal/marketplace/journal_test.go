package marketplace

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Leganyst/myhaircut/internal/journal"
	"github.com/Leganyst/myhaircut/internal/model"
)

func TestMarketplace_JournalsDomainEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m, _ := newTestMarketplace(t, WithJournal(journal.New(nil, zap.New(core))))
	ctx := context.Background()

	mustLogin(t, m, model.RoleProvider, "ahmed@example.com")
	if err := m.SetBookingStatus(ctx, "b1", model.BookingStatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	byType := map[string]int{}
	for _, e := range logs.FilterMessage("domain event").All() {
		byType[e.ContextMap()["event_type"].(string)]++
	}
	for _, typ := range []model.EventType{model.EventTypeLogin, model.EventTypeBookingUpdated, model.EventTypeCommissionDebited} {
		if byType[string(typ)] != 1 {
			t.Fatalf("expected one %s event, got %v", typ, byType)
		}
	}

	debit := logs.FilterField(zap.String("event_type", string(model.EventTypeCommissionDebited))).All()
	if got := debit[0].ContextMap()["actor_id"]; got != "h1" {
		t.Fatalf("actor_id = %v, want h1", got)
	}
}

func TestMarketplace_JournalsRejectedLogin(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m, _ := newTestMarketplace(t, WithJournal(journal.New(nil, zap.New(core))))
	ctx := context.Background()

	if err := m.SetActive(ctx, "h1", false); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if _, err := m.Login(ctx, model.RoleProvider, "ahmed@example.com", ""); err == nil {
		t.Fatalf("expected rejection")
	}

	rejected := logs.FilterField(zap.String("event_type", string(model.EventTypeLoginRejected))).All()
	if len(rejected) != 1 || rejected[0].ContextMap()["subject_id"] != "h1" {
		t.Fatalf("expected one login_rejected for h1, got %d", len(rejected))
	}
}
