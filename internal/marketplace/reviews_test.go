package marketplace

import (
	"context"
	"testing"

	"github.com/Leganyst/myhaircut/internal/model"
)

func TestAddReview_RecomputeIncludesNewReview(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()

	// rev1 (5) уже есть в демо-наборе
	if _, err := m.AddReview(ctx, model.Review{ProviderID: "h1", ClientName: "Omar", Rating: 4}); err != nil {
		t.Fatalf("add review: %v", err)
	}
	r, err := m.AddReview(ctx, model.Review{ProviderID: "h1", ClientName: "Lina", Rating: 4})
	if err != nil {
		t.Fatalf("add review: %v", err)
	}
	if r.ID == "" || !r.Date.Equal(testNow) {
		t.Fatalf("id and date must be stamped: %+v", r)
	}

	acc := mustMember(t, m, "h1")
	// round(avg(5,4,4), 1) = 4.3
	if acc.Rating != 4.3 || acc.ReviewCount != 3 {
		t.Fatalf("rating=%v count=%d, want 4.3/3", acc.Rating, acc.ReviewCount)
	}
	if got := len(m.Reviews("h1")); got != 3 {
		t.Fatalf("reviews = %d", got)
	}
}

func TestAddReview_FirstReview(t *testing.T) {
	m, _ := newTestMarketplace(t)

	if _, err := m.AddReview(context.Background(), model.Review{ProviderID: "h2", ClientID: "c9", Rating: 3}); err != nil {
		t.Fatalf("add review: %v", err)
	}
	acc := mustMember(t, m, "h2")
	if acc.Rating != 3.0 || acc.ReviewCount != 1 {
		t.Fatalf("rating=%v count=%d, want 3.0/1", acc.Rating, acc.ReviewCount)
	}
}

func TestAddReview_KeepsExplicitDate(t *testing.T) {
	m, _ := newTestMarketplace(t)
	date := testNow.AddDate(0, -1, 0)

	r, err := m.AddReview(context.Background(), model.Review{ID: "r-x", ProviderID: "h2", Rating: 5, Date: date})
	if err != nil {
		t.Fatalf("add review: %v", err)
	}
	if r.ID != "r-x" || !r.Date.Equal(date) {
		t.Fatalf("supplied id/date must be kept: %+v", r)
	}
}
