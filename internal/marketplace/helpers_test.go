package marketplace

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/myhaircut/internal/model"
	"github.com/Leganyst/myhaircut/internal/seed"
)

// memStore — Store в памяти; err имитирует отказ хранилища.
type memStore struct {
	saves int
	last  State
	err   error
}

func (s *memStore) Save(_ context.Context, st State) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	s.last = st.Clone()
	return nil
}

var errDiskFull = errors.New("disk full")

var testNow = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

func seedState() State {
	return State{
		Members:  seed.Providers(),
		Bookings: seed.Bookings(),
		Reviews:  seed.Reviews(testNow),
	}
}

func newTestMarketplace(t *testing.T, opts ...Option) (*Marketplace, *memStore) {
	t.Helper()
	store := &memStore{}
	seq := 0
	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	}
	return New(seedState(), store, append(base, opts...)...), store
}

func mustLogin(t *testing.T, m *Marketplace, role model.Role, email string) model.Account {
	t.Helper()
	acc, err := m.Login(context.Background(), role, email, "")
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return acc
}

func mustMember(t *testing.T, m *Marketplace, id string) model.Account {
	t.Helper()
	acc, ok := m.Member(id)
	if !ok {
		t.Fatalf("member %s not found", id)
	}
	return acc
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s = %s, want %s", what, got, want)
	}
}
