package marketplace

import (
	"context"
	"testing"

	"github.com/Leganyst/myhaircut/internal/model"
)

func TestSetActive_SuspendingCurrentUserForcesLogout(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()
	mustLogin(t, m, model.RoleProvider, "sarah@example.com")

	if err := m.SetActive(ctx, "h2", false); err != nil {
		t.Fatalf("set active: %v", err)
	}

	s := m.Session()
	if s.IsLoggedIn || s.CurrentUser != nil {
		t.Fatalf("suspension must terminate the session: %+v", s)
	}
	if m.Page() != PageHome {
		t.Fatalf("page = %q", m.Page())
	}
	for _, p := range m.Providers() {
		if p.ID == "h2" {
			t.Fatalf("suspended provider must not be listed")
		}
	}
	if mustMember(t, m, "h2").IsActive {
		t.Fatalf("h2 must be inactive")
	}
}

func TestSetActive_Reactivate(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()

	if err := m.SetActive(ctx, "h1", false); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if err := m.SetActive(ctx, "h1", true); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if len(m.Providers()) != 2 {
		t.Fatalf("expected both providers listed again")
	}
	if _, err := m.Login(ctx, model.RoleProvider, "ahmed@example.com", ""); err != nil {
		t.Fatalf("reactivated account must log in: %v", err)
	}
}

func TestUpdateProfile_ResyncsSessionCopy(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()
	mustLogin(t, m, model.RoleProvider, "sarah@example.com")

	name, bio := "Sarah M.", "Nouvelle bio"
	if err := m.UpdateProfile(ctx, "h2", model.ProfilePatch{Name: &name, Bio: &bio}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	s := m.Session()
	if s.CurrentUser == nil || s.CurrentUser.Name != name || s.CurrentUser.Bio != bio {
		t.Fatalf("session copy not re-synced: %+v", s.CurrentUser)
	}
	acc := mustMember(t, m, "h2")
	if acc.Name != name || acc.Email != "sarah@example.com" || len(acc.Services) != 2 {
		t.Fatalf("patch must merge, not replace: %+v", acc)
	}
}

func TestUpdateProfile_UnknownIDIsNoop(t *testing.T) {
	m, store := newTestMarketplace(t)
	name := "ghost"
	if err := m.UpdateProfile(context.Background(), "nope", model.ProfilePatch{Name: &name}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("no-op must not persist, saves=%d", store.saves)
	}
}

func TestDeleteMember_CascadesBookings(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()

	sarah := mustMember(t, m, "h2")
	if _, err := m.CreateBooking(ctx, BookingRequest{ClientID: "c2", ClientName: "Nadia", ProviderID: "h2", Service: sarah.Services[0]}); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	ahmed := mustMember(t, m, "h1")
	if _, err := m.CreateBooking(ctx, BookingRequest{ClientID: "c2", ClientName: "Nadia", ProviderID: "h1", Service: ahmed.Services[1]}); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if err := m.DeleteMember(ctx, "h1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, b := range m.Bookings(BookingFilter{}) {
		if b.References("h1") {
			t.Fatalf("booking %s still references deleted account", b.ID)
		}
	}
	if got := len(m.Bookings(BookingFilter{ClientID: "c2"})); got != 1 {
		t.Fatalf("unrelated booking must survive, got %d", got)
	}
	if _, ok := m.Member("h1"); ok {
		t.Fatalf("account must be removed")
	}
}

func TestDeleteMember_CascadesClientBookings(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()
	client := mustLogin(t, m, model.RoleClient, "karim@x.com")

	for _, pid := range []string{"h1", "h2"} {
		p := mustMember(t, m, pid)
		if _, err := m.CreateBooking(ctx, BookingRequest{ClientID: client.ID, ClientName: client.Name, ProviderID: pid, Service: p.Services[0]}); err != nil {
			t.Fatalf("create booking with %s: %v", pid, err)
		}
	}
	if got := len(m.Bookings(BookingFilter{ClientID: client.ID})); got != 2 {
		t.Fatalf("client bookings = %d, want 2", got)
	}

	if err := m.DeleteMember(ctx, client.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, b := range m.Bookings(BookingFilter{}) {
		if b.References(client.ID) {
			t.Fatalf("booking %s still references deleted client", b.ID)
		}
	}
	if got := len(m.Bookings(BookingFilter{ProviderID: "h1"})); got != 1 {
		t.Fatalf("other client's booking must survive, got %d", got)
	}
}

func TestDeleteMember_UnregisteredIDStillCascades(t *testing.T) {
	m, store := newTestMarketplace(t)
	ctx := context.Background()

	// c1 есть только в демонстрационной записи b1
	if err := m.DeleteMember(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := len(m.Bookings(BookingFilter{ClientID: "c1"})); got != 0 {
		t.Fatalf("bookings of unregistered client = %d, want 0", got)
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}

	if err := m.DeleteMember(ctx, "nobody"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
	if store.saves != 1 {
		t.Fatalf("unknown id with no bookings must not persist, saves=%d", store.saves)
	}
}

func TestDeleteMember_CurrentUserLogsOut(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()
	acc := mustLogin(t, m, model.RoleClient, "karim@x.com")

	if err := m.DeleteMember(ctx, acc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if m.Session().IsLoggedIn {
		t.Fatalf("deleting the current user must log out")
	}
}

func TestMembers_Filter(t *testing.T) {
	m, _ := newTestMarketplace(t)

	if got := m.Members("SARAH"); len(got) != 1 || got[0].ID != "h2" {
		t.Fatalf("filter by name failed: %+v", got)
	}
	if got := m.Members("example.com"); len(got) != 2 {
		t.Fatalf("filter by email failed: %d", len(got))
	}
	if got := m.Members("zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestUpsert_MergesAndAppends(t *testing.T) {
	st := seedState()

	bio := "updated"
	res := st.upsert(accountPatch{ID: "h1", Bio: &bio})
	if res.Created || res.Account.Bio != bio || res.Account.Name != "Ahmed Benzani" {
		t.Fatalf("merge failed: %+v", res)
	}

	name := "Fresh"
	res = st.upsert(accountPatch{ID: "x1", Name: &name})
	if !res.Created || !res.Account.IsActive || len(st.Members) != 3 {
		t.Fatalf("append failed: %+v", res)
	}
}

func TestStateClone_IsDeep(t *testing.T) {
	st := seedState()
	c := st.Clone()

	c.Members[0].Services[0].Name = "changed"
	c.Members[0].Gallery[0] = "changed"
	c.Bookings[0].Status = model.BookingStatusCancelled

	if st.Members[0].Services[0].Name == "changed" || st.Members[0].Gallery[0] == "changed" {
		t.Fatalf("clone shares account slices with original")
	}
	if st.Bookings[0].Status == model.BookingStatusCancelled {
		t.Fatalf("clone shares bookings with original")
	}
}
