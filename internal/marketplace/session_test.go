package marketplace

import (
	"context"
	"errors"
	"testing"

	"github.com/Leganyst/myhaircut/internal/model"
)

func TestLogin_AutoRegistersUnknownEmail(t *testing.T) {
	m, store := newTestMarketplace(t)
	before := len(m.Members(""))

	acc := mustLogin(t, m, model.RoleClient, "New@X.com")

	if acc.Role != model.RoleClient || !acc.IsActive || !acc.IsVerified {
		t.Fatalf("unexpected account: %+v", acc)
	}
	if acc.Email != "new@x.com" || acc.Name != "new" {
		t.Fatalf("expected normalized email and local-part name, got %q / %q", acc.Email, acc.Name)
	}
	assertMoney(t, "wallet", acc.WalletBalance, "0")
	if acc.Services != nil || acc.Gallery != nil {
		t.Fatalf("client must not get provider lists: %+v", acc)
	}
	if got := len(m.Members("")); got != before+1 {
		t.Fatalf("members = %d, want %d", got, before+1)
	}

	s := m.Session()
	if !s.IsLoggedIn || s.Role != model.RoleClient || s.ActorID() != acc.ID {
		t.Fatalf("session not opened: %+v", s)
	}
	if m.Page() != PageHome {
		t.Fatalf("page = %q, want %q", m.Page(), PageHome)
	}
	if store.saves == 0 {
		t.Fatalf("login must be persisted")
	}
}

func TestLogin_SecondLoginResolvesSameAccount(t *testing.T) {
	m, _ := newTestMarketplace(t)

	first := mustLogin(t, m, model.RoleClient, "new@x.com")
	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	second := mustLogin(t, m, model.RoleProvider, "NEW@x.com")

	if first.ID != second.ID {
		t.Fatalf("expected same id, got %q and %q", first.ID, second.ID)
	}
	if second.Role != model.RoleClient {
		t.Fatalf("stored role must win over requested, got %s", second.Role)
	}
	count := 0
	for _, a := range m.Members("new@x.com") {
		if a.Email == "new@x.com" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one account for email, got %d", count)
	}
}

func TestLogin_ProviderRegistrationGetsEmptyCatalog(t *testing.T) {
	m, _ := newTestMarketplace(t)

	acc := mustLogin(t, m, model.RoleProvider, "barber@x.com")

	if acc.Services == nil || acc.Gallery == nil || len(acc.Services) != 0 || len(acc.Gallery) != 0 {
		t.Fatalf("provider must start with empty lists: %+v", acc)
	}
	if m.Page() != PageProviderDashboard {
		t.Fatalf("page = %q, want %q", m.Page(), PageProviderDashboard)
	}
}

func TestLogin_ExistingAccountCaseInsensitive(t *testing.T) {
	m, _ := newTestMarketplace(t)

	acc := mustLogin(t, m, model.RoleClient, "  AHMED@Example.com ")
	if acc.ID != "h1" || acc.Role != model.RoleProvider {
		t.Fatalf("expected seeded provider h1, got %+v", acc)
	}
}

func TestLogin_SuspendedAccountRejected(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()

	if err := m.SetActive(ctx, "h2", false); err != nil {
		t.Fatalf("set active: %v", err)
	}

	_, err := m.Login(ctx, model.RoleProvider, "sarah@example.com", "")
	if !errors.Is(err, ErrAccountSuspended) {
		t.Fatalf("expected ErrAccountSuspended, got %v", err)
	}
	if m.Session().IsLoggedIn {
		t.Fatalf("no session must be opened for suspended account")
	}
}

func TestLogin_EmptyEmail(t *testing.T) {
	m, _ := newTestMarketplace(t)
	if _, err := m.Login(context.Background(), model.RoleClient, "  ", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestLogin_UnknownEmailWithAdminRoleRejected(t *testing.T) {
	m, _ := newTestMarketplace(t)
	if _, err := m.Login(context.Background(), model.RoleAdmin, "who@x.com", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestLogin_AdminBypass(t *testing.T) {
	m, _ := newTestMarketplace(t, WithAdmin(AdminCredentials{
		Emails:   []string{"Admin@MyHairCut.ma"},
		Password: "s3cret",
	}))
	ctx := context.Background()
	before := len(m.Members(""))

	acc, err := m.Login(ctx, model.RoleClient, "admin@myhaircut.ma", "s3cret")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if acc.ID != "admin" || acc.Role != model.RoleAdmin {
		t.Fatalf("unexpected admin account: %+v", acc)
	}
	if s := m.Session(); s.Role != model.RoleAdmin || !s.IsLoggedIn {
		t.Fatalf("expected ADMIN session, got %+v", s)
	}
	if m.Page() != PageAdminDashboard {
		t.Fatalf("page = %q", m.Page())
	}

	// повторный вход переиспользует запись
	if _, err := m.Login(ctx, model.RoleClient, "admin@myhaircut.ma", "s3cret"); err != nil {
		t.Fatalf("second admin login: %v", err)
	}
	if got := len(m.Members("")); got != before+1 {
		t.Fatalf("members = %d, want %d", got, before+1)
	}
}

func TestLogin_AdminWrongPasswordFallsThrough(t *testing.T) {
	m, _ := newTestMarketplace(t, WithAdmin(AdminCredentials{
		Emails:   []string{"admin@myhaircut.ma"},
		Password: "s3cret",
	}))

	acc, err := m.Login(context.Background(), model.RoleClient, "admin@myhaircut.ma", "wrong")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if acc.Role != model.RoleClient {
		t.Fatalf("failed admin attempt must resolve through the registry, got %s", acc.Role)
	}
}

func TestLogout_ResetsSessionAndPage(t *testing.T) {
	m, _ := newTestMarketplace(t)
	ctx := context.Background()
	mustLogin(t, m, model.RoleProvider, "sarah@example.com")

	if err := m.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	s := m.Session()
	if s.IsLoggedIn || s.CurrentUser != nil || s.Role != "" {
		t.Fatalf("session not cleared: %+v", s)
	}
	if m.Page() != PageHome {
		t.Fatalf("page = %q", m.Page())
	}
	// без сессии — тоже без ошибок
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}
