package marketplace

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/myhaircut/internal/model"
)

func (st *State) openSession(acc model.Account) {
	u := acc.Clone()
	st.Session = model.Session{CurrentUser: &u, IsLoggedIn: true, Role: acc.Role}
	st.Page = landingPage(acc.Role)
}

func (st *State) logout() {
	st.Session = model.Session{}
	st.Page = PageHome
}

// итог разрешения входа
type loginOutcome struct {
	Account model.Account
	Created bool
	Admin   bool
}

// loginAdmin материализует служебного администратора (или берёт уже
// существующую запись с тем же id) и открывает сессию ADMIN.
func (st *State) loginAdmin(admin model.Account) loginOutcome {
	out := loginOutcome{Admin: true}
	if existing, ok := st.member(admin.ID); ok {
		out.Account = existing
	} else {
		st.Members = append(st.Members, admin.Clone())
		out.Account = admin
		out.Created = true
	}
	st.openSession(out.Account)
	st.Session.Role = model.RoleAdmin
	return out
}

// loginMember находит запись по email или регистрирует новую.
// Для существующей записи роль берётся из реестра, requested игнорируется.
func (st *State) loginMember(requested model.Role, email, newID string) (loginOutcome, error) {
	email = normalizeEmail(email)
	if email == "" {
		return loginOutcome{}, ErrInvalidArgument
	}

	if found, ok := st.memberByEmail(email); ok {
		if !found.IsActive {
			return loginOutcome{Account: found}, ErrAccountSuspended
		}
		st.openSession(found)
		return loginOutcome{Account: found}, nil
	}

	if requested != model.RoleClient && requested != model.RoleProvider {
		return loginOutcome{}, ErrInvalidArgument
	}

	acc := model.Account{
		ID:            newID,
		Name:          nameFromEmail(email),
		Email:         email,
		Role:          requested,
		IsVerified:    true,
		IsActive:      true,
		WalletBalance: decimal.Zero,
	}
	if requested == model.RoleProvider {
		acc.Services = []model.Service{}
		acc.Gallery = []string{}
	}
	res := st.upsert(patchFromAccount(acc))
	st.openSession(res.Account)
	return loginOutcome{Account: res.Account, Created: true}, nil
}

// nameFromEmail возвращает локальную часть адреса.
func nameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
