package marketplace

import (
	"github.com/shopspring/decimal"

	"github.com/Leganyst/myhaircut/internal/model"
)

// accountPatch — типизированное частичное обновление учётной записи.
// Заданные (не nil) поля перезаписываются, остальные сохраняются.
type accountPatch struct {
	ID string

	Name          *string
	Email         *string
	AvatarRef     *string
	Role          *model.Role
	IsVerified    *bool
	IsActive      *bool
	WalletBalance *decimal.Decimal
	Bio           *string
	Rating        *float64
	ReviewCount   *int
	Services      *[]model.Service
	Gallery       *[]string
}

func (p accountPatch) apply(a *model.Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.AvatarRef != nil {
		a.AvatarRef = *p.AvatarRef
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
	if p.IsVerified != nil {
		a.IsVerified = *p.IsVerified
	}
	if p.IsActive != nil {
		a.IsActive = *p.IsActive
	}
	if p.WalletBalance != nil {
		a.WalletBalance = *p.WalletBalance
	}
	if p.Bio != nil {
		a.Bio = *p.Bio
	}
	if p.Rating != nil {
		a.Rating = *p.Rating
	}
	if p.ReviewCount != nil {
		a.ReviewCount = *p.ReviewCount
	}
	if p.Services != nil {
		a.Services = append([]model.Service{}, (*p.Services)...)
	}
	if p.Gallery != nil {
		a.Gallery = append([]string{}, (*p.Gallery)...)
	}
}

// patchFromAccount строит патч, перезаписывающий все поля записи.
func patchFromAccount(a model.Account) accountPatch {
	p := accountPatch{
		ID:            a.ID,
		Name:          &a.Name,
		Email:         &a.Email,
		AvatarRef:     &a.AvatarRef,
		Role:          &a.Role,
		IsVerified:    &a.IsVerified,
		IsActive:      &a.IsActive,
		WalletBalance: &a.WalletBalance,
		Bio:           &a.Bio,
		Rating:        &a.Rating,
		ReviewCount:   &a.ReviewCount,
	}
	if a.Services != nil {
		p.Services = &a.Services
	}
	if a.Gallery != nil {
		p.Gallery = &a.Gallery
	}
	return p
}

// upsertResult описывает последствия upsert для вызывающего.
type upsertResult struct {
	Account      model.Account
	Created      bool
	ForcedLogout bool
	WasActive    bool
}

// upsert сливает патч с существующей записью или добавляет новую.
// Если запись — текущий пользователь сессии, копия в сессии обновляется,
// а при IsActive=false сессия принудительно закрывается.
func (st *State) upsert(p accountPatch) upsertResult {
	var res upsertResult

	i := st.memberIndex(p.ID)
	if i >= 0 {
		res.WasActive = st.Members[i].IsActive
		p.apply(&st.Members[i])
	} else {
		acc := model.Account{ID: p.ID, IsActive: true}
		p.apply(&acc)
		st.Members = append(st.Members, acc)
		i = len(st.Members) - 1
		res.Created = true
	}
	res.Account = st.Members[i].Clone()

	if st.Session.CurrentUser != nil && st.Session.CurrentUser.ID == p.ID {
		u := res.Account.Clone()
		st.Session.CurrentUser = &u
		if !u.IsActive {
			st.logout()
			res.ForcedLogout = true
		}
	}
	return res
}

// setActive переключает IsActive через upsert.
func (st *State) setActive(id string, active bool) (upsertResult, bool) {
	if st.memberIndex(id) < 0 {
		return upsertResult{}, false
	}
	return st.upsert(accountPatch{ID: id, IsActive: &active}), true
}

// deleteAccount удаляет запись вместе со всеми записями на услуги, где она
// клиент или мастер. Записи чистятся и для id, которого нет в реестре
// (например, клиент из демонстрационных данных). Удаление текущего
// пользователя закрывает сессию.
func (st *State) deleteAccount(id string) (removedBookings int, forcedLogout bool, found bool) {
	if i := st.memberIndex(id); i >= 0 {
		st.Members = append(st.Members[:i], st.Members[i+1:]...)
		found = true
	}
	removedBookings = st.removeBookingsFor(id)

	if found && st.Session.ActorID() == id {
		st.logout()
		forcedLogout = true
	}
	return removedBookings, forcedLogout, found
}

// активные мастера в порядке реестра
func (st *State) providers() []model.Account {
	var out []model.Account
	for _, m := range st.Members {
		if m.Role == model.RoleProvider && m.IsActive {
			out = append(out, m.Clone())
		}
	}
	return out
}
