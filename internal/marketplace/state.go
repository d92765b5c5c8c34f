// Package marketplace — доменное ядро площадки записи к мастерам:
// реестр учётных записей, сессия, журнал записей (bookings), отзывы и каталог мастера.
//
// Всё состояние хранится в одном агрегате State. Переходы — методы *State,
// которые engine (Marketplace) применяет к копии состояния; копия становится
// текущей только после успешного сохранения.
package marketplace

import (
	"strings"

	"github.com/Leganyst/myhaircut/internal/model"
)

// Страницы навигации, которые переживают перезапуск.
const (
	PageHome              = "home"
	PageLogin             = "login"
	PageSearch            = "search"
	PageProfile           = "profile"
	PageAccount           = "mon-compte"
	PageAdvisor           = "ai-advisor"
	PageProviderDashboard = "barber-dashboard"
	PageAdminDashboard    = "admin-dashboard"
)

// State — полный агрегат домена.
type State struct {
	Members  []model.Account
	Bookings []model.Booking
	Reviews  []model.Review
	Session  model.Session

	Page               string
	SelectedProviderID string
}

// Clone возвращает глубокую копию: переходы над копией не видны оригиналу.
func (st State) Clone() State {
	c := st
	c.Members = make([]model.Account, len(st.Members))
	for i, m := range st.Members {
		c.Members[i] = m.Clone()
	}
	c.Bookings = append([]model.Booking(nil), st.Bookings...)
	c.Reviews = append([]model.Review(nil), st.Reviews...)
	c.Session = st.Session.Clone()
	return c
}

func (st *State) memberIndex(id string) int {
	for i := range st.Members {
		if st.Members[i].ID == id {
			return i
		}
	}
	return -1
}

func (st *State) member(id string) (model.Account, bool) {
	if i := st.memberIndex(id); i >= 0 {
		return st.Members[i], true
	}
	return model.Account{}, false
}

// memberByEmail ищет первое совпадение без учёта регистра.
func (st *State) memberByEmail(email string) (model.Account, bool) {
	email = normalizeEmail(email)
	for _, m := range st.Members {
		if strings.ToLower(m.Email) == email {
			return m, true
		}
	}
	return model.Account{}, false
}

func (st *State) bookingIndex(id string) int {
	for i := range st.Bookings {
		if st.Bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func landingPage(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return PageAdminDashboard
	case model.RoleProvider:
		return PageProviderDashboard
	default:
		return PageHome
	}
}
