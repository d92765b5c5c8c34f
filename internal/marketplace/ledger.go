package marketplace

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/myhaircut/internal/model"
)

// DefaultCommissionRate — доля платформы с выполненной записи.
var DefaultCommissionRate = decimal.RequireFromString("0.15")

const (
	guestClientID   = "guest"
	guestClientName = "Visitor"
)

// Данные клиента для новой записи.
// Service копируется в запись как снимок; наличие услуги у мастера не проверяется.
type BookingRequest struct {
	ClientID           string
	ClientName         string
	ProviderID         string
	Service            model.Service
	PaymentMethodLabel string
	Notes              string
}

// Пустые поля BookingFilter не фильтруют.
type BookingFilter struct {
	ClientID   string
	ProviderID string
	Status     model.BookingStatus
}

func (f BookingFilter) match(b model.Booking) bool {
	if f.ClientID != "" && b.ClientID != f.ClientID {
		return false
	}
	if f.ProviderID != "" && b.ProviderID != f.ProviderID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	return true
}

// итог setBookingStatus
type statusChange struct {
	Booking    model.Booking
	Previous   model.BookingStatus
	Commission decimal.Decimal
	Debited    bool
	Provider   upsertResult
}

// newBooking строит запись со снимком имени и цены услуги.
func newBooking(id string, date time.Time, req BookingRequest) model.Booking {
	b := model.Booking{ID: id, Date: date}
	b.ClientID = req.ClientID
	b.ClientName = req.ClientName
	if b.ClientID == "" {
		b.ClientID = guestClientID
	}
	if b.ClientName == "" {
		b.ClientName = guestClientName
	}
	b.ProviderID = req.ProviderID
	b.ServiceID = req.Service.ID
	b.ServiceName = req.Service.Name
	b.TotalPrice = req.Service.Price
	b.Status = model.BookingStatusPending
	b.PaymentMethodLabel = req.PaymentMethodLabel
	b.Notes = req.Notes
	return b
}

func (st *State) addBooking(b model.Booking) {
	st.Bookings = append(st.Bookings, b)
}

// setBookingStatus перезаписывает статус. Переход в COMPLETED из любого
// другого статуса списывает комиссию с кошелька мастера вместе со сменой
// статуса; повторный COMPLETED ничего не списывает.
func (st *State) setBookingStatus(id string, status model.BookingStatus, rate decimal.Decimal) (statusChange, bool) {
	i := st.bookingIndex(id)
	if i < 0 {
		return statusChange{}, false
	}
	b := &st.Bookings[i]
	ch := statusChange{Previous: b.Status}

	if status == model.BookingStatusCompleted && b.Status != model.BookingStatusCompleted {
		ch.Commission = b.TotalPrice.Mul(rate)
		if provider, ok := st.member(b.ProviderID); ok {
			balance := provider.WalletBalance.Sub(ch.Commission)
			ch.Provider = st.upsert(accountPatch{ID: provider.ID, WalletBalance: &balance})
			ch.Debited = true
		}
	}
	b.Status = status
	ch.Booking = *b
	return ch, true
}

// removeBookingsFor удаляет все записи, где id указан клиентом или мастером.
func (st *State) removeBookingsFor(id string) int {
	kept := st.Bookings[:0]
	removed := 0
	for _, b := range st.Bookings {
		if b.References(id) {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	st.Bookings = kept
	return removed
}

func (st *State) bookings(f BookingFilter) []model.Booking {
	var out []model.Booking
	for _, b := range st.Bookings {
		if f.match(b) {
			out = append(out, b)
		}
	}
	return out
}

// Stats — сводка для администратора. Считается на лету, не хранится.
type Stats struct {
	Members          int
	Bookings         int
	Revenue          decimal.Decimal // сумма TotalPrice по COMPLETED
	PlatformEarnings decimal.Decimal // Revenue × ставка комиссии
}

// Финансы одного мастера.
type ProviderStats struct {
	ProviderID    string
	Bookings      int
	Open          int // ещё не в конечном статусе
	Completed     int
	Revenue       decimal.Decimal
	WalletBalance decimal.Decimal
	InDebt        bool
}

func (st *State) stats(rate decimal.Decimal) Stats {
	s := Stats{
		Members:  len(st.Members),
		Bookings: len(st.Bookings),
		Revenue:  decimal.Zero,
	}
	for _, b := range st.Bookings {
		if b.Status == model.BookingStatusCompleted {
			s.Revenue = s.Revenue.Add(b.TotalPrice)
		}
	}
	s.PlatformEarnings = s.Revenue.Mul(rate)
	return s
}

func (st *State) providerStats(providerID string) ProviderStats {
	ps := ProviderStats{ProviderID: providerID, Revenue: decimal.Zero}
	for _, b := range st.Bookings {
		if b.ProviderID != providerID {
			continue
		}
		ps.Bookings++
		if !b.Status.Terminal() {
			ps.Open++
		}
		if b.Status == model.BookingStatusCompleted {
			ps.Completed++
			ps.Revenue = ps.Revenue.Add(b.TotalPrice)
		}
	}
	if p, ok := st.member(providerID); ok {
		ps.WalletBalance = p.WalletBalance
	}
	ps.InDebt = ps.WalletBalance.IsNegative()
	return ps
}
