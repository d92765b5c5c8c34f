package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusDeclined  BookingStatus = "DECLINED"
)

// Valid сообщает, входит ли статус в известный набор.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted,
		BookingStatusCancelled, BookingStatusDeclined:
		return true
	}
	return false
}

// Terminal — конечные статусы: запись больше не ждёт действий мастера.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled || s == BookingStatusDeclined
}

// Booking — запись клиента к мастеру.
// ServiceName и TotalPrice — снимки на момент создания и не следуют
// за последующими правками каталога.
type Booking struct {
	ID                 string          `json:"id"`
	ClientID           string          `json:"clientId"`
	ClientName         string          `json:"clientName,omitempty"`
	ProviderID         string          `json:"providerId"`
	ServiceID          string          `json:"serviceId"`
	ServiceName        string          `json:"serviceName,omitempty"`
	Date               time.Time       `json:"date"`
	Status             BookingStatus   `json:"status"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	PaymentMethodLabel string          `json:"paymentMethod,omitempty"`
	Notes              string          `json:"notes,omitempty"`
}

// References сообщает, участвует ли учётная запись в записи как клиент или мастер.
func (b Booking) References(accountID string) bool {
	return b.ClientID == accountID || b.ProviderID == accountID
}
