package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Тип события журнала.
type EventType string

const (
	EventTypeLogin              EventType = "login"
	EventTypeLoginRejected      EventType = "login_rejected"
	EventTypeLogout             EventType = "logout"
	EventTypeAccountCreated     EventType = "account_created"
	EventTypeAccountUpdated     EventType = "account_updated"
	EventTypeAccountSuspended   EventType = "account_suspended"
	EventTypeAccountReactivated EventType = "account_reactivated"
	EventTypeAccountDeleted     EventType = "account_deleted"
	EventTypeBookingCreated     EventType = "booking_created"
	EventTypeBookingUpdated     EventType = "booking_updated"
	EventTypeCommissionDebited  EventType = "commission_debited"
	EventTypeReviewAdded        EventType = "review_added"
	EventTypeCatalogUpdated     EventType = "catalog_updated"
)

// events — журнал доменных событий.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;index"`

	// Кто совершил действие (пусто для гостя) и над кем.
	ActorID   string `gorm:"type:varchar(64);index"`
	SubjectID string `gorm:"type:varchar(64);index"`
	BookingID string `gorm:"type:varchar(64);index"`

	Details datatypes.JSON
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
