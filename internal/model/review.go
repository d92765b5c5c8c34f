package model

import "time"

// Review — отзыв клиента о мастере. Только добавляется.
type Review struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"providerId"`
	ClientID   string    `json:"clientId"`
	ClientName string    `json:"clientName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Date       time.Time `json:"date"`
}
