package model

import "github.com/shopspring/decimal"

// Service — услуга из каталога мастера. Отдельной идентичности вне списка
// мастера не имеет.
type Service struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration int             `json:"duration"` // минут
}
