package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Account — учётная запись платформы: клиент, мастер (provider) или администратор.
// Поля Bio, Rating, ReviewCount, Services, Gallery и Availability имеют смысл только для мастера.
type Account struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	AvatarRef  string `json:"avatar"`
	Role       Role   `json:"role"`
	IsVerified bool   `json:"isVerified"`
	IsActive   bool   `json:"isActive"`

	// Долг по комиссии накапливается как отрицательный баланс.
	WalletBalance decimal.Decimal `json:"walletBalance"`

	Bio         string    `json:"bio"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	Services    []Service `json:"services"`
	Gallery     []string  `json:"gallery"`
	// Часы работы свободным текстом, например «Lundi - Samedi: 09:00 - 20:00».
	Availability []string `json:"availability,omitempty"`
}

// UnmarshalJSON декодирует запись поверх текущего значения получателя.
// Отсутствующий isActive трактуется как активная учётная запись.
func (a *Account) UnmarshalJSON(b []byte) error {
	type plain Account
	aux := struct {
		*plain
		IsActive *bool `json:"isActive"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.IsActive != nil {
		a.IsActive = *aux.IsActive
	} else {
		a.IsActive = true
	}
	return nil
}

// IsProvider сообщает, является ли учётная запись мастером.
func (a Account) IsProvider() bool { return a.Role == RoleProvider }

// Clone возвращает копию без общих срезов.
func (a Account) Clone() Account {
	c := a
	if a.Services != nil {
		c.Services = append([]Service(nil), a.Services...)
	}
	if a.Gallery != nil {
		c.Gallery = append([]string(nil), a.Gallery...)
	}
	if a.Availability != nil {
		c.Availability = append([]string(nil), a.Availability...)
	}
	return c
}

// ProfilePatch — поля профиля, которые пользователь может менять сам.
// nil означает «не трогать».
type ProfilePatch struct {
	Name      *string
	AvatarRef *string
	Bio       *string
}

// Empty сообщает, что патч ничего не меняет.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.AvatarRef == nil && p.Bio == nil
}
