package model

import "strings"

// Role — роль учётной записи. Назначается при создании и больше не меняется.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole нормализует строковое представление роли.
// Пустая строка и неизвестные значения дают false.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleClient:
		return RoleClient, true
	case RoleProvider:
		return RoleProvider, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}
