package marketplace

import (
	"crypto/subtle"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Leganyst/myhaircut/internal/model"
)

// AdminCredentials — внешняя конфигурация служебного входа администратора.
// Пустой Emails отключает этот путь полностью.
type AdminCredentials struct {
	Emails       []string
	Password     string
	PasswordHash string // bcrypt; если задан, Password не используется
	ID           string
	Name         string
}

// Match сообщает, совпадают ли email (уже в нижнем регистре) и пароль
// с административными.
func (c AdminCredentials) Match(email, password string) bool {
	if password == "" || !c.listed(email) {
		return false
	}
	if c.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	}
	if c.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
}

func (c AdminCredentials) listed(email string) bool {
	for _, e := range c.Emails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

// account строит запись администратора для данного email.
func (c AdminCredentials) account(email string) model.Account {
	id := c.ID
	if id == "" {
		id = "admin"
	}
	name := c.Name
	if name == "" {
		name = "Administrateur"
	}
	return model.Account{
		ID:         id,
		Name:       name,
		Email:      email,
		Role:       model.RoleAdmin,
		IsVerified: true,
		IsActive:   true,
		AvatarRef:  "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=8B5CF6&color=fff",
	}
}
