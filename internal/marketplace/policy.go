package marketplace

import (
	"fmt"

	"github.com/Leganyst/myhaircut/internal/model"
)

// Policy — точки расширения для авторизации и валидации.
// actor — текущий пользователь сессии; для гостя это пустая запись.
type Policy interface {
	CanEditProvider(actor model.Account, providerID string) bool
	CanManageAccounts(actor model.Account) bool
	ValidateService(svc model.Service) error
	ValidateReview(r model.Review) error
}

// OpenPolicy разрешает всё и ничего не проверяет.
type OpenPolicy struct{}

func (OpenPolicy) CanEditProvider(model.Account, string) bool { return true }
func (OpenPolicy) CanManageAccounts(model.Account) bool       { return true }
func (OpenPolicy) ValidateService(model.Service) error        { return nil }
func (OpenPolicy) ValidateReview(model.Review) error          { return nil }

// StrictPolicy: каталог правит только сам мастер или администратор,
// учётными записями управляет только администратор.
type StrictPolicy struct{}

func (StrictPolicy) CanEditProvider(actor model.Account, providerID string) bool {
	if actor.ID == "" {
		return false
	}
	return actor.Role == model.RoleAdmin || actor.ID == providerID
}

func (StrictPolicy) CanManageAccounts(actor model.Account) bool {
	return actor.ID != "" && actor.Role == model.RoleAdmin
}

func (StrictPolicy) ValidateService(svc model.Service) error {
	switch {
	case svc.Name == "":
		return fmt.Errorf("%w: service name is required", ErrInvalidArgument)
	case svc.Price.IsNegative():
		return fmt.Errorf("%w: service price must not be negative", ErrInvalidArgument)
	case svc.Duration <= 0:
		return fmt.Errorf("%w: service duration must be positive", ErrInvalidArgument)
	}
	return nil
}

func (StrictPolicy) ValidateReview(r model.Review) error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be within 1..5", ErrInvalidArgument)
	}
	return nil
}
