package marketplace

import "errors"

var (
	// ErrAccountSuspended — вход в отключённую учётную запись.
	ErrAccountSuspended = errors.New("account is suspended")
	// ErrForbidden — политика доступа запретила действие.
	ErrForbidden = errors.New("action not permitted")
	// ErrInvalidArgument — некорректные входные данные.
	ErrInvalidArgument = errors.New("invalid argument")

	// errNoop — переход ничего не изменил; сохранять нечего.
	errNoop = errors.New("no state change")
)
