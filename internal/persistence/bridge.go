// Package persistence связывает доменное состояние с долговременным
// хранилищем «ключ → строка». Состояние пишется целиком после каждого
// изменения и читается один раз при старте.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Leganyst/myhaircut/internal/marketplace"
	"github.com/Leganyst/myhaircut/internal/model"
	"github.com/Leganyst/myhaircut/internal/repository"
	"github.com/Leganyst/myhaircut/internal/seed"
)

// Ключи хранилища.
const (
	KeyLastPage         = "mhc_last_page"
	KeyMembers          = "mhc_all_members"
	KeyBookings         = "mhc_bookings"
	KeyReviews          = "mhc_reviews"
	KeyLoggedIn         = "mhc_isLoggedIn"
	KeyRole             = "mhc_userRole"
	KeyCurrentUser      = "mhc_currentUser"
	KeySelectedProvider = "mhc_selected_provider_id"
)

type Bridge struct {
	kv  repository.KVRepository
	log *zap.Logger
	now func() time.Time
}

func NewBridge(kv repository.KVRepository, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{kv: kv, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Save пишет полный снимок. Текущий пользователь удаляется из хранилища,
// когда сессии нет.
func (b *Bridge) Save(ctx context.Context, st marketplace.State) error {
	set := make(map[string]string, 8)

	if err := putJSON(set, KeyMembers, nonNil(st.Members)); err != nil {
		return err
	}
	if err := putJSON(set, KeyBookings, nonNil(st.Bookings)); err != nil {
		return err
	}
	if err := putJSON(set, KeyReviews, nonNil(st.Reviews)); err != nil {
		return err
	}
	set[KeyLastPage] = st.Page
	set[KeyLoggedIn] = strconv.FormatBool(st.Session.IsLoggedIn)
	set[KeyRole] = string(st.Session.Role)
	if st.SelectedProviderID != "" {
		set[KeySelectedProvider] = st.SelectedProviderID
	}

	var del []string
	if st.Session.CurrentUser != nil {
		if err := putJSON(set, KeyCurrentUser, st.Session.CurrentUser); err != nil {
			return err
		}
	} else {
		del = append(del, KeyCurrentUser)
	}

	if err := b.kv.WriteBatch(ctx, set, del); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Load восстанавливает состояние. Реестр — встроенные мастера, поверх
// которых накладываются сохранённые поля, плюс все прочие сохранённые
// записи. Записи и отзывы без сохранённых данных берутся из демо-набора.
func (b *Bridge) Load(ctx context.Context) (marketplace.State, error) {
	var st marketplace.State

	members, err := b.loadMembers(ctx)
	if err != nil {
		return st, err
	}
	st.Members = members

	found, err := b.getJSON(ctx, KeyBookings, &st.Bookings)
	if err != nil {
		return st, err
	}
	if !found {
		st.Bookings = seed.Bookings()
	}

	found, err = b.getJSON(ctx, KeyReviews, &st.Reviews)
	if err != nil {
		return st, err
	}
	if !found {
		st.Reviews = seed.Reviews(b.now())
	}

	if st.Page, err = b.getString(ctx, KeyLastPage); err != nil {
		return st, err
	}
	if st.Page == "" {
		st.Page = marketplace.PageHome
	}
	if st.SelectedProviderID, err = b.getString(ctx, KeySelectedProvider); err != nil {
		return st, err
	}

	if st.Session, err = b.loadSession(ctx); err != nil {
		return st, err
	}

	b.log.Info("state loaded",
		zap.Int("members", len(st.Members)),
		zap.Int("bookings", len(st.Bookings)),
		zap.Int("reviews", len(st.Reviews)),
		zap.Bool("logged_in", st.Session.IsLoggedIn),
	)
	return st, nil
}

func (b *Bridge) loadMembers(ctx context.Context) ([]model.Account, error) {
	combined := seed.Providers()

	raw, err := b.kv.Get(ctx, KeyMembers)
	if errors.Is(err, repository.ErrNotFound) {
		return combined, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	var saved []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	for _, item := range saved {
		var head struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(item, &head); err != nil {
			return nil, fmt.Errorf("decode member id: %w", err)
		}

		idx := -1
		for i := range combined {
			if combined[i].ID == head.ID {
				idx = i
				break
			}
		}
		if idx >= 0 {
			// сохранённые поля поверх встроенной записи
			if err := json.Unmarshal(item, &combined[idx]); err != nil {
				return nil, fmt.Errorf("decode member %s: %w", head.ID, err)
			}
			continue
		}

		var acc model.Account
		if err := json.Unmarshal(item, &acc); err != nil {
			return nil, fmt.Errorf("decode member %s: %w", head.ID, err)
		}
		combined = append(combined, acc)
	}
	return combined, nil
}

func (b *Bridge) loadSession(ctx context.Context) (model.Session, error) {
	flag, err := b.getString(ctx, KeyLoggedIn)
	if err != nil {
		return model.Session{}, err
	}
	if flag != "true" {
		return model.Session{}, nil
	}

	role, err := b.getString(ctx, KeyRole)
	if err != nil {
		return model.Session{}, err
	}
	var user model.Account
	found, err := b.getJSON(ctx, KeyCurrentUser, &user)
	if err != nil {
		return model.Session{}, err
	}
	if !found {
		return model.Session{}, nil
	}
	return model.Session{CurrentUser: &user, IsLoggedIn: true, Role: model.Role(role)}, nil
}

func (b *Bridge) getString(ctx context.Context, key string) (string, error) {
	v, err := b.kv.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return v, nil
}

func (b *Bridge) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	v, err := b.kv.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func putJSON(set map[string]string, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	set[key] = string(raw)
	return nil
}

// nonNil заставляет пустой список кодироваться как [], а не null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
