package marketplace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Leganyst/myhaircut/internal/journal"
	"github.com/Leganyst/myhaircut/internal/model"
)

// Store сохраняет полный снимок состояния после каждого изменения.
type Store interface {
	Save(ctx context.Context, st State) error
}

// Marketplace — движок домена. Все изменения сериализуются одним мьютексом:
// переход применяется к копии, копия сохраняется и только затем становится
// текущим состоянием.
type Marketplace struct {
	mu    sync.Mutex
	state State

	store   Store
	log     *zap.Logger
	journal *journal.Journal
	policy  Policy
	admin   AdminCredentials
	rate    decimal.Decimal
	now     func() time.Time
	newID   func() string
}

type Option func(*Marketplace)

func WithLogger(log *zap.Logger) Option {
	return func(m *Marketplace) {
		if log != nil {
			m.log = log
		}
	}
}

func WithJournal(j *journal.Journal) Option {
	return func(m *Marketplace) { m.journal = j }
}

func WithPolicy(p Policy) Option {
	return func(m *Marketplace) {
		if p != nil {
			m.policy = p
		}
	}
}

func WithAdmin(c AdminCredentials) Option {
	return func(m *Marketplace) { m.admin = c }
}

func WithCommissionRate(rate decimal.Decimal) Option {
	return func(m *Marketplace) { m.rate = rate }
}

func WithClock(now func() time.Time) Option {
	return func(m *Marketplace) { m.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Marketplace) { m.newID = newID }
}

// New создаёт движок поверх загруженного состояния. store может быть nil.
func New(initial State, store Store, opts ...Option) *Marketplace {
	m := &Marketplace{
		state:  initial.Clone(),
		store:  store,
		log:    zap.NewNop(),
		policy: OpenPolicy{},
		rate:   DefaultCommissionRate,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.state.Page == "" {
		m.state.Page = PageHome
	}
	return m
}

// mutate применяет fn к копии состояния, сохраняет её и публикует.
// errNoop от fn означает «ничего не изменилось» и не является ошибкой.
func (m *Marketplace) mutate(ctx context.Context, fn func(st *State, actor model.Account) ([]journal.Entry, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	actor := m.state.Session.Actor()
	next := m.state.Clone()
	entries, err := fn(&next, actor)
	if err != nil {
		if errors.Is(err, errNoop) {
			return nil
		}
		return err
	}

	if m.store != nil {
		if err := m.store.Save(ctx, next); err != nil {
			m.log.Error("persist state", zap.Error(err))
			return fmt.Errorf("persist state: %w", err)
		}
	}
	m.state = next

	for i := range entries {
		if entries[i].ActorID == "" {
			entries[i].ActorID = actor.ID
		}
	}
	m.journal.Record(ctx, entries...)
	return nil
}

func (m *Marketplace) read(fn func(st *State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.state)
}

// ---- Identity & Session ----

// Login разрешает вход: служебный администратор, существующая запись
// по email или автоматическая регистрация с запрошенной ролью.
func (m *Marketplace) Login(ctx context.Context, requested model.Role, email, password string) (model.Account, error) {
	var out loginOutcome
	email = normalizeEmail(email)
	isAdmin := m.admin.Match(email, password)

	err := m.mutate(ctx, func(st *State, _ model.Account) ([]journal.Entry, error) {
		if isAdmin {
			out = st.loginAdmin(m.admin.account(email))
		} else {
			var err error
			out, err = st.loginMember(requested, email, m.newID())
			if err != nil {
				return nil, err
			}
		}

		entries := []journal.Entry{{
			Type:      model.EventTypeLogin,
			ActorID:   out.Account.ID,
			SubjectID: out.Account.ID,
			Details:   map[string]any{"role": string(st.Session.Role), "admin": out.Admin},
		}}
		if out.Created {
			entries = append([]journal.Entry{{
				Type:      model.EventTypeAccountCreated,
				ActorID:   out.Account.ID,
				SubjectID: out.Account.ID,
				Details:   map[string]any{"role": string(out.Account.Role)},
			}}, entries...)
		}
		return entries, nil
	})
	if err != nil {
		if errors.Is(err, ErrAccountSuspended) {
			m.journal.Record(ctx, journal.Entry{
				Type:      model.EventTypeLoginRejected,
				SubjectID: out.Account.ID,
				Details:   map[string]any{"reason": "suspended"},
			})
		}
		return model.Account{}, err
	}
	return out.Account, nil
}

// Logout закрывает сессию безусловно.
func (m *Marketplace) Logout(ctx context.Context) error {
	return m.mutate(ctx, func(st *State, actor model.Account) ([]journal.Entry, error) {
		wasLoggedIn := st.Session.IsLoggedIn
		st.logout()
		if !wasLoggedIn {
			return nil, nil
		}
		return []journal.Entry{{Type: model.EventTypeLogout, SubjectID: actor.ID}}, nil
	})
}

// Session возвращает копию текущей сессии.
func (m *Marketplace) Session() model.Session {
	var s model.Session
	m.read(func(st *State) { s = st.Session.Clone() })
	return s
}

// ---- Member Registry ----

// UpdateProfile применяет правку профиля. Неизвестный id игнорируется.
func (m *Marketplace) UpdateProfile(ctx context.Context, id string, p model.ProfilePatch) error {
	if p.Empty() {
		return nil
	}
	return m.mutate(ctx, func(st *State, _ model.Account) ([]journal.Entry, error) {
		if st.memberIndex(id) < 0 {
			return nil, errNoop
		}
		st.upsert(accountPatch{ID: id, Name: p.Name, AvatarRef: p.AvatarRef, Bio: p.Bio})
		return []journal.Entry{{Type: model.EventTypeAccountUpdated, SubjectID: id}}, nil
	})
}

// SetActive включает или отключает учётную запись. Отключение текущего
// пользователя закрывает его сессию в той же операции.
func (m *Marketplace) SetActive(ctx context.Context, id string, active bool) error {
	return m.mutate(ctx, func(st *State, actor model.Account) ([]journal.Entry, error) {
		if !m.policy.CanManageAccounts(actor) {
			return nil, ErrForbidden
		}
		res, ok := st.setActive(id, active)
		if !ok {
			return nil, errNoop
		}
		if res.WasActive == active && !res.ForcedLogout {
			return nil, nil
		}
		typ := model.EventTypeAccountSuspended
		if active {
			typ = model.EventTypeAccountReactivated
		}
		return []journal.Entry{{
			Type:      typ,
			SubjectID: id,
			Details:   map[string]any{"forced_logout": res.ForcedLogout},
		}}, nil
	})
}

// DeleteMember удаляет учётную запись и все записи на услуги, где она участвует.
func (m *Marketplace) DeleteMember(ctx context.Context, id string) error {
	return m.mutate(ctx, func(st *State, actor model.Account) ([]journal.Entry, error) {
		if !m.policy.CanManageAccounts(actor) {
			return nil, ErrForbidden
		}
		removed, forced, found := st.deleteAccount(id)
		if !found && removed == 0 {
			return nil, errNoop
		}
		return []journal.Entry{{
			Type:      model.EventTypeAccountDeleted,
			SubjectID: id,
			Details:   map[string]any{"removed_bookings": removed, "forced_logout": forced, "registered": found},
		}}, nil
	})
}

// Member ищет запись по id.
func (m *Marketplace) Member(id string) (model.Account, bool) {
	var (
		acc model.Account
		ok  bool
	)
	m.read(func(st *State) {
		acc, ok = st.member(id)
		acc = acc.Clone()
	})
	return acc, ok
}

// MemberByEmail ищет запись по email без учёта регистра.
func (m *Marketplace) MemberByEmail(email string) (model.Account, bool) {
	var (
		acc model.Account
		ok  bool
	)
	m.read(func(st *State) {
		acc, ok = st.memberByEmail(email)
		acc = acc.Clone()
	})
	return acc, ok
}

// Members возвращает все учётные записи; filter: подстрока имени или email без учёта регистра.
func (m *Marketplace) Members(filter string) []model.Account {
	filter = strings.ToLower(strings.TrimSpace(filter))
	var out []model.Account
	m.read(func(st *State) {
		for _, a := range st.Members {
			if filter == "" ||
				strings.Contains(strings.ToLower(a.Name), filter) ||
				strings.Contains(strings.ToLower(a.Email), filter) {
				out = append(out, a.Clone())
			}
		}
	})
	return out
}

// Providers возвращает активных мастеров для клиентских списков.
func (m *Marketplace) Providers() []model.Account {
	var out []model.Account
	m.read(func(st *State) { out = st.providers() })
	return out
}

// ---- Booking Ledger ----

// CreateBooking создаёт запись в статусе PENDING со снимком услуги.
func (m *Marketplace) CreateBooking(ctx context.Context, req BookingRequest) (model.Booking, error) {
	var b model.Booking
	err := m.mutate(ctx, func(st *State, _ model.Account) ([]journal.Entry, error) {
		b = newBooking(m.newID(), m.now(), req)
		st.addBooking(b)
		return []journal.Entry{{
			Type:      model.EventTypeBookingCreated,
			SubjectID: b.ProviderID,
			BookingID: b.ID,
			Details: map[string]any{
				"client_id":   b.ClientID,
				"service_id":  b.ServiceID,
				"total_price": b.TotalPrice.String(),
			},
		}}, nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// SetBookingStatus меняет статус записи. Неизвестный id игнорируется.
// Переходы не ограничиваются; повторный COMPLETED комиссию не списывает.
func (m *Marketplace) SetBookingStatus(ctx context.Context, id string, status model.BookingStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown booking status %q", ErrInvalidArgument, status)
	}
	return m.mutate(ctx, func(st *State, _ model.Account) ([]journal.Entry, error) {
		ch, ok := st.setBookingStatus(id, status, m.rate)
		if !ok {
			return nil, errNoop
		}
		entries := []journal.Entry{{
			Type:      model.EventTypeBookingUpdated,
			SubjectID: ch.Booking.ProviderID,
			BookingID: id,
			Details:   map[string]any{"from": string(ch.Previous), "to": string(status)},
		}}
		if ch.Debited {
			entries = append(entries, journal.Entry{
				Type:      model.EventTypeCommissionDebited,
				SubjectID: ch.Booking.ProviderID,
				BookingID: id,
				Details: map[string]any{
					"commission":     ch.Commission.String(),
					"wallet_balance": ch.Provider.Account.WalletBalance.String(),
				},
			})
		}
		return entries, nil
	})
}

// CancelBooking отменяет запись со стороны клиента.
func (m *Marketplace) CancelBooking(ctx context.Context, id string) error {
	return m.SetBookingStatus(ctx, id, model.BookingStatusCancelled)
}

// Booking ищет запись по id.
func (m *Marketplace) Booking(id string) (model.Booking, bool) {
	var (
		b  model.Booking
		ok bool
	)
	m.read(func(st *State) {
		if i := st.bookingIndex(id); i >= 0 {
			b, ok = st.Bookings[i], true
		}
	})
	return b, ok
}

// Bookings возвращает записи по фильтру в порядке создания.
func (m *Marketplace) Bookings(f BookingFilter) []model.Booking {
	var out []model.Booking
	m.read(func(st *State) { out = st.bookings(f) })
	return out
}

// PlatformStats считает сводку по всей площадке.
func (m *Marketplace) PlatformStats() Stats {
	var s Stats
	m.read(func(st *State) { s = st.stats(m.rate) })
	return s
}

// ProviderStats считает финансы мастера.
func (m *Marketplace) ProviderStats(providerID string) ProviderStats {
	var s ProviderStats
	m.read(func(st *State) { s = st.providerStats(providerID) })
	return s
}

// ---- Review Aggregator ----

// AddReview добавляет отзыв и пересчитывает рейтинг мастера.
// id и дата проставляются, если не заданы.
func (m *Marketplace) AddReview(ctx context.Context, r model.Review) (model.Review, error) {
	if err := m.policy.ValidateReview(r); err != nil {
		return model.Review{}, err
	}
	err := m.mutate(ctx, func(st *State, _ model.Account) ([]journal.Entry, error) {
		if r.ID == "" {
			r.ID = m.newID()
		}
		if r.Date.IsZero() {
			r.Date = m.now()
		}
		res := st.addReview(r)
		return []journal.Entry{{
			Type:      model.EventTypeReviewAdded,
			SubjectID: r.ProviderID,
			Details: map[string]any{
				"rating":       r.Rating,
				"new_rating":   res.Account.Rating,
				"review_count": res.Account.ReviewCount,
			},
		}}, nil
	})
	if err != nil {
		return model.Review{}, err
	}
	return r, nil
}

// Reviews возвращает отзывы о мастере в порядке добавления.
func (m *Marketplace) Reviews(providerID string) []model.Review {
	var out []model.Review
	m.read(func(st *State) { out = st.reviewsFor(providerID) })
	return out
}

// ---- Provider Catalog Editor ----

// AddService добавляет услугу в каталог мастера. Неизвестный мастер — no-op
// с нулевым результатом.
func (m *Marketplace) AddService(ctx context.Context, providerID, name string, price decimal.Decimal, duration int) (model.Service, error) {
	svc := model.Service{Name: name, Price: price, Duration: duration}
	if err := m.policy.ValidateService(svc); err != nil {
		return model.Service{}, err
	}
	added := false
	err := m.mutate(ctx, func(st *State, actor model.Account) ([]journal.Entry, error) {
		if !m.policy.CanEditProvider(actor, providerID) {
			return nil, ErrForbidden
		}
		svc.ID = m.newID()
		if _, ok := st.addService(providerID, svc); !ok {
			return nil, errNoop
		}
		added = true
		return catalogEntry(providerID, "add_service", svc.ID), nil
	})
	if err != nil || !added {
		return model.Service{}, err
	}
	return svc, nil
}

func (m *Marketplace) RemoveService(ctx context.Context, providerID, serviceID string) error {
	return m.mutate(ctx, func(st *State, actor model.Account) ([]journal.Entry, error) {
		if !m.policy.CanEditProvider(actor, providerID) {
			return nil, ErrForbidden
		}
		if _, ok := st.removeService(providerID, serviceID); !ok {
			return nil, errNoop
		}
		return catalogEntry(providerID, "remove_service", serviceID), nil
	})
}

func (m *Marketplace) AddGalleryImage(ctx context.Context, providerID, ref string) error {
	return m.mutate(ctx, func(st *State, actor model.Account) ([]journal.Entry, error) {
		if !m.policy.CanEditProvider(actor, providerID) {
			return nil, ErrForbidden
		}
		if _, ok := st.addGalleryImage(providerID, ref); !ok {
			return nil, errNoop
		}
		return catalogEntry(providerID, "add_image", ""), nil
	})
}

// RemoveGalleryImage удаляет изображение по позиции в галерее.
func (m *Marketplace) RemoveGalleryImage(ctx context.Context, providerID string, index int) error {
	return m.mutate(ctx, func(st *State, actor model.Account) ([]journal.Entry, error) {
		if !m.policy.CanEditProvider(actor, providerID) {
			return nil, ErrForbidden
		}
		if _, ok := st.removeGalleryImage(providerID, index); !ok {
			return nil, errNoop
		}
		return catalogEntry(providerID, "remove_image", ""), nil
	})
}

func catalogEntry(providerID, op, serviceID string) []journal.Entry {
	d := map[string]any{"op": op}
	if serviceID != "" {
		d["service_id"] = serviceID
	}
	return []journal.Entry{{Type: model.EventTypeCatalogUpdated, SubjectID: providerID, Details: d}}
}

// ---- Navigation ----

// Navigate запоминает последнюю открытую страницу.
func (m *Marketplace) Navigate(ctx context.Context, page string) error {
	page = strings.TrimSpace(page)
	if page == "" {
		return fmt.Errorf("%w: page is required", ErrInvalidArgument)
	}
	return m.mutate(ctx, func(st *State, _ model.Account) ([]journal.Entry, error) {
		if st.Page == page {
			return nil, errNoop
		}
		st.Page = page
		return nil, nil
	})
}

// SelectProvider запоминает выбранного мастера и открывает его профиль.
func (m *Marketplace) SelectProvider(ctx context.Context, providerID string) error {
	return m.mutate(ctx, func(st *State, _ model.Account) ([]journal.Entry, error) {
		st.SelectedProviderID = providerID
		st.Page = PageProfile
		return nil, nil
	})
}

// SelectedProvider — выбранный активный мастер; если он недоступен,
// первый активный мастер.
func (m *Marketplace) SelectedProvider() (model.Account, bool) {
	var (
		acc model.Account
		ok  bool
	)
	m.read(func(st *State) {
		providers := st.providers()
		for _, p := range providers {
			if p.ID == st.SelectedProviderID {
				acc, ok = p, true
				return
			}
		}
		if len(providers) > 0 {
			acc, ok = providers[0], true
		}
	})
	return acc, ok
}

// Последняя открытая страница.
func (m *Marketplace) Page() string {
	var p string
	m.read(func(st *State) { p = st.Page })
	return p
}

// Действующая ставка комиссии.
func (m *Marketplace) CommissionRate() decimal.Decimal { return m.rate }
