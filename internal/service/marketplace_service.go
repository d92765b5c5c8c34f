package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Leganyst/myhaircut/internal/advice"
	"github.com/Leganyst/myhaircut/internal/marketplace"
	"github.com/Leganyst/myhaircut/internal/model"
)

// Advisor — текстовый советник по стрижкам.
type Advisor interface {
	Advise(ctx context.Context, face advice.FaceShape, hair advice.HairType, occasion advice.Occasion) string
}

// ActivityLog отдаёт журнал событий участника.
type ActivityLog interface {
	ListByAccount(ctx context.Context, accountID string, limit int) ([]model.Event, error)
}

// MarketplaceService реализует gRPC-сервис поверх доменного ядра.
type MarketplaceService struct {
	mp       *marketplace.Marketplace
	advisor  Advisor
	activity ActivityLog
	log      *zap.Logger
}

var _ MarketplaceServer = (*MarketplaceService)(nil)

func NewMarketplaceService(mp *marketplace.Marketplace, advisor Advisor, activity ActivityLog, log *zap.Logger) *MarketplaceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MarketplaceService{mp: mp, advisor: advisor, activity: activity, log: log}
}

// toStatus переводит доменные ошибки в gRPC-коды.
func (s *MarketplaceService) toStatus(op string, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, marketplace.ErrInvalidArgument):
		return status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	case errors.Is(err, marketplace.ErrAccountSuspended), errors.Is(err, marketplace.ErrForbidden):
		return status.Errorf(codes.PermissionDenied, "%s: %v", op, err)
	default:
		s.log.Error("rpc failed", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s: %v", op, err)
	}
}

// ---- Identity & Session ----

// Login: {role, email, password?} -> {user, session}.
func (s *MarketplaceService) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("email"); err != nil {
		return nil, err
	}
	role := model.RoleClient
	if a.has("role") {
		r, ok := model.ParseRole(a.str("role"))
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "unknown role %q", a.str("role"))
		}
		role = r
	}

	acc, err := s.mp.Login(ctx, role, a.str("email"), a.f["password"].GetStringValue())
	if err != nil {
		return nil, s.toStatus("login", err)
	}
	return newStruct(map[string]any{
		"user":    accountMap(acc),
		"session": sessionMap(s.mp.Session(), s.mp.Page()),
	})
}

func (s *MarketplaceService) Logout(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := s.mp.Logout(ctx); err != nil {
		return nil, s.toStatus("logout", err)
	}
	return empty()
}

func (s *MarketplaceService) GetSession(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return newStruct(sessionMap(s.mp.Session(), s.mp.Page()))
}

// ---- Member Registry ----

func (s *MarketplaceService) ListProviders(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return newStruct(pageOf(argsOf(req), s.mp.Providers(), "providers", accountMap))
}

// ListMembers: {filter?, page?, page_size?}, административный список.
func (s *MarketplaceService) ListMembers(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	return newStruct(pageOf(a, s.mp.Members(a.str("filter")), "members", accountMap))
}

// GetMember: {id} или {email}.
func (s *MarketplaceService) GetMember(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	var (
		acc model.Account
		ok  bool
	)
	switch {
	case a.str("id") != "":
		acc, ok = s.mp.Member(a.str("id"))
	case a.str("email") != "":
		acc, ok = s.mp.MemberByEmail(a.str("email"))
	default:
		return nil, status.Error(codes.InvalidArgument, "id or email is required")
	}
	if !ok {
		return nil, status.Error(codes.NotFound, "member not found")
	}
	return newStruct(accountMap(acc))
}

// UpdateProfile: {id, name?, avatar?, bio?}.
func (s *MarketplaceService) UpdateProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("id"); err != nil {
		return nil, err
	}
	patch := model.ProfilePatch{
		Name:      a.optStr("name"),
		AvatarRef: a.optStr("avatar"),
		Bio:       a.optStr("bio"),
	}
	if err := s.mp.UpdateProfile(ctx, a.str("id"), patch); err != nil {
		return nil, s.toStatus("update profile", err)
	}
	return s.memberOrEmpty(a.str("id"))
}

// SetMemberActive: {id, active}.
func (s *MarketplaceService) SetMemberActive(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("id"); err != nil {
		return nil, err
	}
	if !a.has("active") {
		return nil, status.Error(codes.InvalidArgument, "active is required")
	}
	if err := s.mp.SetActive(ctx, a.str("id"), a.boolean("active")); err != nil {
		return nil, s.toStatus("set active", err)
	}
	return s.memberOrEmpty(a.str("id"))
}

func (s *MarketplaceService) DeleteMember(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("id"); err != nil {
		return nil, err
	}
	if err := s.mp.DeleteMember(ctx, a.str("id")); err != nil {
		return nil, s.toStatus("delete member", err)
	}
	return empty()
}

// memberOrEmpty: неизвестный id даёт пустой ответ, а не NotFound.
func (s *MarketplaceService) memberOrEmpty(id string) (*structpb.Struct, error) {
	acc, ok := s.mp.Member(id)
	if !ok {
		return empty()
	}
	return newStruct(accountMap(acc))
}

// ---- Booking Ledger ----

// CreateBooking: {client_id?, client_name?, provider_id, service_id, payment_method?, notes?}.
// Снимок услуги берётся из текущего каталога мастера; можно передать
// service_name/price явно, тогда каталог не используется.
func (s *MarketplaceService) CreateBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("provider_id", "service_id"); err != nil {
		return nil, err
	}

	svc, err := s.bookedService(a)
	if err != nil {
		return nil, err
	}

	b, err := s.mp.CreateBooking(ctx, marketplace.BookingRequest{
		ClientID:           a.str("client_id"),
		ClientName:         a.str("client_name"),
		ProviderID:         a.str("provider_id"),
		Service:            svc,
		PaymentMethodLabel: a.str("payment_method"),
		Notes:              a.str("notes"),
	})
	if err != nil {
		return nil, s.toStatus("create booking", err)
	}
	return newStruct(bookingMap(b))
}

func (s *MarketplaceService) bookedService(a args) (model.Service, error) {
	serviceID := a.str("service_id")
	if a.has("price") {
		price, err := a.money("price")
		if err != nil {
			return model.Service{}, err
		}
		return model.Service{ID: serviceID, Name: a.str("service_name"), Price: price}, nil
	}

	provider, ok := s.mp.Member(a.str("provider_id"))
	if !ok {
		return model.Service{}, status.Error(codes.NotFound, "provider not found")
	}
	for _, svc := range provider.Services {
		if svc.ID == serviceID {
			return svc, nil
		}
	}
	return model.Service{}, status.Error(codes.NotFound, "service not found")
}

// UpdateBookingStatus: {id, status}.
func (s *MarketplaceService) UpdateBookingStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("id", "status"); err != nil {
		return nil, err
	}
	if err := s.mp.SetBookingStatus(ctx, a.str("id"), model.BookingStatus(a.str("status"))); err != nil {
		return nil, s.toStatus("update booking status", err)
	}
	return s.bookingOrEmpty(a.str("id"))
}

func (s *MarketplaceService) CancelBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("id"); err != nil {
		return nil, err
	}
	if err := s.mp.CancelBooking(ctx, a.str("id")); err != nil {
		return nil, s.toStatus("cancel booking", err)
	}
	return s.bookingOrEmpty(a.str("id"))
}

func (s *MarketplaceService) bookingOrEmpty(id string) (*structpb.Struct, error) {
	b, ok := s.mp.Booking(id)
	if !ok {
		return empty()
	}
	return newStruct(bookingMap(b))
}

// ListBookings: {client_id?, provider_id?, status?, page?, page_size?}.
func (s *MarketplaceService) ListBookings(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	filter := marketplace.BookingFilter{
		ClientID:   a.str("client_id"),
		ProviderID: a.str("provider_id"),
		Status:     model.BookingStatus(a.str("status")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "unknown booking status %q", filter.Status)
	}
	return newStruct(pageOf(a, s.mp.Bookings(filter), "bookings", bookingMap))
}

func (s *MarketplaceService) PlatformStats(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	m := statsMap(s.mp.PlatformStats())
	m["commission_rate"] = s.mp.CommissionRate().String()
	return newStruct(m)
}

func (s *MarketplaceService) ProviderStats(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("provider_id"); err != nil {
		return nil, err
	}
	if _, ok := s.mp.Member(a.str("provider_id")); !ok {
		return nil, status.Error(codes.NotFound, "provider not found")
	}
	return newStruct(providerStatsMap(s.mp.ProviderStats(a.str("provider_id"))))
}

// ---- Review Aggregator ----

// AddReview: {provider_id, client_id?, client_name?, rating, comment?}.
func (s *MarketplaceService) AddReview(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("provider_id"); err != nil {
		return nil, err
	}
	r, err := s.mp.AddReview(ctx, model.Review{
		ProviderID: a.str("provider_id"),
		ClientID:   a.str("client_id"),
		ClientName: a.str("client_name"),
		Rating:     a.integer("rating"),
		Comment:    a.str("comment"),
	})
	if err != nil {
		return nil, s.toStatus("add review", err)
	}
	return newStruct(reviewMap(r))
}

func (s *MarketplaceService) ListReviews(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("provider_id"); err != nil {
		return nil, err
	}
	return newStruct(pageOf(a, s.mp.Reviews(a.str("provider_id")), "reviews", reviewMap))
}

// ---- Provider Catalog Editor ----

// AddService: {provider_id, name, price, duration}.
func (s *MarketplaceService) AddService(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("provider_id"); err != nil {
		return nil, err
	}
	price, err := a.money("price")
	if err != nil {
		return nil, err
	}
	svc, err := s.mp.AddService(ctx, a.str("provider_id"), a.str("name"), price, a.integer("duration"))
	if err != nil {
		return nil, s.toStatus("add service", err)
	}
	if svc.ID == "" {
		return empty()
	}
	return newStruct(serviceMap(svc))
}

func (s *MarketplaceService) RemoveService(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("provider_id", "service_id"); err != nil {
		return nil, err
	}
	if err := s.mp.RemoveService(ctx, a.str("provider_id"), a.str("service_id")); err != nil {
		return nil, s.toStatus("remove service", err)
	}
	return s.memberOrEmpty(a.str("provider_id"))
}

// AddGalleryImage: {provider_id, image}.
func (s *MarketplaceService) AddGalleryImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("provider_id", "image"); err != nil {
		return nil, err
	}
	if err := s.mp.AddGalleryImage(ctx, a.str("provider_id"), a.str("image")); err != nil {
		return nil, s.toStatus("add gallery image", err)
	}
	return s.memberOrEmpty(a.str("provider_id"))
}

// RemoveGalleryImage: {provider_id, index}.
func (s *MarketplaceService) RemoveGalleryImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("provider_id"); err != nil {
		return nil, err
	}
	if !a.has("index") {
		return nil, status.Error(codes.InvalidArgument, "index is required")
	}
	if err := s.mp.RemoveGalleryImage(ctx, a.str("provider_id"), a.integer("index")); err != nil {
		return nil, s.toStatus("remove gallery image", err)
	}
	return s.memberOrEmpty(a.str("provider_id"))
}

// ---- Navigation & advice ----

func (s *MarketplaceService) Navigate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := s.mp.Navigate(ctx, a.str("page")); err != nil {
		return nil, s.toStatus("navigate", err)
	}
	return newStruct(map[string]any{"page": s.mp.Page()})
}

// SelectProvider: {provider_id} -> выбранный мастер (или первый доступный).
func (s *MarketplaceService) SelectProvider(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("provider_id"); err != nil {
		return nil, err
	}
	if err := s.mp.SelectProvider(ctx, a.str("provider_id")); err != nil {
		return nil, s.toStatus("select provider", err)
	}
	p, ok := s.mp.SelectedProvider()
	if !ok {
		return nil, status.Error(codes.NotFound, "no active providers")
	}
	return newStruct(map[string]any{"page": s.mp.Page(), "provider": accountMap(p)})
}

// StyleAdvice: {face_shape, hair_type, occasion} -> {advice}. Советник не падает.
func (s *MarketplaceService) StyleAdvice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	face, ok := advice.ParseFaceShape(a.str("face_shape"))
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown face_shape %q", a.str("face_shape"))
	}
	hair, ok := advice.ParseHairType(a.str("hair_type"))
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown hair_type %q", a.str("hair_type"))
	}
	occasion, ok := advice.ParseOccasion(a.str("occasion"))
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown occasion %q", a.str("occasion"))
	}

	text := advice.FallbackNotConfigured
	if s.advisor != nil {
		text = s.advisor.Advise(ctx, face, hair, occasion)
	}
	return newStruct(map[string]any{"advice": text})
}

const maxActivity = 100

func (s *MarketplaceService) ListActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a := argsOf(req)
	if err := a.required("account_id"); err != nil {
		return nil, err
	}
	if s.activity == nil {
		return nil, status.Error(codes.Unavailable, "activity log is not configured")
	}
	limit := a.integer("limit")
	if limit <= 0 || limit > maxActivity {
		limit = maxActivity
	}
	events, err := s.activity.ListByAccount(ctx, a.str("account_id"), limit)
	if err != nil {
		return nil, s.toStatus("list activity", err)
	}
	out := make([]any, 0, len(events))
	for _, e := range events {
		out = append(out, eventMap(e))
	}
	return newStruct(map[string]any{"events": out})
}
