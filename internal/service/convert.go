package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Leganyst/myhaircut/internal/marketplace"
	"github.com/Leganyst/myhaircut/internal/model"
	"github.com/Leganyst/myhaircut/internal/paging"
)

// чтение полей из запроса-Struct
type args struct {
	f map[string]*structpb.Value
}

func argsOf(req *structpb.Struct) args {
	return args{f: req.GetFields()}
}

func (a args) has(key string) bool {
	_, ok := a.f[key]
	return ok
}

func (a args) str(key string) string {
	return strings.TrimSpace(a.f[key].GetStringValue())
}

// optStr возвращает nil, если поле не передано.
func (a args) optStr(key string) *string {
	if !a.has(key) {
		return nil
	}
	s := a.str(key)
	return &s
}

func (a args) boolean(key string) bool {
	return a.f[key].GetBoolValue()
}

func (a args) integer(key string) int {
	v := a.f[key]
	if v == nil {
		return 0
	}
	if s, ok := v.GetKind().(*structpb.Value_StringValue); ok {
		n, _ := strconv.Atoi(strings.TrimSpace(s.StringValue))
		return n
	}
	return int(math.Round(v.GetNumberValue()))
}

// money принимает число или строку ("150", "80.50").
func (a args) money(key string) (decimal.Decimal, error) {
	v := a.f[key]
	if v == nil {
		return decimal.Zero, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(strings.TrimSpace(k.StringValue))
		if err != nil {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s: invalid amount %q", key, k.StringValue)
		}
		return d, nil
	case *structpb.Value_NumberValue:
		return decimal.NewFromFloat(k.NumberValue), nil
	default:
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s: amount must be a number or string", key)
	}
}

func (a args) required(keys ...string) error {
	for _, k := range keys {
		if a.str(k) == "" {
			return status.Errorf(codes.InvalidArgument, "%s is required", k)
		}
	}
	return nil
}

func newStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return s, nil
}

func empty() (*structpb.Struct, error) {
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func timestamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func accountMap(a model.Account) map[string]any {
	m := map[string]any{
		"id":             a.ID,
		"name":           a.Name,
		"email":          a.Email,
		"avatar":         a.AvatarRef,
		"role":           string(a.Role),
		"is_verified":    a.IsVerified,
		"is_active":      a.IsActive,
		"wallet_balance": money(a.WalletBalance),
	}
	if a.IsProvider() {
		services := make([]any, 0, len(a.Services))
		for _, s := range a.Services {
			services = append(services, serviceMap(s))
		}
		m["bio"] = a.Bio
		m["rating"] = a.Rating
		m["review_count"] = a.ReviewCount
		m["services"] = services
		m["gallery"] = stringList(a.Gallery)
		m["availability"] = stringList(a.Availability)
	}
	return m
}

func stringList(ss []string) []any {
	out := make([]any, 0, len(ss))
	for _, s := range ss {
		out = append(out, s)
	}
	return out
}

func serviceMap(s model.Service) map[string]any {
	return map[string]any{
		"id":       s.ID,
		"name":     s.Name,
		"price":    money(s.Price),
		"duration": s.Duration,
	}
}

func bookingMap(b model.Booking) map[string]any {
	return map[string]any{
		"id":             b.ID,
		"client_id":      b.ClientID,
		"client_name":    b.ClientName,
		"provider_id":    b.ProviderID,
		"service_id":     b.ServiceID,
		"service_name":   b.ServiceName,
		"date":           timestamp(b.Date),
		"status":         string(b.Status),
		"total_price":    money(b.TotalPrice),
		"payment_method": b.PaymentMethodLabel,
		"notes":          b.Notes,
	}
}

func reviewMap(r model.Review) map[string]any {
	return map[string]any{
		"id":          r.ID,
		"provider_id": r.ProviderID,
		"client_id":   r.ClientID,
		"client_name": r.ClientName,
		"rating":      r.Rating,
		"comment":     r.Comment,
		"date":        timestamp(r.Date),
	}
}

func sessionMap(s model.Session, page string) map[string]any {
	m := map[string]any{
		"is_logged_in": s.IsLoggedIn,
		"role":         string(s.Role),
		"page":         page,
	}
	if s.CurrentUser != nil {
		m["current_user"] = accountMap(*s.CurrentUser)
	}
	return m
}

func statsMap(s marketplace.Stats) map[string]any {
	return map[string]any{
		"members":           s.Members,
		"bookings":          s.Bookings,
		"revenue":           money(s.Revenue),
		"platform_earnings": money(s.PlatformEarnings),
	}
}

func providerStatsMap(s marketplace.ProviderStats) map[string]any {
	return map[string]any{
		"provider_id":    s.ProviderID,
		"bookings":       s.Bookings,
		"open":           s.Open,
		"completed":      s.Completed,
		"revenue":        money(s.Revenue),
		"wallet_balance": money(s.WalletBalance),
		"in_debt":        s.InDebt,
	}
}

func eventMap(e model.Event) map[string]any {
	m := map[string]any{
		"id":         e.ID.String(),
		"type":       string(e.EventType),
		"created_at": e.CreatedAt.UTC().Format(time.RFC3339),
		"actor_id":   e.ActorID,
		"subject_id": e.SubjectID,
		"booking_id": e.BookingID,
	}
	var details map[string]any
	if len(e.Details) > 0 && json.Unmarshal(e.Details, &details) == nil {
		m["details"] = details
	}
	return m
}

// pageOf режет список по page/page_size запроса и кодирует элементы.
func pageOf[T any](a args, items []T, key string, enc func(T) map[string]any) map[string]any {
	p := paging.Paginate(items, a.integer("page"), a.integer("page_size"))
	out := make([]any, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, enc(it))
	}
	return map[string]any{
		key:         out,
		"page":      p.Page,
		"page_size": p.PageSize,
		"total":     p.Total,
		"has_next":  p.HasNext,
		"has_prev":  p.HasPrev,
	}
}
