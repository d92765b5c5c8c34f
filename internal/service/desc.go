package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Полное имя gRPC-сервиса.
const ServiceName = "myhaircut.v1.Marketplace"

// MarketplaceServer — серверный интерфейс сервиса. Все сообщения —
// google.protobuf.Struct, поэтому сгенерированный код не нужен.
type MarketplaceServer interface {
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Logout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)

	ListProviders(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListMembers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetMember(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetMemberActive(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteMember(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateBooking(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateBookingStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelBooking(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListBookings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlatformStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProviderStats(context.Context, *structpb.Struct) (*structpb.Struct, error)

	AddReview(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListReviews(context.Context, *structpb.Struct) (*structpb.Struct, error)

	AddService(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveService(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddGalleryImage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveGalleryImage(context.Context, *structpb.Struct) (*structpb.Struct, error)

	Navigate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectProvider(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StyleAdvice(context.Context, *structpb.Struct) (*structpb.Struct, error)

	ListActivity(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(MarketplaceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MarketplaceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(MarketplaceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc — описание сервиса для grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MarketplaceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Login", MarketplaceServer.Login),
		unary("Logout", MarketplaceServer.Logout),
		unary("GetSession", MarketplaceServer.GetSession),
		unary("ListProviders", MarketplaceServer.ListProviders),
		unary("ListMembers", MarketplaceServer.ListMembers),
		unary("GetMember", MarketplaceServer.GetMember),
		unary("UpdateProfile", MarketplaceServer.UpdateProfile),
		unary("SetMemberActive", MarketplaceServer.SetMemberActive),
		unary("DeleteMember", MarketplaceServer.DeleteMember),
		unary("CreateBooking", MarketplaceServer.CreateBooking),
		unary("UpdateBookingStatus", MarketplaceServer.UpdateBookingStatus),
		unary("CancelBooking", MarketplaceServer.CancelBooking),
		unary("ListBookings", MarketplaceServer.ListBookings),
		unary("PlatformStats", MarketplaceServer.PlatformStats),
		unary("ProviderStats", MarketplaceServer.ProviderStats),
		unary("AddReview", MarketplaceServer.AddReview),
		unary("ListReviews", MarketplaceServer.ListReviews),
		unary("AddService", MarketplaceServer.AddService),
		unary("RemoveService", MarketplaceServer.RemoveService),
		unary("AddGalleryImage", MarketplaceServer.AddGalleryImage),
		unary("RemoveGalleryImage", MarketplaceServer.RemoveGalleryImage),
		unary("Navigate", MarketplaceServer.Navigate),
		unary("SelectProvider", MarketplaceServer.SelectProvider),
		unary("StyleAdvice", MarketplaceServer.StyleAdvice),
		unary("ListActivity", MarketplaceServer.ListActivity),
	},
	// Сообщения структурные, .proto-файла нет: reflection видит только
	// список сервисов и методов.
	Streams: []grpc.StreamDesc{},
}

// RegisterMarketplaceServer регистрирует реализацию на gRPC-сервере.
func RegisterMarketplaceServer(s grpc.ServiceRegistrar, srv MarketplaceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
