package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "sehatbeat.v1.Backend"

// FullMethod returns the gRPC method path for name, e.g.
// "/sehatbeat.v1.Backend/GetCartItems".
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// SubscribeServer is the server side of the Subscribe stream.
type SubscribeServer interface {
	Send(*Event) error
	Context() context.Context
}

// BackendServer is what a gRPC server registers: the unary surface plus the
// change stream.
type BackendServer interface {
	Service
	Subscribe(in *SubscribeRequest, stream SubscribeServer) error
}

func unary[Req, Resp any](name string, call func(BackendServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BackendServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BackendServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

type subscribeServer struct {
	grpc.ServerStream
}

func (s *subscribeServer) Send(e *Event) error {
	return s.ServerStream.SendMsg(e)
}

func subscribeHandler(srv any, stream grpc.ServerStream) error {
	in := new(SubscribeRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(BackendServer).Subscribe(in, &subscribeServer{stream})
}

// ServiceDesc is the hand-written equivalent of a protoc-generated
// descriptor for the backend service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BackendServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", BackendServer.Ping),
		unary("GetUserProfile", BackendServer.GetUserProfile),
		unary("GetMedicines", BackendServer.GetMedicines),
		unary("GetDoctors", BackendServer.GetDoctors),
		unary("GetCartItems", BackendServer.GetCartItems),
		unary("AddToCart", BackendServer.AddToCart),
		unary("UpdateCartItem", BackendServer.UpdateCartItem),
		unary("RemoveFromCart", BackendServer.RemoveFromCart),
		unary("GetReminders", BackendServer.GetReminders),
		unary("CreateReminder", BackendServer.CreateReminder),
		unary("UpdateReminder", BackendServer.UpdateReminder),
		unary("DeleteReminder", BackendServer.DeleteReminder),
		unary("GetLabTests", BackendServer.GetLabTests),
		unary("CreateLabTest", BackendServer.CreateLabTest),
		unary("UpdateLabTest", BackendServer.UpdateLabTest),
		unary("GetClinicalDocs", BackendServer.GetClinicalDocs),
		unary("GetClinicalDocStats", BackendServer.GetClinicalDocStats),
		unary("GetClinicalDocByID", BackendServer.GetClinicalDocByID),
		unary("CreateClinicalDoc", BackendServer.CreateClinicalDoc),
		unary("UpdateClinicalDoc", BackendServer.UpdateClinicalDoc),
		unary("DeleteClinicalDoc", BackendServer.DeleteClinicalDoc),
		unary("PresignAttachment", BackendServer.PresignAttachment),
		unary("GetConversation", BackendServer.GetConversation),
		unary("CreateConversation", BackendServer.CreateConversation),
		unary("AddMessage", BackendServer.AddMessage),
		unary("GetAppointments", BackendServer.GetAppointments),
		unary("CreateAppointment", BackendServer.CreateAppointment),
		unary("UpdateAppointment", BackendServer.UpdateAppointment),
		unary("GetOrders", BackendServer.GetOrders),
		unary("CreateOrder", BackendServer.CreateOrder),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Subscribe",
			Handler:       subscribeHandler,
			ServerStreams: true,
		},
	},
	Metadata: "sehatbeat/v1/backend",
}

func RegisterBackendServer(s grpc.ServiceRegistrar, srv BackendServer) {
	s.RegisterService(&ServiceDesc, srv)
}
