package handler

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "schedule.v1.ScheduleService"

// ScheduleServer is the server API for the schedule service.
type ScheduleServer interface {
	GetCatalog(context.Context, *GetCatalogRequest) (*GetCatalogResponse, error)
	GetWeek(context.Context, *GetWeekRequest) (*GetWeekResponse, error)
	ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error)
	GetAppointment(context.Context, *GetAppointmentRequest) (*GetAppointmentResponse, error)
	AvailableSlots(context.Context, *AvailableSlotsRequest) (*AvailableSlotsResponse, error)
	CreateAppointment(context.Context, *CreateAppointmentRequest) (*CreateAppointmentResponse, error)
	UpdateAppointment(context.Context, *UpdateAppointmentRequest) (*UpdateAppointmentResponse, error)
	DeleteAppointment(context.Context, *DeleteAppointmentRequest) (*DeleteAppointmentResponse, error)
}

// FullMethod returns the gRPC path of method, e.g.
// "/schedule.v1.ScheduleService/GetWeek".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unary[Req, Resp any](method string, call func(ScheduleServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ScheduleServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ScheduleServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScheduleServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetCatalog", ScheduleServer.GetCatalog),
		unary("GetWeek", ScheduleServer.GetWeek),
		unary("ListAppointments", ScheduleServer.ListAppointments),
		unary("GetAppointment", ScheduleServer.GetAppointment),
		unary("AvailableSlots", ScheduleServer.AvailableSlots),
		unary("CreateAppointment", ScheduleServer.CreateAppointment),
		unary("UpdateAppointment", ScheduleServer.UpdateAppointment),
		unary("DeleteAppointment", ScheduleServer.DeleteAppointment),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterScheduleServiceServer(s grpc.ServiceRegistrar, srv ScheduleServer) {
	s.RegisterService(&serviceDesc, srv)
}
