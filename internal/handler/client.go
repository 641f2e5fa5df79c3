package handler

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls the schedule service over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, req any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCatalog(ctx context.Context, req *GetCatalogRequest, opts ...grpc.CallOption) (*GetCatalogResponse, error) {
	return invoke[GetCatalogResponse](ctx, c.cc, "GetCatalog", req, opts)
}

func (c *Client) GetWeek(ctx context.Context, req *GetWeekRequest, opts ...grpc.CallOption) (*GetWeekResponse, error) {
	return invoke[GetWeekResponse](ctx, c.cc, "GetWeek", req, opts)
}

func (c *Client) ListAppointments(ctx context.Context, req *ListAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	return invoke[ListAppointmentsResponse](ctx, c.cc, "ListAppointments", req, opts)
}

func (c *Client) GetAppointment(ctx context.Context, req *GetAppointmentRequest, opts ...grpc.CallOption) (*GetAppointmentResponse, error) {
	return invoke[GetAppointmentResponse](ctx, c.cc, "GetAppointment", req, opts)
}

func (c *Client) AvailableSlots(ctx context.Context, req *AvailableSlotsRequest, opts ...grpc.CallOption) (*AvailableSlotsResponse, error) {
	return invoke[AvailableSlotsResponse](ctx, c.cc, "AvailableSlots", req, opts)
}

func (c *Client) CreateAppointment(ctx context.Context, req *CreateAppointmentRequest, opts ...grpc.CallOption) (*CreateAppointmentResponse, error) {
	return invoke[CreateAppointmentResponse](ctx, c.cc, "CreateAppointment", req, opts)
}

func (c *Client) UpdateAppointment(ctx context.Context, req *UpdateAppointmentRequest, opts ...grpc.CallOption) (*UpdateAppointmentResponse, error) {
	return invoke[UpdateAppointmentResponse](ctx, c.cc, "UpdateAppointment", req, opts)
}

func (c *Client) DeleteAppointment(ctx context.Context, req *DeleteAppointmentRequest, opts ...grpc.CallOption) (*DeleteAppointmentResponse, error) {
	return invoke[DeleteAppointmentResponse](ctx, c.cc, "DeleteAppointment", req, opts)
}
