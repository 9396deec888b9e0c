package api

import (
	"context"

	"google.golang.org/grpc"
)

// BackendClient is the client-side stub of ServiceDesc. It satisfies Service.
type BackendClient struct {
	cc grpc.ClientConnInterface
}

func NewBackendClient(cc grpc.ClientConnInterface) *BackendClient {
	return &BackendClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in any) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, FullMethod(name), in, out, grpc.CallContentSubtype(CodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// SubscribeClient is the receiving side of the Subscribe stream.
type SubscribeClient interface {
	Recv() (*Event, error)
	grpc.ClientStream
}

type subscribeClient struct {
	grpc.ClientStream
}

func (c *subscribeClient) Recv() (*Event, error) {
	e := new(Event)
	if err := c.ClientStream.RecvMsg(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (c *BackendClient) Subscribe(ctx context.Context, in *SubscribeRequest) (SubscribeClient, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], FullMethod("Subscribe"), grpc.CallContentSubtype(CodecName))
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &subscribeClient{stream}, nil
}

func (c *BackendClient) Ping(ctx context.Context, in *PingRequest) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in)
}

func (c *BackendClient) GetUserProfile(ctx context.Context, in *GetUserProfileRequest) (*GetUserProfileResponse, error) {
	return invoke[GetUserProfileResponse](ctx, c.cc, "GetUserProfile", in)
}

func (c *BackendClient) GetMedicines(ctx context.Context, in *GetMedicinesRequest) (*GetMedicinesResponse, error) {
	return invoke[GetMedicinesResponse](ctx, c.cc, "GetMedicines", in)
}

func (c *BackendClient) GetDoctors(ctx context.Context, in *GetDoctorsRequest) (*GetDoctorsResponse, error) {
	return invoke[GetDoctorsResponse](ctx, c.cc, "GetDoctors", in)
}

func (c *BackendClient) GetCartItems(ctx context.Context, in *GetCartItemsRequest) (*GetCartItemsResponse, error) {
	return invoke[GetCartItemsResponse](ctx, c.cc, "GetCartItems", in)
}

func (c *BackendClient) AddToCart(ctx context.Context, in *AddToCartRequest) (*CreateResponse, error) {
	return invoke[CreateResponse](ctx, c.cc, "AddToCart", in)
}

func (c *BackendClient) UpdateCartItem(ctx context.Context, in *UpdateCartItemRequest) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "UpdateCartItem", in)
}

func (c *BackendClient) RemoveFromCart(ctx context.Context, in *RemoveFromCartRequest) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "RemoveFromCart", in)
}

func (c *BackendClient) GetReminders(ctx context.Context, in *GetRemindersRequest) (*GetRemindersResponse, error) {
	return invoke[GetRemindersResponse](ctx, c.cc, "GetReminders", in)
}

func (c *BackendClient) CreateReminder(ctx context.Context, in *CreateReminderRequest) (*CreateResponse, error) {
	return invoke[CreateResponse](ctx, c.cc, "CreateReminder", in)
}

func (c *BackendClient) UpdateReminder(ctx context.Context, in *UpdateReminderRequest) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "UpdateReminder", in)
}

func (c *BackendClient) DeleteReminder(ctx context.Context, in *DeleteReminderRequest) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteReminder", in)
}

func (c *BackendClient) GetLabTests(ctx context.Context, in *GetLabTestsRequest) (*GetLabTestsResponse, error) {
	return invoke[GetLabTestsResponse](ctx, c.cc, "GetLabTests", in)
}

func (c *BackendClient) CreateLabTest(ctx context.Context, in *CreateLabTestRequest) (*CreateResponse, error) {
	return invoke[CreateResponse](ctx, c.cc, "CreateLabTest", in)
}

func (c *BackendClient) UpdateLabTest(ctx context.Context, in *UpdateLabTestRequest) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "UpdateLabTest", in)
}

func (c *BackendClient) GetClinicalDocs(ctx context.Context, in *GetClinicalDocsRequest) (*GetClinicalDocsResponse, error) {
	return invoke[GetClinicalDocsResponse](ctx, c.cc, "GetClinicalDocs", in)
}

func (c *BackendClient) GetClinicalDocStats(ctx context.Context, in *GetClinicalDocStatsRequest) (*GetClinicalDocStatsResponse, error) {
	return invoke[GetClinicalDocStatsResponse](ctx, c.cc, "GetClinicalDocStats", in)
}

func (c *BackendClient) GetClinicalDocByID(ctx context.Context, in *GetClinicalDocByIDRequest) (*GetClinicalDocByIDResponse, error) {
	return invoke[GetClinicalDocByIDResponse](ctx, c.cc, "GetClinicalDocByID", in)
}

func (c *BackendClient) CreateClinicalDoc(ctx context.Context, in *CreateClinicalDocRequest) (*CreateResponse, error) {
	return invoke[CreateResponse](ctx, c.cc, "CreateClinicalDoc", in)
}

func (c *BackendClient) UpdateClinicalDoc(ctx context.Context, in *UpdateClinicalDocRequest) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "UpdateClinicalDoc", in)
}

func (c *BackendClient) DeleteClinicalDoc(ctx context.Context, in *DeleteClinicalDocRequest) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteClinicalDoc", in)
}

func (c *BackendClient) PresignAttachment(ctx context.Context, in *PresignAttachmentRequest) (*PresignAttachmentResponse, error) {
	return invoke[PresignAttachmentResponse](ctx, c.cc, "PresignAttachment", in)
}

func (c *BackendClient) GetConversation(ctx context.Context, in *GetConversationRequest) (*GetConversationResponse, error) {
	return invoke[GetConversationResponse](ctx, c.cc, "GetConversation", in)
}

func (c *BackendClient) CreateConversation(ctx context.Context, in *CreateConversationRequest) (*CreateResponse, error) {
	return invoke[CreateResponse](ctx, c.cc, "CreateConversation", in)
}

func (c *BackendClient) AddMessage(ctx context.Context, in *AddMessageRequest) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "AddMessage", in)
}

func (c *BackendClient) GetAppointments(ctx context.Context, in *GetAppointmentsRequest) (*GetAppointmentsResponse, error) {
	return invoke[GetAppointmentsResponse](ctx, c.cc, "GetAppointments", in)
}

func (c *BackendClient) CreateAppointment(ctx context.Context, in *CreateAppointmentRequest) (*CreateResponse, error) {
	return invoke[CreateResponse](ctx, c.cc, "CreateAppointment", in)
}

func (c *BackendClient) UpdateAppointment(ctx context.Context, in *UpdateAppointmentRequest) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "UpdateAppointment", in)
}

func (c *BackendClient) GetOrders(ctx context.Context, in *GetOrdersRequest) (*GetOrdersResponse, error) {
	return invoke[GetOrdersResponse](ctx, c.cc, "GetOrders", in)
}

func (c *BackendClient) CreateOrder(ctx context.Context, in *CreateOrderRequest) (*CreateResponse, error) {
	return invoke[CreateResponse](ctx, c.cc, "CreateOrder", in)
}
