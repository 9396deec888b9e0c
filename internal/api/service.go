package api

import "context"

// Service is the typed backend surface: one method per remote query or
// mutation. Implemented by the server and by the gRPC client stub.
type Service interface {
	Ping(ctx context.Context, in *PingRequest) (*PingResponse, error)

	GetUserProfile(ctx context.Context, in *GetUserProfileRequest) (*GetUserProfileResponse, error)

	GetMedicines(ctx context.Context, in *GetMedicinesRequest) (*GetMedicinesResponse, error)
	GetDoctors(ctx context.Context, in *GetDoctorsRequest) (*GetDoctorsResponse, error)

	GetCartItems(ctx context.Context, in *GetCartItemsRequest) (*GetCartItemsResponse, error)
	AddToCart(ctx context.Context, in *AddToCartRequest) (*CreateResponse, error)
	UpdateCartItem(ctx context.Context, in *UpdateCartItemRequest) (*Empty, error)
	RemoveFromCart(ctx context.Context, in *RemoveFromCartRequest) (*Empty, error)

	GetReminders(ctx context.Context, in *GetRemindersRequest) (*GetRemindersResponse, error)
	CreateReminder(ctx context.Context, in *CreateReminderRequest) (*CreateResponse, error)
	UpdateReminder(ctx context.Context, in *UpdateReminderRequest) (*Empty, error)
	DeleteReminder(ctx context.Context, in *DeleteReminderRequest) (*Empty, error)

	GetLabTests(ctx context.Context, in *GetLabTestsRequest) (*GetLabTestsResponse, error)
	CreateLabTest(ctx context.Context, in *CreateLabTestRequest) (*CreateResponse, error)
	UpdateLabTest(ctx context.Context, in *UpdateLabTestRequest) (*Empty, error)

	GetClinicalDocs(ctx context.Context, in *GetClinicalDocsRequest) (*GetClinicalDocsResponse, error)
	GetClinicalDocStats(ctx context.Context, in *GetClinicalDocStatsRequest) (*GetClinicalDocStatsResponse, error)
	GetClinicalDocByID(ctx context.Context, in *GetClinicalDocByIDRequest) (*GetClinicalDocByIDResponse, error)
	CreateClinicalDoc(ctx context.Context, in *CreateClinicalDocRequest) (*CreateResponse, error)
	UpdateClinicalDoc(ctx context.Context, in *UpdateClinicalDocRequest) (*Empty, error)
	DeleteClinicalDoc(ctx context.Context, in *DeleteClinicalDocRequest) (*Empty, error)
	PresignAttachment(ctx context.Context, in *PresignAttachmentRequest) (*PresignAttachmentResponse, error)

	GetConversation(ctx context.Context, in *GetConversationRequest) (*GetConversationResponse, error)
	CreateConversation(ctx context.Context, in *CreateConversationRequest) (*CreateResponse, error)
	AddMessage(ctx context.Context, in *AddMessageRequest) (*Empty, error)

	GetAppointments(ctx context.Context, in *GetAppointmentsRequest) (*GetAppointmentsResponse, error)
	CreateAppointment(ctx context.Context, in *CreateAppointmentRequest) (*CreateResponse, error)
	UpdateAppointment(ctx context.Context, in *UpdateAppointmentRequest) (*Empty, error)

	GetOrders(ctx context.Context, in *GetOrdersRequest) (*GetOrdersResponse, error)
	CreateOrder(ctx context.Context, in *CreateOrderRequest) (*CreateResponse, error)
}
