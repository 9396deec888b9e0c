package client

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
)

// Ping reports ErrUnavailable unless the server answers "OK".
func (s *GRPCClient) Ping(ctx context.Context, in *api.PingRequest) (*api.PingResponse, error) {
	resp, err := s.client.Ping(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Status != "OK" {
		return nil, ErrUnavailable
	}
	return resp, nil
}

func (s *GRPCClient) GetUserProfile(ctx context.Context, in *api.GetUserProfileRequest) (*api.GetUserProfileResponse, error) {
	resp, err := s.client.GetUserProfile(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetMedicines(ctx context.Context, in *api.GetMedicinesRequest) (*api.GetMedicinesResponse, error) {
	resp, err := s.client.GetMedicines(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetDoctors(ctx context.Context, in *api.GetDoctorsRequest) (*api.GetDoctorsResponse, error) {
	resp, err := s.client.GetDoctors(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetCartItems(ctx context.Context, in *api.GetCartItemsRequest) (*api.GetCartItemsResponse, error) {
	resp, err := s.client.GetCartItems(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) AddToCart(ctx context.Context, in *api.AddToCartRequest) (*api.CreateResponse, error) {
	resp, err := s.client.AddToCart(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdateCartItem(ctx context.Context, in *api.UpdateCartItemRequest) (*api.Empty, error) {
	resp, err := s.client.UpdateCartItem(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) RemoveFromCart(ctx context.Context, in *api.RemoveFromCartRequest) (*api.Empty, error) {
	resp, err := s.client.RemoveFromCart(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetReminders(ctx context.Context, in *api.GetRemindersRequest) (*api.GetRemindersResponse, error) {
	resp, err := s.client.GetReminders(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateReminder(ctx context.Context, in *api.CreateReminderRequest) (*api.CreateResponse, error) {
	resp, err := s.client.CreateReminder(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdateReminder(ctx context.Context, in *api.UpdateReminderRequest) (*api.Empty, error) {
	resp, err := s.client.UpdateReminder(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) DeleteReminder(ctx context.Context, in *api.DeleteReminderRequest) (*api.Empty, error) {
	resp, err := s.client.DeleteReminder(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetLabTests(ctx context.Context, in *api.GetLabTestsRequest) (*api.GetLabTestsResponse, error) {
	resp, err := s.client.GetLabTests(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateLabTest(ctx context.Context, in *api.CreateLabTestRequest) (*api.CreateResponse, error) {
	resp, err := s.client.CreateLabTest(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdateLabTest(ctx context.Context, in *api.UpdateLabTestRequest) (*api.Empty, error) {
	resp, err := s.client.UpdateLabTest(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetClinicalDocs(ctx context.Context, in *api.GetClinicalDocsRequest) (*api.GetClinicalDocsResponse, error) {
	resp, err := s.client.GetClinicalDocs(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetClinicalDocStats(ctx context.Context, in *api.GetClinicalDocStatsRequest) (*api.GetClinicalDocStatsResponse, error) {
	resp, err := s.client.GetClinicalDocStats(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetClinicalDocByID(ctx context.Context, in *api.GetClinicalDocByIDRequest) (*api.GetClinicalDocByIDResponse, error) {
	resp, err := s.client.GetClinicalDocByID(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateClinicalDoc(ctx context.Context, in *api.CreateClinicalDocRequest) (*api.CreateResponse, error) {
	resp, err := s.client.CreateClinicalDoc(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdateClinicalDoc(ctx context.Context, in *api.UpdateClinicalDocRequest) (*api.Empty, error) {
	resp, err := s.client.UpdateClinicalDoc(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) DeleteClinicalDoc(ctx context.Context, in *api.DeleteClinicalDocRequest) (*api.Empty, error) {
	resp, err := s.client.DeleteClinicalDoc(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) PresignAttachment(ctx context.Context, in *api.PresignAttachmentRequest) (*api.PresignAttachmentResponse, error) {
	resp, err := s.client.PresignAttachment(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetConversation(ctx context.Context, in *api.GetConversationRequest) (*api.GetConversationResponse, error) {
	resp, err := s.client.GetConversation(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateConversation(ctx context.Context, in *api.CreateConversationRequest) (*api.CreateResponse, error) {
	resp, err := s.client.CreateConversation(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) AddMessage(ctx context.Context, in *api.AddMessageRequest) (*api.Empty, error) {
	resp, err := s.client.AddMessage(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetAppointments(ctx context.Context, in *api.GetAppointmentsRequest) (*api.GetAppointmentsResponse, error) {
	resp, err := s.client.GetAppointments(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateAppointment(ctx context.Context, in *api.CreateAppointmentRequest) (*api.CreateResponse, error) {
	resp, err := s.client.CreateAppointment(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdateAppointment(ctx context.Context, in *api.UpdateAppointmentRequest) (*api.Empty, error) {
	resp, err := s.client.UpdateAppointment(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetOrders(ctx context.Context, in *api.GetOrdersRequest) (*api.GetOrdersResponse, error) {
	resp, err := s.client.GetOrders(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateOrder(ctx context.Context, in *api.CreateOrderRequest) (*api.CreateResponse, error) {
	resp, err := s.client.CreateOrder(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}
