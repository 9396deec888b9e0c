package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
)

func appointmentOwner(a *models.Appointment) string { return a.UserID }

func (s *Service) GetAppointments(ctx context.Context, in *api.GetAppointmentsRequest) (*api.GetAppointmentsResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}

	appts, err := store.FindAs[models.Appointment](ctx, s.store, api.Appointments, byUser(in.UserID))
	if err != nil {
		return nil, err
	}
	return &api.GetAppointmentsResponse{Appointments: appts}, nil
}

func (s *Service) CreateAppointment(ctx context.Context, in *api.CreateAppointmentRequest) (*api.CreateResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}
	if in.DoctorID == "" {
		return nil, invalid("doctorId is required")
	}
	if !in.Type.Valid() {
		return nil, invalid("unknown appointment type %q", in.Type)
	}
	if _, err := s.store.Get(ctx, api.Doctors, in.DoctorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalid("unknown doctor %q", in.DoctorID)
		}
		return nil, err
	}

	a := models.Appointment{
		ID:            s.newID(),
		UserID:        in.UserID,
		DoctorID:      in.DoctorID,
		ScheduledTime: in.ScheduledTime,
		Type:          in.Type,
		Notes:         in.Notes,
		Symptoms:      in.Symptoms,
		Status:        models.AppointmentScheduled,
		CreatedAt:     s.timestamp(),
	}
	if err := s.store.Insert(ctx, api.Appointments, a.ID, a); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.Appointments, in.UserID))
	return &api.CreateResponse{ID: a.ID}, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, in *api.UpdateAppointmentRequest) (*api.Empty, error) {
	patch, err := normalize(in.Updates)
	if err != nil {
		return nil, err
	}
	a, err := owned(ctx, s, api.Appointments, in.AppointmentID, appointmentOwner)
	if err != nil {
		return nil, err
	}

	if err := s.store.Patch(ctx, api.Appointments, a.ID, patch); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.Appointments, a.UserID))
	return &api.Empty{}, nil
}
