package services

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
)

func reminderOwner(r *models.Reminder) string { return r.UserID }

func (s *Service) GetReminders(ctx context.Context, in *api.GetRemindersRequest) (*api.GetRemindersResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}

	all, err := store.FindAs[models.Reminder](ctx, s.store, api.Reminders, byUser(in.UserID))
	if err != nil {
		return nil, err
	}
	if !in.ActiveOnly {
		return &api.GetRemindersResponse{Reminders: all}, nil
	}

	active := []models.Reminder{}
	for _, r := range all {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return &api.GetRemindersResponse{Reminders: active}, nil
}

func (s *Service) CreateReminder(ctx context.Context, in *api.CreateReminderRequest) (*api.CreateResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, invalid("unknown reminder type %q", in.Type)
	}
	if in.Title == "" {
		return nil, invalid("title is required")
	}

	r := models.Reminder{
		ID:            s.newID(),
		UserID:        in.UserID,
		Type:          in.Type,
		Title:         in.Title,
		Description:   in.Description,
		ScheduledTime: in.ScheduledTime,
		RepeatPattern: in.RepeatPattern,
		MedicineID:    in.MedicineID,
		Dosage:        in.Dosage,
		DoctorID:      in.DoctorID,
		LabTestID:     in.LabTestID,
		IsActive:      true,
		CreatedAt:     s.timestamp(),
	}
	if err := s.store.Insert(ctx, api.Reminders, r.ID, r); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.Reminders, in.UserID))
	return &api.CreateResponse{ID: r.ID}, nil
}

func (s *Service) UpdateReminder(ctx context.Context, in *api.UpdateReminderRequest) (*api.Empty, error) {
	patch, err := normalize(in.Updates)
	if err != nil {
		return nil, err
	}
	r, err := owned(ctx, s, api.Reminders, in.ReminderID, reminderOwner)
	if err != nil {
		return nil, err
	}

	if err := s.store.Patch(ctx, api.Reminders, r.ID, patch); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.Reminders, r.UserID))
	return &api.Empty{}, nil
}

func (s *Service) DeleteReminder(ctx context.Context, in *api.DeleteReminderRequest) (*api.Empty, error) {
	r, err := owned(ctx, s, api.Reminders, in.ReminderID, reminderOwner)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, api.Reminders, r.ID); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.Reminders, r.UserID))
	return &api.Empty{}, nil
}
