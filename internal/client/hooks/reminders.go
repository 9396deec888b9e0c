package hooks

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

// NewReminder is the caller-supplied part of a reminder; the user id is
// merged in by the hook.
type NewReminder struct {
	Type          models.ReminderType
	Title         string
	Description   string
	ScheduledTime int64
	RepeatPattern string
	MedicineID    string
	Dosage        string
	DoctorID      string
	LabTestID     string
}

type Reminders struct {
	base
	Items *live.Query[[]models.Reminder]
}

func UseReminders(ctx context.Context, env Env, activeOnly bool) *Reminders {
	r := &Reminders{base: newBase(ctx, env, "reminders")}
	r.Items = userRead(ctx, &r.base, api.Reminders, func(ctx context.Context, userID string) ([]models.Reminder, error) {
		resp, err := env.Backend.GetReminders(ctx, &api.GetRemindersRequest{UserID: userID, ActiveOnly: activeOnly})
		if err != nil {
			return nil, err
		}
		return resp.Reminders, nil
	})
	return r
}

func (r *Reminders) AddReminder(ctx context.Context, in NewReminder) (Outcome, error) {
	if o, ok := r.gate(); !ok {
		return o, nil
	}
	_, err := r.env.Backend.CreateReminder(ctx, &api.CreateReminderRequest{
		UserID:        r.userID(),
		Type:          in.Type,
		Title:         in.Title,
		Description:   in.Description,
		ScheduledTime: in.ScheduledTime,
		RepeatPattern: in.RepeatPattern,
		MedicineID:    in.MedicineID,
		Dosage:        in.Dosage,
		DoctorID:      in.DoctorID,
		LabTestID:     in.LabTestID,
	})
	return called(err)
}

func (r *Reminders) UpdateReminder(ctx context.Context, reminderID string, updates models.Patch) (Outcome, error) {
	if o, ok := r.gate(); !ok {
		return o, nil
	}
	if reminderID == "" {
		return OutcomeMissingID, nil
	}
	_, err := r.env.Backend.UpdateReminder(ctx, &api.UpdateReminderRequest{ReminderID: reminderID, Updates: updates})
	return called(err)
}

func (r *Reminders) DeleteReminder(ctx context.Context, reminderID string) (Outcome, error) {
	if o, ok := r.gate(); !ok {
		return o, nil
	}
	if reminderID == "" {
		return OutcomeMissingID, nil
	}
	_, err := r.env.Backend.DeleteReminder(ctx, &api.DeleteReminderRequest{ReminderID: reminderID})
	return called(err)
}

func (r *Reminders) Close() error {
	return errors.Join(r.release(), r.Items.Close())
}
