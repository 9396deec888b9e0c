package hooks

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

type NewAppointment struct {
	DoctorID      string
	ScheduledTime int64
	Type          models.AppointmentType
	Notes         string
	Symptoms      []string
}

type Appointments struct {
	base
	Items *live.Query[[]models.Appointment]
}

func UseAppointments(ctx context.Context, env Env) *Appointments {
	a := &Appointments{base: newBase(ctx, env, "appointments")}
	a.Items = userRead(ctx, &a.base, api.Appointments, func(ctx context.Context, userID string) ([]models.Appointment, error) {
		resp, err := env.Backend.GetAppointments(ctx, &api.GetAppointmentsRequest{UserID: userID})
		if err != nil {
			return nil, err
		}
		return resp.Appointments, nil
	})
	return a
}

func (a *Appointments) BookAppointment(ctx context.Context, in NewAppointment) (Outcome, error) {
	if o, ok := a.gate(); !ok {
		return o, nil
	}
	if in.DoctorID == "" {
		return OutcomeMissingID, nil
	}
	_, err := a.env.Backend.CreateAppointment(ctx, &api.CreateAppointmentRequest{
		UserID:        a.userID(),
		DoctorID:      in.DoctorID,
		ScheduledTime: in.ScheduledTime,
		Type:          in.Type,
		Notes:         in.Notes,
		Symptoms:      in.Symptoms,
	})
	return called(err)
}

func (a *Appointments) UpdateAppointment(ctx context.Context, appointmentID string, updates models.Patch) (Outcome, error) {
	if o, ok := a.gate(); !ok {
		return o, nil
	}
	if appointmentID == "" {
		return OutcomeMissingID, nil
	}
	_, err := a.env.Backend.UpdateAppointment(ctx, &api.UpdateAppointmentRequest{AppointmentID: appointmentID, Updates: updates})
	return called(err)
}

func (a *Appointments) Close() error {
	return errors.Join(a.release(), a.Items.Close())
}
