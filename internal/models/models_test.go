package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReminderType_Valid(t *testing.T) {
	assert.True(t, ReminderMedication.Valid())
	assert.True(t, ReminderAppointment.Valid())
	assert.True(t, ReminderLabTest.Valid())
	assert.False(t, ReminderType("workout").Valid())
}

func TestAppointmentType_Valid(t *testing.T) {
	assert.True(t, AppointmentConsultation.Valid())
	assert.True(t, AppointmentFollowUp.Valid())
	assert.True(t, AppointmentEmergency.Valid())
	assert.False(t, AppointmentType("").Valid())
}

func TestOrder_Total(t *testing.T) {
	o := Order{Items: []OrderItem{
		{MedicineID: "m1", Quantity: 2, Price: 10.5},
		{MedicineID: "m2", Quantity: 1, Price: 4},
	}}
	assert.InDelta(t, 25.0, o.Total(), 1e-9)
	assert.Zero(t, Order{}.Total())
}
