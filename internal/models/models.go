// Package models defines the SehatBeat entities shared by the client data
// layer and the backend. Timestamps are Unix milliseconds, as produced by the
// front-end.
package models

// UserProfile is the internal user record. ID is the foreign key of every
// other entity; ExternalID references the identity provider subject.
type UserProfile struct {
	ID         string `json:"id"`
	ExternalID string `json:"externalId,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

type Medicine struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description,omitempty"`
	Category             string  `json:"category"`
	Manufacturer         string  `json:"manufacturer,omitempty"`
	Price                float64 `json:"price"`
	InStock              bool    `json:"inStock"`
	RequiresPrescription bool    `json:"requiresPrescription"`
}

type CartItem struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	MedicineID string    `json:"medicineId"`
	Quantity   int       `json:"quantity"`
	AddedAt    int64     `json:"addedAt"`
	Medicine   *Medicine `json:"medicine,omitempty"`
}

type ReminderType string

const (
	ReminderMedication  ReminderType = "medication"
	ReminderAppointment ReminderType = "appointment"
	ReminderLabTest     ReminderType = "lab_test"
)

func (t ReminderType) Valid() bool {
	switch t {
	case ReminderMedication, ReminderAppointment, ReminderLabTest:
		return true
	}
	return false
}

type Reminder struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	Type          ReminderType `json:"type"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	ScheduledTime int64        `json:"scheduledTime"`
	RepeatPattern string       `json:"repeatPattern,omitempty"`
	MedicineID    string       `json:"medicineId,omitempty"`
	Dosage        string       `json:"dosage,omitempty"`
	DoctorID      string       `json:"doctorId,omitempty"`
	LabTestID     string       `json:"labTestId,omitempty"`
	IsActive      bool         `json:"isActive"`
	CreatedAt     int64        `json:"createdAt"`
}

const (
	LabTestScheduled = "scheduled"
	LabTestCompleted = "completed"
)

type LabTest struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	TestName        string `json:"testName"`
	TestType        string `json:"testType"`
	ScheduledDate   int64  `json:"scheduledDate"`
	LabName         string `json:"labName,omitempty"`
	LabAddress      string `json:"labAddress,omitempty"`
	FastingRequired bool   `json:"fastingRequired"`
	Instructions    string `json:"instructions,omitempty"`
	Status          string `json:"status"`
	Results         string `json:"results,omitempty"`
	CreatedAt       int64  `json:"createdAt"`
}

type Doctor struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	Location        string  `json:"location"`
	Experience      int     `json:"experience"`
	Rating          float64 `json:"rating"`
	ConsultationFee float64 `json:"consultationFee"`
	Available       bool    `json:"available"`
}

type ClinicalDoc struct {
	ID          string   `json:"id"`
	UserID      string   `json:"userId"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Attachments []string `json:"attachments,omitempty"`
	DoctorID    string   `json:"doctorId,omitempty"`
	IsPrivate   bool     `json:"isPrivate"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

type ClinicalDocStats struct {
	Total      int            `json:"total"`
	Private    int            `json:"private"`
	ByCategory map[string]int `json:"byCategory"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role      Role           `json:"role"`
	Content   string         `json:"content"`
	Timestamp int64          `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Messages  []Message `json:"messages"`
	CreatedAt int64     `json:"createdAt"`
	UpdatedAt int64     `json:"updatedAt"`
}

type AppointmentType string

const (
	AppointmentConsultation AppointmentType = "consultation"
	AppointmentFollowUp     AppointmentType = "follow_up"
	AppointmentEmergency    AppointmentType = "emergency"
)

func (t AppointmentType) Valid() bool {
	switch t {
	case AppointmentConsultation, AppointmentFollowUp, AppointmentEmergency:
		return true
	}
	return false
}

const (
	AppointmentScheduled = "scheduled"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	DoctorID      string          `json:"doctorId"`
	ScheduledTime int64           `json:"scheduledTime"`
	Type          AppointmentType `json:"type"`
	Notes         string          `json:"notes,omitempty"`
	Symptoms      []string        `json:"symptoms,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     int64           `json:"createdAt"`
}

type OrderItem struct {
	MedicineID string  `json:"medicineId"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

const OrderPending = "pending"

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	ShippingAddress Address     `json:"shippingAddress"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	CreatedAt       int64       `json:"createdAt"`
}

// Total sums price*quantity over the order lines.
func (o Order) Total() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
