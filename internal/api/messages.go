package api

import "github.com/dmitrijs2005/sehatbeat/internal/models"

type Empty struct{}

// CreateResponse carries the identifier of a freshly created record.
type CreateResponse struct {
	ID string `json:"id"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type GetUserProfileRequest struct {
	ExternalID string `json:"externalId"`
}

type GetUserProfileResponse struct {
	Profile *models.UserProfile `json:"profile"`
}

type GetMedicinesRequest struct {
	Category string `json:"category,omitempty"`
	Search   string `json:"search,omitempty"`
}

type GetMedicinesResponse struct {
	Medicines []models.Medicine `json:"medicines"`
}

type GetCartItemsRequest struct {
	UserID string `json:"userId"`
}

type GetCartItemsResponse struct {
	Items []models.CartItem `json:"items"`
}

type AddToCartRequest struct {
	UserID     string `json:"userId"`
	MedicineID string `json:"medicineId"`
	Quantity   int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	CartItemID string `json:"cartItemId"`
	Quantity   int    `json:"quantity"`
}

type RemoveFromCartRequest struct {
	CartItemID string `json:"cartItemId"`
}

type GetRemindersRequest struct {
	UserID     string `json:"userId"`
	ActiveOnly bool   `json:"activeOnly"`
}

type GetRemindersResponse struct {
	Reminders []models.Reminder `json:"reminders"`
}

type CreateReminderRequest struct {
	UserID        string              `json:"userId"`
	Type          models.ReminderType `json:"type"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	ScheduledTime int64               `json:"scheduledTime"`
	RepeatPattern string              `json:"repeatPattern,omitempty"`
	MedicineID    string              `json:"medicineId,omitempty"`
	Dosage        string              `json:"dosage,omitempty"`
	DoctorID      string              `json:"doctorId,omitempty"`
	LabTestID     string              `json:"labTestId,omitempty"`
}

type UpdateReminderRequest struct {
	ReminderID string       `json:"reminderId"`
	Updates    models.Patch `json:"updates"`
}

type DeleteReminderRequest struct {
	ReminderID string `json:"reminderId"`
}

type GetLabTestsRequest struct {
	UserID string `json:"userId"`
}

type GetLabTestsResponse struct {
	LabTests []models.LabTest `json:"labTests"`
}

type CreateLabTestRequest struct {
	UserID          string `json:"userId"`
	TestName        string `json:"testName"`
	TestType        string `json:"testType"`
	ScheduledDate   int64  `json:"scheduledDate"`
	LabName         string `json:"labName,omitempty"`
	LabAddress      string `json:"labAddress,omitempty"`
	FastingRequired bool   `json:"fastingRequired"`
	Instructions    string `json:"instructions,omitempty"`
}

type UpdateLabTestRequest struct {
	LabTestID string       `json:"labTestId"`
	Updates   models.Patch `json:"updates"`
}

type GetDoctorsRequest struct {
	Specialization string `json:"specialization,omitempty"`
	Location       string `json:"location,omitempty"`
}

type GetDoctorsResponse struct {
	Doctors []models.Doctor `json:"doctors"`
}

type GetClinicalDocsRequest struct {
	UserID string `json:"userId"`
}

type GetClinicalDocsResponse struct {
	Docs []models.ClinicalDoc `json:"docs"`
}

type GetClinicalDocStatsRequest struct {
	UserID string `json:"userId"`
}

type GetClinicalDocStatsResponse struct {
	Stats *models.ClinicalDocStats `json:"stats"`
}

type GetClinicalDocByIDRequest struct {
	DocID string `json:"docId"`
}

type GetClinicalDocByIDResponse struct {
	Doc *models.ClinicalDoc `json:"doc"`
}

type CreateClinicalDocRequest struct {
	UserID      string   `json:"userId"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Attachments []string `json:"attachments,omitempty"`
	DoctorID    string   `json:"doctorId,omitempty"`
	IsPrivate   bool     `json:"isPrivate"`
}

type UpdateClinicalDocRequest struct {
	DocID   string       `json:"docId"`
	Updates models.Patch `json:"updates"`
}

type DeleteClinicalDocRequest struct {
	DocID string `json:"docId"`
}

type PresignAttachmentRequest struct {
	UserID   string `json:"userId"`
	FileName string `json:"fileName"`
}

type PresignAttachmentResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type GetConversationRequest struct {
	UserID string `json:"userId"`
}

type GetConversationResponse struct {
	Conversation *models.Conversation `json:"conversation"`
}

type CreateConversationRequest struct {
	UserID string `json:"userId"`
}

type AddMessageRequest struct {
	ConversationID string         `json:"conversationId"`
	Role           models.Role    `json:"role"`
	Content        string         `json:"content"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

type GetAppointmentsRequest struct {
	UserID string `json:"userId"`
}

type GetAppointmentsResponse struct {
	Appointments []models.Appointment `json:"appointments"`
}

type CreateAppointmentRequest struct {
	UserID        string                 `json:"userId"`
	DoctorID      string                 `json:"doctorId"`
	ScheduledTime int64                  `json:"scheduledTime"`
	Type          models.AppointmentType `json:"type"`
	Notes         string                 `json:"notes,omitempty"`
	Symptoms      []string               `json:"symptoms,omitempty"`
}

type UpdateAppointmentRequest struct {
	AppointmentID string       `json:"appointmentId"`
	Updates       models.Patch `json:"updates"`
}

type GetOrdersRequest struct {
	UserID string `json:"userId"`
}

type GetOrdersResponse struct {
	Orders []models.Order `json:"orders"`
}

type CreateOrderRequest struct {
	UserID          string             `json:"userId"`
	Items           []models.OrderItem `json:"items"`
	ShippingAddress models.Address     `json:"shippingAddress"`
}

type SubscribeRequest struct {
	Topics []Topic `json:"topics"`
}
