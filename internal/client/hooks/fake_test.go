package hooks

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

type fakeSub struct {
	events chan api.Event

	mu     sync.Mutex
	closed bool
}

func (s *fakeSub) Events() <-chan api.Event { return s.events }
func (s *fakeSub) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *fakeSub) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// fakeBackend records every call by method name. Responses come from the
// profiles map and the optional per-method error.
type fakeBackend struct {
	mu       sync.Mutex
	calls    map[string][]any
	errs     map[string]error
	profiles map[string]*models.UserProfile

	conversation *models.Conversation
	subs         []*fakeSub
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string][]any{}, errs: map[string]error{}, profiles: map[string]*models.UserProfile{}}
}

func (f *fakeBackend) record(name string, in any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name] = append(f.calls[name], in)
	return f.errs[name]
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls[name])
}

// mutations counts calls to anything but reads.
func (f *fakeBackend) mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for name, c := range f.calls {
		if strings.HasPrefix(name, "Get") || name == "Ping" || name == "Subscribe" {
			continue
		}
		n += len(c)
	}
	return n
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += len(c)
	}
	return n
}

func (f *fakeBackend) last(name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.calls[name]
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}

func (f *fakeBackend) setErr(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, name)
		return
	}
	f.errs[name] = err
}

// push delivers a change event on the i-th subscription.
func (f *fakeBackend) push(i int) {
	f.mu.Lock()
	s := f.subs[i]
	f.mu.Unlock()
	s.events <- api.Event{}
}

// openSubs counts subscriptions not closed yet.
func (f *fakeBackend) openSubs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.subs {
		if !s.isClosed() {
			n++
		}
	}
	return n
}

func (f *fakeBackend) Subscribe(_ context.Context, topics ...api.Topic) (api.Subscription, error) {
	if err := f.record("Subscribe", topics); err != nil {
		return nil, err
	}
	s := &fakeSub{events: make(chan api.Event, 1)}
	f.mu.Lock()
	f.subs = append(f.subs, s)
	f.mu.Unlock()
	return s, nil
}

func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) GetUserProfile(_ context.Context, in *api.GetUserProfileRequest) (*api.GetUserProfileResponse, error) {
	if err := f.record("GetUserProfile", in); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &api.GetUserProfileResponse{Profile: f.profiles[in.ExternalID]}, nil
}

func (f *fakeBackend) GetConversation(_ context.Context, in *api.GetConversationRequest) (*api.GetConversationResponse, error) {
	if err := f.record("GetConversation", in); err != nil {
		return nil, err
	}
	return &api.GetConversationResponse{Conversation: f.conversation}, nil
}

func (f *fakeBackend) CreateClinicalDoc(_ context.Context, in *api.CreateClinicalDocRequest) (*api.CreateResponse, error) {
	if err := f.record("CreateClinicalDoc", in); err != nil {
		return nil, err
	}
	return &api.CreateResponse{ID: "doc-new"}, nil
}

func (f *fakeBackend) Ping(_ context.Context, in *api.PingRequest) (*api.PingResponse, error) {
	if err := f.record("Ping", in); err != nil {
		return nil, err
	}
	return &api.PingResponse{}, nil
}

func (f *fakeBackend) GetMedicines(_ context.Context, in *api.GetMedicinesRequest) (*api.GetMedicinesResponse, error) {
	if err := f.record("GetMedicines", in); err != nil {
		return nil, err
	}
	return &api.GetMedicinesResponse{}, nil
}

func (f *fakeBackend) GetDoctors(_ context.Context, in *api.GetDoctorsRequest) (*api.GetDoctorsResponse, error) {
	if err := f.record("GetDoctors", in); err != nil {
		return nil, err
	}
	return &api.GetDoctorsResponse{}, nil
}

func (f *fakeBackend) GetCartItems(_ context.Context, in *api.GetCartItemsRequest) (*api.GetCartItemsResponse, error) {
	if err := f.record("GetCartItems", in); err != nil {
		return nil, err
	}
	return &api.GetCartItemsResponse{}, nil
}

func (f *fakeBackend) AddToCart(_ context.Context, in *api.AddToCartRequest) (*api.CreateResponse, error) {
	if err := f.record("AddToCart", in); err != nil {
		return nil, err
	}
	return &api.CreateResponse{}, nil
}

func (f *fakeBackend) UpdateCartItem(_ context.Context, in *api.UpdateCartItemRequest) (*api.Empty, error) {
	if err := f.record("UpdateCartItem", in); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (f *fakeBackend) RemoveFromCart(_ context.Context, in *api.RemoveFromCartRequest) (*api.Empty, error) {
	if err := f.record("RemoveFromCart", in); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (f *fakeBackend) GetReminders(_ context.Context, in *api.GetRemindersRequest) (*api.GetRemindersResponse, error) {
	if err := f.record("GetReminders", in); err != nil {
		return nil, err
	}
	return &api.GetRemindersResponse{}, nil
}

func (f *fakeBackend) CreateReminder(_ context.Context, in *api.CreateReminderRequest) (*api.CreateResponse, error) {
	if err := f.record("CreateReminder", in); err != nil {
		return nil, err
	}
	return &api.CreateResponse{}, nil
}

func (f *fakeBackend) UpdateReminder(_ context.Context, in *api.UpdateReminderRequest) (*api.Empty, error) {
	if err := f.record("UpdateReminder", in); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (f *fakeBackend) DeleteReminder(_ context.Context, in *api.DeleteReminderRequest) (*api.Empty, error) {
	if err := f.record("DeleteReminder", in); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (f *fakeBackend) GetLabTests(_ context.Context, in *api.GetLabTestsRequest) (*api.GetLabTestsResponse, error) {
	if err := f.record("GetLabTests", in); err != nil {
		return nil, err
	}
	return &api.GetLabTestsResponse{}, nil
}

func (f *fakeBackend) CreateLabTest(_ context.Context, in *api.CreateLabTestRequest) (*api.CreateResponse, error) {
	if err := f.record("CreateLabTest", in); err != nil {
		return nil, err
	}
	return &api.CreateResponse{}, nil
}

func (f *fakeBackend) UpdateLabTest(_ context.Context, in *api.UpdateLabTestRequest) (*api.Empty, error) {
	if err := f.record("UpdateLabTest", in); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (f *fakeBackend) GetClinicalDocs(_ context.Context, in *api.GetClinicalDocsRequest) (*api.GetClinicalDocsResponse, error) {
	if err := f.record("GetClinicalDocs", in); err != nil {
		return nil, err
	}
	return &api.GetClinicalDocsResponse{}, nil
}

func (f *fakeBackend) GetClinicalDocStats(_ context.Context, in *api.GetClinicalDocStatsRequest) (*api.GetClinicalDocStatsResponse, error) {
	if err := f.record("GetClinicalDocStats", in); err != nil {
		return nil, err
	}
	return &api.GetClinicalDocStatsResponse{}, nil
}

func (f *fakeBackend) GetClinicalDocByID(_ context.Context, in *api.GetClinicalDocByIDRequest) (*api.GetClinicalDocByIDResponse, error) {
	if err := f.record("GetClinicalDocByID", in); err != nil {
		return nil, err
	}
	return &api.GetClinicalDocByIDResponse{}, nil
}

func (f *fakeBackend) UpdateClinicalDoc(_ context.Context, in *api.UpdateClinicalDocRequest) (*api.Empty, error) {
	if err := f.record("UpdateClinicalDoc", in); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (f *fakeBackend) DeleteClinicalDoc(_ context.Context, in *api.DeleteClinicalDocRequest) (*api.Empty, error) {
	if err := f.record("DeleteClinicalDoc", in); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (f *fakeBackend) PresignAttachment(_ context.Context, in *api.PresignAttachmentRequest) (*api.PresignAttachmentResponse, error) {
	if err := f.record("PresignAttachment", in); err != nil {
		return nil, err
	}
	return &api.PresignAttachmentResponse{}, nil
}

func (f *fakeBackend) CreateConversation(_ context.Context, in *api.CreateConversationRequest) (*api.CreateResponse, error) {
	if err := f.record("CreateConversation", in); err != nil {
		return nil, err
	}
	return &api.CreateResponse{}, nil
}

func (f *fakeBackend) AddMessage(_ context.Context, in *api.AddMessageRequest) (*api.Empty, error) {
	if err := f.record("AddMessage", in); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (f *fakeBackend) GetAppointments(_ context.Context, in *api.GetAppointmentsRequest) (*api.GetAppointmentsResponse, error) {
	if err := f.record("GetAppointments", in); err != nil {
		return nil, err
	}
	return &api.GetAppointmentsResponse{}, nil
}

func (f *fakeBackend) CreateAppointment(_ context.Context, in *api.CreateAppointmentRequest) (*api.CreateResponse, error) {
	if err := f.record("CreateAppointment", in); err != nil {
		return nil, err
	}
	return &api.CreateResponse{}, nil
}

func (f *fakeBackend) UpdateAppointment(_ context.Context, in *api.UpdateAppointmentRequest) (*api.Empty, error) {
	if err := f.record("UpdateAppointment", in); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (f *fakeBackend) GetOrders(_ context.Context, in *api.GetOrdersRequest) (*api.GetOrdersResponse, error) {
	if err := f.record("GetOrders", in); err != nil {
		return nil, err
	}
	return &api.GetOrdersResponse{}, nil
}

func (f *fakeBackend) CreateOrder(_ context.Context, in *api.CreateOrderRequest) (*api.CreateResponse, error) {
	if err := f.record("CreateOrder", in); err != nil {
		return nil, err
	}
	return &api.CreateResponse{}, nil
}
