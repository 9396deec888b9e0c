package services

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
)

func labTestOwner(l *models.LabTest) string { return l.UserID }

func (s *Service) GetLabTests(ctx context.Context, in *api.GetLabTestsRequest) (*api.GetLabTestsResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}

	tests, err := store.FindAs[models.LabTest](ctx, s.store, api.LabTests, byUser(in.UserID))
	if err != nil {
		return nil, err
	}
	return &api.GetLabTestsResponse{LabTests: tests}, nil
}

func (s *Service) CreateLabTest(ctx context.Context, in *api.CreateLabTestRequest) (*api.CreateResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}
	if in.TestName == "" {
		return nil, invalid("testName is required")
	}

	l := models.LabTest{
		ID:              s.newID(),
		UserID:          in.UserID,
		TestName:        in.TestName,
		TestType:        in.TestType,
		ScheduledDate:   in.ScheduledDate,
		LabName:         in.LabName,
		LabAddress:      in.LabAddress,
		FastingRequired: in.FastingRequired,
		Instructions:    in.Instructions,
		Status:          models.LabTestScheduled,
		CreatedAt:       s.timestamp(),
	}
	if err := s.store.Insert(ctx, api.LabTests, l.ID, l); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.LabTests, in.UserID))
	return &api.CreateResponse{ID: l.ID}, nil
}

func (s *Service) UpdateLabTest(ctx context.Context, in *api.UpdateLabTestRequest) (*api.Empty, error) {
	patch, err := normalize(in.Updates)
	if err != nil {
		return nil, err
	}
	l, err := owned(ctx, s, api.LabTests, in.LabTestID, labTestOwner)
	if err != nil {
		return nil, err
	}

	if err := s.store.Patch(ctx, api.LabTests, l.ID, patch); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.LabTests, l.UserID))
	return &api.Empty{}, nil
}
