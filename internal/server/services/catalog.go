package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// GetMedicines filters by exact category and by a case-insensitive search
// over name and description.
func (s *Service) GetMedicines(ctx context.Context, in *api.GetMedicinesRequest) (*api.GetMedicinesResponse, error) {
	f := store.Filter{}
	if in.Category != "" {
		f["category"] = in.Category
	}

	all, err := store.FindAs[models.Medicine](ctx, s.store, api.Medicines, f)
	if err != nil {
		return nil, err
	}

	search := strings.TrimSpace(in.Search)
	if search == "" {
		return &api.GetMedicinesResponse{Medicines: all}, nil
	}

	result := []models.Medicine{}
	for _, m := range all {
		if containsFold(m.Name, search) || containsFold(m.Description, search) {
			result = append(result, m)
		}
	}
	return &api.GetMedicinesResponse{Medicines: result}, nil
}

func (s *Service) GetDoctors(ctx context.Context, in *api.GetDoctorsRequest) (*api.GetDoctorsResponse, error) {
	f := store.Filter{}
	if in.Specialization != "" {
		f["specialization"] = in.Specialization
	}

	all, err := store.FindAs[models.Doctor](ctx, s.store, api.Doctors, f)
	if err != nil {
		return nil, err
	}
	if in.Location == "" {
		return &api.GetDoctorsResponse{Doctors: all}, nil
	}

	result := []models.Doctor{}
	for _, d := range all {
		if containsFold(d.Location, in.Location) {
			result = append(result, d)
		}
	}
	return &api.GetDoctorsResponse{Doctors: result}, nil
}
