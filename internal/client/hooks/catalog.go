package hooks

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

// UseMedicines reads the medicine catalog. Empty category or search means
// no filter.
func UseMedicines(ctx context.Context, env Env, category, search string) *live.Query[[]models.Medicine] {
	return catalogRead(ctx, env, api.Medicines, func(ctx context.Context) ([]models.Medicine, error) {
		resp, err := env.Backend.GetMedicines(ctx, &api.GetMedicinesRequest{Category: category, Search: search})
		if err != nil {
			return nil, err
		}
		return resp.Medicines, nil
	})
}

// UseDoctors reads the doctor directory.
func UseDoctors(ctx context.Context, env Env, specialization, location string) *live.Query[[]models.Doctor] {
	return catalogRead(ctx, env, api.Doctors, func(ctx context.Context) ([]models.Doctor, error) {
		resp, err := env.Backend.GetDoctors(ctx, &api.GetDoctorsRequest{Specialization: specialization, Location: location})
		if err != nil {
			return nil, err
		}
		return resp.Doctors, nil
	})
}
