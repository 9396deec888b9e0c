package services

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/auth"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
)

func (s *Service) Ping(ctx context.Context, in *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

// GetUserProfile returns the profile for an external identity, creating it
// on first use.
func (s *Service) GetUserProfile(ctx context.Context, in *api.GetUserProfileRequest) (*api.GetUserProfileResponse, error) {
	if in.ExternalID == "" {
		return nil, invalid("externalId is required")
	}
	if subject, ok := auth.SubjectFrom(ctx); ok && subject != in.ExternalID {
		return nil, ErrForbidden
	}

	found, err := store.FindAs[models.UserProfile](ctx, s.store, api.Users, store.Filter{"externalId": in.ExternalID})
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		return &api.GetUserProfileResponse{Profile: &found[0]}, nil
	}

	p := models.UserProfile{
		ID:         s.newID(),
		ExternalID: in.ExternalID,
		CreatedAt:  s.timestamp(),
	}
	if err := s.store.Insert(ctx, api.Users, p.ID, p); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "created user profile", "user_id", p.ID)
	s.publish(ctx, api.UserTopic(api.Users, in.ExternalID))

	return &api.GetUserProfileResponse{Profile: &p}, nil
}
