package hooks

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

// UseCurrentUser reads the profile of the signed-in (or development) user.
// The backend creates the profile on first fetch.
func UseCurrentUser(ctx context.Context, env Env) *live.Query[*models.UserProfile] {
	if !env.enabled() {
		return live.Disabled[*models.UserProfile]()
	}
	ext := env.externalID(ctx)
	if ext == "" {
		return live.Skip[*models.UserProfile]()
	}
	return live.Watch(ctx, env.Backend, []api.Topic{api.UserTopic(api.Users, ext)}, func(ctx context.Context) (*models.UserProfile, error) {
		resp, err := env.Backend.GetUserProfile(ctx, &api.GetUserProfileRequest{ExternalID: ext})
		if err != nil {
			return nil, err
		}
		return resp.Profile, nil
	}, env.logger().With("hook", "user"))
}
