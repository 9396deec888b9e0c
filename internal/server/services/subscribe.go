package services

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/server/auth"
)

func isCatalog(c api.Collection) bool {
	return c == api.Medicines || c == api.Doctors
}

// AuthorizeTopic applies the ownership rules to a subscription topic. User
// topics of the users collection carry the external id.
func (s *Service) AuthorizeTopic(ctx context.Context, t api.Topic) error {
	if !t.Collection.Valid() {
		return api.ErrInvalidTopic
	}
	subject, ok := auth.SubjectFrom(ctx)
	if !ok {
		return nil
	}
	switch {
	case t.UserID == "":
		if !isCatalog(t.Collection) {
			return ErrForbidden
		}
		return nil
	case t.Collection == api.Users:
		if t.UserID != subject {
			return ErrForbidden
		}
		return nil
	default:
		return s.authorize(ctx, t.UserID)
	}
}

// Subscribe streams change events for in.Topics until the client goes away
// or the broker shuts down.
func (s *Service) Subscribe(in *api.SubscribeRequest, stream api.SubscribeServer) error {
	ctx := stream.Context()

	if len(in.Topics) == 0 {
		return invalid("no topics")
	}
	for _, t := range in.Topics {
		if err := s.AuthorizeTopic(ctx, t); err != nil {
			return err
		}
	}

	sub, err := s.broker.Subscribe(ctx, in.Topics...)
	if err != nil {
		return err
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := stream.Send(&ev); err != nil {
				return err
			}
		}
	}
}
