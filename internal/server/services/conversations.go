package services

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
)

func conversationOwner(c *models.Conversation) string { return c.UserID }

// GetConversation returns the user's most recently created conversation, or
// nil when there is none.
func (s *Service) GetConversation(ctx context.Context, in *api.GetConversationRequest) (*api.GetConversationResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}

	all, err := store.FindAs[models.Conversation](ctx, s.store, api.Conversations, byUser(in.UserID))
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return &api.GetConversationResponse{}, nil
	}

	latest := all[0]
	for _, c := range all[1:] {
		if c.CreatedAt >= latest.CreatedAt {
			latest = c
		}
	}
	return &api.GetConversationResponse{Conversation: &latest}, nil
}

func (s *Service) CreateConversation(ctx context.Context, in *api.CreateConversationRequest) (*api.CreateResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}

	now := s.timestamp()
	c := models.Conversation{
		ID:        s.newID(),
		UserID:    in.UserID,
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, api.Conversations, c.ID, c); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.Conversations, in.UserID))
	return &api.CreateResponse{ID: c.ID}, nil
}

// AddMessage appends a message stamped with the server time.
func (s *Service) AddMessage(ctx context.Context, in *api.AddMessageRequest) (*api.Empty, error) {
	if in.Role != models.RoleUser && in.Role != models.RoleAssistant {
		return nil, invalid("unknown role %q", in.Role)
	}
	c, err := owned(ctx, s, api.Conversations, in.ConversationID, conversationOwner)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	c.Messages = append(c.Messages, models.Message{
		Role:      in.Role,
		Content:   in.Content,
		Timestamp: now,
		Metadata:  in.Metadata,
	})
	c.UpdatedAt = now

	if err := s.store.Insert(ctx, api.Conversations, c.ID, c); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.Conversations, c.UserID))
	return &api.Empty{}, nil
}
