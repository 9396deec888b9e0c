package hooks

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

// Conversation is the user's most recent assistant conversation.
type Conversation struct {
	base
	Current *live.Query[*models.Conversation]
}

func UseConversation(ctx context.Context, env Env) *Conversation {
	c := &Conversation{base: newBase(ctx, env, "conversation")}
	c.Current = userRead(ctx, &c.base, api.Conversations, func(ctx context.Context, userID string) (*models.Conversation, error) {
		resp, err := env.Backend.GetConversation(ctx, &api.GetConversationRequest{UserID: userID})
		if err != nil {
			return nil, err
		}
		return resp.Conversation, nil
	})
	return c
}

func (c *Conversation) StartConversation(ctx context.Context) (Outcome, error) {
	if o, ok := c.gate(); !ok {
		return o, nil
	}
	_, err := c.env.Backend.CreateConversation(ctx, &api.CreateConversationRequest{UserID: c.userID()})
	return called(err)
}

// SendMessage appends a user message to the current conversation. It is
// skipped with OutcomeMissingID until a conversation has been loaded.
func (c *Conversation) SendMessage(ctx context.Context, content string, metadata map[string]any) (Outcome, error) {
	if o, ok := c.gate(); !ok {
		return o, nil
	}
	conv, _ := c.Current.Get()
	if conv == nil || conv.ID == "" {
		return OutcomeMissingID, nil
	}
	_, err := c.env.Backend.AddMessage(ctx, &api.AddMessageRequest{
		ConversationID: conv.ID,
		Role:           models.RoleUser,
		Content:        content,
		Metadata:       metadata,
	})
	return called(err)
}

func (c *Conversation) Close() error {
	return errors.Join(c.release(), c.Current.Close())
}
