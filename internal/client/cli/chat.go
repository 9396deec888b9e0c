package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/sehatbeat/internal/client/hooks"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

// chat [start | send <text...>]
func (a *App) chat(ctx context.Context, args []string) error {
	c := mount(ctx, a, "chat", hooks.UseConversation)

	op, rest := sub(args)
	switch op {
	case "":
		conv, err := snapshot(c.Current)
		if err != nil {
			return err
		}
		a.printConversation(conv)
		return nil

	case "start":
		o, err := c.StartConversation(ctx)
		return a.report("Start conversation", o, err)

	case "send":
		text := strings.Join(rest, " ")
		if text == "" {
			return usageError("chat send <text>")
		}
		o, err := c.SendMessage(ctx, text, map[string]any{"source": "cli"})
		if o == hooks.OutcomeMissingID {
			a.println("No conversation yet, run 'chat start' first")
			return nil
		}
		return a.report("Send message", o, err)
	}
	return usageError("chat [start|send]")
}

func (a *App) printConversation(conv *models.Conversation) {
	if conv == nil {
		a.println("No conversation yet, run 'chat start' first")
		return
	}
	if len(conv.Messages) == 0 {
		a.println("Conversation", conv.ID, "has no messages")
		return
	}
	for _, m := range conv.Messages {
		a.printf("[%s] %s: %s\n", formatTime(m.Timestamp), m.Role, m.Content)
	}
}
