package cli

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/client/hooks"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

const watchUsage = "watch <medicines|doctors|cart|reminders|labtests|docs|chat|appointments|orders|user>"

// watch prints every pushed update of one entity until Enter is pressed.
func (a *App) watch(ctx context.Context, args []string) error {
	entity, _ := sub(args)
	switch entity {
	case "medicines":
		q := hooks.UseMedicines(ctx, a.env, "", "")
		defer q.Close()
		return follow(ctx, a, q, a.printMedicines)
	case "doctors":
		q := hooks.UseDoctors(ctx, a.env, "", "")
		defer q.Close()
		return follow(ctx, a, q, a.printDoctors)
	case "user":
		q := hooks.UseCurrentUser(ctx, a.env)
		defer q.Close()
		return follow(ctx, a, q, func(p *models.UserProfile) {
			if p != nil {
				a.printf("Profile %s (%s)\n", p.ID, p.ExternalID)
			}
		})
	case "cart":
		return follow(ctx, a, a.cartHook(ctx).Items, a.printCart)
	case "reminders":
		return follow(ctx, a, a.remindersHook(ctx, false).Items, a.printReminders)
	case "labtests":
		return follow(ctx, a, mount(ctx, a, "labtests", hooks.UseLabTests).Items, a.printLabTests)
	case "docs":
		return follow(ctx, a, a.docsHook(ctx).Docs, func(list []models.ClinicalDoc) {
			a.printf("%d synced documents\n", len(list))
			for _, d := range list {
				a.printf("  %s  %s\n", d.ID, d.Title)
			}
		})
	case "chat":
		return follow(ctx, a, mount(ctx, a, "chat", hooks.UseConversation).Current, a.printConversation)
	case "appointments":
		return follow(ctx, a, mount(ctx, a, "appointments", hooks.UseAppointments).Items, a.printAppointments)
	case "orders":
		return follow(ctx, a, mount(ctx, a, "orders", hooks.UseOrders).Items, a.printOrders)
	}
	return usageError(watchUsage)
}

// follow renders q now and after every change until the user presses Enter
// or ctx ends.
func follow[T any](ctx context.Context, a *App, q *live.Query[T], render func(T)) error {
	if q.Disabled() || q.Skipped() {
		_, err := snapshot(q)
		return err
	}
	if err := q.Err(); err != nil {
		a.println("Error:", err)
	}

	updates, stop := q.Observe()
	defer stop()

	enter := make(chan struct{})
	go func() {
		_, _ = a.reader.ReadString('\n')
		close(enter)
	}()

	a.println("Watching, press Enter to stop")
	for {
		select {
		case v, ok := <-updates:
			if !ok {
				a.println("View closed, press Enter")
				select {
				case <-enter:
				case <-ctx.Done():
				}
				return nil
			}
			a.println("--")
			render(v)
		case <-enter:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
