package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/sehatbeat/internal/client/hooks"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

func (a *App) remindersHook(ctx context.Context, all bool) *hooks.Reminders {
	if all {
		return mount(ctx, a, "reminders:all", func(ctx context.Context, env hooks.Env) *hooks.Reminders {
			return hooks.UseReminders(ctx, env, false)
		})
	}
	return mount(ctx, a, "reminders", func(ctx context.Context, env hooks.Env) *hooks.Reminders {
		return hooks.UseReminders(ctx, env, true)
	})
}

// reminders [all | add | off <id> | rm <id>]
func (a *App) reminders(ctx context.Context, args []string) error {
	op, rest := sub(args)
	r := a.remindersHook(ctx, op == "all")

	switch op {
	case "", "all":
		list, err := snapshot(r.Items)
		if err != nil {
			return err
		}
		a.printReminders(list)
		return nil

	case "add":
		in, err := a.askReminder()
		if err != nil {
			return err
		}
		o, err := r.AddReminder(ctx, in)
		return a.report("Add reminder", o, err)

	case "off":
		if len(rest) < 1 {
			return usageError("reminders off <id>")
		}
		o, err := r.UpdateReminder(ctx, rest[0], models.Patch{"isActive": false})
		return a.report("Turn off reminder", o, err)

	case "rm":
		if len(rest) < 1 {
			return usageError("reminders rm <id>")
		}
		o, err := r.DeleteReminder(ctx, rest[0])
		return a.report("Delete reminder", o, err)
	}
	return usageError("reminders [all|add|off|rm]")
}

func (a *App) askReminder() (hooks.NewReminder, error) {
	var in hooks.NewReminder

	kind, err := a.ask("Type (medication, appointment, lab_test)")
	if err != nil {
		return in, err
	}
	in.Type = models.ReminderType(kind)
	if !in.Type.Valid() {
		return in, fmt.Errorf("unknown reminder type %q", kind)
	}
	if in.Title, err = a.ask("Title"); err != nil {
		return in, err
	}
	if in.Description, err = a.ask("Description"); err != nil {
		return in, err
	}
	if in.ScheduledTime, err = a.askTime("When"); err != nil {
		return in, err
	}
	if in.RepeatPattern, err = a.ask("Repeat (daily, weekly, empty for once)"); err != nil {
		return in, err
	}

	switch in.Type {
	case models.ReminderMedication:
		if in.MedicineID, err = a.ask("Medicine id"); err != nil {
			return in, err
		}
		in.Dosage, err = a.ask("Dosage")
	case models.ReminderAppointment:
		in.DoctorID, err = a.ask("Doctor id")
	case models.ReminderLabTest:
		in.LabTestID, err = a.ask("Lab test id")
	}
	return in, err
}

func (a *App) printReminders(list []models.Reminder) {
	if len(list) == 0 {
		a.println("No reminders")
		return
	}
	a.table("ID\tTYPE\tTITLE\tWHEN\tREPEAT\tACTIVE", func(w *tabwriter.Writer) {
		for _, r := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Type, r.Title, formatTime(r.ScheduledTime), r.RepeatPattern, yesNo(r.IsActive))
		}
	})
}

// labtests [add | done <id> [results...]]
func (a *App) labTests(ctx context.Context, args []string) error {
	l := mount(ctx, a, "labtests", hooks.UseLabTests)

	op, rest := sub(args)
	switch op {
	case "":
		list, err := snapshot(l.Items)
		if err != nil {
			return err
		}
		a.printLabTests(list)
		return nil

	case "add":
		in, err := a.askLabTest()
		if err != nil {
			return err
		}
		o, err := l.AddLabTest(ctx, in)
		return a.report("Schedule lab test", o, err)

	case "done":
		if len(rest) < 1 {
			return usageError("labtests done <id> [results]")
		}
		patch := models.Patch{"status": models.LabTestCompleted}
		if results := strings.Join(rest[1:], " "); results != "" {
			patch["results"] = results
		}
		o, err := l.UpdateLabTest(ctx, rest[0], patch)
		return a.report("Complete lab test", o, err)
	}
	return usageError("labtests [add|done]")
}

func (a *App) askLabTest() (hooks.NewLabTest, error) {
	var (
		in  hooks.NewLabTest
		err error
	)
	if in.TestName, err = a.ask("Test name"); err != nil {
		return in, err
	}
	if in.TestType, err = a.ask("Test type"); err != nil {
		return in, err
	}
	if in.ScheduledDate, err = a.askTime("Date"); err != nil {
		return in, err
	}
	if in.LabName, err = a.ask("Lab name"); err != nil {
		return in, err
	}
	if in.LabAddress, err = a.ask("Lab address"); err != nil {
		return in, err
	}
	if in.FastingRequired, err = GetYesNo(a.reader, "Fasting required?", a.out); err != nil {
		return in, err
	}
	in.Instructions, err = a.ask("Instructions")
	return in, err
}

func (a *App) printLabTests(list []models.LabTest) {
	if len(list) == 0 {
		a.println("No lab tests")
		return
	}
	a.table("ID\tTEST\tTYPE\tDATE\tLAB\tFASTING\tSTATUS", func(w *tabwriter.Writer) {
		for _, l := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", l.ID, l.TestName, l.TestType, formatTime(l.ScheduledDate), l.LabName, yesNo(l.FastingRequired), l.Status)
		}
	})
}

// appointments [book | cancel <id>]
func (a *App) appointments(ctx context.Context, args []string) error {
	ap := mount(ctx, a, "appointments", hooks.UseAppointments)

	op, rest := sub(args)
	switch op {
	case "":
		list, err := snapshot(ap.Items)
		if err != nil {
			return err
		}
		a.printAppointments(list)
		return nil

	case "book":
		in, err := a.askAppointment()
		if err != nil {
			return err
		}
		o, err := ap.BookAppointment(ctx, in)
		return a.report("Book appointment", o, err)

	case "cancel":
		if len(rest) < 1 {
			return usageError("appointments cancel <id>")
		}
		o, err := ap.UpdateAppointment(ctx, rest[0], models.Patch{"status": models.AppointmentCancelled})
		return a.report("Cancel appointment", o, err)
	}
	return usageError("appointments [book|cancel]")
}

func (a *App) askAppointment() (hooks.NewAppointment, error) {
	var (
		in  hooks.NewAppointment
		err error
	)
	if in.DoctorID, err = a.ask("Doctor id"); err != nil {
		return in, err
	}
	if in.ScheduledTime, err = a.askTime("When"); err != nil {
		return in, err
	}
	kind, err := a.ask("Type (consultation, follow_up, emergency)")
	if err != nil {
		return in, err
	}
	in.Type = models.AppointmentType(kind)
	if !in.Type.Valid() {
		return in, fmt.Errorf("unknown appointment type %q", kind)
	}
	if in.Notes, err = a.ask("Notes"); err != nil {
		return in, err
	}
	symptoms, err := a.ask("Symptoms (comma separated)")
	in.Symptoms = splitList(symptoms)
	return in, err
}

func (a *App) printAppointments(list []models.Appointment) {
	if len(list) == 0 {
		a.println("No appointments")
		return
	}
	a.table("ID\tDOCTOR\tWHEN\tTYPE\tSTATUS", func(w *tabwriter.Writer) {
		for _, ap := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ap.ID, ap.DoctorID, formatTime(ap.ScheduledTime), ap.Type, ap.Status)
		}
	})
}
