package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/sehatbeat/internal/client/hooks"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

func (a *App) parseArgs(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(a.out)
	return fs.Parse(args)
}

// medicines lists the catalog: medicines [-c category] [search words].
func (a *App) medicines(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("medicines", flag.ContinueOnError)
	category := fs.String("c", "", "category")
	if err := a.parseArgs(fs, args); err != nil {
		return err
	}

	q := hooks.UseMedicines(ctx, a.env, *category, strings.Join(fs.Args(), " "))
	defer q.Close()

	list, err := snapshot(q)
	if err != nil {
		return err
	}
	a.printMedicines(list)
	return nil
}

func (a *App) printMedicines(list []models.Medicine) {
	if len(list) == 0 {
		a.println("No medicines found")
		return
	}
	a.table("ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tRX", func(w *tabwriter.Writer) {
		for _, m := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\n", m.ID, m.Name, m.Category, m.Price, yesNo(m.InStock), yesNo(m.RequiresPrescription))
		}
	})
}

// doctors lists the directory: doctors [-s specialization] [-l location].
func (a *App) doctors(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("doctors", flag.ContinueOnError)
	specialization := fs.String("s", "", "specialization")
	location := fs.String("l", "", "location")
	if err := a.parseArgs(fs, args); err != nil {
		return err
	}

	q := hooks.UseDoctors(ctx, a.env, *specialization, *location)
	defer q.Close()

	list, err := snapshot(q)
	if err != nil {
		return err
	}
	a.printDoctors(list)
	return nil
}

func (a *App) printDoctors(list []models.Doctor) {
	if len(list) == 0 {
		a.println("No doctors found")
		return
	}
	a.table("ID\tNAME\tSPECIALIZATION\tLOCATION\tRATING\tFEE\tAVAILABLE", func(w *tabwriter.Writer) {
		for _, d := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.2f\t%s\n", d.ID, d.Name, d.Specialization, d.Location, d.Rating, d.ConsultationFee, yesNo(d.Available))
		}
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
