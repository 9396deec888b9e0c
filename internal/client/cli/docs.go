package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/sehatbeat/internal/client/hooks"
	"github.com/dmitrijs2005/sehatbeat/internal/client/repositories/localdocs"
	"github.com/dmitrijs2005/sehatbeat/internal/common"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/netx"
)

func (a *App) docsHook(ctx context.Context) *hooks.ClinicalDocs {
	return mount(ctx, a, "docs", hooks.UseClinicalDocs)
}

// docs [add | edit <id> | rm <id> | show <id> | attach <id> <file>]. Documents
// kept on this device have local ids; the hook refuses them and the local
// store takes over.
func (a *App) docs(ctx context.Context, args []string) error {
	d := a.docsHook(ctx)

	op, rest := sub(args)
	switch op {
	case "":
		return a.listDocs(ctx, d)
	case "add":
		return a.addDoc(ctx, d)
	case "edit":
		if len(rest) < 1 {
			return usageError("docs edit <id>")
		}
		return a.editDoc(ctx, d, rest[0])
	case "rm":
		if len(rest) < 1 {
			return usageError("docs rm <id>")
		}
		return a.deleteDoc(ctx, d, rest[0])
	case "show":
		if len(rest) < 1 {
			return usageError("docs show <id>")
		}
		return a.showDoc(ctx, d, rest[0])
	case "attach":
		if len(rest) < 2 {
			return usageError("docs attach <id> <file>")
		}
		return a.attachFile(ctx, d, rest[0], rest[1])
	}
	return usageError("docs [add|edit|rm|show|attach]")
}

func (a *App) listDocs(ctx context.Context, d *hooks.ClinicalDocs) error {
	var all []models.ClinicalDoc

	remote, err := snapshot(d.Docs)
	switch {
	case err == nil:
		all = append(all, remote...)
	case errors.Is(err, errBackendDisabled), errors.Is(err, errNoUser):
	default:
		return err
	}

	local, err := a.local.List(ctx)
	if err != nil {
		return err
	}
	all = append(all, local...)

	if len(all) == 0 {
		a.println("No documents")
	} else {
		a.table("ID\tTITLE\tCATEGORY\tTAGS\tPRIVATE\tUPDATED", func(w *tabwriter.Writer) {
			for _, doc := range all {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", doc.ID, doc.Title, doc.Category, strings.Join(doc.Tags, ","), yesNo(doc.IsPrivate), formatTime(doc.UpdatedAt))
			}
		})
	}

	if stats, err := snapshot(d.Stats); err == nil && stats != nil {
		a.printStats(stats)
	}
	return nil
}

func (a *App) printStats(s *models.ClinicalDocStats) {
	categories := make([]string, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		parts = append(parts, fmt.Sprintf("%s=%d", c, s.ByCategory[c]))
	}
	a.printf("Synced: %d total, %d private [%s]\n", s.Total, s.Private, strings.Join(parts, " "))
}

func (a *App) askDoc() (hooks.NewClinicalDoc, error) {
	var (
		in  hooks.NewClinicalDoc
		err error
	)
	if in.Title, err = a.ask("Title"); err != nil {
		return in, err
	}
	if in.Category, err = a.ask("Category"); err != nil {
		return in, err
	}
	tags, err := a.ask("Tags (comma separated)")
	if err != nil {
		return in, err
	}
	in.Tags = splitList(tags)
	if in.DoctorID, err = a.ask("Doctor id (optional)"); err != nil {
		return in, err
	}
	if in.Content, err = GetMultiline(a.reader, "Content", a.out); err != nil {
		return in, err
	}
	in.IsPrivate, err = GetYesNo(a.reader, "Private?", a.out)
	return in, err
}

func (a *App) addDoc(ctx context.Context, d *hooks.ClinicalDocs) error {
	in, err := a.askDoc()
	if err != nil {
		return err
	}
	if in.Title == "" {
		return errors.New("title is required")
	}

	id, err := d.AddClinicalDoc(ctx, in)
	switch {
	case errors.Is(err, hooks.ErrUnauthenticated):
		a.println("Not signed in, keeping the document on this device")
	case err != nil:
		return err
	case id != "":
		a.println("Created document", id)
		return nil
	}

	doc, err := a.local.Create(ctx, models.ClinicalDoc{
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		Tags:      in.Tags,
		DoctorID:  in.DoctorID,
		IsPrivate: in.IsPrivate,
	})
	if err != nil {
		return err
	}
	a.println("Saved local document", doc.ID)
	return nil
}

func (a *App) editDoc(ctx context.Context, d *hooks.ClinicalDocs, id string) error {
	lines, err := GetFields(a.reader, a.out)
	if err != nil {
		return err
	}
	patch, err := parsePatch(lines)
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		a.println("Nothing to change")
		return nil
	}

	o, err := d.UpdateDoc(ctx, id, patch)
	var local *hooks.LocalRecordError
	if errors.As(err, &local) {
		if _, err := a.local.Update(ctx, id, patch); err != nil {
			return err
		}
		a.println("Local document updated")
		return nil
	}
	return a.report("Update document", o, err)
}

func (a *App) deleteDoc(ctx context.Context, d *hooks.ClinicalDocs, id string) error {
	o, err := d.DeleteDoc(ctx, id)
	var local *hooks.LocalRecordError
	if errors.As(err, &local) {
		if err := a.local.Delete(ctx, id); err != nil {
			return err
		}
		a.println("Local document deleted")
		return nil
	}
	return a.report("Delete document", o, err)
}

// findDoc looks id up in the local store or on the backend. A missing
// document is nil without error.
func (a *App) findDoc(ctx context.Context, d *hooks.ClinicalDocs, id string) (*models.ClinicalDoc, error) {
	if common.IsLocalID(id) {
		doc, err := a.local.Get(ctx, id)
		if errors.Is(err, localdocs.ErrNotFound) {
			return nil, nil
		}
		return doc, err
	}
	return snapshot(d.DocByID(ctx, id))
}

func (a *App) showDoc(ctx context.Context, d *hooks.ClinicalDocs, id string) error {
	doc, err := a.findDoc(ctx, d, id)
	if err != nil {
		return err
	}
	if doc == nil {
		a.println("Document not found")
		return nil
	}

	a.printf("%s (%s)\n", doc.Title, doc.ID)
	a.printf("Category: %s  Tags: %s  Private: %s\n", doc.Category, strings.Join(doc.Tags, ","), yesNo(doc.IsPrivate))
	if doc.DoctorID != "" {
		a.printf("Doctor: %s\n", doc.DoctorID)
	}
	for _, key := range doc.Attachments {
		a.printf("Attachment: %s\n", key)
	}
	a.printf("Updated: %s\n\n%s\n", formatTime(doc.UpdatedAt), doc.Content)
	return nil
}

// attachFile uploads path through a presigned URL and adds the storage key
// to the document's attachments.
func (a *App) attachFile(ctx context.Context, d *hooks.ClinicalDocs, id, path string) error {
	doc, err := a.findDoc(ctx, d, id)
	if err != nil {
		return err
	}
	if doc == nil {
		a.println("Document not found")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	resp, o, err := d.PresignAttachment(ctx, filepath.Base(path))
	if err != nil || o.Skipped() {
		return a.report("Attachment upload", o, err)
	}
	if err := netx.UploadToPresignedURL(ctx, a.httpClient, resp.URL, f, info.Size(), mime.TypeByExtension(filepath.Ext(path))); err != nil {
		return err
	}

	patch := models.Patch{"attachments": append(append([]string{}, doc.Attachments...), resp.Key)}
	if common.IsLocalID(id) {
		if _, err := a.local.Update(ctx, id, patch); err != nil {
			return err
		}
	} else if o, err := d.UpdateDoc(ctx, id, patch); err != nil || o.Skipped() {
		return a.report("Attach file", o, err)
	}
	a.println("Attached", resp.Key)
	return nil
}

// parsePatch turns name=value lines into a document patch. tags and
// attachments take comma separated lists, isPrivate a boolean.
func parsePatch(lines []string) (models.Patch, error) {
	patch := models.Patch{}
	for _, line := range lines {
		name, value, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("bad field %q", line)
		}
		value = strings.TrimSpace(value)

		switch name {
		case "tags", "attachments":
			patch[name] = splitList(value)
		case "isPrivate":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("bad value for %s: %q", name, value)
			}
			patch[name] = b
		default:
			patch[name] = value
		}
	}
	return patch, nil
}
