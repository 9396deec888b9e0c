package hooks

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
	"github.com/dmitrijs2005/sehatbeat/internal/common"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

type NewClinicalDoc struct {
	Title       string
	Content     string
	Category    string
	Tags        []string
	Attachments []string
	DoctorID    string
	IsPrivate   bool
}

// ClinicalDocs is the clinical document store of the current user. Ids
// starting with common.LocalIDPrefix name client-only records that never
// reach the backend.
type ClinicalDocs struct {
	base
	Docs  *live.Query[[]models.ClinicalDoc]
	Stats *live.Query[*models.ClinicalDocStats]

	mu   sync.Mutex
	byID map[string]*live.Query[*models.ClinicalDoc]
}

func UseClinicalDocs(ctx context.Context, env Env) *ClinicalDocs {
	d := &ClinicalDocs{base: newBase(ctx, env, "clinicaldocs")}
	d.Docs = userRead(ctx, &d.base, api.ClinicalDocs, func(ctx context.Context, userID string) ([]models.ClinicalDoc, error) {
		resp, err := env.Backend.GetClinicalDocs(ctx, &api.GetClinicalDocsRequest{UserID: userID})
		if err != nil {
			return nil, err
		}
		return resp.Docs, nil
	})
	d.Stats = userRead(ctx, &d.base, api.ClinicalDocs, func(ctx context.Context, userID string) (*models.ClinicalDocStats, error) {
		resp, err := env.Backend.GetClinicalDocStats(ctx, &api.GetClinicalDocStatsRequest{UserID: userID})
		if err != nil {
			return nil, err
		}
		return resp.Stats, nil
	})
	return d
}

func (d *ClinicalDocs) UserLoaded() bool {
	return d.userID() != ""
}

func (d *ClinicalDocs) CurrentUser() *models.UserProfile {
	return d.profile()
}

// DocByID reads a single remote document. It is skipped for an empty or
// local id and while the user is unknown. Each id gets one query, shared by
// every caller and closed with the hook.
func (d *ClinicalDocs) DocByID(ctx context.Context, docID string) *live.Query[*models.ClinicalDoc] {
	if docID == "" || common.IsLocalID(docID) {
		if !d.enabled {
			return live.Disabled[*models.ClinicalDoc]()
		}
		return live.Skip[*models.ClinicalDoc]()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if q, ok := d.byID[docID]; ok {
		return q
	}
	q := userRead(ctx, &d.base, api.ClinicalDocs, func(ctx context.Context, _ string) (*models.ClinicalDoc, error) {
		resp, err := d.env.Backend.GetClinicalDocByID(ctx, &api.GetClinicalDocByIDRequest{DocID: docID})
		if err != nil {
			return nil, err
		}
		return resp.Doc, nil
	})
	if d.byID == nil {
		d.byID = map[string]*live.Query[*models.ClinicalDoc]{}
	}
	d.byID[docID] = q
	return q
}

// AddClinicalDoc creates a remote document and returns its id. With the
// backend disabled it does nothing; with the backend enabled and nobody
// signed in it fails with ErrUnauthenticated.
func (d *ClinicalDocs) AddClinicalDoc(ctx context.Context, in NewClinicalDoc) (string, error) {
	if !d.enabled {
		return "", nil
	}
	if d.userID() == "" {
		d.log.Warn(ctx, "cannot create clinical document without a user")
		return "", ErrUnauthenticated
	}
	resp, err := d.env.Backend.CreateClinicalDoc(ctx, &api.CreateClinicalDocRequest{
		UserID:      d.userID(),
		Title:       in.Title,
		Content:     in.Content,
		Category:    in.Category,
		Tags:        in.Tags,
		Attachments: in.Attachments,
		DoctorID:    in.DoctorID,
		IsPrivate:   in.IsPrivate,
	})
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

// UpdateDoc forwards updates for a remote document unchanged. Local ids
// fail with *LocalRecordError whatever the gate or identity state.
func (d *ClinicalDocs) UpdateDoc(ctx context.Context, docID string, updates models.Patch) (Outcome, error) {
	if common.IsLocalID(docID) {
		return OutcomeLocalRecord, &LocalRecordError{ID: docID, Op: "update"}
	}
	if !d.enabled {
		return OutcomeDisabled, nil
	}
	if docID == "" {
		return OutcomeMissingID, nil
	}
	_, err := d.env.Backend.UpdateClinicalDoc(ctx, &api.UpdateClinicalDocRequest{DocID: docID, Updates: updates})
	return called(err)
}

// DeleteDoc deletes a remote document. Local ids fail with
// *LocalRecordError whatever the gate or identity state.
func (d *ClinicalDocs) DeleteDoc(ctx context.Context, docID string) (Outcome, error) {
	if common.IsLocalID(docID) {
		return OutcomeLocalRecord, &LocalRecordError{ID: docID, Op: "delete"}
	}
	if !d.enabled {
		return OutcomeDisabled, nil
	}
	if docID == "" {
		return OutcomeMissingID, nil
	}
	_, err := d.env.Backend.DeleteClinicalDoc(ctx, &api.DeleteClinicalDocRequest{DocID: docID})
	return called(err)
}

// PresignAttachment returns an upload key and URL for a document
// attachment.
func (d *ClinicalDocs) PresignAttachment(ctx context.Context, fileName string) (*api.PresignAttachmentResponse, Outcome, error) {
	if o, ok := d.gate(); !ok {
		return nil, o, nil
	}
	resp, err := d.env.Backend.PresignAttachment(ctx, &api.PresignAttachmentRequest{UserID: d.userID(), FileName: fileName})
	return resp, OutcomeApplied, err
}

func (d *ClinicalDocs) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	closers := []interface{ Close() error }{d.Docs, d.Stats}
	for _, q := range d.byID {
		closers = append(closers, q)
	}
	d.byID = nil
	return errors.Join(d.release(), closeAll(closers...))
}
