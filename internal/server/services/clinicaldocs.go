package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/common"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/attachments"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
)

func docOwner(d *models.ClinicalDoc) string { return d.UserID }

func (s *Service) GetClinicalDocs(ctx context.Context, in *api.GetClinicalDocsRequest) (*api.GetClinicalDocsResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}

	docs, err := store.FindAs[models.ClinicalDoc](ctx, s.store, api.ClinicalDocs, byUser(in.UserID))
	if err != nil {
		return nil, err
	}
	return &api.GetClinicalDocsResponse{Docs: docs}, nil
}

// Stats counts documents overall, private ones and per category.
func Stats(docs []models.ClinicalDoc) *models.ClinicalDocStats {
	st := &models.ClinicalDocStats{ByCategory: map[string]int{}}
	for _, d := range docs {
		st.Total++
		if d.IsPrivate {
			st.Private++
		}
		st.ByCategory[d.Category]++
	}
	return st
}

func (s *Service) GetClinicalDocStats(ctx context.Context, in *api.GetClinicalDocStatsRequest) (*api.GetClinicalDocStatsResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}

	docs, err := store.FindAs[models.ClinicalDoc](ctx, s.store, api.ClinicalDocs, byUser(in.UserID))
	if err != nil {
		return nil, err
	}
	return &api.GetClinicalDocStatsResponse{Stats: Stats(docs)}, nil
}

// GetClinicalDocByID returns a nil document for an unknown id.
func (s *Service) GetClinicalDocByID(ctx context.Context, in *api.GetClinicalDocByIDRequest) (*api.GetClinicalDocByIDResponse, error) {
	if common.IsLocalID(in.DocID) {
		return nil, invalid("%q is a client-only document", in.DocID)
	}
	doc, err := owned(ctx, s, api.ClinicalDocs, in.DocID, docOwner)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &api.GetClinicalDocByIDResponse{}, nil
		}
		return nil, err
	}
	return &api.GetClinicalDocByIDResponse{Doc: doc}, nil
}

func (s *Service) CreateClinicalDoc(ctx context.Context, in *api.CreateClinicalDocRequest) (*api.CreateResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, invalid("title is required")
	}

	now := s.timestamp()
	d := models.ClinicalDoc{
		ID:          s.newID(),
		UserID:      in.UserID,
		Title:       in.Title,
		Content:     in.Content,
		Category:    in.Category,
		Tags:        in.Tags,
		Attachments: in.Attachments,
		DoctorID:    in.DoctorID,
		IsPrivate:   in.IsPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if err := s.store.Insert(ctx, api.ClinicalDocs, d.ID, d); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.ClinicalDocs, in.UserID))
	return &api.CreateResponse{ID: d.ID}, nil
}

// UpdateClinicalDoc applies the patch and bumps updatedAt.
func (s *Service) UpdateClinicalDoc(ctx context.Context, in *api.UpdateClinicalDocRequest) (*api.Empty, error) {
	patch, err := normalize(in.Updates)
	if err != nil {
		return nil, err
	}
	d, err := owned(ctx, s, api.ClinicalDocs, in.DocID, docOwner)
	if err != nil {
		return nil, err
	}

	patch["updatedAt"] = s.timestamp()
	if err := s.store.Patch(ctx, api.ClinicalDocs, d.ID, patch); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.ClinicalDocs, d.UserID))
	return &api.Empty{}, nil
}

func (s *Service) DeleteClinicalDoc(ctx context.Context, in *api.DeleteClinicalDocRequest) (*api.Empty, error) {
	d, err := owned(ctx, s, api.ClinicalDocs, in.DocID, docOwner)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, api.ClinicalDocs, d.ID); err != nil {
		return nil, err
	}
	s.publish(ctx, api.UserTopic(api.ClinicalDocs, d.UserID))
	return &api.Empty{}, nil
}

func (s *Service) PresignAttachment(ctx context.Context, in *api.PresignAttachmentRequest) (*api.PresignAttachmentResponse, error) {
	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}
	if in.FileName == "" {
		return nil, invalid("fileName is required")
	}
	if s.presigner == nil {
		return nil, ErrNoAttachments
	}

	key, url, err := s.presigner.PresignPut(ctx, in.UserID, in.FileName)
	if err != nil {
		return nil, err
	}
	return &api.PresignAttachmentResponse{Key: key, URL: url}, nil
}

// AttachmentURL returns a download URL for a key issued by PresignAttachment.
func (s *Service) AttachmentURL(ctx context.Context, key string) (string, error) {
	userID, ok := attachments.OwnerOf(key)
	if !ok {
		return "", invalid("bad attachment key %q", key)
	}
	if err := s.authorize(ctx, userID); err != nil {
		return "", err
	}
	if s.presigner == nil {
		return "", ErrNoAttachments
	}
	return s.presigner.PresignGet(ctx, key)
}
