// Package services implements the backend surface over a document store.
// Every mutation publishes the topic of the record set it changed.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/common"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/attachments"
	"github.com/dmitrijs2005/sehatbeat/internal/server/auth"
	"github.com/dmitrijs2005/sehatbeat/internal/server/notify"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
	"github.com/google/uuid"
)

var (
	ErrInvalidArgument = common.ErrInvalidArgument
	ErrForbidden       = common.ErrForbidden
	ErrNoAttachments   = attachments.ErrNotConfigured
)

type Service struct {
	store     store.Store
	broker    notify.Broker
	presigner attachments.Presigner
	logger    logging.Logger

	now   func() time.Time
	newID func() string
}

// New builds the service. presigner may be nil, in which case
// PresignAttachment fails with ErrNoAttachments.
func New(s store.Store, b notify.Broker, p attachments.Presigner, l logging.Logger) *Service {
	return &Service{
		store:     s,
		broker:    b,
		presigner: p,
		logger:    l.With("module", "services"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

var _ api.BackendServer = (*Service)(nil)

func (s *Service) timestamp() int64 {
	return s.now().UnixMilli()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// publish notifies subscribers. A failed notification does not undo the
// write, so it is only logged.
func (s *Service) publish(ctx context.Context, topics ...api.Topic) {
	if err := s.broker.Publish(ctx, topics...); err != nil {
		s.logger.Error(ctx, "publish failed", "error", err)
	}
}

// authorize checks that the caller may act for userID. Calls without an
// authenticated subject are trusted; otherwise the profile behind userID
// must belong to the subject.
func (s *Service) authorize(ctx context.Context, userID string) error {
	if userID == "" {
		return invalid("userId is required")
	}
	subject, ok := auth.SubjectFrom(ctx)
	if !ok {
		return nil
	}

	p, err := store.GetAs[models.UserProfile](ctx, s.store, api.Users, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if p.ExternalID != subject {
		return ErrForbidden
	}
	return nil
}

// owned loads record id of collection c and authorizes its owner.
func owned[T any](ctx context.Context, s *Service, c api.Collection, id string, owner func(*T) string) (*T, error) {
	if id == "" {
		return nil, invalid("%s id is required", c)
	}
	rec, err := store.GetAs[T](ctx, s.store, c, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, owner(rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

// normalize validates a client patch.
func normalize(updates models.Patch) (models.Patch, error) {
	patch, err := updates.Normalize()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return patch, nil
}

func byUser(userID string) store.Filter {
	return store.Filter{"userId": userID}
}
