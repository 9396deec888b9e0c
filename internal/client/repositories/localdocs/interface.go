package localdocs

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

var ErrNotFound = errors.New("local document not found")

type Repository interface {
	// Create assigns a local id and timestamps and stores doc.
	Create(ctx context.Context, doc models.ClinicalDoc) (*models.ClinicalDoc, error)
	// List returns documents oldest first.
	List(ctx context.Context) ([]models.ClinicalDoc, error)
	Get(ctx context.Context, id string) (*models.ClinicalDoc, error)
	// Update applies a top-level field patch; id, userId and createdAt are
	// never changed.
	Update(ctx context.Context, id string, updates models.Patch) (*models.ClinicalDoc, error)
	Delete(ctx context.Context, id string) error
}
