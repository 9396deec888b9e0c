package localdocs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/common"
	"github.com/dmitrijs2005/sehatbeat/internal/cryptox"
	"github.com/dmitrijs2005/sehatbeat/internal/dbx"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db  *sql.DB
	key []byte
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB, key []byte) *SQLiteRepository {
	return &SQLiteRepository{db: db, key: key, now: time.Now}
}

func newLocalID() string {
	return common.LocalIDPrefix + uuid.NewString()
}

func (r *SQLiteRepository) Create(ctx context.Context, doc models.ClinicalDoc) (*models.ClinicalDoc, error) {
	now := r.now().UnixMilli()
	doc.ID = newLocalID()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	if err := r.put(ctx, r.db, doc, true); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *SQLiteRepository) put(ctx context.Context, db dbx.DBTX, doc models.ClinicalDoc, insert bool) error {
	ciphertext, nonce, err := cryptox.Seal(doc, r.key)
	if err != nil {
		return fmt.Errorf("failed to seal local document: %w", err)
	}

	if insert {
		_, err = db.ExecContext(ctx,
			`INSERT INTO local_docs (id, ciphertext, nonce, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			doc.ID, ciphertext, nonce, doc.CreatedAt, doc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert local document: %w", err)
		}
		return nil
	}

	_, err = db.ExecContext(ctx,
		`UPDATE local_docs SET ciphertext = ?, nonce = ?, updated_at = ? WHERE id = ?`,
		ciphertext, nonce, doc.UpdatedAt, doc.ID)
	if err != nil {
		return fmt.Errorf("failed to update local document: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) open(ciphertext, nonce []byte) (models.ClinicalDoc, error) {
	var doc models.ClinicalDoc
	if err := cryptox.Open(ciphertext, nonce, r.key, &doc); err != nil {
		return doc, fmt.Errorf("failed to open local document: %w", err)
	}
	return doc, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.ClinicalDoc, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ciphertext, nonce FROM local_docs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select local documents: %w", err)
	}
	defer rows.Close()

	result := []models.ClinicalDoc{}
	for rows.Next() {
		var ct, nonce []byte
		if err := rows.Scan(&ct, &nonce); err != nil {
			return nil, err
		}
		doc, err := r.open(ct, nonce)
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) get(ctx context.Context, db dbx.DBTX, id string) (*models.ClinicalDoc, error) {
	var ct, nonce []byte
	err := db.QueryRowContext(ctx, `SELECT ciphertext, nonce FROM local_docs WHERE id = ?`, id).Scan(&ct, &nonce)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select local document: %w", err)
	}
	doc, err := r.open(ct, nonce)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.ClinicalDoc, error) {
	return r.get(ctx, r.db, id)
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, updates models.Patch) (*models.ClinicalDoc, error) {
	patch, err := updates.Normalize()
	if err != nil {
		return nil, err
	}

	var updated *models.ClinicalDoc
	err = dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		doc, err := r.get(ctx, tx, id)
		if err != nil {
			return err
		}

		merged, err := applyPatch(*doc, patch)
		if err != nil {
			return err
		}
		merged.ID = doc.ID
		merged.UserID = doc.UserID
		merged.CreatedAt = doc.CreatedAt
		merged.UpdatedAt = r.now().UnixMilli()

		if err := r.put(ctx, tx, merged, false); err != nil {
			return err
		}
		updated = &merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyPatch overlays the patch on the JSON form of doc.
func applyPatch(doc models.ClinicalDoc, patch models.Patch) (models.ClinicalDoc, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return doc, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return doc, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	raw, err = json.Marshal(fields)
	if err != nil {
		return doc, err
	}

	var out models.ClinicalDoc
	if err := json.Unmarshal(raw, &out); err != nil {
		return doc, fmt.Errorf("%w: %v", models.ErrInvalidPatch, err)
	}
	return out, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM local_docs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete local document: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
