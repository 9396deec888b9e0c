package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/sehatbeat/internal/cryptox"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_PersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sehatbeat.db")

	repos, err := InitDatabase(ctx, path, "pw")
	require.NoError(t, err)
	doc, err := repos.LocalDocs.Create(ctx, models.ClinicalDoc{Title: "Prescription"})
	require.NoError(t, err)
	require.NoError(t, repos.Close())

	repos, err = InitDatabase(ctx, path, "pw")
	require.NoError(t, err)
	defer repos.Close()

	list, err := repos.LocalDocs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, doc.ID, list[0].ID)
	assert.Equal(t, "Prescription", list[0].Title)
}

func TestInitDatabase_WrongSecret(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sehatbeat.db")

	repos, err := InitDatabase(ctx, path, "pw")
	require.NoError(t, err)
	require.NoError(t, repos.Close())

	_, err = InitDatabase(ctx, path, "other")
	require.ErrorIs(t, err, cryptox.ErrWrongKey)
}

func TestInitDatabase_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles", "alice", "sehatbeat.db")

	repos, err := InitDatabase(context.Background(), path, "pw")
	require.NoError(t, err)
	require.NoError(t, repos.Close())
}
