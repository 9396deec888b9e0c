package seed

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/notify"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_FillsEmptyStore(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	hub := notify.NewHub()
	defer hub.Close()

	sub, err := hub.Subscribe(ctx, api.CatalogTopic(api.Medicines), api.CatalogTopic(api.Doctors))
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, Catalog(ctx, st, hub, logging.Nop{}))

	meds, err := store.FindAs[models.Medicine](ctx, st, api.Medicines, nil)
	require.NoError(t, err)
	require.Len(t, meds, len(Medicines))
	assert.Equal(t, Medicines[0], meds[0])

	docs, err := store.FindAs[models.Doctor](ctx, st, api.Doctors, nil)
	require.NoError(t, err)
	assert.Len(t, docs, len(Doctors))

	got := map[api.Topic]bool{}
	for len(got) < 2 {
		select {
		case ev := <-sub.Events():
			got[ev.Topic] = true
		case <-time.After(time.Second):
			t.Fatalf("missing catalog events, got %v", got)
		}
	}
}

func TestCatalog_LeavesExistingCatalog(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	hub := notify.NewHub()
	defer hub.Close()

	own := models.Medicine{ID: "m-own", Name: "House brand", Category: "misc"}
	require.NoError(t, st.Insert(ctx, api.Medicines, own.ID, own))

	require.NoError(t, Catalog(ctx, st, hub, logging.Nop{}))
	require.NoError(t, Catalog(ctx, st, hub, logging.Nop{}))

	meds, err := store.FindAs[models.Medicine](ctx, st, api.Medicines, nil)
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "m-own", meds[0].ID)

	docs, err := store.FindAs[models.Doctor](ctx, st, api.Doctors, nil)
	require.NoError(t, err)
	assert.Len(t, docs, len(Doctors))
}

type brokenStore struct{ store.Store }

func (brokenStore) Find(context.Context, api.Collection, store.Filter) ([]json.RawMessage, error) {
	return nil, errors.New("connection refused")
}

func TestCatalog_StoreError(t *testing.T) {
	hub := notify.NewHub()
	defer hub.Close()

	err := Catalog(context.Background(), brokenStore{}, hub, logging.Nop{})
	require.ErrorContains(t, err, "seed medicines: connection refused")
}

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Medicines {
		assert.False(t, seen[m.ID], m.ID)
		seen[m.ID] = true
	}
	for _, d := range Doctors {
		assert.False(t, seen[d.ID], d.ID)
		seen[d.ID] = true
	}
}
