package mongodb

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var _ store.Store = (*Store)(nil)

func TestStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		s := New(mt.DB)
		err := s.Insert(context.Background(), api.Medicines, "m1", models.Medicine{ID: "m1", Name: "Cetirizine", Price: 3.5})
		require.NoError(mt, err)
	})

	mt.Run("insert error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "dup"}))

		s := New(mt.DB)
		err := s.Insert(context.Background(), api.Medicines, "m1", models.Medicine{ID: "m1"})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "mongo error")
	})

	mt.Run("get decodes body", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.reminders", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "r1"},
			{Key: "seq", Value: int64(1)},
			{Key: "body", Value: bson.D{
				{Key: "id", Value: "r1"},
				{Key: "userId", Value: "u1"},
				{Key: "title", Value: "Vitamin D"},
				{Key: "isActive", Value: true},
				{Key: "scheduledTime", Value: int64(1_700_000_000_000)},
			}},
		}))

		s := New(mt.DB)
		r, err := store.GetAs[models.Reminder](context.Background(), s, api.Reminders, "r1")
		require.NoError(mt, err)
		assert.Equal(mt, "Vitamin D", r.Title)
		assert.True(mt, r.IsActive)
		assert.Equal(mt, int64(1_700_000_000_000), r.ScheduledTime)
	})

	mt.Run("get not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.reminders", mtest.FirstBatch))

		s := New(mt.DB)
		_, err := s.Get(context.Background(), api.Reminders, "missing")
		require.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("find in order", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, "test.cart_items", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "c1"}, {Key: "body", Value: bson.D{{Key: "id", Value: "c1"}, {Key: "quantity", Value: int32(2)}}}},
		)
		second := mtest.CreateCursorResponse(1, "test.cart_items", mtest.NextBatch,
			bson.D{{Key: "_id", Value: "c2"}, {Key: "body", Value: bson.D{{Key: "id", Value: "c2"}, {Key: "quantity", Value: int64(5)}}}},
		)
		end := mtest.CreateCursorResponse(0, "test.cart_items", mtest.NextBatch)
		mt.AddMockResponses(first, second, end)

		s := New(mt.DB)
		items, err := store.FindAs[models.CartItem](context.Background(), s, api.CartItems, store.Filter{"userId": "u1"})
		require.NoError(mt, err)
		require.Len(mt, items, 2)
		assert.Equal(mt, "c1", items[0].ID)
		assert.Equal(mt, 5, items[1].Quantity)
	})

	mt.Run("patch", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		s := New(mt.DB)
		ctx := context.Background()
		require.NoError(mt, s.Patch(ctx, api.CartItems, "c1", models.Patch{"quantity": float64(4)}))
		require.ErrorIs(mt, s.Patch(ctx, api.CartItems, "c9", models.Patch{"quantity": float64(4)}), store.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		s := New(mt.DB)
		ctx := context.Background()
		require.NoError(mt, s.Delete(ctx, api.Reminders, "r1"))
		require.ErrorIs(mt, s.Delete(ctx, api.Reminders, "r1"), store.ErrNotFound)
	})

	mt.Run("close without client", func(mt *mtest.T) {
		require.NoError(mt, New(mt.DB).Close())
	})
}

func TestBSONValue(t *testing.T) {
	assert.Equal(t, int64(3), bsonValue(float64(3)))
	assert.Equal(t, 2.5, bsonValue(2.5))
	assert.Equal(t, bson.A{int64(1), "x"}, bsonValue([]any{float64(1), "x"}))
	assert.Equal(t, bson.M{"n": int64(7)}, bsonValue(map[string]any{"n": float64(7)}))
	assert.Equal(t, true, bsonValue(true))
}

func TestRoundTripJSON(t *testing.T) {
	body, err := toBSON([]byte(`{"id":"o1","totalAmount":12.5,"items":[{"medicineId":"m1","quantity":2,"price":6.25}]}`))
	require.NoError(t, err)

	raw, err := fromBSON(body)
	require.NoError(t, err)

	var o models.Order
	require.NoError(t, json.Unmarshal(raw, &o))
	assert.Equal(t, 12.5, o.TotalAmount)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)
}
