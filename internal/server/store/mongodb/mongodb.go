// Package mongodb keeps backend documents in MongoDB, one collection per
// entity. Each stored document wraps the record JSON under "body" next to an
// insertion sequence used for ordering.
package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, now: time.Now}
}

// Connect dials uri, pings the deployment and opens database dbName.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri)
	opts.SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}

	s := New(client.Database(dbName))
	s.client = client
	return s, nil
}

type record struct {
	Body bson.M `bson:"body"`
}

func (s *Store) coll(c api.Collection) *mongo.Collection {
	return s.db.Collection(string(c))
}

// toBSON converts an encoded record into a BSON document.
func toBSON(raw []byte) (bson.M, error) {
	var body bson.M
	if err := bson.UnmarshalExtJSON(raw, false, &body); err != nil {
		return nil, err
	}
	return body, nil
}

func fromBSON(body bson.M) (json.RawMessage, error) {
	raw, err := bson.MarshalExtJSON(body, false, false)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// bsonValue stores whole patch numbers as integers so they decode back into
// integer fields.
func bsonValue(v any) any {
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int64(x)
		}
		return x
	case []any:
		out := make(bson.A, len(x))
		for i, e := range x {
			out[i] = bsonValue(e)
		}
		return out
	case map[string]any:
		out := make(bson.M, len(x))
		for k, e := range x {
			out[k] = bsonValue(e)
		}
		return out
	default:
		return v
	}
}

func (s *Store) Insert(ctx context.Context, c api.Collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c, id, err)
	}
	body, err := toBSON(raw)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c, id, err)
	}

	update := bson.M{
		"$set":         bson.M{"body": body},
		"$setOnInsert": bson.M{"seq": s.now().UnixNano()},
	}
	_, err = s.coll(c).UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, c api.Collection, id string) (json.RawMessage, error) {
	var rec record
	err := s.coll(c).FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return fromBSON(rec.Body)
}

func (s *Store) Find(ctx context.Context, c api.Collection, f store.Filter) ([]json.RawMessage, error) {
	filter := bson.M{}
	for k, v := range f {
		filter["body."+k] = v
	}

	cur, err := s.coll(c).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	defer cur.Close(ctx)

	result := []json.RawMessage{}
	for cur.Next(ctx) {
		var rec record
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("mongo error: %w", err)
		}
		raw, err := fromBSON(rec.Body)
		if err != nil {
			return nil, err
		}
		result = append(result, raw)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return result, nil
}

func (s *Store) Patch(ctx context.Context, c api.Collection, id string, patch models.Patch) error {
	if len(patch) == 0 {
		_, err := s.Get(ctx, c, id)
		return err
	}

	set := bson.M{}
	for k, v := range patch {
		set["body."+k] = bsonValue(v)
	}

	res, err := s.coll(c).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, c api.Collection, id string) error {
	res, err := s.coll(c).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
