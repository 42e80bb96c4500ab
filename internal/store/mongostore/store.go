// Package mongostore backs DocumentStore with MongoDB. Conditional updates
// map directly onto single UpdateOne calls, so guards and writes are atomic
// per document without transactions.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/MrSnakeDoc/storefront/internal/store"
)

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) col(c store.Collection) *mongo.Collection {
	return s.db.Collection(string(c))
}

func (s *Store) Insert(ctx context.Context, c store.Collection, doc any) (string, error) {
	res, err := s.col(c).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("mongostore: insert %s: %w", c, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (s *Store) FindByKey(ctx context.Context, c store.Collection, key string, out any) error {
	oid, err := primitive.ObjectIDFromHex(key)
	if err != nil {
		return store.ErrInvalidKey
	}

	err = s.col(c).FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("mongostore: find %s/%s: %w", c, key, err)
	}
	return nil
}

func (s *Store) FindOne(ctx context.Context, c store.Collection, q store.Query, out any) error {
	opts := options.FindOne()
	if q.SortField != "" {
		opts.SetSort(bson.D{{Key: q.SortField, Value: sortOrder(q.SortDesc)}})
	}

	err := s.col(c).FindOne(ctx, buildFilter(q), opts).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("mongostore: find one %s: %w", c, err)
	}
	return nil
}

func (s *Store) Find(ctx context.Context, c store.Collection, q store.Query, out any) (int64, error) {
	filter := buildFilter(q)

	total, err := s.col(c).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongostore: count %s: %w", c, err)
	}

	opts := options.Find().SetSkip(q.Skip)
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if q.SortField != "" {
		opts.SetSort(bson.D{{Key: q.SortField, Value: sortOrder(q.SortDesc)}})
	}

	cur, err := s.col(c).Find(ctx, filter, opts)
	if err != nil {
		return 0, fmt.Errorf("mongostore: find %s: %w", c, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return 0, fmt.Errorf("mongostore: decode %s: %w", c, err)
	}
	return total, nil
}

func (s *Store) Update(ctx context.Context, c store.Collection, key string, u store.Update) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(key)
	if err != nil {
		return false, store.ErrInvalidKey
	}

	filter := bson.M{"_id": oid}
	for _, cond := range u.When {
		switch cond.Op {
		case store.CondEq, store.CondContains:
			// Array equality in Mongo matches membership, which is exactly
			// the contains guard.
			filter[cond.Field] = cond.Value
		case store.CondNotContains:
			filter[cond.Field] = bson.M{"$ne": cond.Value}
		}
	}

	res, err := s.col(c).UpdateOne(ctx, filter, buildUpdate(u))
	if err != nil {
		return false, fmt.Errorf("mongostore: update %s/%s: %w", c, key, err)
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) Delete(ctx context.Context, c store.Collection, key string) error {
	oid, err := primitive.ObjectIDFromHex(key)
	if err != nil {
		return store.ErrInvalidKey
	}

	res, err := s.col(c).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongostore: delete %s/%s: %w", c, key, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func buildFilter(q store.Query) bson.M {
	filter := bson.M{}
	for f, v := range q.Equals {
		filter[f] = v
	}
	if q.Search != nil && q.Search.Term != "" {
		pattern := regexp.QuoteMeta(q.Search.Term)
		or := make(bson.A, 0, len(q.Search.Fields))
		for _, f := range q.Search.Fields {
			or = append(or, bson.M{f: primitive.Regex{Pattern: pattern, Options: "i"}})
		}
		filter["$or"] = or
	}
	return filter
}

func buildUpdate(u store.Update) bson.M {
	update := bson.M{}
	if len(u.Set) > 0 {
		update["$set"] = u.Set
	}
	if len(u.Inc) > 0 {
		update["$inc"] = u.Inc
	}
	if len(u.Push) > 0 {
		update["$push"] = u.Push
	}
	if len(u.AddToSet) > 0 {
		update["$addToSet"] = u.AddToSet
	}
	if len(u.Pull) > 0 {
		update["$pull"] = u.Pull
	}
	return update
}

func sortOrder(desc bool) int {
	if desc {
		return -1
	}
	return 1
}
