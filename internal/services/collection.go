package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnnouncementCollection is the minimal document store contract the
// announcement service depends on. Documents are keyed by opaque string ids.
type AnnouncementCollection interface {
	// FindAll returns every document ordered by start_date descending.
	FindAll(ctx context.Context) ([]bson.M, error)
	// Insert stores doc under a generated id and returns it.
	Insert(ctx context.Context, doc bson.M) (string, error)
	// Update sets the given fields on the document with id.
	Update(ctx context.Context, id string, set bson.M) error
	// Delete removes the document with id.
	Delete(ctx context.Context, id string) error
}

// MongoAnnouncements stores announcements in the "announcement" collection.
type MongoAnnouncements struct {
	collection *mongo.Collection
}

func NewMongoAnnouncements(db *mongo.Database) *MongoAnnouncements {
	return &MongoAnnouncements{collection: db.Collection(AnnouncementCollectionName)}
}

const AnnouncementCollectionName = "announcement"

func (m *MongoAnnouncements) FindAll(ctx context.Context) ([]bson.M, error) {
	opts := options.Find().SetSort(bson.D{{Key: fieldStartDate, Value: -1}})
	cur, err := m.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (m *MongoAnnouncements) Insert(ctx context.Context, doc bson.M) (string, error) {
	id := primitive.NewObjectID().Hex()

	withID := make(bson.M, len(doc)+1)
	for k, v := range doc {
		withID[k] = v
	}
	withID["_id"] = id

	if _, err := m.collection.InsertOne(ctx, withID); err != nil {
		return "", err
	}
	return id, nil
}

func (m *MongoAnnouncements) Update(ctx context.Context, id string, set bson.M) error {
	res, err := m.collection.UpdateOne(ctx, idFilter(id), bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoAnnouncements) Delete(ctx context.Context, id string) error {
	res, err := m.collection.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// idFilter matches string ids and, for hex ids, documents created with an
// ObjectID key.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}
