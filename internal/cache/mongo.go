package cache

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newswire/internal/story"
)

const MongoCollection = "story_cache"

// mongoDocument holds the JSON-encoded entry as text so that story times
// keep their full precision, matching the other backends.
type mongoDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Mongo keeps the entry as one document whose _id is the cache key.
type Mongo struct {
	base
	col *mongo.Collection
}

func NewMongo(db *mongo.Database, opts ...Option) *Mongo {
	return &Mongo{
		base: newBase(opts),
		col:  db.Collection(MongoCollection),
	}
}

func (m *Mongo) Read(ctx context.Context) ([]story.Story, bool) {
	var doc mongoDocument
	err := m.col.FindOne(ctx, bson.M{"_id": m.key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false
	}
	if err != nil {
		m.logf("cache: mongo read %q failed: %v", m.key, err)
		return nil, false
	}

	return m.serve([]byte(doc.Value))
}

// Write replaces the single document, inserting it on first use.
func (m *Mongo) Write(ctx context.Context, stories []story.Story) error {
	data, err := m.encode(stories)
	if err != nil {
		return err
	}
	doc := mongoDocument{Key: m.key, Value: string(data), UpdatedAt: m.now().UTC()}

	_, err = m.col.ReplaceOne(
		ctx,
		bson.M{"_id": m.key},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}
