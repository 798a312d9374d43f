package cache_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"newswire/internal/cache"
	"newswire/internal/db"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoCacheSuite struct {
	suite.Suite

	ctx    context.Context
	client *mongo.Client
	db     *mongo.Database
	col    *mongo.Collection

	clk   *clock
	store *cache.Mongo
}

func TestMongoCacheSuite(t *testing.T) {
	suite.Run(t, new(MongoCacheSuite))
}

func (s *MongoCacheSuite) SetupSuite() {
	s.ctx = context.Background()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	connectCtx, cancel := context.WithTimeout(s.ctx, 2*time.Second)
	defer cancel()

	client, err := db.ConnectMongo(connectCtx, mongoURI)
	if err != nil {
		s.T().Skipf("mongo not reachable at %s: %v", mongoURI, err)
	}
	s.client = client

	s.db = client.Database("test_newswire")
	s.col = s.db.Collection(cache.MongoCollection)
}

func (s *MongoCacheSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Disconnect(s.ctx)
	}
}

func (s *MongoCacheSuite) SetupTest() {
	// ensure a fresh DB before each test
	_ = s.db.Drop(s.ctx)

	s.clk = newClock()
	s.store = cache.NewMongo(s.db, cache.WithClock(s.clk.now))
}

func (s *MongoCacheSuite) TestReadWriteExpire() {
	_, ok := s.store.Read(s.ctx)
	s.False(ok, "empty collection is a miss")

	s.Require().NoError(s.store.Write(s.ctx, sampleStories()))

	got, ok := s.store.Read(s.ctx)
	s.Require().True(ok)
	s.Len(got, 2)
	s.Equal("One", got[0].Title)

	var raw bson.M
	s.Require().NoError(s.col.FindOne(s.ctx, bson.M{"_id": cache.DefaultKey}).Decode(&raw))
	value, isText := raw["value"].(string)
	s.Require().True(isText, "entry is stored as JSON text")
	s.Contains(value, fmt.Sprintf(`"timestamp":%d`, s.clk.now().UnixMilli()))

	s.clk.advance(6 * time.Minute)
	_, ok = s.store.Read(s.ctx)
	s.False(ok, "stale entry is a miss")
}

func (s *MongoCacheSuite) TestWriteReplacesSingleDocument() {
	s.Require().NoError(s.store.Write(s.ctx, sampleStories()))
	s.Require().NoError(s.store.Write(s.ctx, sampleStories()[:1]))

	count, err := s.col.CountDocuments(s.ctx, bson.M{})
	s.Require().NoError(err)
	s.EqualValues(1, count)

	got, ok := s.store.Read(s.ctx)
	s.Require().True(ok)
	s.Len(got, 1)
}

func (s *MongoCacheSuite) TestKeepsNanosecondTimes() {
	published := time.Date(2024, 3, 1, 9, 30, 15, 123456789, time.UTC)
	in := sampleStories()
	in[0].PublishedDate = published
	in[0].UpdatedAt = published

	s.Require().NoError(s.store.Write(s.ctx, in))

	got, ok := s.store.Read(s.ctx)
	s.Require().True(ok)
	s.True(published.Equal(got[0].PublishedDate), "got %v", got[0].PublishedDate)
	s.True(published.Equal(got[0].UpdatedAt), "got %v", got[0].UpdatedAt)
}
