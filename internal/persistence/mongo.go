package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const itemsCollection = "persistence"

// MongoStore keeps every item as its own document keyed by _id.
type MongoStore struct {
	db *mongo.Database
}

var ErrNilDatabase = errors.New("database is nil")

func NewMongoStore(db *mongo.Database) (*MongoStore, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	return &MongoStore{db: db}, nil
}

// ConnectMongo dials uri, checks the connection and returns the named database.
// The caller disconnects the client on shutdown.
func ConnectMongo(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(dbName), nil
}

func (s *MongoStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var res struct {
		Value string `bson:"value"`
	}
	err := s.db.Collection(itemsCollection).FindOne(ctx, bson.M{"_id": key}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %q: %w", key, err)
	}
	return res.Value, true, nil
}

func (s *MongoStore) SetItem(ctx context.Context, key, value string) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"value": value}}

	if _, err := s.db.Collection(itemsCollection).UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("set item %q: %w", key, err)
	}
	return nil
}
