package content

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
)

// Collection names used by MongoRepository.
const (
	TopicsCollection     = "topics"
	ExamplesCollection   = "examples"
	AttributesCollection = "attributes"
)

// MongoRepository serves lesson content from a MongoDB database.
type MongoRepository struct {
	db *mongo.Database
}

// NewMongoRepository wraps an open database.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{db: db}
}

// ConnectMongo opens a client for uri, verifies it with a ping and returns a
// repository on database. The returned function disconnects the client.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoRepository, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, perrors.Wrap(perrors.ErrCodeStorageUnavailable, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, perrors.Wrap(perrors.ErrCodeStorageUnavailable, err, "ping mongodb")
	}
	return NewMongoRepository(client.Database(database)), client.Disconnect, nil
}

// Database returns the underlying database.
func (r *MongoRepository) Database() *mongo.Database { return r.db }

func byOrder() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
}

func (r *MongoRepository) Topics(ctx context.Context) ([]Topic, error) {
	var out []Topic
	if err := r.findAll(ctx, TopicsCollection, bson.D{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) Topic(ctx context.Context, key string) (Topic, error) {
	var t Topic
	err := r.db.Collection(TopicsCollection).FindOne(ctx, bson.D{{Key: "key", Value: key}}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Topic{}, topicNotFound(key)
	}
	if err != nil {
		return Topic{}, fmt.Errorf("find topic %q: %w", key, err)
	}
	return t, nil
}

func (r *MongoRepository) Examples(ctx context.Context, topic string) ([]Example, error) {
	if _, err := r.Topic(ctx, topic); err != nil {
		return nil, err
	}
	var out []Example
	if err := r.findAll(ctx, ExamplesCollection, bson.D{{Key: "topic", Value: topic}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) Example(ctx context.Context, topic, key string) (Example, error) {
	var e Example
	filter := bson.D{{Key: "topic", Value: topic}, {Key: "key", Value: key}}
	err := r.db.Collection(ExamplesCollection).FindOne(ctx, filter).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Example{}, exampleNotFound(topic, key)
	}
	if err != nil {
		return Example{}, fmt.Errorf("find example %s/%s: %w", topic, key, err)
	}
	return e, nil
}

func (r *MongoRepository) Attributes(ctx context.Context) ([]Attribute, error) {
	var out []Attribute
	if err := r.findAll(ctx, AttributesCollection, bson.D{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) findAll(ctx context.Context, collection string, filter bson.D, out any) error {
	cur, err := r.db.Collection(collection).Find(ctx, filter, byOrder())
	if err != nil {
		return fmt.Errorf("find %s: %w", collection, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

var _ Repository = (*MongoRepository)(nil)
