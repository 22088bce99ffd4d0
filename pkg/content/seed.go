package content

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SeedStats counts the documents written by Seed.
type SeedStats struct {
	Topics     int
	Examples   int
	Attributes int
}

// SeedProgress is called after each document Seed writes, with the
// collection it went to and the running totals.
type SeedProgress func(collection string, stats SeedStats)

// Seed copies every document of src into dst. Documents are upserted by
// their natural key, so seeding twice leaves one copy of each. progress may
// be nil.
func Seed(ctx context.Context, dst *MongoRepository, src Repository, progress SeedProgress) (SeedStats, error) {
	if progress == nil {
		progress = func(string, SeedStats) {}
	}
	var stats SeedStats
	if err := dst.EnsureIndexes(ctx); err != nil {
		return stats, err
	}

	topics, err := src.Topics(ctx)
	if err != nil {
		return stats, err
	}
	for _, t := range topics {
		if err := dst.upsert(ctx, TopicsCollection, bson.D{{Key: "key", Value: t.Key}}, t); err != nil {
			return stats, err
		}
		stats.Topics++
		progress(TopicsCollection, stats)

		examples, err := src.Examples(ctx, t.Key)
		if err != nil {
			return stats, err
		}
		for _, e := range examples {
			filter := bson.D{{Key: "topic", Value: t.Key}, {Key: "key", Value: e.Key}}
			if err := dst.upsert(ctx, ExamplesCollection, filter, e); err != nil {
				return stats, err
			}
			stats.Examples++
			progress(ExamplesCollection, stats)
		}
	}

	attrs, err := src.Attributes(ctx)
	if err != nil {
		return stats, err
	}
	for _, a := range attrs {
		if err := dst.upsert(ctx, AttributesCollection, bson.D{{Key: "name", Value: a.Name}}, a); err != nil {
			return stats, err
		}
		stats.Attributes++
		progress(AttributesCollection, stats)
	}
	return stats, nil
}

// EnsureIndexes creates the unique indexes lookups rely on.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := map[string]bson.D{
		TopicsCollection:     {{Key: "key", Value: 1}},
		ExamplesCollection:   {{Key: "topic", Value: 1}, {Key: "key", Value: 1}},
		AttributesCollection: {{Key: "name", Value: 1}},
	}
	for _, name := range []string{TopicsCollection, ExamplesCollection, AttributesCollection} {
		model := mongo.IndexModel{Keys: indexes[name], Options: options.Index().SetUnique(true)}
		if _, err := r.db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create %s index: %w", name, err)
		}
	}
	return nil
}

func (r *MongoRepository) upsert(ctx context.Context, collection string, filter bson.D, doc any) error {
	_, err := r.db.Collection(collection).ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert into %s: %w", collection, err)
	}
	return nil
}
