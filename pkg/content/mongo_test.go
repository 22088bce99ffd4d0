package content

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
)

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("topics", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + TopicsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "key", Value: "html"}, {Key: "title", Value: "HTML"}, {Key: "order", Value: 1}},
			bson.D{{Key: "key", Value: "css"}, {Key: "title", Value: "CSS"}, {Key: "order", Value: 2}},
		))

		topics, err := NewMongoRepository(mt.DB).Topics(context.Background())
		if err != nil {
			t.Fatalf("Topics error: %v", err)
		}
		if len(topics) != 2 || topics[0].Key != "html" || topics[1].Title != "CSS" {
			t.Errorf("Topics = %+v", topics)
		}
	})

	mt.Run("topic not found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + TopicsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewMongoRepository(mt.DB).Topic(context.Background(), "python")
		if !perrors.Is(err, perrors.ErrCodeTopicNotFound) {
			t.Errorf("error = %v, want TOPIC_NOT_FOUND", err)
		}
	})

	mt.Run("example", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + ExamplesCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "topic", Value: "html"},
			{Key: "key", Value: "form"},
			{Key: "title", Value: "Форма"},
			{Key: "tags", Value: bson.A{bson.D{{Key: "tag", Value: "<form>"}}}},
		}))

		ex, err := NewMongoRepository(mt.DB).Example(context.Background(), "html", "form")
		if err != nil {
			t.Fatalf("Example error: %v", err)
		}
		if ex.Title != "Форма" || len(ex.Tags) != 1 || ex.Tags[0].Tag != "<form>" {
			t.Errorf("Example = %+v", ex)
		}
	})

	mt.Run("seed", func(mt *mtest.T) {
		src := &Catalog{
			topics:     []Topic{{Key: "html", Title: "HTML", Order: 1}},
			examples:   map[string][]Example{"html": {{Topic: "html", Key: "form"}}},
			attributes: []Attribute{{Name: "id"}},
		}

		// three index builds, then one upsert per document
		for i := 0; i < 6; i++ {
			mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		}

		var seen []string
		stats, err := Seed(context.Background(), NewMongoRepository(mt.DB), src, func(collection string, s SeedStats) {
			seen = append(seen, fmt.Sprintf("%s:%d/%d/%d", collection, s.Topics, s.Examples, s.Attributes))
		})
		if err != nil {
			t.Fatalf("Seed error: %v", err)
		}
		if stats != (SeedStats{Topics: 1, Examples: 1, Attributes: 1}) {
			t.Errorf("stats = %+v", stats)
		}
		want := "topics:1/0/0 examples:1/1/0 attributes:1/1/1"
		if got := strings.Join(seen, " "); got != want {
			t.Errorf("progress = %q, want %q", got, want)
		}
	})
}
