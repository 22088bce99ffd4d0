// Package content provides the lesson material of the site.
//
// Lessons are inert data: topics, practice examples built from tag
// explanations, and the table of common HTML attributes. A [Repository]
// serves them; two implementations exist:
//   - [Embedded]: TOML files compiled into the binary
//   - [MongoRepository]: the same documents in MongoDB, filled by [Seed]
//
// Explanations contain inline markup such as <code>href</code>. Web pages
// render it through [Sanitize]; terminal surfaces use [PlainText] or
// [Markdown].
package content

import (
	"context"
	"errors"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
)

// ErrNotFound is wrapped by every failed lookup.
var ErrNotFound = errors.New("not found")

// Topic is a section of the site, e.g. HTML or CSS.
type Topic struct {
	Key     string `toml:"key" bson:"key" json:"key"`
	Title   string `toml:"title" bson:"title" json:"title"`
	Summary string `toml:"summary" bson:"summary" json:"summary"`
	// Route is the routes.Name of the topic page.
	Route string `toml:"route" bson:"route" json:"route"`
	Order int    `toml:"order" bson:"order" json:"order"`
}

// TagExplanation describes one HTML tag of a practice example.
// Desc, Semantics, Attributes and Example may contain inline <code> markup.
type TagExplanation struct {
	Tag        string `toml:"tag" bson:"tag" json:"tag"`
	Desc       string `toml:"desc" bson:"desc" json:"desc"`
	Semantics  string `toml:"semantics" bson:"semantics" json:"semantics"`
	Attributes string `toml:"attributes" bson:"attributes" json:"attributes"`
	Example    string `toml:"example" bson:"example" json:"example"`
}

// PracticeExplanation lists the notes shown next to a practice example.
type PracticeExplanation struct {
	HTML []string `toml:"html" bson:"html" json:"html"`
	CSS  []string `toml:"css" bson:"css" json:"css"`
}

// Example is a guided practice example of a topic.
type Example struct {
	Topic    string              `toml:"-" bson:"topic" json:"topic"`
	Key      string              `toml:"key" bson:"key" json:"key"`
	Title    string              `toml:"title" bson:"title" json:"title"`
	Order    int                 `toml:"-" bson:"order" json:"order"`
	Tags     []TagExplanation    `toml:"tags" bson:"tags" json:"tags,omitempty"`
	Practice PracticeExplanation `toml:"practice" bson:"practice" json:"practice"`

	// Markup and Style are the source code the example teaches.
	Markup string `toml:"markup" bson:"markup" json:"markup,omitempty"`
	Style  string `toml:"style" bson:"style" json:"style,omitempty"`
}

// Attribute is a row of the common-attributes table.
type Attribute struct {
	Name    string `toml:"name" bson:"name" json:"name"`
	Desc    string `toml:"desc" bson:"desc" json:"desc"`
	Example string `toml:"example" bson:"example" json:"example"`
	Order   int    `toml:"-" bson:"order" json:"order"`
}

// Repository serves lesson content. Implementations are read-only and safe
// for concurrent use.
type Repository interface {
	// Topics returns every topic ordered by Order.
	Topics(ctx context.Context) ([]Topic, error)

	// Topic returns one topic by key.
	Topic(ctx context.Context, key string) (Topic, error)

	// Examples returns the practice examples of a topic in lesson order.
	Examples(ctx context.Context, topic string) ([]Example, error)

	// Example returns one practice example.
	Example(ctx context.Context, topic, key string) (Example, error)

	// Attributes returns the common-attributes table.
	Attributes(ctx context.Context) ([]Attribute, error)
}

func topicNotFound(key string) error {
	return perrors.Wrap(perrors.ErrCodeTopicNotFound, ErrNotFound, "unknown topic %q", key)
}

func exampleNotFound(topic, key string) error {
	return perrors.Wrap(perrors.ErrCodeExampleNotFound, ErrNotFound, "unknown example %q in topic %q", key, topic)
}
