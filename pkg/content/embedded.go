package content

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
)

//go:embed data/*.toml
var dataFS embed.FS

// lessonFile is the layout of a data/<topic>.toml file.
type lessonFile struct {
	Topic    string    `toml:"topic"`
	Examples []Example `toml:"examples"`
}

type topicsFile struct {
	Topics []Topic `toml:"topics"`
}

type attributesFile struct {
	Attributes []Attribute `toml:"attributes"`
}

// Catalog is an in-memory Repository.
type Catalog struct {
	topics     []Topic
	examples   map[string][]Example
	attributes []Attribute
}

var (
	embeddedOnce sync.Once
	embedded     *Catalog
	embeddedErr  error
)

// Embedded returns the lesson content compiled into the binary. The files
// are parsed once.
func Embedded() (*Catalog, error) {
	embeddedOnce.Do(func() {
		embedded, embeddedErr = Load(dataFS, "data")
	})
	return embedded, embeddedErr
}

// Load reads a catalog from dir in fsys: topics.toml, attributes.toml and
// one file per topic holding its examples.
func Load(fsys fs.FS, dir string) (*Catalog, error) {
	c := &Catalog{examples: map[string][]Example{}}

	var tf topicsFile
	if err := decodeFile(fsys, path.Join(dir, "topics.toml"), &tf); err != nil {
		return nil, err
	}
	c.topics = tf.Topics
	sort.SliceStable(c.topics, func(i, j int) bool { return c.topics[i].Order < c.topics[j].Order })

	var af attributesFile
	if err := decodeFile(fsys, path.Join(dir, "attributes.toml"), &af); err != nil {
		return nil, err
	}
	for i := range af.Attributes {
		af.Attributes[i].Order = i
	}
	c.attributes = af.Attributes

	known := map[string]bool{}
	for _, t := range c.topics {
		if err := perrors.ValidateKey(t.Key); err != nil {
			return nil, fmt.Errorf("topics.toml: %w", err)
		}
		known[t.Key] = true
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".toml" || name == "topics.toml" || name == "attributes.toml" {
			continue
		}
		var lf lessonFile
		if err := decodeFile(fsys, path.Join(dir, name), &lf); err != nil {
			return nil, err
		}
		if !known[lf.Topic] {
			return nil, fmt.Errorf("%s: unknown topic %q", name, lf.Topic)
		}
		for i := range lf.Examples {
			if err := perrors.ValidateKey(lf.Examples[i].Key); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			lf.Examples[i].Topic = lf.Topic
			lf.Examples[i].Order = i
		}
		c.examples[lf.Topic] = append(c.examples[lf.Topic], lf.Examples...)
	}
	return c, nil
}

func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if _, err := toml.Decode(string(data), v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) Topics(ctx context.Context) ([]Topic, error) {
	out := make([]Topic, len(c.topics))
	copy(out, c.topics)
	return out, nil
}

func (c *Catalog) Topic(ctx context.Context, key string) (Topic, error) {
	for _, t := range c.topics {
		if t.Key == key {
			return t, nil
		}
	}
	return Topic{}, topicNotFound(key)
}

func (c *Catalog) Examples(ctx context.Context, topic string) ([]Example, error) {
	if _, err := c.Topic(ctx, topic); err != nil {
		return nil, err
	}
	examples := c.examples[topic]
	out := make([]Example, len(examples))
	copy(out, examples)
	return out, nil
}

func (c *Catalog) Example(ctx context.Context, topic, key string) (Example, error) {
	if _, err := c.Topic(ctx, topic); err != nil {
		return Example{}, err
	}
	for _, e := range c.examples[topic] {
		if e.Key == key {
			return e, nil
		}
	}
	return Example{}, exampleNotFound(topic, key)
}

func (c *Catalog) Attributes(ctx context.Context) ([]Attribute, error) {
	out := make([]Attribute, len(c.attributes))
	copy(out, c.attributes)
	return out, nil
}

var _ Repository = (*Catalog)(nil)
