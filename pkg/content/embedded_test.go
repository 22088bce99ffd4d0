package content

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
	"github.com/pandalearn/pandalearn/pkg/routes"
)

func TestEmbeddedTopics(t *testing.T) {
	ctx := context.Background()
	c, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded error: %v", err)
	}

	topics, err := c.Topics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"html", "css", "js", "ts", "nodejs", "svelte"}
	if len(topics) != len(want) {
		t.Fatalf("got %d topics, want %d", len(topics), len(want))
	}
	for i, key := range want {
		if topics[i].Key != key {
			t.Errorf("topic %d = %s, want %s", i, topics[i].Key, key)
		}
		if _, err := routes.Lookup(routes.Name(topics[i].Route)); err != nil {
			t.Errorf("topic %s has unknown route %q", key, topics[i].Route)
		}
	}
}

func TestEmbeddedExamples(t *testing.T) {
	ctx := context.Background()
	c, err := Embedded()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		topic, key string
		tags       int
		practice   bool
	}{
		{"html", "header", 8, false},
		{"html", "form", 4, false},
		{"css", "header", 0, true},
		{"css", "form", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.topic+"/"+tt.key, func(t *testing.T) {
			ex, err := c.Example(ctx, tt.topic, tt.key)
			if err != nil {
				t.Fatalf("Example error: %v", err)
			}
			if ex.Topic != tt.topic {
				t.Errorf("Topic = %q, want %q", ex.Topic, tt.topic)
			}
			if len(ex.Tags) != tt.tags {
				t.Errorf("got %d tags, want %d", len(ex.Tags), tt.tags)
			}
			if hasPractice := len(ex.Practice.HTML) > 0 && len(ex.Practice.CSS) > 0; hasPractice != tt.practice {
				t.Errorf("practice notes present = %v, want %v", hasPractice, tt.practice)
			}
			if ex.Markup == "" {
				t.Error("example should carry its markup")
			}
		})
	}

	header, _ := c.Example(ctx, "html", "header")
	if header.Tags[0].Tag != "<header>" || header.Tags[7].Tag != "<option>" {
		t.Errorf("header tags out of order: first %q, last %q", header.Tags[0].Tag, header.Tags[7].Tag)
	}

	examples, err := c.Examples(ctx, "html")
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) != 2 || examples[0].Key != "header" || examples[1].Key != "form" {
		t.Errorf("html examples = %+v", examples)
	}

	// Topics without practice material have no examples
	js, err := c.Examples(ctx, "js")
	if err != nil || len(js) != 0 {
		t.Errorf("js examples = %v, %v; want none", js, err)
	}
}

func TestEmbeddedAttributes(t *testing.T) {
	c, err := Embedded()
	if err != nil {
		t.Fatal(err)
	}
	attrs, err := c.Attributes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(attrs) == 0 || attrs[0].Name != "id" {
		t.Errorf("attributes should start with id, got %+v", attrs)
	}
}

func TestEmbeddedNotFound(t *testing.T) {
	ctx := context.Background()
	c, err := Embedded()
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Topic(ctx, "python")
	if !errors.Is(err, ErrNotFound) || !perrors.Is(err, perrors.ErrCodeTopicNotFound) {
		t.Errorf("Topic error = %v, want topic not found", err)
	}

	_, err = c.Example(ctx, "html", "table")
	if !errors.Is(err, ErrNotFound) || !perrors.Is(err, perrors.ErrCodeExampleNotFound) {
		t.Errorf("Example error = %v, want example not found", err)
	}

	_, err = c.Examples(ctx, "python")
	if !perrors.IsNotFound(err) {
		t.Errorf("Examples error = %v, want not found", err)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	base := fstest.MapFS{
		"d/topics.toml":     {Data: []byte("[[topics]]\nkey = \"html\"\ntitle = \"HTML\"\n")},
		"d/attributes.toml": {Data: []byte("")},
	}

	tests := []struct {
		name string
		file string
		data string
	}{
		{"unknown topic", "d/go.toml", "topic = \"go\"\n"},
		{"invalid example key", "d/html.toml", "topic = \"html\"\n[[examples]]\nkey = \"Bad Key\"\n"},
		{"broken toml", "d/html.toml", "topic = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			for k, v := range base {
				fsys[k] = v
			}
			fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.data)}
			if _, err := Load(fsys, "d"); err == nil {
				t.Error("Load should fail")
			}
		})
	}

	if _, err := Load(base, "d"); err != nil {
		t.Errorf("minimal catalog should load: %v", err)
	}
}
