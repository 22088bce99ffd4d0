package routes

import (
	"strings"
	"testing"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name Name
		want string
	}{
		{Root, "/"},
		{PandaLearnMore, "/panda-learn-more/"},
		{HTML, "/panda-learn-more/html"},
		{CSS, "/panda-learn-more/css"},
		{JS, "/panda-learn-more/js"},
		{TS, "/panda-learn-more/ts"},
		{NodeJS, "/panda-learn-more/nodejs"},
		{Svelte, "/panda-learn-more/svelte"},
		{HTMLReferenceBook, "/panda-learn-more/html/reference-book"},
		{HTMLPractice, "/panda-learn-more/html/practice"},
		{HTMLCommonAttributes, "/panda-learn-more/html/common-attributes"},
		{CSSPractice, "/panda-learn-more/css/practice"},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			got, err := Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%s) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("python")
	if !perrors.Is(err, perrors.ErrCodeRouteNotFound) {
		t.Errorf("error = %v, want ROUTE_NOT_FOUND", err)
	}
}

func TestMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLookup should panic on an unknown name")
		}
	}()
	MustLookup("python")
}

func TestAllIsOrderedAndUnique(t *testing.T) {
	all := All()
	if all[0].Name != Root {
		t.Errorf("first route = %s, want root", all[0].Name)
	}
	seen := map[string]bool{}
	for _, r := range all {
		if seen[r.Path] {
			t.Errorf("duplicate path %q", r.Path)
		}
		seen[r.Path] = true
		if !strings.HasPrefix(r.Path, "/") {
			t.Errorf("path %q is not absolute", r.Path)
		}
		if r.Parent != "" {
			if _, ok := Get(r.Parent); !ok {
				t.Errorf("%s has unknown parent %s", r.Name, r.Parent)
			}
		}
	}

	// Callers cannot mutate the registry
	all[0].Path = "/changed"
	if MustLookup(Root) != "/" {
		t.Error("All should return a copy")
	}
}

func TestNameOf(t *testing.T) {
	tests := []struct {
		path string
		want Name
		ok   bool
	}{
		{"/", Root, true},
		{"/panda-learn-more/", PandaLearnMore, true},
		{"/panda-learn-more", PandaLearnMore, true},
		{"/panda-learn-more/html/", HTML, true},
		{"/panda-learn-more/css/practice", CSSPractice, true},
		{"/nowhere", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NameOf(tt.path)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NameOf(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestChildrenAndBreadcrumbs(t *testing.T) {
	children := Children(HTML)
	if len(children) != 3 {
		t.Fatalf("HTML has %d children, want 3", len(children))
	}
	if children[0].Name != HTMLReferenceBook {
		t.Errorf("first child = %s", children[0].Name)
	}

	crumbs := Breadcrumbs(HTMLPractice)
	var names []string
	for _, r := range crumbs {
		names = append(names, string(r.Name))
	}
	if got := strings.Join(names, ">"); got != "root>pandalearnmore>html>htmlPractice" {
		t.Errorf("Breadcrumbs = %s", got)
	}
}
