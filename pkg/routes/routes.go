// Package routes is the registry of navigable pages of the lesson site.
//
// Pages are addressed by a logical [Name]; navigation code never spells out
// a path:
//
//	href := routes.MustLookup(routes.HTMLPractice) // "/panda-learn-more/html/practice"
package routes

import (
	"strings"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
)

// Name is the logical name of a page.
type Name string

const (
	Root                 Name = "root"
	PandaLearnMore       Name = "pandalearnmore"
	HTML                 Name = "html"
	CSS                  Name = "css"
	JS                   Name = "js"
	TS                   Name = "ts"
	NodeJS               Name = "nodejs"
	Svelte               Name = "svelte"
	HTMLReferenceBook    Name = "htmlReferenceBook"
	HTMLPractice         Name = "htmlPractice"
	HTMLCommonAttributes Name = "htmlCommonAttributes"
	CSSPractice          Name = "cssPractice"
)

// Route is one entry of the registry.
type Route struct {
	Name   Name
	Path   string
	Title  string
	Parent Name // empty for Root
}

var registry = []Route{
	{Name: Root, Path: "/", Title: "Panda Learn"},
	{Name: PandaLearnMore, Path: "/panda-learn-more/", Title: "Вчитися більше", Parent: Root},
	{Name: HTML, Path: "/panda-learn-more/html", Title: "HTML", Parent: PandaLearnMore},
	{Name: CSS, Path: "/panda-learn-more/css", Title: "CSS", Parent: PandaLearnMore},
	{Name: JS, Path: "/panda-learn-more/js", Title: "JavaScript", Parent: PandaLearnMore},
	{Name: TS, Path: "/panda-learn-more/ts", Title: "TypeScript", Parent: PandaLearnMore},
	{Name: NodeJS, Path: "/panda-learn-more/nodejs", Title: "Node.js", Parent: PandaLearnMore},
	{Name: Svelte, Path: "/panda-learn-more/svelte", Title: "Svelte", Parent: PandaLearnMore},
	{Name: HTMLReferenceBook, Path: "/panda-learn-more/html/reference-book", Title: "Довідник HTML", Parent: HTML},
	{Name: HTMLPractice, Path: "/panda-learn-more/html/practice", Title: "Практика HTML", Parent: HTML},
	{Name: HTMLCommonAttributes, Path: "/panda-learn-more/html/common-attributes", Title: "Загальні атрибути", Parent: HTML},
	{Name: CSSPractice, Path: "/panda-learn-more/css/practice", Title: "Практика CSS", Parent: CSS},
}

var (
	byName = make(map[Name]Route, len(registry))
	byPath = make(map[string]Name, len(registry))
)

func init() {
	for _, r := range registry {
		byName[r.Name] = r
		byPath[r.Path] = r.Name
	}
}

// Lookup returns the path of a page.
func Lookup(name Name) (string, error) {
	r, ok := byName[name]
	if !ok {
		return "", perrors.New(perrors.ErrCodeRouteNotFound, "unknown route %q", name)
	}
	return r.Path, nil
}

// MustLookup is like Lookup but panics on an unknown name. It is meant for
// the constants of this package.
func MustLookup(name Name) string {
	path, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return path
}

// Get returns the full registry entry of a page.
func Get(name Name) (Route, bool) {
	r, ok := byName[name]
	return r, ok
}

// All returns every route in registry order.
func All() []Route {
	out := make([]Route, len(registry))
	copy(out, registry)
	return out
}

// NameOf is the reverse of Lookup. A trailing slash is ignored except for
// the pages registered with one.
func NameOf(path string) (Name, bool) {
	if path == "" {
		return "", false
	}
	if name, ok := byPath[path]; ok {
		return name, true
	}
	if trimmed := strings.TrimSuffix(path, "/"); trimmed != path {
		name, ok := byPath[trimmed]
		return name, ok
	}
	name, ok := byPath[path+"/"]
	return name, ok
}

// Children returns the routes whose parent is name, in registry order.
func Children(name Name) []Route {
	var out []Route
	for _, r := range registry {
		if r.Parent == name {
			out = append(out, r)
		}
	}
	return out
}

// Breadcrumbs returns the chain from Root down to name, inclusive.
func Breadcrumbs(name Name) []Route {
	var chain []Route
	for r, ok := byName[name]; ok; r, ok = byName[r.Parent] {
		chain = append([]Route{r}, chain...)
		if r.Parent == "" {
			break
		}
	}
	return chain
}
