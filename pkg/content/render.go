package content

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
)

// policy allows the inline formatting used by explanations and strips
// everything else.
var policy = bluemonday.UGCPolicy()

// Sanitize makes an explanation safe to embed in a page.
func Sanitize(s string) template.HTML {
	return template.HTML(policy.Sanitize(s))
}

// PlainText strips markup from an explanation. Inline <code> becomes
// backtick-quoted text and entities are decoded.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("code").Each(func(_ int, sel *goquery.Selection) {
		sel.SetText("`" + sel.Text() + "`")
	})
	return strings.TrimSpace(doc.Text())
}

// Markdown renders a practice example as Markdown.
func Markdown(topic Topic, ex Example) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ex.Title)
	fmt.Fprintf(&b, "_%s_\n\n", topic.Title)

	if ex.Markup != "" {
		fmt.Fprintf(&b, "```html\n%s\n```\n\n", strings.TrimSpace(ex.Markup))
	}
	if ex.Style != "" {
		fmt.Fprintf(&b, "```css\n%s\n```\n\n", strings.TrimSpace(ex.Style))
	}

	for _, tag := range ex.Tags {
		fmt.Fprintf(&b, "## `%s`\n\n", tag.Tag)
		fmt.Fprintf(&b, "%s\n\n", PlainText(tag.Desc))
		fmt.Fprintf(&b, "- **Семантика:** %s\n", PlainText(tag.Semantics))
		fmt.Fprintf(&b, "- **Атрибути:** %s\n", PlainText(tag.Attributes))
		fmt.Fprintf(&b, "- **Приклад:** %s\n\n", PlainText(tag.Example))
	}

	writeNotes(&b, "HTML", ex.Practice.HTML)
	writeNotes(&b, "CSS", ex.Practice.CSS)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Practice notes are plain text that may mention tags.
func writeNotes(b *strings.Builder, heading string, notes []string) {
	if len(notes) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, n := range notes {
		fmt.Fprintf(b, "- %s\n", escapeTags(n))
	}
	b.WriteString("\n")
}

// escapeTags wraps bare <tag> mentions in backticks so Markdown renderers
// do not treat them as HTML.
func escapeTags(s string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '<')
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start:], '>')
		if end < 0 {
			break
		}
		b.WriteString(s[:start])
		b.WriteString("`" + s[start:start+end+1] + "`")
		s = s[start+end+1:]
	}
	b.WriteString(s)
	return b.String()
}

// AttributesMarkdown renders the common-attributes table.
func AttributesMarkdown(attrs []Attribute) string {
	var b strings.Builder
	b.WriteString("# Загальні атрибути\n\n")
	b.WriteString("| Атрибут | Опис | Приклад |\n|---|---|---|\n")
	for _, a := range attrs {
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", a.Name, PlainText(a.Desc), PlainText(a.Example))
	}
	return b.String()
}

// Terminal renders Markdown for a terminal with the light or dark glamour
// style.
func Terminal(markdown string, dark bool, width int) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
