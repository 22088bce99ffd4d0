package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pandalearn/pandalearn/pkg/content"
	"github.com/pandalearn/pandalearn/pkg/theme"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listTopicStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	paneStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	paneFocusedStyle  = paneStyle.BorderForeground(colorCyan)
)

const listWidth = 30

// =============================================================================
// Browse command
// =============================================================================

// browseCommand creates the interactive lesson browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse lessons interactively",
		Long: `Browse lessons interactively.

Keys: ↑/↓ select, ⏎ open, tab switch pane, t toggle theme, r follow the
system theme again, q quit. System theme changes are picked up while the
browser is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openThemeSession(ctx, false)
			if err != nil {
				return err
			}
			defer s.Close()

			repo, closeRepo, err := c.openContent(ctx, s.cfg)
			if err != nil {
				return err
			}
			defer closeRepo(context.WithoutCancel(ctx))

			items, err := browseItems(ctx, repo)
			if err != nil {
				return err
			}

			s.manager.Initialize(ctx)
			model := NewBrowseModel(ctx, items, s.manager, s.signal, s.cfg.Theme.PollInterval.D())
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}

// =============================================================================
// BrowseModel - Interactive lesson browser
// =============================================================================

// BrowseItem is one selectable entry of the lesson list.
type BrowseItem struct {
	Topic   content.Topic
	Label   string
	Example *content.Example

	// Attributes marks the common-attributes table entry.
	Attributes []content.Attribute
}

// Markdown returns the document shown for the item.
func (i BrowseItem) Markdown() string {
	switch {
	case i.Example != nil:
		return content.Markdown(i.Topic, *i.Example)
	case i.Attributes != nil:
		return content.AttributesMarkdown(i.Attributes)
	}
	return fmt.Sprintf("# %s\n\n%s\n", i.Topic.Title, i.Topic.Summary)
}

// browseItems flattens the repository into list entries: each topic,
// followed by its examples, then the attributes table.
func browseItems(ctx context.Context, repo content.Repository) ([]BrowseItem, error) {
	topics, err := repo.Topics(ctx)
	if err != nil {
		return nil, err
	}
	var items []BrowseItem
	for _, t := range topics {
		items = append(items, BrowseItem{Topic: t, Label: t.Title})
		examples, err := repo.Examples(ctx, t.Key)
		if err != nil {
			return nil, err
		}
		for i := range examples {
			items = append(items, BrowseItem{Topic: t, Label: examples[i].Title, Example: &examples[i]})
		}
	}
	attrs, err := repo.Attributes(ctx)
	if err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		items = append(items, BrowseItem{Label: "Загальні атрибути", Attributes: attrs})
	}
	return items, nil
}

// systemMsg carries one reading of the OS theme signal.
type systemMsg struct {
	dark bool
	err  error
}

type pollMsg struct{}

// BrowseModel is the bubbletea model for the lesson browser.
type BrowseModel struct {
	Items  []BrowseItem
	Cursor int
	Offset int
	Height int
	Width  int

	// Open is the index of the item shown in the viewport.
	Open int
	// FocusContent routes scrolling keys to the viewport.
	FocusContent bool

	ctx      context.Context
	manager  *theme.Manager
	signal   theme.Signal
	interval time.Duration

	// lastSystem is the previous OS reading; only flips are forwarded.
	lastSystem *bool

	viewport viewport.Model
	render   func(md string, dark bool, width int) (string, error)
	status   string
}

// NewBrowseModel creates a browser over items. manager must already be
// initialized; signal is polled every interval for OS theme changes.
func NewBrowseModel(ctx context.Context, items []BrowseItem, manager *theme.Manager, signal theme.Signal, interval time.Duration) BrowseModel {
	if interval <= 0 {
		interval = theme.DefaultPollInterval
	}
	m := BrowseModel{
		Items:    items,
		Height:   15,
		Width:    100,
		ctx:      ctx,
		manager:  manager,
		signal:   signal,
		interval: interval,
		viewport: viewport.New(100-listWidth-4, 15),
		render:   content.Terminal,
	}
	m.refresh()
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.readSystem(), m.schedulePoll())
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.FocusContent = !m.FocusContent
			return m, nil
		case "t":
			m.manager.Toggle(m.ctx)
			m.status = "theme " + m.manager.Current().String()
			m.refresh()
			return m, nil
		case "r":
			p := m.manager.Reset(m.ctx)
			m.status = "following system: " + p.String()
			m.refresh()
			return m, nil
		}

		if m.FocusContent {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Open = m.Cursor
			m.FocusContent = true
			m.refresh()
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = max(msg.Height-6, 5)
		m.viewport.Width = max(msg.Width-listWidth-4, 20)
		m.viewport.Height = m.Height
		m.refresh()

	case pollMsg:
		return m, tea.Batch(m.readSystem(), m.schedulePoll())

	case systemMsg:
		if msg.err != nil {
			return m, nil
		}
		if m.lastSystem != nil && *m.lastSystem == msg.dark {
			return m, nil
		}
		first := m.lastSystem == nil
		dark := msg.dark
		m.lastSystem = &dark
		if first {
			return m, nil
		}
		before := m.manager.Current()
		m.manager.OnSystemPreferenceChanged(m.ctx, dark)
		if after := m.manager.Current(); after != before {
			m.status = "system switched to " + after.String()
			m.refresh()
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Panda Learn"))
	b.WriteString("  ")
	b.WriteString(styleTheme(m.manager.Current()))
	if m.status != "" {
		b.WriteString("  " + listDimStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  tab pane  t theme  r system  q quit"))
	b.WriteString("\n")

	list, pane := paneStyle, paneFocusedStyle
	if !m.FocusContent {
		list, pane = paneFocusedStyle, paneStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		list.Width(listWidth).Height(m.Height).Render(m.listView()),
		pane.Render(m.viewport.View()),
	))
	return b.String()
}

func (m BrowseModel) listView() string {
	var b strings.Builder
	end := min(m.Offset+m.Height, len(m.Items))
	for i := m.Offset; i < end; i++ {
		item := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		indent := ""
		if item.Example != nil {
			indent = "  "
		}
		line := cursor + indent + item.Label

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case item.Example == nil && item.Attributes == nil:
			b.WriteString(listTopicStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("[%d/%d]", m.Cursor+1, len(m.Items))))
	return b.String()
}

// refresh re-renders the open item with the current theme.
func (m *BrowseModel) refresh() {
	if len(m.Items) == 0 {
		m.viewport.SetContent(listDimStyle.Render("No lessons."))
		return
	}
	md := m.Items[m.Open].Markdown()
	out, err := m.render(md, m.manager.Current().IsDark(), m.viewport.Width)
	if err != nil {
		out = md
	}
	m.viewport.SetContent(out)
}

func (m BrowseModel) readSystem() tea.Cmd {
	signal, ctx := m.signal, m.ctx
	return func() tea.Msg {
		dark, err := signal.PrefersDark(ctx)
		return systemMsg{dark: dark, err: err}
	}
}

func (m BrowseModel) schedulePoll() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return pollMsg{} })
}
