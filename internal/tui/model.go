// Package tui is the terminal history browser.
//
// The browser only reads history; it never writes to the store. Selecting an
// entry copies it back onto the system clipboard, where the monitor will
// record it again as the newest entry if it differs from the current value.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/ropias/internal/clipboard"
	"github.com/roach88/ropias/internal/store"
)

// DefaultRefreshInterval is how often the browser reloads history.
const DefaultRefreshInterval = 2 * time.Second

// Lister is the read-only view of the store the browser needs.
type Lister interface {
	ListAll(ctx context.Context) ([]store.Entry, error)
}

var (
	accent = lipgloss.Color("#E8927C")
	muted  = lipgloss.Color("#8A8A8A")

	titleStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true).Padding(0, 1)
)

var (
	copyKey    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy"))
	refreshKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
)

type (
	entriesLoadedMsg struct{ entries []store.Entry }
	loadFailedMsg    struct{ err error }
	refreshTickMsg   struct{}
	copiedMsg        struct{ entry store.Entry }
	copyFailedMsg    struct{ err error }
)

// Model is the bubbletea model for the browser.
type Model struct {
	ctx     context.Context
	lister  Lister
	writer  clipboard.Writer
	refresh time.Duration

	list   list.Model
	status string
	err    error
	loaded bool
}

// New creates a browser model over lister. writer may be nil, in which case
// copying is disabled.
func New(ctx context.Context, lister Lister, writer clipboard.Writer) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(accent).
		BorderForeground(accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(muted).
		BorderForeground(accent)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Clipboard history"
	l.Styles.Title = titleStyle
	l.SetStatusBarItemName("entry", "entries")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{copyKey, refreshKey}
	}

	return Model{
		ctx:     ctx,
		lister:  lister,
		writer:  writer,
		refresh: DefaultRefreshInterval,
		list:    l,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.scheduleRefresh())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case tea.KeyMsg:
		// While the filter prompt is open every key belongs to it.
		if m.list.FilterState() != list.Filtering {
			switch {
			case key.Matches(msg, copyKey):
				return m, m.copySelected()
			case key.Matches(msg, refreshKey):
				m.status = "refreshing..."
				return m, m.load()
			}
		}

	case entriesLoadedMsg:
		m.err = nil
		m.loaded = true
		return m, m.list.SetItems(toItems(msg.entries))

	case loadFailedMsg:
		m.err = msg.err
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.load(), m.scheduleRefresh())

	case copiedMsg:
		m.status = fmt.Sprintf("copied entry #%d", msg.entry.ID)
		return m, nil

	case copyFailedMsg:
		m.status = fmt.Sprintf("copy failed: %v", msg.err)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	status := m.status
	if !m.loaded && status == "" {
		status = "loading history..."
	}
	footer := statusStyle.Render(status)
	if m.err != nil {
		footer = errorStyle.Render(fmt.Sprintf("cannot read history: %v", m.err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), footer)
}

// Selected returns the highlighted entry, if any.
func (m Model) Selected() (store.Entry, bool) {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return store.Entry{}, false
	}
	return item.entry, true
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.lister.ListAll(m.ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return entriesLoadedMsg{entries: entries}
	}
}

func (m Model) scheduleRefresh() tea.Cmd {
	if m.refresh <= 0 {
		return nil
	}
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func (m Model) copySelected() tea.Cmd {
	entry, ok := m.Selected()
	if !ok || m.writer == nil {
		return nil
	}
	writer := m.writer
	return func() tea.Msg {
		if err := writer.WriteText(entry.Content); err != nil {
			return copyFailedMsg{err: err}
		}
		return copiedMsg{entry: entry}
	}
}

// Run starts the browser in the alternate screen and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, lister Lister, writer clipboard.Writer) error {
	p := tea.NewProgram(
		New(ctx, lister, writer),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}
