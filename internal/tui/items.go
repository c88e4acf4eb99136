package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"

	"github.com/roach88/ropias/internal/store"
)

const maxTitleRunes = 72

// entryItem adapts a history entry to the bubbles list.
type entryItem struct {
	entry store.Entry
}

func (i entryItem) FilterValue() string {
	return i.entry.Content
}

// Title is the first non-blank line of the content, whitespace collapsed.
func (i entryItem) Title() string {
	return preview(i.entry.Content)
}

func (i entryItem) Description() string {
	lines := strings.Count(i.entry.Content, "\n") + 1
	desc := fmt.Sprintf("#%d · %s · %d chars",
		i.entry.ID,
		i.entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		utf8.RuneCountInString(i.entry.Content),
	)
	if lines > 1 {
		desc += fmt.Sprintf(" · %d lines", lines)
	}
	return desc
}

func toItems(entries []store.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	return items
}

func preview(content string) string {
	line := ""
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}
	line = strings.Join(strings.Fields(line), " ")
	if line == "" {
		return "(blank)"
	}
	if utf8.RuneCountInString(line) > maxTitleRunes {
		runes := []rune(line)
		line = string(runes[:maxTitleRunes-3]) + "..."
	}
	return line
}
