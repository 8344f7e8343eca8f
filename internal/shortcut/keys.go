package shortcut

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Defaults returns the host's default shortcut list.
func Defaults() []Shortcut {
	return []Shortcut{
		{Name: "next_space", Keys: []string{"space"}, Description: "next animation or slide"},
		{Name: "prev_space", Keys: []string{"shift+space"}, Description: "previous animation or slide"},
		{Name: "next_right", Keys: []string{"right"}, Description: "next animation or slide"},
		{Name: "prev_left", Keys: []string{"left"}, Description: "previous animation or slide"},
		{Name: "next_page_key", Keys: []string{"pgdown"}, Description: "next animation or slide"},
		{Name: "prev_page_key", Keys: []string{"pgup"}, Description: "previous animation or slide"},
		{Name: "next_down", Keys: []string{"down"}, Description: "next slide"},
		{Name: "prev_up", Keys: []string{"up"}, Description: "previous slide"},
		{Name: "next_shift", Keys: []string{"shift+right"}, Description: "next slide"},
		{Name: "prev_shift", Keys: []string{"shift+left"}, Description: "previous slide"},
		{Name: ToggleDark, Keys: []string{"d"}, Description: "toggle dark mode"},
		{Name: "toggle_overview", Keys: []string{"o"}, Description: "toggle slides overview"},
		{Name: "hide_overview", Keys: []string{"esc"}, Description: "hide slides overview"},
		{Name: "goto", Keys: []string{"g"}, Description: "go to slide"},
	}
}

// KeyMap adapts a shortcut list to key bindings for help rendering.
type KeyMap struct {
	Bindings []key.Binding
	// Columns is the number of bindings per FullHelp column.
	Columns int
}

// NewKeyMap builds a KeyMap from a shortcut list, preserving order.
// Shortcuts without keys are kept but disabled.
func NewKeyMap(list []Shortcut) KeyMap {
	bindings := make([]key.Binding, 0, len(list))
	for _, s := range list {
		desc := s.Description
		if desc == "" {
			desc = strings.ReplaceAll(s.Name, "_", " ")
		}
		b := key.NewBinding(
			key.WithKeys(s.Keys...),
			key.WithHelp(strings.Join(s.Keys, "/"), desc),
		)
		if len(s.Keys) == 0 {
			b.SetEnabled(false)
		}
		bindings = append(bindings, b)
	}
	return KeyMap{Bindings: bindings, Columns: 4}
}

// ShortHelp returns the first few bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	if len(k.Bindings) <= k.columns() {
		return k.Bindings
	}
	return k.Bindings[:k.columns()]
}

// FullHelp returns all bindings grouped into columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	var groups [][]key.Binding
	n := k.columns()
	for i := 0; i < len(k.Bindings); i += n {
		end := min(i+n, len(k.Bindings))
		groups = append(groups, k.Bindings[i:end])
	}
	return groups
}

func (k KeyMap) columns() int {
	if k.Columns <= 0 {
		return 4
	}
	return k.Columns
}
