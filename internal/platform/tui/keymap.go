package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// KeyMap holds the play bindings. Game keys come from the configuration so
// the help line always matches what the multiplexer acts on.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	SoftDrop  key.Binding
	RotateCCW key.Binding
	RotateCW  key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// NewKeyMap builds bindings from the keyboard section of the config.
func NewKeyMap(kb config.KeyboardConfig) KeyMap {
	return KeyMap{
		Left:      binding(kb.MoveLeft, "move left"),
		Right:     binding(kb.MoveRight, "move right"),
		SoftDrop:  binding(kb.SoftDrop, "soft drop"),
		RotateCCW: binding(kb.RotateCCW, "rotate ccw"),
		RotateCW:  binding(kb.RotateCW, "rotate cw"),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave game"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKeys(keys), desc),
	)
}

// helpKeys renders key names the way the help line shows them.
func helpKeys(keys []string) string {
	out := make([]string, len(keys))
	for i, k := range keys {
		switch k {
		case "left":
			out[i] = "←"
		case "right":
			out[i] = "→"
		case "down":
			out[i] = "↓"
		case "up":
			out[i] = "↑"
		default:
			out[i] = k
		}
	}
	return strings.Join(out, "/")
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.SoftDrop, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop},
		{k.RotateCCW, k.RotateCW},
		{k.Help, k.Back, k.Quit},
	}
}
