package widgets

import "github.com/charmbracelet/bubbles/key"

// Keyboard codes the primitives and controls react to.
var (
	KeyEnter    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle"))
	KeyEscape   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close"))
	KeyTab      = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next"))
	KeyShiftTab = key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous"))
	KeySpace    = key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle item"))
	KeyQuit     = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// EventType names a family of DOM-like events.
type EventType int

const (
	EventClick EventType = iota
	EventKey
	EventFocus
	EventBlur
)

// ClickEvent is delivered to click handlers.
type ClickEvent struct {
	Source Widget
}

// KeyEvent carries the name of a released key, as bubbletea spells it.
type KeyEvent struct {
	Key string
}

func (e KeyEvent) String() string { return e.Key }

// Is reports whether the event matches any of the bindings.
func (e KeyEvent) Is(bindings ...key.Binding) bool {
	return key.Matches(e, bindings...)
}

type FocusEvent struct {
	Source Widget
}

type BlurEvent struct {
	Source Widget
}

// KeyConsumer is implemented by popup content that handles keys itself
// while its popup is visible. HandleKey reports whether the key was used.
type KeyConsumer interface {
	HandleKey(ev KeyEvent) bool
}
