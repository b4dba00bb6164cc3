package widgets

import "github.com/charmbracelet/x/ansi"

// Label is static text.
type Label struct {
	Element
	text string
}

func NewLabel(text string) *Label {
	return &Label{Element: NewElement(), text: text}
}

func (l *Label) Text() string { return l.text }

func (l *Label) SetText(text string) { l.text = text }

func (l *Label) Render(width, _ int) string {
	if !l.IsVisible() {
		return ""
	}
	out := StyleFor(&l.Element).Render(l.text)
	if width > 0 {
		out = ansi.Truncate(out, width, "…")
	}
	return out
}
