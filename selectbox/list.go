package selectbox

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/dropdown/widgets"
)

const (
	styleList        = "dd-list"
	styleListFocused = "dd-list-focused"

	defaultVisibleRows = 8
)

var (
	filterLabelStyle = lipgloss.NewStyle().Foreground(widgets.ColorSubtext0)
	filterValueStyle = lipgloss.NewStyle().Foreground(widgets.ColorPeach)
	filterHintStyle  = lipgloss.NewStyle().Foreground(widgets.ColorOverlay1)
	rowLabelStyle    = lipgloss.NewStyle().Foreground(widgets.ColorText)
	rowMetaStyle     = lipgloss.NewStyle().Foreground(widgets.ColorSubtext0)
	cursorRowStyle   = lipgloss.NewStyle().Background(widgets.ColorSurface0)
	cursorFocusStyle = lipgloss.NewStyle().Background(widgets.ColorSurface1).Bold(true)
	emptyListStyle   = lipgloss.NewStyle().Foreground(widgets.ColorOverlay0).Italic(true)
)

func init() {
	widgets.RegisterStyle(styleListFocused, lipgloss.NewStyle().Foreground(widgets.ColorFocus))
}

// ListContent renders a Picker inside a popup and feeds it keys.
type ListContent struct {
	widgets.Element
	picker   *Picker
	rows     int
	focused  bool
	onResult func(Result)
}

func newListContent(p *Picker, rows int, onResult func(Result)) *ListContent {
	if rows <= 0 {
		rows = defaultVisibleRows
	}
	l := &ListContent{Element: widgets.NewElement(), picker: p, rows: rows, onResult: onResult}
	l.AddStyleName(styleList)
	return l
}

func (l *ListContent) Picker() *Picker { return l.picker }

// SetFocused marks the list as holding keyboard focus.
func (l *ListContent) SetFocused(focused bool) {
	l.focused = focused
	if focused {
		l.AddStyleName(styleListFocused)
	} else {
		l.RemoveStyleName(styleListFocused)
	}
}

func (l *ListContent) IsFocused() bool { return l.focused }

// HandleKey consumes everything except focus traversal.
func (l *ListContent) HandleKey(ev widgets.KeyEvent) bool {
	if ev.Is(widgets.KeyTab, widgets.KeyShiftTab) || ev.Key == "ctrl+c" {
		return false
	}
	res := l.picker.HandleKey(ev.Key)
	if res.Action != ActionNone && l.onResult != nil {
		l.onResult(res)
	}
	return true
}

func (l *ListContent) Render(width, _ int) string {
	if !l.IsVisible() {
		return ""
	}
	var lines []string

	filter := filterHintStyle.Render("(type to filter)")
	if q := strings.TrimSpace(l.picker.Query()); q != "" {
		filter = filterValueStyle.Render(q)
	}
	lines = append(lines, filterLabelStyle.Render("Filter: ")+filter)

	items := l.picker.Items()
	if len(items) == 0 {
		lines = append(lines, emptyListStyle.Render("  no matches"))
	}
	start := 0
	if cursor := l.picker.Cursor(); cursor >= l.rows {
		start = cursor - l.rows + 1
	}
	end := min(start+l.rows, len(items))
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(items[i], i == l.picker.Cursor(), width))
	}
	out := widgets.StyleFor(&l.Element).Render(strings.Join(lines, "\n"))
	if width > 0 {
		parts := strings.Split(out, "\n")
		for i := range parts {
			parts[i] = ansi.Truncate(parts[i], width, "…")
		}
		out = strings.Join(parts, "\n")
	}
	return out
}

func (l *ListContent) renderRow(it Item, isCursor bool, width int) string {
	mark := "   "
	if l.picker.Multi() {
		mark = "[ ]"
		if l.picker.IsChecked(it.ID) {
			mark = "[x]"
		}
	}
	pointer := "  "
	if isCursor {
		pointer = "> "
	}
	row := pointer + mark + " " + rowLabelStyle.Render(it.Label)
	if meta := strings.TrimSpace(it.Meta); meta != "" {
		row += rowMetaStyle.Render(" - " + meta)
	}
	if !isCursor {
		return row
	}
	style := cursorRowStyle
	if l.focused {
		style = cursorFocusStyle
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(row)
}
