// Package host runs dropdown controls inside a Bubble Tea program.
//
// Allowed here:
//   - laying out labelled control rows and compositing their popups
//   - focus traversal, key and mouse dispatch
//
// Not allowed here:
//   - control semantics (those live in dropdown and selectbox)
//   - persistence or config loading
package host

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/dropdown/widgets"
)

// Control is what the host needs from a dropdown. *dropdown.Container and
// every control embedding one satisfy it.
type Control interface {
	AsWidget() *widgets.FlowPanel
	Popup() *widgets.Popup
	IsOpen() bool
}

type row struct {
	label   string
	control Control
	panel   *widgets.FlowPanel
}

const defaultWidth = 80

var (
	labelStyle      = lipgloss.NewStyle().Foreground(widgets.ColorSubtext0)
	labelFocusStyle = lipgloss.NewStyle().Foreground(widgets.ColorFocus).Bold(true)
	headerStyle     = lipgloss.NewStyle().Foreground(widgets.ColorAccent).Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(widgets.ColorOverlay1)
	statusStyle     = lipgloss.NewStyle().Foreground(widgets.ColorGreen)
	focusMarker     = lipgloss.NewStyle().Foreground(widgets.ColorFocus).Render("›")
)

// Footer hints. The popup bindings only describe keys the list handles.
var (
	formHints = []key.Binding{
		widgets.KeyTab, widgets.KeyShiftTab, widgets.KeyEnter, widgets.KeyEscape, widgets.KeyQuit,
	}
	popupHints = []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		widgets.KeySpace,
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		widgets.KeyEscape,
	}
)

func renderHints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

// Model is a vertical form of labelled dropdown rows.
type Model struct {
	title  string
	rows   []row
	focus  int
	width  int
	height int
	status string

	quitting bool
}

func New(title string) *Model {
	return &Model{title: title, focus: -1, width: defaultWidth}
}

// Add materializes c and appends it as a row. The panel's initialize
// listeners fire here, once.
func (m *Model) Add(label string, c Control) {
	panel := c.AsWidget()
	panel.Attach()
	m.rows = append(m.rows, row{label: label, control: c, panel: panel})
	if m.focus < 0 && isTabStop(panel) {
		m.setFocus(len(m.rows) - 1)
	}
}

// SetStatus replaces the status line under the form.
func (m *Model) SetStatus(s string) { m.status = s }

func (m *Model) Focused() int { return m.focus }

func (m *Model) Quitting() bool { return m.quitting }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.handleClick(msg.X, msg.Y)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(name string) (tea.Model, tea.Cmd) {
	if name == "ctrl+c" {
		return m, m.quit()
	}
	ev := widgets.KeyEvent{Key: name}
	for _, r := range m.rows {
		if r.control.IsOpen() && r.control.Popup().HandleKey(ev) {
			return m, nil
		}
	}
	switch {
	case ev.Is(widgets.KeyTab):
		m.cycleFocus(1)
		return m, nil
	case ev.Is(widgets.KeyShiftTab):
		m.cycleFocus(-1)
		return m, nil
	case ev.Is(widgets.KeyQuit):
		return m, m.quit()
	}
	if m.focus >= 0 {
		m.rows[m.focus].panel.KeyUp(ev)
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	for _, r := range m.rows {
		r.panel.Destroy()
	}
	return tea.Quit
}

func isTabStop(p *widgets.FlowPanel) bool {
	return p.IsVisible() && p.TabIndex() == widgets.TabIndexTabulable
}

// cycleFocus moves focus to the next tab stop in direction dir, wrapping.
func (m *Model) cycleFocus(dir int) {
	n := len(m.rows)
	if n == 0 {
		return
	}
	start := m.focus
	if start < 0 {
		start = -dir
		if dir < 0 {
			start = n
		}
	}
	for step := 1; step <= n; step++ {
		idx := ((start+dir*step)%n + n) % n
		if isTabStop(m.rows[idx].panel) {
			m.setFocus(idx)
			return
		}
	}
}

// setFocus blurs the focused row and focuses idx. A row whose popup is still
// open after the blur has moved focus into that popup, so it keeps the focus.
func (m *Model) setFocus(idx int) {
	if idx == m.focus {
		return
	}
	if m.focus >= 0 {
		prev := m.rows[m.focus]
		prev.panel.Blur()
		if prev.control.IsOpen() {
			prev.panel.Focus()
			return
		}
	}
	m.focus = idx
	if idx >= 0 {
		m.rows[idx].panel.Focus()
	}
}

func (m *Model) handleClick(x, y int) {
	f := m.compose()
	hit := -1
	for i, ry := range f.rowY {
		if ry == y {
			hit = i
			break
		}
	}
	inPopup := false
	for i, r := range m.rows {
		pr, ok := f.popups[i]
		if !ok || !r.control.IsOpen() {
			continue
		}
		if pr.contains(x, y) {
			inPopup = true
			continue
		}
		if i != hit {
			r.control.Popup().RequestClose()
		}
	}
	if hit < 0 || inPopup {
		return
	}
	r := m.rows[hit]
	if r.panel.TabIndex() != widgets.TabIndexNone {
		m.setFocus(hit)
	}
	col := x - f.controlX
	for _, span := range r.panel.ButtonSpans() {
		if span.Contains(col) {
			span.Button.Click()
			return
		}
	}
}

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type frame struct {
	view     string
	rowY     []int
	popups   map[int]rect
	controlX int
}

func (m *Model) labelWidth() int {
	w := 0
	for _, r := range m.rows {
		w = max(w, lipgloss.Width(r.label))
	}
	return w
}

// compose lays the form out. Popups that reserve space push later rows down;
// the rest are drawn over them.
func (m *Model) compose() frame {
	lw := m.labelWidth()
	f := frame{popups: make(map[int]rect), controlX: 2 + lw + 1}
	controlWidth := max(m.width-f.controlX, 10)

	var lines []string
	if m.title != "" {
		lines = append(lines, headerStyle.Render(m.title), "")
	}

	type floating struct {
		view string
		x, y int
	}
	var overlays []floating

	for i, r := range m.rows {
		marker := "  "
		style := labelStyle
		if i == m.focus {
			marker = focusMarker + " "
			style = labelFocusStyle
		}
		label := style.Render(r.label + strings.Repeat(" ", lw-lipgloss.Width(r.label)))
		f.rowY = append(f.rowY, len(lines))
		lines = append(lines, marker+label+" "+r.panel.Render(controlWidth, 1))

		popup := r.control.Popup()
		if !popup.IsVisible() || popup.IsDetached() {
			continue
		}
		view := popup.Render(controlWidth, 0)
		y := len(lines)
		f.popups[i] = rect{x: f.controlX, y: y, w: lipgloss.Width(view), h: lipgloss.Height(view)}
		if popup.ReservesSpace() {
			lines = strings.Split(widgets.InsertBelow(strings.Join(lines, "\n"), view, f.controlX, y-1), "\n")
		} else {
			overlays = append(overlays, floating{view: view, x: f.controlX, y: y})
		}
	}

	lines = append(lines, "")
	if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	hints := formHints
	for _, r := range m.rows {
		if r.control.IsOpen() {
			hints = popupHints
			break
		}
	}
	lines = append(lines, footerStyle.Render(renderHints(hints)))

	view := strings.Join(lines, "\n")
	for _, o := range overlays {
		view = widgets.Overlay(view, o.view, o.x, o.y, m.width, 0)
	}
	f.view = view
	return f
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.compose().view
}
