package dropdown

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/dropdown/widgets"
)

const (
	StyleButtonPlaceholder = "dd-container-button-placeholder"
	StyleSelected          = "dd-container-selected"

	styleWidget        = "dd-container-widget"
	styleDisabled      = "dd-container-disabled"
	styleButton        = "dd-container-button"
	styleState         = "dd-container-state"
	styleClear         = "dd-container-clear"
	styleClearDisabled = "dd-container-clear-disabled"
	styleOpened        = "dd-container-opened"
	styleWidgetOpened  = "dd-container-widget-opened"
	styleAddon         = "dd-container-addon"
	styleCustom        = "dd-container-custom"
	styleDefault       = "dd-container-default"

	attributeID     = "id"
	destroyHookName = "dropdown.teardown"

	stateGlyph = "▾"
	clearGlyph = "×"
)

// ErrAlreadyInitialized is returned when setup-only calls arrive after the
// widget was materialized.
var ErrAlreadyInitialized = errors.New("dropdown: container already initialized")

func init() {
	widgets.RegisterStyle(StyleButtonPlaceholder, lipgloss.NewStyle().Foreground(widgets.ColorMuted).Italic(true))
	widgets.RegisterStyle(StyleSelected, lipgloss.NewStyle().Foreground(widgets.ColorAccent))
	widgets.RegisterStyle(styleDisabled, lipgloss.NewStyle().Faint(true))
	widgets.RegisterStyle(styleOpened, lipgloss.NewStyle().Bold(true))
	widgets.RegisterStyle(styleState, lipgloss.NewStyle().Foreground(widgets.ColorFocus))
	widgets.RegisterStyle(styleClear, lipgloss.NewStyle().Foreground(widgets.ColorRed))
	widgets.RegisterStyle(styleWidgetOpened, lipgloss.NewStyle().BorderForeground(widgets.ColorFocus))
}

type lifecycle int

const (
	uninitialized lifecycle = iota
	initialized
)

// Container is the shell shared by dropdown controls: a trigger row, a popup
// holding the control's content, and the open/close state machine between
// them. V is the value type, C the configuration type.
type Container[V any, C Configurer] struct {
	config    C
	conf      Configuration
	model     Model[V]
	hooks     Hooks
	formatter ValueFormatter[V]

	state   lifecycle
	focused bool
	custom  widgets.Widget

	widget      *widgets.FlowPanel
	popup       *widgets.Popup
	mainButton  *widgets.Button
	stateButton *widgets.Button
	clearButton *widgets.Button

	valueChangeHandlers handlerSet[ValueChangeHandler[V]]
	openHandlers        handlerSet[OpenHandler]
	closeHandlers       handlerSet[CloseHandler]
	listeners           handlerSet[Listener]
}

// New builds a container for model. When model also implements Hooks or
// ValueFormatter they replace the defaults.
func New[V any, C Configurer](config C, model Model[V]) *Container[V, C] {
	widget := widgets.NewFlowPanel()
	widget.AddStyleName(styleWidget)
	widget.SetAttribute(attributeID, widget.ID())
	popup := widgets.NewPopup(widget)
	popup.AddStyleName(styleAddon)

	c := &Container[V, C]{
		config:              config,
		conf:                config.DropDown(),
		model:               model,
		hooks:               NoopHooks{},
		widget:              widget,
		popup:               popup,
		valueChangeHandlers: make(handlerSet[ValueChangeHandler[V]]),
		openHandlers:        make(handlerSet[OpenHandler]),
		closeHandlers:       make(handlerSet[CloseHandler]),
		listeners:           make(handlerSet[Listener]),
	}
	if h, ok := model.(Hooks); ok {
		c.hooks = h
	}
	if f, ok := model.(ValueFormatter[V]); ok {
		c.formatter = f
	}
	return c
}

// AsWidget returns the host panel, running the one-time setup on first call.
// Every call (re)installs the teardown hook under a fixed name, so repeated
// calls never stack teardowns.
func (c *Container[V, C]) AsWidget() *widgets.FlowPanel {
	if c.state == uninitialized {
		c.initialize()
	}
	c.widget.SetDestroyListener(destroyHookName, c.teardown)
	return c.widget
}

func (c *Container[V, C]) initialize() {
	if c.IsEnabled() {
		c.widget.SetTabIndex(widgets.TabIndexTabulable)
	} else {
		c.widget.SetTabIndex(widgets.TabIndexFocusable)
	}
	c.widget.StopEvent(widgets.EventKey)
	c.widget.AddFocusHandler(func(widgets.FocusEvent) {
		c.focused = true
		c.hooks.OnFocus()
	})
	c.widget.AddBlurHandler(func(widgets.BlurEvent) {
		c.focused = false
		c.onBlur()
	})
	c.widget.AddKeyUpHandler(c.onKeyUp)

	c.mainButton = widgets.NewButton(c.conf.Title)
	c.mainButton.AddStyleName(styleButton)
	c.mainButton.SetTabIndex(widgets.TabIndexFocusable)
	if c.conf.TitleDisplayed && c.conf.TitlePlaceholder {
		c.mainButton.AddStyleName(StyleButtonPlaceholder)
	}
	c.widget.Add(c.mainButton)

	c.stateButton = widgets.NewButton(stateGlyph)
	c.stateButton.AddStyleName(styleState)
	c.stateButton.SetTabIndex(widgets.TabIndexFocusable)
	c.widget.Add(c.stateButton)

	if c.conf.ClearButtonEnabled {
		c.clearButton = widgets.NewButton(clearGlyph)
		c.clearButton.AddStyleName(styleClear)
		c.clearButton.SetTitle(c.conf.ClearLabel)
		c.clearButton.AddClickHandler(func(widgets.ClickEvent) { c.onClearClicked() })
		c.widget.Add(c.clearButton)
		c.SetClearTitleButtonVisible(false)
	} else {
		c.widget.AddStyleName(styleClearDisabled)
	}

	if !c.conf.EventOnlyMode {
		// The value may not be ready until the host materializes the panel.
		c.widget.AddInitializeListener(func() { c.updateTitle(c.model.Value()) })
	}

	if c.custom != nil {
		c.popup.Add(c.custom)
		c.custom.Base().AddStyleName(styleCustom)
	}

	defaultContent := c.model.CreateDefaultContent()
	defaultContent.Base().AddStyleName(styleDefault)
	c.popup.Add(defaultContent)

	toggle := func(widgets.ClickEvent) { c.setContainerVisible(!c.popup.IsVisible()) }
	c.mainButton.AddClickHandler(toggle)
	c.stateButton.AddClickHandler(toggle)
	c.popup.SetCloseRequestListener(func() { c.setContainerVisible(false) })

	c.state = initialized
}

func (c *Container[V, C]) teardown() {
	c.widget.RemoveStyleName(styleOpened)
	c.popup.RemoveStyleName(styleWidgetOpened)
	c.popup.RemoveFromParent()
	c.valueChangeHandlers.clear()
	c.closeHandlers.clear()
	c.openHandlers.clear()
	c.listeners.clear()
}

func (c *Container[V, C]) onKeyUp(ev widgets.KeyEvent) {
	if c.focused && ev.Is(widgets.KeyEnter) {
		c.setContainerVisible(!c.popup.IsVisible())
	} else if ev.Is(widgets.KeyEscape) {
		c.Close()
	}
}

func (c *Container[V, C]) onClearClicked() {
	if !c.IsEnabled() {
		return
	}
	var empty V
	c.model.SetValue(empty)
	c.listeners.each(func(l Listener) { l.OnClearTitleClicked() })
	c.FireValueChange()
}

func (c *Container[V, C]) onBlur() {
	if c.IsOpen() && c.hooks.IsContainerFocusable() {
		c.hooks.FocusContainer()
	} else {
		c.Close()
	}
}

// setContainerVisible is the only place the open state changes.
func (c *Container[V, C]) setContainerVisible(visible bool) {
	if !c.IsEnabled() {
		return
	}
	switch {
	case visible && !c.IsOpen():
		c.widget.AddStyleName(styleOpened)
		c.popup.AddStyleName(styleWidgetOpened)
		c.hooks.BeforeContainerVisible()
		c.popup.Show()
		c.hooks.AfterContainerVisible()
		ev := OpenEvent{Source: c}
		c.openHandlers.each(func(h OpenHandler) { h.OnOpen(ev) })
	case !visible && c.IsOpen():
		c.widget.RemoveStyleName(styleOpened)
		c.popup.RemoveStyleName(styleWidgetOpened)
		c.popup.Hide()
		c.updateTitle(c.model.Value())
		c.hooks.AfterContainerClose()
		ev := CloseEvent{Source: c}
		c.closeHandlers.each(func(h CloseHandler) { h.OnClose(ev) })
	}
}

func (c *Container[V, C]) Open() { c.setContainerVisible(true) }

func (c *Container[V, C]) Close() { c.setContainerVisible(false) }

func (c *Container[V, C]) Focus() { c.widget.Focus() }

func (c *Container[V, C]) Blur() { c.widget.Blur() }

func (c *Container[V, C]) Configuration() C { return c.config }

func (c *Container[V, C]) UpdateContainerPosition() { c.popup.UpdatePosition() }

func (c *Container[V, C]) DisableSpaceWhenOpened() { c.popup.DisableSpaceWhenOpened() }

func (c *Container[V, C]) ForceUpdateTitle() { c.updateTitle(c.model.Value()) }

// UpdateTitle recomputes the trigger text for value. Controls call it after
// changing their value while closed.
func (c *Container[V, C]) UpdateTitle(value V) { c.updateTitle(value) }

func (c *Container[V, C]) IsEnabled() bool { return !c.widget.HasStyleName(styleDisabled) }

// SetEnabled toggles the disabled style. A disabled host stays reachable by
// programmatic focus but leaves the tab ring.
func (c *Container[V, C]) SetEnabled(enabled bool) {
	if enabled {
		c.widget.RemoveStyleName(styleDisabled)
		c.widget.SetTabIndex(widgets.TabIndexTabulable)
	} else {
		c.widget.AddStyleName(styleDisabled)
		c.widget.SetTabIndex(widgets.TabIndexFocusable)
	}
}

func (c *Container[V, C]) SetClearTitleButtonVisible(visible bool) {
	if c.clearButton != nil {
		c.clearButton.SetVisible(visible)
	}
}

func (c *Container[V, C]) IsInitialized() bool { return c.state == initialized }

func (c *Container[V, C]) IsOpen() bool { return c.widget.HasStyleName(styleOpened) }

func (c *Container[V, C]) IsFocused() bool { return c.focused }

func (c *Container[V, C]) AddStyleName(name string) { c.widget.AddStyleName(name) }

func (c *Container[V, C]) RemoveStyleName(name string) { c.widget.RemoveStyleName(name) }

func (c *Container[V, C]) AddContainerStyleName(name string) { c.popup.AddStyleName(name) }

// SetCustomContainer places w in the popup next to the default content. It
// must be called before AsWidget.
func (c *Container[V, C]) SetCustomContainer(w widgets.Widget) error {
	if c.state == initialized {
		return fmt.Errorf("set custom container: %w", ErrAlreadyInitialized)
	}
	c.custom = w
	return nil
}

func (c *Container[V, C]) SetDefaultContentEnabled(enabled bool) {
	if t, ok := c.model.(DefaultContentToggler); ok {
		t.EnableDefaultContent(enabled)
	}
}

// AddValueChangeHandler registers h once; adding it again is a no-op. The
// dynamic type of h must be comparable or the call panics. ValueChangeFunc
// returns a pointer, which always is.
func (c *Container[V, C]) AddValueChangeHandler(h ValueChangeHandler[V]) { c.valueChangeHandlers.add(h) }

func (c *Container[V, C]) RemoveValueChangeHandler(h ValueChangeHandler[V]) {
	c.valueChangeHandlers.remove(h)
}

// AddOpenHandler registers h once. Like every Add*Handler method it panics
// if the dynamic type of h is not comparable.
func (c *Container[V, C]) AddOpenHandler(h OpenHandler) { c.openHandlers.add(h) }

func (c *Container[V, C]) RemoveOpenHandler(h OpenHandler) { c.openHandlers.remove(h) }

// AddCloseHandler registers h once. It panics if the dynamic type of h is not
// comparable.
func (c *Container[V, C]) AddCloseHandler(h CloseHandler) { c.closeHandlers.add(h) }

func (c *Container[V, C]) RemoveCloseHandler(h CloseHandler) { c.closeHandlers.remove(h) }

// AddListener registers a clear listener once. It panics if the dynamic type
// of l is not comparable.
func (c *Container[V, C]) AddListener(l Listener) { c.listeners.add(l) }

func (c *Container[V, C]) RemoveListener(l Listener) { c.listeners.remove(l) }

// FireValueChange notifies value-change handlers with the current value.
func (c *Container[V, C]) FireValueChange() { c.FireValueChangeWith(c.model.Value()) }

func (c *Container[V, C]) FireValueChangeWith(value V) {
	ev := ValueChangeEvent[V]{Source: c, Value: value}
	c.valueChangeHandlers.each(func(h ValueChangeHandler[V]) { h.OnValueChange(ev) })
}

func (c *Container[V, C]) Popup() *widgets.Popup { return c.popup }

func (c *Container[V, C]) MainButton() *widgets.Button { return c.mainButton }

func (c *Container[V, C]) StateButton() *widgets.Button { return c.stateButton }

// ClearButton is nil when the clear button is disabled or before AsWidget.
func (c *Container[V, C]) ClearButton() *widgets.Button { return c.clearButton }

func (c *Container[V, C]) isEmpty(value V) bool {
	return isNil(value) || c.model.IsValueEmpty(value)
}

func (c *Container[V, C]) updateTitle(value V) {
	if c.state != initialized || c.conf.EventOnlyMode {
		return
	}
	empty := c.isEmpty(value)
	placeholder := c.conf.TitleDisplayed && c.conf.TitlePlaceholder
	var text strings.Builder
	if c.conf.TitleDisplayed {
		if placeholder {
			if empty {
				c.mainButton.AddStyleName(StyleButtonPlaceholder)
				text.WriteString(c.conf.Title)
			} else {
				c.mainButton.RemoveStyleName(StyleButtonPlaceholder)
			}
		} else {
			text.WriteString(c.conf.Title)
			text.WriteString(" ")
			text.WriteString(c.conf.TitleSeparator)
			text.WriteString(" ")
		}
	}
	if empty {
		if !placeholder && c.conf.SelectionDisplayed {
			text.WriteString(c.conf.AllLabel)
		}
		c.widget.RemoveStyleName(StyleSelected)
	} else {
		if c.conf.SelectionDisplayed {
			c.appendDisplayValue(&text, value)
		}
		c.widget.AddStyleName(StyleSelected)
	}
	display := text.String()
	c.mainButton.SetText(display)
	c.mainButton.SetTitle(display)
	c.stateButton.SetTitle(display)
	c.SetClearTitleButtonVisible(!empty)
}

func (c *Container[V, C]) appendDisplayValue(b *strings.Builder, value V) {
	if c.formatter != nil {
		c.formatter.AppendDisplayValue(b, value)
		return
	}
	fmt.Fprint(b, value)
}
