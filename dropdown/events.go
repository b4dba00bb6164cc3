package dropdown

// ValueChangeEvent is fired after the value changes through the control.
type ValueChangeEvent[V any] struct {
	Source any
	Value  V
}

type OpenEvent struct {
	Source any
}

type CloseEvent struct {
	Source any
}

// Handlers are held in sets keyed by identity, so implementations must be
// comparable; pointer receivers are the usual choice. The *Func adapters
// below return a fresh pointer per call.

type ValueChangeHandler[V any] interface {
	OnValueChange(ValueChangeEvent[V])
}

type OpenHandler interface {
	OnOpen(OpenEvent)
}

type CloseHandler interface {
	OnClose(CloseEvent)
}

// Listener is told when the clear button empties the control.
type Listener interface {
	OnClearTitleClicked()
}

type valueChangeFunc[V any] struct{ fn func(ValueChangeEvent[V]) }

func (h *valueChangeFunc[V]) OnValueChange(ev ValueChangeEvent[V]) { h.fn(ev) }

// ValueChangeFunc adapts fn to a ValueChangeHandler.
func ValueChangeFunc[V any](fn func(ValueChangeEvent[V])) ValueChangeHandler[V] {
	return &valueChangeFunc[V]{fn: fn}
}

type openFunc struct{ fn func(OpenEvent) }

func (h *openFunc) OnOpen(ev OpenEvent) { h.fn(ev) }

func OpenFunc(fn func(OpenEvent)) OpenHandler { return &openFunc{fn: fn} }

type closeFunc struct{ fn func(CloseEvent) }

func (h *closeFunc) OnClose(ev CloseEvent) { h.fn(ev) }

func CloseFunc(fn func(CloseEvent)) CloseHandler { return &closeFunc{fn: fn} }

type listenerFunc struct{ fn func() }

func (l *listenerFunc) OnClearTitleClicked() { l.fn() }

func ListenerFunc(fn func()) Listener { return &listenerFunc{fn: fn} }

// handlerSet is an unordered set of handlers.
type handlerSet[H comparable] map[H]struct{}

func (s handlerSet[H]) add(h H) { s[h] = struct{}{} }

func (s handlerSet[H]) remove(h H) { delete(s, h) }

func (s handlerSet[H]) clear() {
	for h := range s {
		delete(s, h)
	}
}

// each visits a snapshot, so handlers may add or remove while being notified.
func (s handlerSet[H]) each(fn func(H)) {
	snapshot := make([]H, 0, len(s))
	for h := range s {
		snapshot = append(snapshot, h)
	}
	for _, h := range snapshot {
		fn(h)
	}
}
