// Package widgets contains the terminal primitives dropdown controls are built
// from.
//
// Allowed here:
// - element state (id, style names, tab index, visibility, tooltip)
// - buttons, the focusable flow panel host, the popup panel
// - dumb rendering helpers (palette, popup overlay compositor)
//
// Not allowed here:
// - open/close policy, title computation, or value ownership
package widgets
