package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay composites popup over base with its top-left corner at column x,
// row y. Rows past the base are appended when height is zero; otherwise the
// canvas is clipped to height rows. Both strings may carry ANSI styling.
func Overlay(base, popup string, x, y, width, height int) string {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	baseLines := splitToLines(base, height)
	popupLines := splitToLines(popup, 0)
	popupWidth := maxLineWidth(popupLines)
	for height <= 0 && len(baseLines) < y+len(popupLines) {
		baseLines = append(baseLines, "")
	}
	for i, line := range popupLines {
		row := y + i
		if row >= len(baseLines) {
			break
		}
		target := padRightANSI(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		popupLine := padRightANSI(line, popupWidth)
		pos := x + ansi.StringWidth(popupLine)
		right := dropColumns(target, pos)
		if width > 0 {
			gap := width - pos - ansi.StringWidth(right)
			if gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}
		baseLines[row] = left + popupLine + right
	}
	return strings.Join(baseLines, "\n")
}

// InsertBelow splices popup under row y of base, pushing later rows down.
func InsertBelow(base, popup string, x, y int) string {
	baseLines := splitToLines(base, 0)
	if y < 0 {
		y = 0
	}
	if y >= len(baseLines) {
		y = len(baseLines) - 1
	}
	indent := strings.Repeat(" ", max(0, x))
	popupLines := splitToLines(popup, 0)
	out := make([]string, 0, len(baseLines)+len(popupLines))
	out = append(out, baseLines[:y+1]...)
	for _, line := range popupLines {
		out = append(out, indent+line)
	}
	out = append(out, baseLines[y+1:]...)
	return strings.Join(out, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return ansi.TruncateLeft(s, cols, "")
}

func padRightANSI(s string, width int) string {
	if width <= 0 {
		return s
	}
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
