package autosize

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Defaults used when no option overrides them.
const (
	DefaultMinSize = 20
	DefaultMaxSize = 120
	DefaultColumns = 60
	DefaultMinRows = 3
	DefaultMaxRows = 24
)

// InputSize returns the column count needed to show value on one line,
// clamped to [min, max]. A max below min disables the upper bound.
func InputSize(value string, min, max int) int {
	width := runewidth.StringWidth(value) + 1
	return clamp(width, min, max)
}

// TextAreaRows returns the row count needed to show value in a textarea that
// is columns cells wide, counting hard line breaks and soft wraps.
func TextAreaRows(value string, columns, min, max int) int {
	if columns <= 0 {
		columns = DefaultColumns
	}
	value = strings.ReplaceAll(value, "\r\n", "\n")
	rows := 0
	for _, line := range strings.Split(value, "\n") {
		width := runewidth.StringWidth(line)
		if width == 0 {
			rows++
			continue
		}
		rows += (width + columns - 1) / columns
	}
	return clamp(rows, min, max)
}

func clamp(n, min, max int) int {
	if n < min {
		n = min
	}
	if max >= min && max > 0 && n > max {
		n = max
	}
	return n
}
