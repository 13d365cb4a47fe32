package ui

import (
	"fmt"
	"strings"
)

// ParamField is one row of the parameter form.
type ParamField struct {
	Label   string
	Value   string
	Hint    string // Shown dimmed after the value, e.g. "(default 22.22)"
	Editing bool
	Buffer  string // Text being typed while Editing
}

// RenderParamsPanel renders the parameter form with a cursor on the selected
// field. The help line stays fixed at the bottom.
func RenderParamsPanel(fields []ParamField, cursor int, width, height int, active bool) string {
	innerW := max(10, width-4)
	labelW := 0
	for _, f := range fields {
		labelW = max(labelW, len(f.Label))
	}

	lines := []string{Separator(innerW)}
	for i, f := range fields {
		lines = append(lines, renderField(f, labelW, innerW, i == cursor && active))
	}
	lines = append(lines, "")

	help := "up/down select  left/right change  enter edit"
	if cursor >= 0 && cursor < len(fields) && fields[cursor].Editing {
		help = "type a number  enter apply  esc cancel"
	}
	lines = append(lines, StyleHelp.Render(help))

	return RenderPanel(width, height, "PARAMETERS", strings.Join(lines, "\n"), active)
}

func renderField(f ParamField, labelW, maxW int, isCursor bool) string {
	value := f.Value
	if f.Editing {
		value = f.Buffer + "_"
	}

	cursor := "  "
	if isCursor {
		cursor = ">>"
	}

	raw := fmt.Sprintf("%s %-*s %s", cursor, labelW, f.Label, value)
	if isCursor {
		return StyleCursorLine.Render(truncRaw(raw, maxW))
	}

	line := fmt.Sprintf("   %s ", StyleFieldLabel.Render(fmt.Sprintf("%-*s", labelW, f.Label)))
	if f.Editing {
		line += StyleFieldEditing.Render(value)
	} else {
		line += StyleFieldValue.Render(value)
	}
	if f.Hint != "" {
		line += " " + StyleHelp.Render(f.Hint)
	}
	return line
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	if len(r) < w {
		return s + strings.Repeat(" ", w-len(r))
	}
	return s
}
