package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"irradiance-map.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, ledType, view string) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"Tab", " focus"},
		{"V", "iew"},
		{"U", "ndo"},
		{"R", "eset"},
		{"E", "xport"},
		{"Q", "uit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	right := StyleStatusOK.Render(ledType) + "  " + StyleMenuLabel.Render("View: "+view) + " "
	left := StyleMenuKey.Render(title) + menu

	// Key hints give way before the type and view labels.
	innerW := max(1, width-2)
	if lipgloss.Width(left)+lipgloss.Width(right) > innerW {
		left = ansi.Truncate(left, max(0, innerW-lipgloss.Width(right)), "")
	}
	gap := max(0, innerW-lipgloss.Width(left)-lipgloss.Width(right))
	return StyleMenuBar.Width(width).Render(Fit(left+strings.Repeat(" ", gap)+right, max(1, width-2), 1))
}
