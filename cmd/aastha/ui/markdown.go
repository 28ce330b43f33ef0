package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdown renders short markdown snippets for the current theme and width.
type markdown struct {
	renderer *glamour.TermRenderer
	dark     bool
	width    int
}

func (md *markdown) ensure(dark bool, width int) {
	if md.renderer != nil && md.dark == dark && md.width == width {
		return
	}
	style := "light"
	if dark {
		style = "dark"
	}
	md.renderer, _ = glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	md.dark = dark
	md.width = width
}

// render renders content with panic recovery. Plain text comes back if
// glamour fails.
func (md *markdown) render(content string, dark bool, width int) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	md.ensure(dark, width)
	if md.renderer != nil && content != "" {
		rendered, err := md.renderer.Render(content)
		if err == nil {
			return strings.Trim(rendered, "\n")
		}
	}
	return content
}
