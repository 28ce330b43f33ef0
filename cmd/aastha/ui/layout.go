package ui

// Layout constants for the single-column mobile layout.
const (
	// Pages never grow wider than a phone held sideways.
	MaxContentWidth = 72
	MinContentWidth = 32

	PanelBorderWidth = 2
	ContentPaddingH  = 2

	HeaderHeight = 3
	FooterHeight = 2

	MinimumTerminalWidth  = 40
	MinimumTerminalHeight = 20
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{TerminalWidth: width, TerminalHeight: height}
}

// ContentWidth is the column width pages render into.
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth - ContentPaddingH*2
	if w > MaxContentWidth {
		w = MaxContentWidth
	}
	if w < MinContentWidth {
		w = MinContentWidth
	}
	return w
}

// BodyHeight is the height left for scrolling content under the header.
func (l LayoutConfig) BodyHeight() int {
	h := l.TerminalHeight - HeaderHeight - FooterHeight
	if h < 5 {
		h = 5
	}
	return h
}

// TooSmall reports whether the terminal is below the supported minimum.
func (l LayoutConfig) TooSmall() bool {
	return l.TerminalWidth < MinimumTerminalWidth || l.TerminalHeight < MinimumTerminalHeight
}
