package ui

import (
	"aastha/internal/camera"
	"aastha/internal/capture"
	"aastha/internal/locale"
	"aastha/internal/voice"

	tea "github.com/charmbracelet/bubbletea"
)

// NavigateMsg asks the shell to show another screen. Target is a screen
// name; unknown names end on the language screen.
type NavigateMsg struct {
	Target string
}

// LanguageSelectedMsg is sent once a language is picked.
type LanguageSelectedMsg struct {
	Locale locale.Locale
}

// PhotoTakenMsg carries the capture to the shell, which stores it and opens
// the diagnosis screen.
type PhotoTakenMsg struct {
	Image camera.Image
}

// CameraResultMsg is a finished camera acquisition.
type CameraResultMsg struct {
	Result capture.Result
}

// VoiceResponseMsg fires when the scripted listening delay has passed.
type VoiceResponseMsg struct {
	Assistant string
	Ticket    voice.Ticket
}

// Navigate returns a command that emits a NavigateMsg.
func Navigate(target string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Target: target} }
}
