// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Authors, channel names
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, timestamps

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	AccentColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	// Toast notification colors
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	// Toolbar
	ToolbarStyle = lipgloss.NewStyle().
			Foreground(TextPrimaryColor).
			Padding(0, 1)

	ToolbarTitleStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	ToolbarHintStyle = lipgloss.NewStyle().
				Foreground(TextMutedColor)

	ToolbarSeparatorStyle = lipgloss.NewStyle().
				Foreground(BorderDefaultColor)

	ToolbarButtonStyle = lipgloss.NewStyle().
				Foreground(StatusErrorColor).
				Bold(true)

	ToolbarErrorStyle = lipgloss.NewStyle().
				Foreground(StatusErrorColor)

	// Channel list
	ChannelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)

	ChannelSelectedStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	// Messages
	MessageAuthorStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor).
				Bold(true)

	MessageTimeStyle = lipgloss.NewStyle().
				Foreground(TextMutedColor)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
