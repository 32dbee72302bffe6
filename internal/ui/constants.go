package ui

// UI-wide constants to avoid magic numbers scattered across the codebase.

// Window geometry
const (
	WindowWidth  float32 = 750
	WindowHeight float32 = 600
)

// Icons (emojis/symbols)
const (
	IconLanguage = "🌐"
)
