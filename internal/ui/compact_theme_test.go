package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

func TestCompactTheme(t *testing.T) {
	th := NewCompactTheme()

	for _, variant := range []fyne.ThemeVariant{theme.VariantLight, theme.VariantDark} {
		if got := th.Color(theme.ColorNamePrimary, variant); got != DiscordBlurple {
			t.Errorf("Primary color for variant %d = %v, expected %v", variant, got, DiscordBlurple)
		}
	}

	if th.Size(theme.SizeNamePadding) >= theme.DefaultTheme().Size(theme.SizeNamePadding) {
		t.Error("Compact padding should be smaller than the default")
	}
	if th.Size(theme.SizeNameSubHeadingText) <= th.Size(theme.SizeNameText) {
		t.Error("Card titles should be larger than body text")
	}
	if th.Size(theme.SizeNameHeadingText) <= th.Size(theme.SizeNameSubHeadingText) {
		t.Error("Heading should be larger than card titles")
	}
	if th.Size(theme.SizeNameInlineIcon) != theme.DefaultTheme().Size(theme.SizeNameInlineIcon) {
		t.Error("Unlisted sizes should fall back to the default theme")
	}
}
