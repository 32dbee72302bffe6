// Package ui builds the Fyne window: download folder row, sticker and emoji
// cards and the status line.
package ui
