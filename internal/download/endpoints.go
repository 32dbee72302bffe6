package download

import (
	"fmt"
	"strings"
)

// CDN defaults
const (
	DefaultStickerBaseURL = "https://media.discordapp.net/stickers"
	DefaultEmojiBaseURL   = "https://cdn.discordapp.com/emojis"

	StickerSize = 160
	EmojiSize   = 48
)

// File extensions
const (
	ExtPNG = "png"
	ExtGIF = "gif"
)

// Endpoints builds CDN URLs for media IDs
type Endpoints struct {
	StickerBaseURL string
	EmojiBaseURL   string
}

// DefaultEndpoints returns the public Discord CDN endpoints
func DefaultEndpoints() Endpoints {
	return Endpoints{
		StickerBaseURL: DefaultStickerBaseURL,
		EmojiBaseURL:   DefaultEmojiBaseURL,
	}
}

// NewEndpoints returns the public CDN endpoints with any non-empty base URL overridden
func NewEndpoints(stickerBaseURL, emojiBaseURL string) Endpoints {
	e := DefaultEndpoints()
	if stickerBaseURL != "" {
		e.StickerBaseURL = stickerBaseURL
	}
	if emojiBaseURL != "" {
		e.EmojiBaseURL = emojiBaseURL
	}
	return e
}

// StickerURL returns the sticker PNG URL
func (e Endpoints) StickerURL(id string) string {
	return fmt.Sprintf("%s/%s.%s?size=%d", strings.TrimRight(e.StickerBaseURL, "/"), id, ExtPNG, StickerSize)
}

// EmojiURL returns the emoji URL for the given extension (gif or png)
func (e Endpoints) EmojiURL(id, ext string) string {
	return fmt.Sprintf("%s/%s.%s?size=%d", strings.TrimRight(e.EmojiBaseURL, "/"), id, ext, EmojiSize)
}
