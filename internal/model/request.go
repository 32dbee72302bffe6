package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MediaKind identifies which CDN asset family a request targets
type MediaKind string

const (
	KindSticker MediaKind = "sticker"
	KindEmoji   MediaKind = "emoji"
)

// ErrInvalidMediaID is returned for IDs that are not a plain decimal number
var ErrInvalidMediaID = errors.New("invalid ID")

// String returns the string representation of MediaKind
func (k MediaKind) String() string {
	return string(k)
}

// Valid reports whether k is a known media kind
func (k MediaKind) Valid() bool {
	return k == KindSticker || k == KindEmoji
}

// DownloadRequest represents a single user-triggered download
type DownloadRequest struct {
	ID          string
	MediaID     string
	Kind        MediaKind
	Status      TaskStatus
	LastError   string    // last error message if any
	RequestedAt time.Time // when the user triggered the download
	FinishedAt  time.Time // when the request reached a final status
}

// Result is the outcome of a download request, consumed by the UI and discarded
type Result struct {
	Request     *DownloadRequest
	Success     bool
	ResolvedURL string // CDN URL that produced the saved file, empty on failure
	LocalPath   string // saved file path, empty on failure
	Message     string
	Err         error
}

// NormalizeMediaID trims surrounding whitespace and validates the ID.
// Only ASCII digits are accepted; the returned ID is safe to embed in URLs and file names.
func NormalizeMediaID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", ErrInvalidMediaID
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidMediaID, id)
		}
	}
	return id, nil
}

// FileName returns the on-disk name for the media with the given extension
func FileName(kind MediaKind, mediaID, ext string) string {
	return fmt.Sprintf("%s_%s.%s", kind, mediaID, ext)
}

// GetDisplayTitle returns a short human readable label, e.g. "sticker 123"
func (r *DownloadRequest) GetDisplayTitle() string {
	if r.MediaID == "" {
		return r.Kind.String()
	}
	return r.Kind.String() + " " + r.MediaID
}
