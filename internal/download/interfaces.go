package download

import (
	"github.com/ytget/discord-media-downloader/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadRequest))
	SetResultCallback(func(*model.Result))

	// Submit validates the ID and starts the download in the background
	Submit(kind model.MediaKind, mediaID string) (*model.DownloadRequest, error)

	// SetDownloadDirectory sets the download directory
	SetDownloadDirectory(dir string)
	GetDownloadDirectory() string
}
