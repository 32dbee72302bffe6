package download

// Package download implements the sticker and emoji download flows on top of
// the CDN fetcher and the image persister. Requests run on worker goroutines
// and report status changes and final results through callbacks.
