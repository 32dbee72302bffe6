package persist

// Package persist writes downloaded media to disk, either verbatim or
// normalized into an RGBA PNG.
