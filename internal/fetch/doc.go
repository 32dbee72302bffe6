package fetch

// Package fetch performs single HTTP GET requests against the Discord CDN and
// returns the response body only for HTTP 200.
