package model

// Package model defines domain data structures used across the app: media
// kinds, download requests, their status enums and results. Structures are
// designed for direct use by the UI and explicit state transitions.
