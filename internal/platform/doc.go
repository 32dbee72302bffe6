package platform

// Package platform contains OS/platform integration glue: filesystem helpers,
// default directories, and revealing files in the system file manager.
