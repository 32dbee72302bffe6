package model

// TaskStatus represents the status of a download request
type TaskStatus string

const (
	// TaskStatusPending means the request is accepted but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusFetching means a CDN request is in flight
	TaskStatusFetching TaskStatus = "Fetching"

	// TaskStatusCompleted means the media was saved to disk
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the request failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the request is still being processed
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusPending || ts == TaskStatusFetching
}

// IsFinished returns true if the request is in a finished state (completed or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
