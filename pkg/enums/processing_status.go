package enums

import "fmt"

// ProcessingStatus tracks the simulated lifecycle of feeds and reports.
type ProcessingStatus string

const (
	ProcessingStatusInQueue    ProcessingStatus = "IN_QUEUE"
	ProcessingStatusInProgress ProcessingStatus = "IN_PROGRESS"
	ProcessingStatusDone       ProcessingStatus = "DONE"
	ProcessingStatusCancelled  ProcessingStatus = "CANCELLED"
	ProcessingStatusFatal      ProcessingStatus = "FATAL"
)

var validProcessingStatuses = []ProcessingStatus{
	ProcessingStatusInQueue,
	ProcessingStatusInProgress,
	ProcessingStatusDone,
	ProcessingStatusCancelled,
	ProcessingStatusFatal,
}

// IsValid reports whether the value matches the canonical processing status enum.
func (p ProcessingStatus) IsValid() bool {
	for _, candidate := range validProcessingStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProcessingStatus converts the raw string to ProcessingStatus.
func ParseProcessingStatus(value string) (ProcessingStatus, error) {
	for _, candidate := range validProcessingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid processing status %q", value)
}

// Terminal reports whether no further lifecycle transitions are possible.
func (p ProcessingStatus) Terminal() bool {
	switch p {
	case ProcessingStatusDone, ProcessingStatusCancelled, ProcessingStatusFatal:
		return true
	}
	return false
}
