package enums

import "fmt"

// ExportStatus tracks the lifecycle of an invoice export job.
type ExportStatus string

const (
	ExportStatusRequested  ExportStatus = "REQUESTED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusCompleted  ExportStatus = "COMPLETED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

var validExportStatuses = []ExportStatus{
	ExportStatusRequested,
	ExportStatusProcessing,
	ExportStatusCompleted,
	ExportStatusFailed,
}

// IsValid reports whether the value matches the canonical export status enum.
func (e ExportStatus) IsValid() bool {
	for _, candidate := range validExportStatuses {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseExportStatus converts the raw string to ExportStatus.
func ParseExportStatus(value string) (ExportStatus, error) {
	for _, candidate := range validExportStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export status %q", value)
}
