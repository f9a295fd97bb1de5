package collab

// BackupResult is the engine-to-UI result shape for a backup or restore
// attempt.
type BackupResult struct {
	Success  bool
	Message  string
	Warnings []string
}

// DetectionStatus mirrors detector.Status without importing internal/detector,
// keeping this package free of a dependency on the engine it reports for.
type DetectionStatus string

const (
	DetectionFound     DetectionStatus = "found"
	DetectionNotFound  DetectionStatus = "not_found"
	DetectionCancelled DetectionStatus = "cancelled"
)

// DetectionResult is the engine-to-UI result shape for save-path detection.
type DetectionResult struct {
	Status     DetectionStatus
	Candidates []string
	Message    string
}
