package domain

import "fmt"

// ProcessingStatus represents the lifecycle of post-upload processing
type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "pending"
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusDone       ProcessingStatus = "done"
	ProcessingStatusFailed     ProcessingStatus = "failed"
)

// ModerationStatus represents the review state gating public visibility
type ModerationStatus string

const (
	ModerationStatusPending  ModerationStatus = "pending"
	ModerationStatusApproved ModerationStatus = "approved"
	ModerationStatusRejected ModerationStatus = "rejected"
)

// forbiddenProcessingTransitions lists, per current status, the statuses it may not move to.
// Anything absent is allowed.
var forbiddenProcessingTransitions = map[ProcessingStatus][]ProcessingStatus{
	ProcessingStatusDone: {ProcessingStatusPending},
}

// forbiddenModerationTransitions is empty: moderation may move freely
var forbiddenModerationTransitions = map[ModerationStatus][]ModerationStatus{}

// ParseProcessingStatus validates a raw processing status value
func ParseProcessingStatus(value string) (ProcessingStatus, error) {
	switch ProcessingStatus(value) {
	case ProcessingStatusPending, ProcessingStatusProcessing, ProcessingStatusDone, ProcessingStatusFailed:
		return ProcessingStatus(value), nil
	default:
		return "", fmt.Errorf("%w: unknown processing status %q", ErrInvalidStatus, value)
	}
}

// ParseModerationStatus validates a raw moderation status value
func ParseModerationStatus(value string) (ModerationStatus, error) {
	switch ModerationStatus(value) {
	case ModerationStatusPending, ModerationStatusApproved, ModerationStatusRejected:
		return ModerationStatus(value), nil
	default:
		return "", fmt.Errorf("%w: unknown moderation status %q", ErrInvalidStatus, value)
	}
}

// CheckProcessingTransition fails when from -> to is a forbidden transition
func CheckProcessingTransition(from, to ProcessingStatus) error {
	for _, forbidden := range forbiddenProcessingTransitions[from] {
		if forbidden == to {
			return fmt.Errorf("%w: cannot move processing status from %s to %s", ErrInvalidStatusTransition, from, to)
		}
	}
	return nil
}

// CheckModerationTransition fails when from -> to is a forbidden transition
func CheckModerationTransition(from, to ModerationStatus) error {
	for _, forbidden := range forbiddenModerationTransitions[from] {
		if forbidden == to {
			return fmt.Errorf("%w: cannot move moderation status from %s to %s", ErrInvalidStatusTransition, from, to)
		}
	}
	return nil
}
