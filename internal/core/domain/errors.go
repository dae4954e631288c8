package domain

import "errors"

// ErrAlreadyExists is an error thrown when entity already exists
var ErrAlreadyExists = errors.New("already exists")

// ErrTagNotFound is an error when tag is not found
var ErrTagNotFound = errors.New("tag not found")

// ErrInvalidTag is an error thrown when a tag name is empty after normalization
var ErrInvalidTag = errors.New("invalid tag")

// ErrMediaItemNotFound is an error thrown when a media item is missing or not available
var ErrMediaItemNotFound = errors.New("media item not found")

// ErrInvalidMediaItem is an error thrown when media item fields are invalid
var ErrInvalidMediaItem = errors.New("invalid media item")

// ErrInvalidCoordinates is an error thrown when latitude or longitude is out of range
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// ErrInvalidBounds is an error thrown when a bounding box is inverted or out of range
var ErrInvalidBounds = errors.New("invalid bounds")

// ErrInvalidFileType is an error thrown when file type is invalid
var ErrInvalidFileType = errors.New("invalid file type")

// ErrFileSizeTooBig is an error thrown when file size is too big
var ErrFileSizeTooBig = errors.New("file size too big")

// ErrInvalidObjectKey is an error thrown when an object key was not issued by this service
var ErrInvalidObjectKey = errors.New("invalid object key")

// ErrUploadNotFound is an error thrown when a confirmed upload is absent from storage
var ErrUploadNotFound = errors.New("upload not found")

// ErrUploadExpired is an error thrown when an upload is confirmed after its confirm window
var ErrUploadExpired = errors.New("upload expired")

// ErrEmptyUpload is an error thrown when a confirmed upload has no content
var ErrEmptyUpload = errors.New("empty upload")

// ErrInvalidStatus is an error thrown when a status value is unknown
var ErrInvalidStatus = errors.New("invalid status")

// ErrInvalidStatusTransition is an error thrown when a status transition is forbidden
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// ErrMediaItemProcessing is an error thrown when mutating an item that is being processed
var ErrMediaItemProcessing = errors.New("media item is being processed")

// ErrObjectNotFound is an error thrown by storage when an object does not exist
var ErrObjectNotFound = errors.New("object not found")

var validationErrors = []error{
	ErrInvalidTag,
	ErrInvalidMediaItem,
	ErrInvalidCoordinates,
	ErrInvalidBounds,
	ErrInvalidFileType,
	ErrFileSizeTooBig,
	ErrInvalidObjectKey,
	ErrEmptyUpload,
	ErrInvalidStatus,
}

var businessRuleErrors = []error{
	ErrAlreadyExists,
	ErrInvalidStatusTransition,
	ErrMediaItemProcessing,
	ErrUploadNotFound,
	ErrUploadExpired,
}

var notFoundErrors = []error{
	ErrMediaItemNotFound,
	ErrTagNotFound,
}

// IsValidation reports whether err is a user-facing validation error
func IsValidation(err error) bool {
	return isAny(err, validationErrors)
}

// IsBusinessRule reports whether err is a user-facing business rule violation
func IsBusinessRule(err error) bool {
	return isAny(err, businessRuleErrors)
}

// IsNotFound reports whether err is a user-facing not found error
func IsNotFound(err error) bool {
	return isAny(err, notFoundErrors)
}

// IsPublic reports whether err carries a message that is safe to show to a caller
func IsPublic(err error) bool {
	return IsValidation(err) || IsBusinessRule(err) || IsNotFound(err)
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
