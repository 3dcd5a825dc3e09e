package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a well-formed token matched no conversation.
var ErrNotFound = errors.New("conversation not found")

// ErrInvalidToken reports that a session token is not a well-formed identifier.
var ErrInvalidToken = errors.New("invalid session token")

// ValidationReason classifies why an inbound message was rejected.
type ValidationReason string

const (
	ValidationEmpty    ValidationReason = "EMPTY"
	ValidationTooShort ValidationReason = "TOO_SHORT"
)

// ValidationError reports malformed caller input. It is fully recoverable:
// nothing has been persisted when it is returned.
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ValidationTooShort:
		return "message is too short"
	default:
		return "message cannot be empty"
	}
}

// ModelCategory classifies a model-capability failure. Every category maps to
// a fixed user-presentable fallback reply; none of them surface as errors.
type ModelCategory string

const (
	ModelAuth        ModelCategory = "auth"
	ModelRateLimited ModelCategory = "rate_limited"
	ModelUnavailable ModelCategory = "unavailable"
	ModelTimeout     ModelCategory = "timeout"
	ModelEmpty       ModelCategory = "empty"
	ModelUnknown     ModelCategory = "unknown"
)

// ModelCallError is a classified failure of the model capability.
type ModelCallError struct {
	Category ModelCategory
	Err      error
}

func (e *ModelCallError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("model call failed (%s)", e.Category)
	}
	return fmt.Sprintf("model call failed (%s): %v", e.Category, e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }

// ModelCategoryOf extracts the failure category from err, or ModelUnknown
// when err carries no classification.
func ModelCategoryOf(err error) ModelCategory {
	var mce *ModelCallError
	if errors.As(err, &mce) {
		return mce.Category
	}
	return ModelUnknown
}
