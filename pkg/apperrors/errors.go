package apperrors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrFlowComplete      = errors.New("flow is already complete")
	ErrFlowIncomplete    = errors.New("flow is not complete")
	ErrImmutableResponse = errors.New("response is immutable")
	ErrUnsafeOperation   = errors.New("operation failed safety validation")
	ErrUnknownProvider   = errors.New("unknown schema provider type")
)
