package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ServiceErrorBadInput         = "EXCLUSION_BAD_INPUT"
	ServiceErrorAuthFailed       = "EXCLUSION_AUTH_FAILED"
	ServiceErrorFetchFailed      = "EXCLUSION_FETCH_FAILED"
	ServiceErrorNotFound         = "EXCLUSION_NOT_FOUND"
	ServiceErrorPermissionDenied = "EXCLUSION_PERMISSION_DENIED"
	ServiceErrorRateLimited      = "EXCLUSION_RATE_LIMITED"
	ServiceErrorExternalFailure  = "EXCLUSION_EXTERNAL_FAILURE"
	ServiceErrorInternal         = "EXCLUSION_INTERNAL_ERROR"
)

type FailureCause string

const (
	CauseAuthFailure  FailureCause = "auth_failure"
	CauseFetchFailure FailureCause = "fetch_failure"
)

// RetrievalError is returned by Fetcher.Fetch for every failure after input
// validation. Err holds the original credential or provider error.
type RetrievalError struct {
	Cause  FailureCause
	FileID string
	Err    error
}

func (e *RetrievalError) Error() string {
	if e == nil {
		return "<nil>"
	}
	step := "fetch"
	if e.Cause == CauseAuthFailure {
		step = "authenticate"
	}
	if e.Err == nil {
		return fmt.Sprintf("exclusionlist: %s file %q failed", step, e.FileID)
	}
	return fmt.Sprintf("exclusionlist: %s file %q failed: %v", step, e.FileID, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ServiceError renders the failure as a go-errors envelope. Auth failures are
// always 401; fetch failures keep the category of the provider error.
func (e *RetrievalError) ServiceError() *goerrors.Error {
	if e == nil {
		return nil
	}
	metadata := map[string]any{
		"cause":   string(e.Cause),
		"file_id": e.FileID,
	}
	if e.Cause == CauseAuthFailure {
		return newWrappedServiceError(e.Err, goerrors.CategoryAuth, e.Error(), ServiceErrorAuthFailed, metadata)
	}

	var rich *goerrors.Error
	if goerrors.As(e.Err, &rich) && rich.Category != "" && rich.Category != goerrors.CategoryInternal {
		return newWrappedServiceError(e.Err, rich.Category, e.Error(), defaultServiceTextCode(rich.Category), metadata)
	}
	out := newWrappedServiceError(e.Err, goerrors.CategoryExternal, e.Error(), ServiceErrorFetchFailed, metadata)
	out.Code = http.StatusBadGateway
	return out
}

func AsRetrievalError(err error) (*RetrievalError, bool) {
	var target *RetrievalError
	if errors.As(err, &target) && target != nil {
		return target, true
	}
	return nil, false
}

func IsAuthFailure(err error) bool {
	retrieval, ok := AsRetrievalError(err)
	return ok && retrieval.Cause == CauseAuthFailure
}

func IsFetchFailure(err error) bool {
	retrieval, ok := AsRetrievalError(err)
	return ok && retrieval.Cause == CauseFetchFailure
}

func serviceErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	if retrieval, ok := AsRetrievalError(err); ok {
		return retrieval.ServiceError()
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureServiceErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "not found"):
		return newServiceError(err.Error(), goerrors.CategoryNotFound, ServiceErrorNotFound)
	case strings.Contains(msg, "throttl"), strings.Contains(msg, "rate limit"):
		return newServiceError(err.Error(), goerrors.CategoryRateLimit, ServiceErrorRateLimited)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newServiceError(err.Error(), goerrors.CategoryBadInput, ServiceErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureServiceErrorEnvelope(mapped)
}

func newServiceError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureServiceErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func newWrappedServiceError(
	source error,
	category goerrors.Category,
	message string,
	textCode string,
	metadata map[string]any,
) *goerrors.Error {
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, category)
	} else {
		err = goerrors.Wrap(source, category, message)
	}
	err = err.WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return ensureServiceErrorEnvelope(err)
}

func ensureServiceErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = serviceHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultServiceTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultServiceTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ServiceErrorBadInput
	case goerrors.CategoryNotFound:
		return ServiceErrorNotFound
	case goerrors.CategoryAuth:
		return ServiceErrorAuthFailed
	case goerrors.CategoryAuthz:
		return ServiceErrorPermissionDenied
	case goerrors.CategoryRateLimit:
		return ServiceErrorRateLimited
	case goerrors.CategoryExternal:
		return ServiceErrorExternalFailure
	default:
		return ServiceErrorInternal
	}
}

func serviceHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HTTPStatusForCategory exposes the category to status mapping used by the
// envelope so adapters can stay consistent with it.
func HTTPStatusForCategory(category goerrors.Category) int {
	return serviceHTTPStatus(category)
}

// TextCodeForCategory returns the default text code for category.
func TextCodeForCategory(category goerrors.Category) string {
	return defaultServiceTextCode(category)
}

func validationError(field string, message string) error {
	return goerrors.NewValidation("core: validation failed", goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(ServiceErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}
