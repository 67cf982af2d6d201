package core

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestRetrievalError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &RetrievalError{Cause: CauseAuthFailure, FileID: "abc", Err: cause}
	if !strings.Contains(err.Error(), `authenticate file "abc" failed: boom`) {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected unwrap to expose cause")
	}

	fetchErr := &RetrievalError{Cause: CauseFetchFailure, FileID: "abc"}
	if !strings.Contains(fetchErr.Error(), `fetch file "abc" failed`) {
		t.Fatalf("unexpected message %q", fetchErr.Error())
	}
}

func TestRetrievalError_ServiceErrorForAuthFailure(t *testing.T) {
	err := (&RetrievalError{Cause: CauseAuthFailure, FileID: "abc", Err: errors.New("denied")}).ServiceError()
	if err.Category != goerrors.CategoryAuth {
		t.Fatalf("expected auth category, got %q", err.Category)
	}
	if err.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", err.Code)
	}
	if err.TextCode != ServiceErrorAuthFailed {
		t.Fatalf("expected %q, got %q", ServiceErrorAuthFailed, err.TextCode)
	}
}

func TestRetrievalError_ServiceErrorKeepsProviderCategory(t *testing.T) {
	providerErr := goerrors.New("not found", goerrors.CategoryNotFound).WithCode(404)
	err := (&RetrievalError{Cause: CauseFetchFailure, FileID: "abc", Err: providerErr}).ServiceError()
	if err.Category != goerrors.CategoryNotFound {
		t.Fatalf("expected not found category, got %q", err.Category)
	}
	if err.TextCode != ServiceErrorNotFound {
		t.Fatalf("expected %q, got %q", ServiceErrorNotFound, err.TextCode)
	}
	if err.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", err.Code)
	}
}

func TestRetrievalError_ServiceErrorFallsBackToFetchFailed(t *testing.T) {
	err := (&RetrievalError{Cause: CauseFetchFailure, FileID: "abc", Err: errors.New("reset")}).ServiceError()
	if err.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %q", err.Category)
	}
	if err.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", err.Code)
	}
	if err.TextCode != ServiceErrorFetchFailed {
		t.Fatalf("expected %q, got %q", ServiceErrorFetchFailed, err.TextCode)
	}
}

func TestServiceErrorMapper_UsesRetrievalEnvelope(t *testing.T) {
	mapped := serviceErrorMapper(&RetrievalError{Cause: CauseAuthFailure, FileID: "x", Err: errors.New("denied")})
	if mapped.TextCode != ServiceErrorAuthFailed {
		t.Fatalf("expected auth text code, got %q", mapped.TextCode)
	}
	plain := serviceErrorMapper(errors.New("core: credential provider is required"))
	if plain.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input for required message, got %q", plain.Category)
	}
	if serviceErrorMapper(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestCategoryMappings(t *testing.T) {
	cases := []struct {
		category goerrors.Category
		status   int
		code     string
	}{
		{goerrors.CategoryValidation, http.StatusBadRequest, ServiceErrorBadInput},
		{goerrors.CategoryAuth, http.StatusUnauthorized, ServiceErrorAuthFailed},
		{goerrors.CategoryAuthz, http.StatusForbidden, ServiceErrorPermissionDenied},
		{goerrors.CategoryNotFound, http.StatusNotFound, ServiceErrorNotFound},
		{goerrors.CategoryRateLimit, http.StatusTooManyRequests, ServiceErrorRateLimited},
		{goerrors.CategoryExternal, http.StatusBadGateway, ServiceErrorExternalFailure},
		{goerrors.CategoryInternal, http.StatusInternalServerError, ServiceErrorInternal},
	}
	for _, tc := range cases {
		if got := HTTPStatusForCategory(tc.category); got != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.category, tc.status, got)
		}
		if got := TextCodeForCategory(tc.category); got != tc.code {
			t.Fatalf("%s: expected code %q, got %q", tc.category, tc.code, got)
		}
	}
}
