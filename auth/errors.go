package auth

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-exclusionlist/core"
)

func authError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(core.ServiceErrorAuthFailed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func authWrapError(source error, message string, metadata map[string]any) error {
	if source == nil {
		return authError(message, metadata)
	}
	err := goerrors.Wrap(source, goerrors.CategoryAuth, message).
		WithCode(http.StatusUnauthorized).
		WithTextCode(core.ServiceErrorAuthFailed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}
