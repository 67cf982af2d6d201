package auth

import (
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/goliatone/go-exclusionlist/core"
)

const (
	AuthKindGoogleDefault = "google_default_credentials"
	AuthKindTokenSource   = "oauth2_token_source"
	AuthKindStatic        = "static_token"
)

func tokenToCredential(token *oauth2.Token, scopes []string, metadata map[string]any) core.Credential {
	cred := core.Credential{
		TokenType:   token.Type(),
		AccessToken: strings.TrimSpace(token.AccessToken),
		Scopes:      append([]string(nil), scopes...),
		Metadata:    cloneMetadata(metadata),
	}
	if !token.Expiry.IsZero() {
		expiresAt := token.Expiry.UTC()
		cred.ExpiresAt = &expiresAt
	}
	return cred
}

func requireScopes(scopes []string) ([]string, error) {
	normalized := core.NormalizeScopes(scopes)
	if len(normalized) == 0 {
		return nil, authError("auth: at least one scope is required", nil)
	}
	return normalized, nil
}

func cloneMetadata(metadata map[string]any) map[string]any {
	if len(metadata) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(metadata))
	for key, value := range metadata {
		out[key] = value
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func utcNow() time.Time {
	return time.Now().UTC()
}
