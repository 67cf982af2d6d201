package auth

import (
	"context"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/goliatone/go-exclusionlist/core"
)

// CredentialsFinder resolves ambient credentials for the given scopes.
// google.FindDefaultCredentials is the production implementation.
type CredentialsFinder func(ctx context.Context, scopes ...string) (*google.Credentials, error)

type DefaultCredentialProviderConfig struct {
	Finder CredentialsFinder
}

// DefaultCredentialProvider discovers Google application default credentials
// (GOOGLE_APPLICATION_CREDENTIALS, the gcloud ADC file or the metadata server)
// and exchanges them for one access token per call.
type DefaultCredentialProvider struct {
	finder CredentialsFinder
}

func NewDefaultCredentialProvider(cfg DefaultCredentialProviderConfig) *DefaultCredentialProvider {
	finder := cfg.Finder
	if finder == nil {
		finder = google.FindDefaultCredentials
	}
	return &DefaultCredentialProvider{finder: finder}
}

func (p *DefaultCredentialProvider) Credential(ctx context.Context, req core.CredentialRequest) (core.Credential, error) {
	if p == nil || p.finder == nil {
		return core.Credential{}, authError("auth: default credential provider is not configured", nil)
	}
	scopes, err := requireScopes(req.Scopes)
	if err != nil {
		return core.Credential{}, err
	}

	creds, err := p.finder(ctx, scopes...)
	if err != nil {
		return core.Credential{}, authWrapError(err, "auth: find default credentials", map[string]any{
			"auth_kind": AuthKindGoogleDefault,
		})
	}
	if creds == nil || creds.TokenSource == nil {
		return core.Credential{}, authError("auth: default credentials have no token source", map[string]any{
			"auth_kind": AuthKindGoogleDefault,
		})
	}

	token, err := creds.TokenSource.Token()
	if err != nil {
		return core.Credential{}, authWrapError(err, "auth: issue access token", map[string]any{
			"auth_kind":  AuthKindGoogleDefault,
			"project_id": creds.ProjectID,
		})
	}
	if token == nil || strings.TrimSpace(token.AccessToken) == "" {
		return core.Credential{}, authError("auth: token source returned an empty access token", map[string]any{
			"auth_kind": AuthKindGoogleDefault,
		})
	}

	metadata := map[string]any{"auth_kind": AuthKindGoogleDefault}
	if projectID := strings.TrimSpace(creds.ProjectID); projectID != "" {
		metadata["project_id"] = projectID
	}
	return tokenToCredential(token, scopes, metadata), nil
}

// TokenSourceFunc returns a token source bound to the requested scopes.
type TokenSourceFunc func(ctx context.Context, scopes []string) (oauth2.TokenSource, error)

// TokenSourceProvider adapts any oauth2.TokenSource factory, for example a
// service account JWT config or an impersonated source, to core.CredentialProvider.
type TokenSourceProvider struct {
	Source TokenSourceFunc
}

func (p TokenSourceProvider) Credential(ctx context.Context, req core.CredentialRequest) (core.Credential, error) {
	if p.Source == nil {
		return core.Credential{}, authError("auth: token source factory is required", nil)
	}
	scopes, err := requireScopes(req.Scopes)
	if err != nil {
		return core.Credential{}, err
	}
	source, err := p.Source(ctx, scopes)
	if err != nil {
		return core.Credential{}, authWrapError(err, "auth: build token source", map[string]any{
			"auth_kind": AuthKindTokenSource,
		})
	}
	if source == nil {
		return core.Credential{}, authError("auth: token source is nil", map[string]any{
			"auth_kind": AuthKindTokenSource,
		})
	}
	token, err := source.Token()
	if err != nil {
		return core.Credential{}, authWrapError(err, "auth: issue access token", map[string]any{
			"auth_kind": AuthKindTokenSource,
		})
	}
	if token == nil || strings.TrimSpace(token.AccessToken) == "" {
		return core.Credential{}, authError("auth: token source returned an empty access token", map[string]any{
			"auth_kind": AuthKindTokenSource,
		})
	}
	return tokenToCredential(token, scopes, map[string]any{"auth_kind": AuthKindTokenSource}), nil
}

var (
	_ core.CredentialProvider = (*DefaultCredentialProvider)(nil)
	_ core.CredentialProvider = TokenSourceProvider{}
)
