package auth

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-exclusionlist/core"
)

type StaticCredentialProviderConfig struct {
	AccessToken string
	TokenType   string
	ExpiresAt   *time.Time
	Now         func() time.Time
}

// StaticCredentialProvider hands out a fixed token. It is meant for local
// development and emulators; the scopes are recorded but not enforced.
type StaticCredentialProvider struct {
	config StaticCredentialProviderConfig
}

func NewStaticCredentialProvider(cfg StaticCredentialProviderConfig) *StaticCredentialProvider {
	now := cfg.Now
	if now == nil {
		now = utcNow
	}
	var expiresAt *time.Time
	if cfg.ExpiresAt != nil {
		value := cfg.ExpiresAt.UTC()
		expiresAt = &value
	}
	return &StaticCredentialProvider{
		config: StaticCredentialProviderConfig{
			AccessToken: strings.TrimSpace(cfg.AccessToken),
			TokenType:   firstNonEmpty(cfg.TokenType, "Bearer"),
			ExpiresAt:   expiresAt,
			Now:         now,
		},
	}
}

func (p *StaticCredentialProvider) Credential(_ context.Context, req core.CredentialRequest) (core.Credential, error) {
	if p == nil || p.config.AccessToken == "" {
		return core.Credential{}, authError("auth: static access token is required", map[string]any{
			"auth_kind": AuthKindStatic,
		})
	}
	scopes, err := requireScopes(req.Scopes)
	if err != nil {
		return core.Credential{}, err
	}
	if p.config.ExpiresAt != nil && !p.config.ExpiresAt.After(p.config.Now().UTC()) {
		return core.Credential{}, authError("auth: static access token expired", map[string]any{
			"auth_kind":  AuthKindStatic,
			"expires_at": p.config.ExpiresAt.Format(time.RFC3339),
		})
	}

	cred := core.Credential{
		TokenType:   p.config.TokenType,
		AccessToken: p.config.AccessToken,
		Scopes:      scopes,
		Metadata:    map[string]any{"auth_kind": AuthKindStatic},
	}
	if p.config.ExpiresAt != nil {
		expiresAt := *p.config.ExpiresAt
		cred.ExpiresAt = &expiresAt
	}
	return cred, nil
}

type CredentialProviderFunc func(ctx context.Context, req core.CredentialRequest) (core.Credential, error)

func (fn CredentialProviderFunc) Credential(ctx context.Context, req core.CredentialRequest) (core.Credential, error) {
	if fn == nil {
		return core.Credential{}, authError("auth: credential provider func is nil", nil)
	}
	return fn(ctx, req)
}

var (
	_ core.CredentialProvider = (*StaticCredentialProvider)(nil)
	_ core.CredentialProvider = CredentialProviderFunc(nil)
)
