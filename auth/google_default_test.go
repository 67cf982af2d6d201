package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/goliatone/go-exclusionlist/core"
)

func TestDefaultCredentialProvider_PassesScopesAndMapsToken(t *testing.T) {
	expiry := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	var gotScopes []string
	provider := NewDefaultCredentialProvider(DefaultCredentialProviderConfig{
		Finder: func(_ context.Context, scopes ...string) (*google.Credentials, error) {
			gotScopes = append([]string(nil), scopes...)
			return &google.Credentials{
				ProjectID: "exclusions-prod",
				TokenSource: oauth2.StaticTokenSource(&oauth2.Token{
					AccessToken: "ya29.token",
					TokenType:   "Bearer",
					Expiry:      expiry,
				}),
			}, nil
		},
	})

	cred, err := provider.Credential(context.Background(), core.CredentialRequest{
		Scopes: []string{" " + core.DriveReadOnlyScope, core.DriveReadOnlyScope},
	})
	if err != nil {
		t.Fatalf("credential: %v", err)
	}
	if len(gotScopes) != 1 || gotScopes[0] != core.DriveReadOnlyScope {
		t.Fatalf("expected normalized read-only scope, got %#v", gotScopes)
	}
	if cred.AccessToken != "ya29.token" {
		t.Fatalf("unexpected access token %q", cred.AccessToken)
	}
	if cred.TokenType != "Bearer" {
		t.Fatalf("unexpected token type %q", cred.TokenType)
	}
	if cred.ExpiresAt == nil || !cred.ExpiresAt.Equal(expiry) {
		t.Fatalf("unexpected expiry %#v", cred.ExpiresAt)
	}
	if cred.Metadata["project_id"] != "exclusions-prod" {
		t.Fatalf("expected project id metadata, got %#v", cred.Metadata)
	}
}

func TestDefaultCredentialProvider_CallsFinderOnEveryRequest(t *testing.T) {
	calls := 0
	provider := NewDefaultCredentialProvider(DefaultCredentialProviderConfig{
		Finder: func(context.Context, ...string) (*google.Credentials, error) {
			calls++
			return &google.Credentials{
				TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}),
			}, nil
		},
	})
	req := core.CredentialRequest{Scopes: []string{core.DriveReadOnlyScope}}
	for i := 0; i < 2; i++ {
		if _, err := provider.Credential(context.Background(), req); err != nil {
			t.Fatalf("credential %d: %v", i, err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected fresh discovery per call, got %d finder calls", calls)
	}
}

func TestDefaultCredentialProvider_FinderFailureIsAuthError(t *testing.T) {
	provider := NewDefaultCredentialProvider(DefaultCredentialProviderConfig{
		Finder: func(context.Context, ...string) (*google.Credentials, error) {
			return nil, errors.New("google: could not find default credentials")
		},
	})

	_, err := provider.Credential(context.Background(), core.CredentialRequest{
		Scopes: []string{core.DriveReadOnlyScope},
	})
	if err == nil {
		t.Fatalf("expected finder error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryAuth {
		t.Fatalf("expected auth category, got %q", rich.Category)
	}
	if rich.TextCode != core.ServiceErrorAuthFailed {
		t.Fatalf("expected %q text code, got %q", core.ServiceErrorAuthFailed, rich.TextCode)
	}
}

func TestDefaultCredentialProvider_RequiresScopes(t *testing.T) {
	called := false
	provider := NewDefaultCredentialProvider(DefaultCredentialProviderConfig{
		Finder: func(context.Context, ...string) (*google.Credentials, error) {
			called = true
			return nil, nil
		},
	})
	if _, err := provider.Credential(context.Background(), core.CredentialRequest{Scopes: []string{" "}}); err == nil {
		t.Fatalf("expected missing scope error")
	}
	if called {
		t.Fatalf("expected finder not to be called without scopes")
	}
}

func TestDefaultCredentialProvider_TokenFailure(t *testing.T) {
	provider := NewDefaultCredentialProvider(DefaultCredentialProviderConfig{
		Finder: func(context.Context, ...string) (*google.Credentials, error) {
			return &google.Credentials{TokenSource: failingTokenSource{}}, nil
		},
	})
	_, err := provider.Credential(context.Background(), core.CredentialRequest{
		Scopes: []string{core.DriveReadOnlyScope},
	})
	if err == nil {
		t.Fatalf("expected token error")
	}
}

func TestTokenSourceProvider_UsesFactory(t *testing.T) {
	provider := TokenSourceProvider{
		Source: func(_ context.Context, scopes []string) (oauth2.TokenSource, error) {
			if len(scopes) != 1 || scopes[0] != core.DriveReadOnlyScope {
				t.Fatalf("unexpected scopes %#v", scopes)
			}
			return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "sa-token"}), nil
		},
	}
	cred, err := provider.Credential(context.Background(), core.CredentialRequest{
		Scopes: []string{core.DriveReadOnlyScope},
	})
	if err != nil {
		t.Fatalf("credential: %v", err)
	}
	if cred.AccessToken != "sa-token" {
		t.Fatalf("unexpected token %q", cred.AccessToken)
	}
	if cred.Metadata["auth_kind"] != AuthKindTokenSource {
		t.Fatalf("unexpected auth kind %#v", cred.Metadata["auth_kind"])
	}
}

type failingTokenSource struct{}

func (failingTokenSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("oauth2: cannot fetch token: 400 invalid_grant")
}
