package devkit

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-exclusionlist/core"
)

func TestFakeTransportAdapter_ReplaysScriptsAndRecordsRequests(t *testing.T) {
	adapter := NewFakeTransportAdapter("Media",
		MediaResponse([]byte("first")),
		DriveErrorResponse(404, "notFound", "File not found: x."),
	)
	if adapter.Kind() != "media" {
		t.Fatalf("expected normalized kind, got %q", adapter.Kind())
	}

	first, err := adapter.Do(context.Background(), core.TransportRequest{URL: "https://example.test/a", Headers: map[string]string{"A": "1"}})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if string(first.Body) != "first" {
		t.Fatalf("unexpected first body %q", first.Body)
	}
	for i := 0; i < 2; i++ {
		res, _ := adapter.Do(context.Background(), core.TransportRequest{URL: "https://example.test/b"})
		if res.StatusCode != 404 {
			t.Fatalf("expected last script to repeat, got %d", res.StatusCode)
		}
	}

	requests := adapter.Requests()
	if len(requests) != 3 {
		t.Fatalf("expected 3 recorded requests, got %d", len(requests))
	}
	requests[0].Headers["A"] = "mutated"
	if adapter.Requests()[0].Headers["A"] != "1" {
		t.Fatalf("expected recorded requests to be copies")
	}
}

func TestFakeCredentialProvider_RecordsScopes(t *testing.T) {
	provider := NewFakeCredentialProvider("token")
	cred, err := provider.Credential(context.Background(), core.CredentialRequest{Scopes: []string{"s1"}})
	if err != nil {
		t.Fatalf("credential: %v", err)
	}
	if cred.AccessToken != "token" || len(cred.Scopes) != 1 {
		t.Fatalf("unexpected credential %#v", cred)
	}
	provider.Err = errors.New("denied")
	if _, err := provider.Credential(context.Background(), core.CredentialRequest{}); err == nil {
		t.Fatalf("expected scripted error")
	}
	if provider.Calls() != 2 {
		t.Fatalf("expected 2 calls, got %d", provider.Calls())
	}
}

func TestFakeCredentialProvider_ReturnsConfiguredCredential(t *testing.T) {
	provider := &FakeCredentialProvider{Cred: core.Credential{TokenType: "Bearer", AccessToken: "configured"}}
	cred, err := provider.Credential(context.Background(), core.CredentialRequest{Scopes: []string{"s1", "s2"}})
	if err != nil {
		t.Fatalf("credential: %v", err)
	}
	if cred.AccessToken != "configured" || cred.TokenType != "Bearer" {
		t.Fatalf("unexpected credential %#v", cred)
	}
	if len(cred.Scopes) != 2 || cred.Scopes[1] != "s2" {
		t.Fatalf("expected requested scopes on credential, got %#v", cred.Scopes)
	}
	if len(provider.Cred.Scopes) != 0 {
		t.Fatalf("expected configured credential to stay untouched")
	}
}

func TestFakeFileSource_ServesKnownFiles(t *testing.T) {
	source := NewFakeFileSource(map[string][]byte{"abc123": []byte("user1,user2")})
	source.Err = errors.New("missing")

	payload, err := source.Download(context.Background(), core.FileRequest{FileID: "abc123"}, core.Credential{})
	if err != nil || string(payload) != "user1,user2" {
		t.Fatalf("unexpected result %q, %v", payload, err)
	}
	if _, err := source.Download(context.Background(), core.FileRequest{FileID: "nope"}, core.Credential{}); err == nil {
		t.Fatalf("expected error for unknown file")
	}
	if source.Calls() != 2 {
		t.Fatalf("expected 2 calls, got %d", source.Calls())
	}
}
