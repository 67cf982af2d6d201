package devkit

import (
	"context"
	"sync"

	"github.com/goliatone/go-exclusionlist/core"
)

// FakeCredentialProvider returns a fixed credential or error and records
// every request.
type FakeCredentialProvider struct {
	mu       sync.Mutex
	Cred     core.Credential
	Err      error
	requests []core.CredentialRequest
}

func NewFakeCredentialProvider(token string) *FakeCredentialProvider {
	return &FakeCredentialProvider{Cred: core.Credential{
		TokenType:   "Bearer",
		AccessToken: token,
	}}
}

func (p *FakeCredentialProvider) Credential(_ context.Context, req core.CredentialRequest) (core.Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, core.CredentialRequest{Scopes: append([]string(nil), req.Scopes...)})
	if p.Err != nil {
		return core.Credential{}, p.Err
	}
	cred := p.Cred
	cred.Scopes = append([]string(nil), req.Scopes...)
	return cred, nil
}

func (p *FakeCredentialProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

func (p *FakeCredentialProvider) Requests() []core.CredentialRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]core.CredentialRequest(nil), p.requests...)
}

// FakeFileSource serves payloads keyed by file id. Unknown ids return Err,
// or a nil payload when Err is unset.
type FakeFileSource struct {
	mu       sync.Mutex
	Files    map[string][]byte
	Err      error
	requests []core.FileRequest
}

func NewFakeFileSource(files map[string][]byte) *FakeFileSource {
	return &FakeFileSource{Files: files}
}

func (s *FakeFileSource) Download(_ context.Context, req core.FileRequest, _ core.Credential) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if payload, ok := s.Files[req.FileID]; ok {
		return append([]byte(nil), payload...), nil
	}
	return nil, s.Err
}

func (s *FakeFileSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *FakeFileSource) Requests() []core.FileRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.FileRequest(nil), s.requests...)
}

var (
	_ core.CredentialProvider = (*FakeCredentialProvider)(nil)
	_ core.FileSource         = (*FakeFileSource)(nil)
)
