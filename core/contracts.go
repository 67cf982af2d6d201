package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// FileID names a remote file in the storage provider. The format is provider
// defined and opaque to this package.
type FileID = string

type Credential struct {
	TokenType   string
	AccessToken string
	Scopes      []string
	ExpiresAt   *time.Time
	Metadata    map[string]any
}

type CredentialRequest struct {
	Scopes []string
}

// CredentialProvider issues a fresh credential for the requested scopes. The
// Fetcher calls it once per Fetch and never caches the result.
type CredentialProvider interface {
	Credential(ctx context.Context, req CredentialRequest) (Credential, error)
}

type FileRequest struct {
	FileID    string
	RequestID string
	Metadata  map[string]any
}

// FileSource returns the raw media content of a single file.
type FileSource interface {
	Download(ctx context.Context, req FileRequest, cred Credential) ([]byte, error)
}

type ExclusionListReader interface {
	Fetch(ctx context.Context, fileID string) ([]byte, error)
}

type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Query                map[string]string
	Metadata             map[string]any
	Timeout              time.Duration
	MaxResponseBodyBytes int64
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

type TransportResolver interface {
	Build(kind string, config map[string]any) (TransportAdapter, error)
}

type Signer interface {
	Sign(ctx context.Context, req *TransportRequest, cred Credential) error
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
