package drive

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-exclusionlist/core"
	"github.com/goliatone/go-exclusionlist/transport"
)

const ProviderID = "google_drive"

type Config struct {
	BaseURL          string
	RequestTimeout   time.Duration
	MaxResponseBytes int64
}

// Source implements core.FileSource against files.get with alt=media.
type Source struct {
	baseURL          string
	adapter          core.TransportAdapter
	signer           core.Signer
	requestTimeout   time.Duration
	maxResponseBytes int64
}

type Option func(*Source)

func WithSigner(signer core.Signer) Option {
	return func(s *Source) {
		if signer != nil {
			s.signer = signer
		}
	}
}

func NewSource(cfg Config, adapter core.TransportAdapter, opts ...Option) (*Source, error) {
	if adapter == nil {
		return nil, fmt.Errorf("drive: transport adapter is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = core.DefaultDriveBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("drive: invalid base url %q", baseURL)
	}
	source := &Source{
		baseURL:          baseURL,
		adapter:          adapter,
		signer:           core.BearerTokenSigner{},
		requestTimeout:   cfg.RequestTimeout,
		maxResponseBytes: cfg.MaxResponseBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(source)
		}
	}
	return source, nil
}

// Factory builds a Source from the fetcher configuration, resolving the
// transport adapter by the configured kind.
func Factory(cfg core.Config, resolver core.TransportResolver) (core.FileSource, error) {
	if resolver == nil {
		resolver = transport.NewDefaultRegistry()
	}
	kind := strings.TrimSpace(cfg.Drive.Transport)
	if kind == "" {
		kind = core.DefaultTransportKind
	}
	adapter, err := resolver.Build(kind, map[string]any{
		"timeout":            cfg.Drive.RequestTimeout,
		"max_response_bytes": cfg.Drive.MaxResponseBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("drive: resolve transport %q: %w", kind, err)
	}
	return NewSource(Config{
		BaseURL:          cfg.Drive.BaseURL,
		RequestTimeout:   cfg.Drive.RequestTimeout,
		MaxResponseBytes: cfg.Drive.MaxResponseBytes,
	}, adapter)
}

func (s *Source) Download(ctx context.Context, req core.FileRequest, cred core.Credential) ([]byte, error) {
	if s == nil || s.adapter == nil {
		return nil, goerrors.New("drive: source is not configured", goerrors.CategoryInternal).
			WithCode(http.StatusInternalServerError).
			WithTextCode(core.ServiceErrorInternal)
	}
	if req.FileID == "" {
		return nil, goerrors.New("drive: file id is required", goerrors.CategoryBadInput).
			WithCode(http.StatusBadRequest).
			WithTextCode(core.ServiceErrorBadInput)
	}

	metadata := map[string]any{
		"provider": ProviderID,
		"file_id":  req.FileID,
	}
	for key, value := range req.Metadata {
		metadata[key] = value
	}
	if req.RequestID != "" {
		metadata["request_id"] = req.RequestID
	}
	transportReq := core.TransportRequest{
		Method: http.MethodGet,
		URL:    s.fileURL(req.FileID),
		Query: map[string]string{
			"alt":               "media",
			"supportsAllDrives": "true",
		},
		Headers:              map[string]string{},
		Metadata:             metadata,
		Timeout:              s.requestTimeout,
		MaxResponseBodyBytes: s.maxResponseBytes,
	}
	if err := s.signer.Sign(ctx, &transportReq, cred); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "drive: sign request").
			WithCode(http.StatusUnauthorized).
			WithTextCode(core.ServiceErrorAuthFailed)
	}

	res, err := s.adapter.Do(ctx, transportReq)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, responseError(req.FileID, res)
	}
	return res.Body, nil
}

func (s *Source) fileURL(fileID string) string {
	return s.baseURL + "/files/" + url.PathEscape(fileID)
}

var _ core.FileSource = (*Source)(nil)
