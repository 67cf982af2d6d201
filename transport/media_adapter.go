package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-exclusionlist/core"
)

const KindMedia = core.DefaultTransportKind

const defaultClientTimeout = 30 * time.Second

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MediaAdapter downloads raw file content with a single GET. The body is
// returned as received, up to MaxResponseBodyBytes; larger files fail instead
// of being truncated.
type MediaAdapter struct {
	Client               HTTPDoer
	MaxResponseBodyBytes int64
}

func NewMediaAdapter(client HTTPDoer) *MediaAdapter {
	if client == nil {
		client = &http.Client{Timeout: defaultClientTimeout}
	}
	return &MediaAdapter{
		Client:               client,
		MaxResponseBodyBytes: core.DefaultMaxResponseBytes,
	}
}

func (*MediaAdapter) Kind() string {
	return KindMedia
}

func (a *MediaAdapter) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	fields := downloadFields(req.Metadata)
	if a == nil || a.Client == nil {
		return core.TransportResponse{}, transportError(
			"transport: media adapter requires an http client",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			fields,
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if method := strings.TrimSpace(req.Method); method != "" && !strings.EqualFold(method, http.MethodGet) {
		fields["method"] = method
		return core.TransportResponse{}, transportError(
			"transport: media downloads only support GET",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			fields,
		)
	}

	target, err := downloadURL(req.URL, req.Query)
	if err != nil {
		fields["url"] = strings.TrimSpace(req.URL)
		return core.TransportResponse{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: invalid download url",
			http.StatusBadRequest,
			fields,
		)
	}

	requestCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		requestCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}
	httpReq, err := http.NewRequestWithContext(requestCtx, http.MethodGet, target, nil)
	if err != nil {
		return core.TransportResponse{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: create download request",
			http.StatusBadRequest,
			fields,
		)
	}
	httpReq.Header.Set("Accept", "*/*")
	for key, value := range req.Headers {
		if key = strings.TrimSpace(key); key != "" {
			httpReq.Header.Set(key, strings.TrimSpace(value))
		}
	}

	startedAt := time.Now()
	httpRes, err := a.Client.Do(httpReq)
	if err != nil {
		return core.TransportResponse{}, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: execute download",
			http.StatusBadGateway,
			fields,
		)
	}
	defer httpRes.Body.Close()

	limit := req.MaxResponseBodyBytes
	if limit <= 0 {
		limit = a.MaxResponseBodyBytes
	}
	if limit <= 0 {
		limit = core.DefaultMaxResponseBytes
	}
	fields["status_code"] = httpRes.StatusCode
	fields["limit_bytes"] = limit

	if httpRes.ContentLength > limit {
		fields["content_length"] = httpRes.ContentLength
		return core.TransportResponse{}, bodyTooLarge(limit, fields)
	}
	payload, err := io.ReadAll(io.LimitReader(httpRes.Body, limit+1))
	if err != nil {
		return core.TransportResponse{}, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: read download body",
			http.StatusBadGateway,
			fields,
		)
	}
	if int64(len(payload)) > limit {
		return core.TransportResponse{}, bodyTooLarge(limit, fields)
	}

	metadata := map[string]any{
		"kind":        KindMedia,
		"duration_ms": time.Since(startedAt).Milliseconds(),
		"bytes":       len(payload),
	}
	if contentType := httpRes.Header.Get("Content-Type"); contentType != "" {
		metadata["content_type"] = contentType
	}
	if requestID, ok := req.Metadata["request_id"]; ok {
		metadata["request_id"] = requestID
	}
	return core.TransportResponse{
		StatusCode: httpRes.StatusCode,
		Headers:    flattenHeaders(httpRes.Header),
		Body:       payload,
		Metadata:   metadata,
	}, nil
}

func bodyTooLarge(limit int64, fields map[string]any) error {
	return transportError(
		fmt.Sprintf("transport: response body exceeds limit of %d bytes", limit),
		goerrors.CategoryExternal,
		http.StatusBadGateway,
		fields,
	)
}

func downloadURL(raw string, query map[string]string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("url %q must be absolute", raw)
	}
	values := parsed.Query()
	for key, value := range query {
		if key = strings.TrimSpace(key); key != "" {
			values.Set(key, value)
		}
	}
	parsed.RawQuery = values.Encode()
	return parsed.String(), nil
}

// downloadFields seeds error metadata with the identifiers a caller needs to
// correlate a failed download.
func downloadFields(metadata map[string]any) map[string]any {
	fields := map[string]any{"adapter": KindMedia}
	for _, key := range []string{"provider", "file_id", "request_id"} {
		if value, ok := metadata[key]; ok {
			fields[key] = value
		}
	}
	return fields
}

func flattenHeaders(headers http.Header) map[string]string {
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		flat[key] = strings.Join(values, ",")
	}
	return flat
}

var _ core.TransportAdapter = (*MediaAdapter)(nil)
