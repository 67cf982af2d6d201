package drive

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-exclusionlist/core"
	"github.com/tidwall/gjson"
)

const maxRawDetailBytes = 512

type errorDetail struct {
	Message string
	Reason  string
}

// parseErrorDetail reads Google's JSON error envelope:
// {"error":{"code":404,"message":"...","errors":[{"reason":"notFound"}]}}.
// Non-JSON bodies are returned as a truncated message.
func parseErrorDetail(body []byte) errorDetail {
	if len(body) == 0 {
		return errorDetail{}
	}
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		detail := errorDetail{
			Message: strings.TrimSpace(parsed.Get("error.message").String()),
			Reason:  strings.TrimSpace(parsed.Get("error.errors.0.reason").String()),
		}
		if detail.Reason == "" {
			detail.Reason = strings.TrimSpace(parsed.Get("error.status").String())
		}
		if detail.Message != "" || detail.Reason != "" {
			return detail
		}
	}
	raw := strings.TrimSpace(string(body))
	if len(raw) > maxRawDetailBytes {
		raw = raw[:maxRawDetailBytes] + "..."
	}
	return errorDetail{Message: raw}
}

func categoryForStatus(status int, reason string) goerrors.Category {
	switch status {
	case http.StatusBadRequest:
		return goerrors.CategoryBadInput
	case http.StatusUnauthorized:
		return goerrors.CategoryAuth
	case http.StatusForbidden:
		switch reason {
		case "rateLimitExceeded", "userRateLimitExceeded":
			return goerrors.CategoryRateLimit
		}
		return goerrors.CategoryAuthz
	case http.StatusNotFound:
		return goerrors.CategoryNotFound
	case http.StatusTooManyRequests:
		return goerrors.CategoryRateLimit
	default:
		return goerrors.CategoryExternal
	}
}

func responseError(fileID string, res core.TransportResponse) error {
	detail := parseErrorDetail(res.Body)
	category := categoryForStatus(res.StatusCode, detail.Reason)

	message := fmt.Sprintf("drive: get file %q returned status %d", fileID, res.StatusCode)
	if detail.Message != "" {
		message += ": " + detail.Message
	}
	metadata := map[string]any{
		"provider":    ProviderID,
		"file_id":     fileID,
		"status_code": res.StatusCode,
	}
	if detail.Reason != "" {
		metadata["reason"] = detail.Reason
	}
	if retryAfter := headerValue(res.Headers, "Retry-After"); retryAfter != "" {
		metadata["retry_after"] = retryAfter
	}

	err := goerrors.New(message, category).
		WithCode(core.HTTPStatusForCategory(category)).
		WithTextCode(core.TextCodeForCategory(category))
	err.WithMetadata(metadata)
	return err
}

func headerValue(headers map[string]string, name string) string {
	if value, ok := headers[name]; ok {
		return strings.TrimSpace(value)
	}
	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
