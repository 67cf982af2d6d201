package core

import "testing"

func TestRedactSensitiveMapPreservesTraceabilityMetadata(t *testing.T) {
	redacted := RedactSensitiveMap(map[string]any{
		"file_id":       "abc123",
		"request_id":    "req_1",
		"token_type":    "Bearer",
		"access_token":  "secret-token",
		"authorization": "Bearer secret-token",
		"nested":        map[string]any{"refresh_token": "refresh", "request_id": "req_nested"},
		"headers":       map[string]string{"Authorization": "Bearer x", "Accept": "*/*"},
		"events":        []any{map[string]any{"api_key": "key_1"}},
	})

	if redacted["file_id"] != "abc123" || redacted["request_id"] != "req_1" {
		t.Fatalf("expected traceability keys to remain visible, got %#v", redacted)
	}
	if redacted["token_type"] != "Bearer" {
		t.Fatalf("expected token_type to remain visible")
	}
	if redacted["access_token"] != RedactedValue || redacted["authorization"] != RedactedValue {
		t.Fatalf("expected secrets to be redacted, got %#v", redacted)
	}
	nested := redacted["nested"].(map[string]any)
	if nested["refresh_token"] != RedactedValue || nested["request_id"] != "req_nested" {
		t.Fatalf("unexpected nested redaction %#v", nested)
	}
	headers := redacted["headers"].(map[string]any)
	if headers["Authorization"] != RedactedValue || headers["Accept"] != "*/*" {
		t.Fatalf("unexpected header redaction %#v", headers)
	}
	events := redacted["events"].([]any)
	if events[0].(map[string]any)["api_key"] != RedactedValue {
		t.Fatalf("expected api_key in list to be redacted")
	}
}

func TestRedactSensitiveMapEmpty(t *testing.T) {
	if got := RedactSensitiveMap(nil); len(got) != 0 {
		t.Fatalf("expected empty map, got %#v", got)
	}
}
