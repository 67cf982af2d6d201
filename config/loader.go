// Package config loads raw fetcher configuration from a YAML file, the
// environment and explicit overrides, in that order of precedence.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-exclusionlist/core"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const DefaultEnvPrefix = "EXCLUSIONLIST_"

// KoanfLoader implements core.RawConfigLoader.
//
// Environment keys drop the prefix, use a double underscore as the nesting
// separator and are lowercased: EXCLUSIONLIST_DRIVE__BASE_URL sets
// drive.base_url. List values are comma separated.
type KoanfLoader struct {
	Path      string
	EnvPrefix string
	Overrides map[string]any
	ReadFile  func(path string) ([]byte, error)
}

func NewKoanfLoader(path string) *KoanfLoader {
	return &KoanfLoader{Path: path, EnvPrefix: DefaultEnvPrefix}
}

func (l *KoanfLoader) LoadRaw(_ context.Context) (map[string]any, error) {
	parser := koanf.New(".")

	if l == nil {
		return parser.Raw(), nil
	}

	if path := strings.TrimSpace(l.Path); path != "" {
		readFile := l.ReadFile
		if readFile == nil {
			readFile = os.ReadFile
		}
		content, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := parser.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: parse yaml %s: %w", path, err)
		}
	}

	if prefix := l.EnvPrefix; prefix != "" {
		provider := env.Provider(".", env.Opt{
			Prefix: prefix,
			TransformFunc: func(key, val string) (string, any) {
				normalized := strings.ToLower(strings.TrimPrefix(key, prefix))
				normalized = strings.ReplaceAll(normalized, "__", ".")
				return normalized, val
			},
		})
		if err := parser.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("config: load environment: %w", err)
		}
	}

	if len(l.Overrides) > 0 {
		if err := parser.Load(confmap.Provider(l.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("config: load overrides: %w", err)
		}
	}

	if err := normalizeTypes(parser); err != nil {
		return nil, err
	}
	return parser.Raw(), nil
}

// normalizeTypes converts string values coming from env or YAML into the
// types expected by core.Config.
func normalizeTypes(parser *koanf.Koanf) error {
	if raw, ok := parser.Get("drive.scopes").(string); ok {
		if err := parser.Set("drive.scopes", splitList(raw)); err != nil {
			return err
		}
	}
	if parser.Exists("drive.request_timeout") {
		timeout, err := parseTimeout(parser.Get("drive.request_timeout"))
		if err != nil {
			return err
		}
		if err := parser.Set("drive.request_timeout", timeout); err != nil {
			return err
		}
	}
	if raw, ok := parser.Get("drive.max_response_bytes").(string); ok {
		parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("config: invalid drive.max_response_bytes %q: %w", raw, err)
		}
		if err := parser.Set("drive.max_response_bytes", parsed); err != nil {
			return err
		}
	}
	return nil
}

// parseTimeout accepts Go duration strings and bare numbers of seconds.
func parseTimeout(value any) (time.Duration, error) {
	switch typed := value.(type) {
	case time.Duration:
		return typed, nil
	case int:
		return time.Duration(typed) * time.Second, nil
	case int64:
		return time.Duration(typed) * time.Second, nil
	case uint64:
		return time.Duration(typed) * time.Second, nil
	case float64:
		return time.Duration(typed * float64(time.Second)), nil
	case string:
		trimmed := strings.TrimSpace(typed)
		if seconds, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return time.Duration(seconds * float64(time.Second)), nil
		}
		parsed, err := time.ParseDuration(trimmed)
		if err != nil {
			return 0, fmt.Errorf("config: invalid drive.request_timeout %q: %w", typed, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("config: unsupported drive.request_timeout type %T", value)
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var _ core.RawConfigLoader = (*KoanfLoader)(nil)
