package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultDriveBaseURL     = "https://www.googleapis.com/drive/v3"
	DriveReadOnlyScope      = "https://www.googleapis.com/auth/drive.readonly"
	DefaultTransportKind    = "media"
	DefaultMaxResponseBytes = int64(10 << 20) // 10 MiB
)

type DriveConfig struct {
	BaseURL          string        `koanf:"base_url" mapstructure:"base_url"`
	Scopes           []string      `koanf:"scopes" mapstructure:"scopes"`
	Transport        string        `koanf:"transport" mapstructure:"transport"`
	RequestTimeout   time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
	MaxResponseBytes int64         `koanf:"max_response_bytes" mapstructure:"max_response_bytes"`
}

type Config struct {
	ServiceName string      `koanf:"service_name" mapstructure:"service_name"`
	Drive       DriveConfig `koanf:"drive" mapstructure:"drive"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "exclusionlist",
		Drive: DriveConfig{
			BaseURL:          DefaultDriveBaseURL,
			Scopes:           []string{DriveReadOnlyScope},
			Transport:        DefaultTransportKind,
			MaxResponseBytes: DefaultMaxResponseBytes,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	return c.Drive.Validate()
}

func (c DriveConfig) Validate() error {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		return fmt.Errorf("core: drive.base_url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("core: drive.base_url is invalid: %q", base)
	}
	if len(NormalizeScopes(c.Scopes)) == 0 {
		return fmt.Errorf("core: drive.scopes requires at least one scope")
	}
	if strings.TrimSpace(c.Transport) == "" {
		return fmt.Errorf("core: drive.transport is required")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("core: drive.request_timeout must be >= 0")
	}
	if c.MaxResponseBytes < 0 {
		return fmt.Errorf("core: drive.max_response_bytes must be >= 0")
	}
	return nil
}

// NormalizeScopes trims, drops empty entries and removes duplicates while
// keeping the original order.
func NormalizeScopes(scopes []string) []string {
	if len(scopes) == 0 {
		return []string{}
	}
	seen := map[string]struct{}{}
	result := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		trimmed := strings.TrimSpace(scope)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
