package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
	"github.com/google/uuid"
)

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

// FileSourceFactory builds the FileSource once the final configuration is
// known. The resolver is the transport registry configured on the builder.
type FileSourceFactory func(cfg Config, resolver TransportResolver) (FileSource, error)

type fetcherBuilder struct {
	runtimeConfig      Config
	logger             Logger
	loggerProvider     LoggerProvider
	metricsRecorder    MetricsRecorder
	errorMapper        ErrorMapper
	configProvider     ConfigProvider
	optionsResolver    OptionsResolver
	credentialProvider CredentialProvider
	fileSource         FileSource
	fileSourceFactory  FileSourceFactory
	transportResolver  TransportResolver
	requestIDGenerator func() string
}

type Option func(*fetcherBuilder)

func WithLogger(logger Logger) Option {
	return func(b *fetcherBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *fetcherBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *fetcherBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *fetcherBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *fetcherBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *fetcherBuilder) {
		b.optionsResolver = resolver
	}
}

func WithCredentialProvider(provider CredentialProvider) Option {
	return func(b *fetcherBuilder) {
		b.credentialProvider = provider
	}
}

// WithFileSource sets a ready FileSource; it takes precedence over any
// FileSourceFactory.
func WithFileSource(source FileSource) Option {
	return func(b *fetcherBuilder) {
		b.fileSource = source
	}
}

func WithFileSourceFactory(factory FileSourceFactory) Option {
	return func(b *fetcherBuilder) {
		b.fileSourceFactory = factory
	}
}

func WithTransportResolver(resolver TransportResolver) Option {
	return func(b *fetcherBuilder) {
		b.transportResolver = resolver
	}
}

func WithRequestIDGenerator(generator func() string) Option {
	return func(b *fetcherBuilder) {
		b.requestIDGenerator = generator
	}
}

func defaultFetcherBuilder(runtime Config) fetcherBuilder {
	loggerProvider, logger := glog.Resolve(loggerName, nil, nil)
	return fetcherBuilder{
		runtimeConfig:      runtime,
		loggerProvider:     loggerProvider,
		logger:             logger,
		metricsRecorder:    NopMetricsRecorder{},
		errorMapper:        defaultErrorMapper,
		configProvider:     NewCfgxConfigProvider(nil),
		optionsResolver:    GoOptionsResolver{},
		requestIDGenerator: uuid.NewString,
	}
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	return serviceErrorMapper(err)
}

type StaticRawConfigLoader struct {
	Values map[string]any
}

func (l StaticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = StaticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.ServiceName) != "" {
		layer["service_name"] = cfg.ServiceName
	}

	drive := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.Drive.BaseURL) != "" {
		drive["base_url"] = cfg.Drive.BaseURL
	}
	if includeZero || len(cfg.Drive.Scopes) > 0 {
		drive["scopes"] = append([]string(nil), cfg.Drive.Scopes...)
	}
	if includeZero || strings.TrimSpace(cfg.Drive.Transport) != "" {
		drive["transport"] = cfg.Drive.Transport
	}
	if includeZero || cfg.Drive.RequestTimeout > 0 {
		drive["request_timeout"] = cfg.Drive.RequestTimeout
	}
	if includeZero || cfg.Drive.MaxResponseBytes > 0 {
		drive["max_response_bytes"] = cfg.Drive.MaxResponseBytes
	}
	if len(drive) > 0 {
		layer["drive"] = drive
	}
	return layer
}
