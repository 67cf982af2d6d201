package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

const loggerName = "exclusionlist"

type Fetcher struct {
	config             Config
	logger             Logger
	loggerProvider     LoggerProvider
	metricsRecorder    MetricsRecorder
	errorMapper        ErrorMapper
	configProvider     ConfigProvider
	optionsResolver    OptionsResolver
	credentialProvider CredentialProvider
	fileSource         FileSource
	transportResolver  TransportResolver
	requestIDGenerator func() string
}

type FetcherDependencies struct {
	Logger             Logger
	LoggerProvider     LoggerProvider
	MetricsRecorder    MetricsRecorder
	ErrorMapper        ErrorMapper
	ConfigProvider     ConfigProvider
	OptionsResolver    OptionsResolver
	CredentialProvider CredentialProvider
	FileSource         FileSource
	TransportResolver  TransportResolver
}

func NewFetcher(cfg Config, opts ...Option) (*Fetcher, error) {
	builder := defaultFetcherBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve(loggerName, builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger(loggerName); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.requestIDGenerator == nil {
		builder.requestIDGenerator = func() string { return "" }
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.credentialProvider == nil {
		return nil, mapBuildError(builder.errorMapper, fmt.Errorf("core: credential provider is required"))
	}
	source := builder.fileSource
	if source == nil && builder.fileSourceFactory != nil {
		source, err = builder.fileSourceFactory(finalConfig, builder.transportResolver)
		if err != nil {
			return nil, mapBuildError(builder.errorMapper, err)
		}
	}
	if source == nil {
		return nil, mapBuildError(builder.errorMapper, fmt.Errorf("core: file source is required"))
	}

	return &Fetcher{
		config:             finalConfig,
		logger:             logger,
		loggerProvider:     provider,
		metricsRecorder:    builder.metricsRecorder,
		errorMapper:        builder.errorMapper,
		configProvider:     builder.configProvider,
		optionsResolver:    builder.optionsResolver,
		credentialProvider: builder.credentialProvider,
		fileSource:         source,
		transportResolver:  builder.transportResolver,
		requestIDGenerator: builder.requestIDGenerator,
	}, nil
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (f *Fetcher) Config() Config {
	if f == nil {
		return Config{}
	}
	return f.config
}

func (f *Fetcher) Dependencies() FetcherDependencies {
	if f == nil {
		return FetcherDependencies{}
	}
	return FetcherDependencies{
		Logger:             f.logger,
		LoggerProvider:     f.loggerProvider,
		MetricsRecorder:    f.metricsRecorder,
		ErrorMapper:        f.errorMapper,
		ConfigProvider:     f.configProvider,
		OptionsResolver:    f.optionsResolver,
		CredentialProvider: f.credentialProvider,
		FileSource:         f.fileSource,
		TransportResolver:  f.transportResolver,
	}
}

// Fetch authenticates with the configured scopes and downloads the raw content
// of fileID. Each call requests its own credential and issues exactly one file
// request; nothing is retried or cached. Failures after input validation are
// returned as *RetrievalError.
func (f *Fetcher) Fetch(ctx context.Context, fileID string) (payload []byte, err error) {
	startedAt := time.Now().UTC()
	requestID := f.nextRequestID()
	fields := map[string]any{
		"file_id":    fileID,
		"request_id": requestID,
	}
	defer func() {
		f.observeOperation(ctx, startedAt, "fetch", err, fields)
	}()

	if f == nil || f.credentialProvider == nil || f.fileSource == nil {
		err = fmt.Errorf("core: fetcher is not configured")
		return nil, err
	}
	if strings.TrimSpace(fileID) == "" {
		err = validationError("file_id", "file id is required")
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cred, credErr := f.credentialProvider.Credential(ctx, CredentialRequest{
		Scopes: NormalizeScopes(f.config.Drive.Scopes),
	})
	if credErr == nil && strings.TrimSpace(cred.AccessToken) == "" {
		credErr = fmt.Errorf("core: credential provider returned an empty access token")
	}
	if credErr != nil {
		err = &RetrievalError{Cause: CauseAuthFailure, FileID: fileID, Err: credErr}
		return nil, err
	}

	payload, fetchErr := f.fileSource.Download(ctx, FileRequest{
		FileID:    fileID,
		RequestID: requestID,
	}, cred)
	if fetchErr != nil {
		err = &RetrievalError{Cause: CauseFetchFailure, FileID: fileID, Err: fetchErr}
		return nil, err
	}
	fields["bytes"] = len(payload)
	return payload, nil
}

func (f *Fetcher) nextRequestID() string {
	if f == nil || f.requestIDGenerator == nil {
		return ""
	}
	return f.requestIDGenerator()
}
