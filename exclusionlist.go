package exclusionlist

import (
	"github.com/goliatone/go-exclusionlist/auth"
	"github.com/goliatone/go-exclusionlist/core"
	"github.com/goliatone/go-exclusionlist/providers/google/drive"
	"github.com/goliatone/go-exclusionlist/transport"
)

type Config = core.Config

type DriveConfig = core.DriveConfig

type Option = core.Option

type Fetcher = core.Fetcher

type FetcherDependencies = core.FetcherDependencies

type Credential = core.Credential
type CredentialRequest = core.CredentialRequest
type CredentialProvider = core.CredentialProvider
type FileRequest = core.FileRequest
type FileSource = core.FileSource
type ExclusionListReader = core.ExclusionListReader
type MetricsRecorder = core.MetricsRecorder

type RetrievalError = core.RetrievalError
type FailureCause = core.FailureCause

const (
	CauseAuthFailure  = core.CauseAuthFailure
	CauseFetchFailure = core.CauseFetchFailure
)

var (
	WithLogger             = core.WithLogger
	WithLoggerProvider     = core.WithLoggerProvider
	WithMetricsRecorder    = core.WithMetricsRecorder
	WithErrorMapper        = core.WithErrorMapper
	WithConfigProvider     = core.WithConfigProvider
	WithOptionsResolver    = core.WithOptionsResolver
	WithCredentialProvider = core.WithCredentialProvider
	WithFileSource         = core.WithFileSource
	WithFileSourceFactory  = core.WithFileSourceFactory
	WithTransportResolver  = core.WithTransportResolver
	WithRequestIDGenerator = core.WithRequestIDGenerator

	IsAuthFailure    = core.IsAuthFailure
	IsFetchFailure   = core.IsFetchFailure
	AsRetrievalError = core.AsRetrievalError
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// NewFetcher builds a fetcher backed by Google Drive. Unless overridden by
// opts it authenticates with application default credentials and downloads
// through the default transport registry.
func NewFetcher(cfg Config, opts ...Option) (*Fetcher, error) {
	defaults := []Option{
		core.WithCredentialProvider(auth.NewDefaultCredentialProvider(auth.DefaultCredentialProviderConfig{})),
		core.WithTransportResolver(transport.NewDefaultRegistry()),
		core.WithFileSourceFactory(DriveSource),
	}
	return core.NewFetcher(cfg, append(defaults, opts...)...)
}

// DriveSource is the default core.FileSourceFactory.
func DriveSource(cfg Config, resolver core.TransportResolver) (FileSource, error) {
	return drive.Factory(cfg, resolver)
}
