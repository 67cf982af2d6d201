package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ ExclusionListReader = (*Fetcher)(nil)
	_ Signer              = BearerTokenSigner{}
	_ MetricsRecorder     = NopMetricsRecorder{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
