package query

import (
	gocmd "github.com/goliatone/go-command"
)

var _ gocmd.Querier[FetchExclusionListMessage, []byte] = (*FetchExclusionListQuery)(nil)
