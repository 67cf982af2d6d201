package query

import (
	"context"

	"github.com/goliatone/go-exclusionlist/core"
)

type FetchExclusionListQuery struct {
	reader core.ExclusionListReader
}

func NewFetchExclusionListQuery(reader core.ExclusionListReader) *FetchExclusionListQuery {
	return &FetchExclusionListQuery{reader: reader}
}

// Query returns the raw list payload. Reader errors are returned unchanged so
// callers can still inspect the *core.RetrievalError.
func (q *FetchExclusionListQuery) Query(ctx context.Context, msg FetchExclusionListMessage) ([]byte, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: exclusion list reader is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return q.reader.Fetch(ctx, msg.FileID)
}
