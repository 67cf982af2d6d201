package query

import (
	"strings"
)

const TypeFetchExclusionList = "exclusionlist.query.fetch"

type FetchExclusionListMessage struct {
	FileID string
}

func (FetchExclusionListMessage) Type() string { return TypeFetchExclusionList }

func (m FetchExclusionListMessage) Validate() error {
	if strings.TrimSpace(m.FileID) == "" {
		return queryValidationError("file_id", "file id is required")
	}
	return nil
}
