package exclusionlist

import (
	"context"
	"fmt"

	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-exclusionlist/adapters/gocommand"
	"github.com/goliatone/go-exclusionlist/query"
)

type Queries struct {
	FetchExclusionList *query.FetchExclusionListQuery
}

// Facade exposes the fetcher to collaborators through go-command queries.
type Facade struct {
	reader  ExclusionListReader
	queries Queries
}

func NewFacade(reader ExclusionListReader) (*Facade, error) {
	if reader == nil {
		return nil, fmt.Errorf("exclusionlist: exclusion list reader is required")
	}
	return &Facade{
		reader: reader,
		queries: Queries{
			FetchExclusionList: query.NewFetchExclusionListQuery(reader),
		},
	}, nil
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Reader() ExclusionListReader {
	if f == nil {
		return nil
	}
	return f.reader
}

// FetchExclusionList runs the fetch query directly, without the dispatcher.
func (f *Facade) FetchExclusionList(ctx context.Context, fileID string) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("exclusionlist: facade is nil")
	}
	return f.queries.FetchExclusionList.Query(ctx, query.FetchExclusionListMessage{FileID: fileID})
}

// Register subscribes the facade queries on the go-command dispatcher and
// records them in the adapter registry.
func (f *Facade) Register(adapter *gocommand.RegistryAdapter) (commanddispatcher.Subscription, error) {
	if f == nil {
		return nil, fmt.Errorf("exclusionlist: facade is nil")
	}
	return gocommand.RegisterAndSubscribeQuery[query.FetchExclusionListMessage, []byte](
		adapter,
		f.queries.FetchExclusionList,
	)
}
