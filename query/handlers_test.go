package query

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-exclusionlist/core"
)

type stubReader struct {
	fetchFn func(ctx context.Context, fileID string) ([]byte, error)
	calls   int
}

func (s *stubReader) Fetch(ctx context.Context, fileID string) ([]byte, error) {
	s.calls++
	return s.fetchFn(ctx, fileID)
}

func TestFetchExclusionListQuery_QueryDelegates(t *testing.T) {
	reader := &stubReader{
		fetchFn: func(_ context.Context, fileID string) ([]byte, error) {
			if fileID != "abc123" {
				t.Fatalf("unexpected file id %q", fileID)
			}
			return []byte("user1,user2"), nil
		},
	}

	payload, err := NewFetchExclusionListQuery(reader).Query(context.Background(), FetchExclusionListMessage{FileID: "abc123"})
	if err != nil {
		t.Fatalf("query exclusion list: %v", err)
	}
	if string(payload) != "user1,user2" {
		t.Fatalf("unexpected payload %q", payload)
	}
	if reader.calls != 1 {
		t.Fatalf("expected one reader call, got %d", reader.calls)
	}
}

func TestFetchExclusionListQuery_ReturnsReaderErrorUnchanged(t *testing.T) {
	retrievalErr := &core.RetrievalError{Cause: core.CauseFetchFailure, FileID: "x", Err: errors.New("boom")}
	reader := &stubReader{
		fetchFn: func(context.Context, string) ([]byte, error) {
			return nil, retrievalErr
		},
	}

	_, err := NewFetchExclusionListQuery(reader).Query(context.Background(), FetchExclusionListMessage{FileID: "x"})
	if !core.IsFetchFailure(err) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
}

func TestFetchExclusionListQuery_InvalidMessageSkipsReader(t *testing.T) {
	reader := &stubReader{
		fetchFn: func(context.Context, string) ([]byte, error) {
			t.Fatalf("reader should not be called")
			return nil, nil
		},
	}
	if _, err := NewFetchExclusionListQuery(reader).Query(context.Background(), FetchExclusionListMessage{FileID: " "}); err == nil {
		t.Fatalf("expected validation error")
	}
	if reader.calls != 0 {
		t.Fatalf("expected no reader calls, got %d", reader.calls)
	}
}

func TestFetchExclusionListMessage_Type(t *testing.T) {
	if (FetchExclusionListMessage{}).Type() != "exclusionlist.query.fetch" {
		t.Fatalf("unexpected message type")
	}
}
