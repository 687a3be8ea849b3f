package matchcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/db"
	dommatch "github.com/kailas-cloud/jobmatch/internal/domain/match"
)

type mockAnalyzer struct {
	result dommatch.Result
	err    error
	calls  int
}

func (m *mockAnalyzer) Analyze(_ context.Context, _, _ string, _ int) (dommatch.Result, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleted []string
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockKVStore) Del(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func newTestCachedAnalyzer(t *testing.T, inner *mockAnalyzer) (*CachedAnalyzer, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	ca := New(inner, ms, time.Hour, "en/20/100", nil, zap.NewNop())
	return ca, ms
}
