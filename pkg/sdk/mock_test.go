package jobmatch

import (
	"context"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/db"
	dommatch "github.com/kailas-cloud/jobmatch/internal/domain/match"
)

// --- Analyzer mock ---

type mockAnalyzer struct {
	analyzeFn func(ctx context.Context, job, resume string, topN int) (dommatch.Result, error)
}

func (m *mockAnalyzer) Analyze(ctx context.Context, job, resume string, topN int) (dommatch.Result, error) {
	return m.analyzeFn(ctx, job, resume, topN)
}

// --- db.Store mock ---

type mockStore struct {
	data    map[string][]byte
	pingErr error
	closed  bool
}

var _ db.Store = (*mockStore)(nil)

func newMockStore() *mockStore { return &mockStore{data: map[string][]byte{}} }

func (m *mockStore) Ping(context.Context) error { return m.pingErr }

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockStore) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockStore) Close() { m.closed = true }

func (m *mockStore) WaitForReady(context.Context, time.Duration) error { return nil }
