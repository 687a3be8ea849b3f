package matchcache

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/db"
	"github.com/kailas-cloud/jobmatch/internal/domain"
	dommatch "github.com/kailas-cloud/jobmatch/internal/domain/match"
)

func TestAnalyze_CacheMiss(t *testing.T) {
	inner := &mockAnalyzer{result: dommatch.NewResult(0.42, []string{"python"}, []string{"django"})}
	ca, ms := newTestCachedAnalyzer(t, inner)

	var stored []byte
	var storedTTL time.Duration
	ms.setFn = func(_ context.Context, key string, value []byte, ttl time.Duration) error {
		if !strings.HasPrefix(key, "jobmatch:match_cache:") {
			t.Errorf("unexpected key %q", key)
		}
		stored = value
		storedTTL = ttl
		return nil
	}

	res, err := ca.Analyze(context.Background(), "job", "resume", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Similarity() != 0.42 {
		t.Errorf("similarity = %v", res.Similarity())
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
	if stored == nil {
		t.Fatal("expected result to be stored")
	}
	if storedTTL != time.Hour {
		t.Errorf("ttl = %v, want 1h", storedTTL)
	}
}

func TestAnalyze_CacheHit(t *testing.T) {
	inner := &mockAnalyzer{}
	ca, ms := newTestCachedAnalyzer(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte(`{"similarity":0.9,"found":["go","rust"],"missing":["java"]}`), nil
	}

	res, err := ca.Analyze(context.Background(), "job", "resume", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("inner analyzer must not run on a hit, ran %d times", inner.calls)
	}
	if res.Similarity() != 0.9 {
		t.Errorf("similarity = %v", res.Similarity())
	}
	if !reflect.DeepEqual(res.FoundTerms(), []string{"go", "rust"}) ||
		!reflect.DeepEqual(res.MissingTerms(), []string{"java"}) {
		t.Errorf("unexpected terms: %v / %v", res.FoundTerms(), res.MissingTerms())
	}
}

func TestAnalyze_RoundTripThroughStore(t *testing.T) {
	inner := &mockAnalyzer{result: dommatch.NewResult(0.3, nil, []string{"kafka"})}
	ca, ms := newTestCachedAnalyzer(t, inner)

	data := map[string][]byte{}
	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		if v, ok := data[key]; ok {
			return v, nil
		}
		return nil, db.ErrKeyNotFound
	}
	ms.setFn = func(_ context.Context, key string, value []byte, _ time.Duration) error {
		data[key] = value
		return nil
	}

	first, err := ca.Analyze(context.Background(), "job", "resume", 0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ca.Analyze(context.Background(), "job", "resume", 0)
	if err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("expected a single computation, got %d", inner.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
	if second.FoundTerms() == nil {
		t.Error("cached empty list must decode as empty slice")
	}
}

func TestAnalyze_InputErrorNotCached(t *testing.T) {
	inputErr := domain.NewInputError("resume")
	inner := &mockAnalyzer{err: inputErr}
	ca, ms := newTestCachedAnalyzer(t, inner)

	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		t.Error("errors must not be cached")
		return nil
	}

	_, err := ca.Analyze(context.Background(), "job", " ", 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalyze_InnerErrorPassedThrough(t *testing.T) {
	boom := errors.New("boom")
	ca, _ := newTestCachedAnalyzer(t, &mockAnalyzer{err: boom})

	_, err := ca.Analyze(context.Background(), "job", "resume", 0)
	if err != boom { //nolint:errorlint // identity check
		t.Fatalf("expected boom unchanged, got %v", err)
	}
}

func TestAnalyze_StoreFailuresDegradeToMiss(t *testing.T) {
	inner := &mockAnalyzer{result: dommatch.NewResult(0.1, nil, nil)}
	ca, ms := newTestCachedAnalyzer(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.New("connection reset")
	}
	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		return errors.New("connection reset")
	}

	res, err := ca.Analyze(context.Background(), "job", "resume", 0)
	if err != nil {
		t.Fatalf("store errors must not fail the request: %v", err)
	}
	if res.Similarity() != 0.1 {
		t.Errorf("similarity = %v", res.Similarity())
	}
}

func TestAnalyze_CorruptEntryIsMiss(t *testing.T) {
	inner := &mockAnalyzer{result: dommatch.NewResult(0.2, nil, nil)}
	ca, ms := newTestCachedAnalyzer(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte("not json"), nil
	}

	if _, err := ca.Analyze(context.Background(), "job", "resume", 0); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("expected recomputation on corrupt entry, got %d calls", inner.calls)
	}
	if len(ms.deleted) != 1 || !strings.HasPrefix(ms.deleted[0], cacheKeyPrefix) {
		t.Errorf("expected the corrupt entry to be deleted, got %v", ms.deleted)
	}
}

func TestCacheKey_DistinguishesInputs(t *testing.T) {
	ca, _ := newTestCachedAnalyzer(t, &mockAnalyzer{})
	other := New(&mockAnalyzer{}, &mockKVStore{}, time.Hour, "en/10/100", nil, zap.NewNop())

	keys := map[string]string{
		"base":        ca.cacheKey("ab", "c", 20),
		"shifted":     ca.cacheKey("a", "bc", 20),
		"topN":        ca.cacheKey("ab", "c", 10),
		"fingerprint": other.cacheKey("ab", "c", 20),
	}
	seen := map[string]string{}
	for name, k := range keys {
		if prev, ok := seen[k]; ok {
			t.Errorf("%s and %s share cache key %s", name, prev, k)
		}
		seen[k] = name
	}
	if ca.cacheKey("ab", "c", 20) != keys["base"] {
		t.Error("cache key must be deterministic")
	}
}

func TestAnalyze_CountsHitsAndMisses(t *testing.T) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_match_cache_total"}, []string{"result"})
	ms := &mockKVStore{}
	ca := New(&mockAnalyzer{result: dommatch.NewResult(0, nil, nil)}, ms, 0, "fp", counter, zap.NewNop())

	if _, err := ca.Analyze(context.Background(), "job", "resume", 0); err != nil {
		t.Fatal(err)
	}
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte(`{"similarity":0,"found":[],"missing":[]}`), nil
	}
	if _, err := ca.Analyze(context.Background(), "job", "resume", 0); err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(counter.WithLabelValues("miss")); got != 1 {
		t.Errorf("miss = %v, want 1", got)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("hit")); got != 1 {
		t.Errorf("hit = %v, want 1", got)
	}
}
