// Package matchcache memoizes match results in a key-value store.
//
// Matching is a pure function of its inputs and settings, so a cached entry is
// always identical to a fresh computation. Store failures degrade to a cache
// miss and are only logged.
package matchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/db"
	"github.com/kailas-cloud/jobmatch/internal/domain"
	dommatch "github.com/kailas-cloud/jobmatch/internal/domain/match"
)

var cacheKeyPrefix = domain.KeyPrefix + "match_cache:"

// store is the consumer interface for the match cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CachedAnalyzer caches match results in a key-value store.
type CachedAnalyzer struct {
	inner       dommatch.Analyzer
	store       store
	ttl         time.Duration
	fingerprint string
	cacheTotal  *prometheus.CounterVec
	logger      *zap.Logger
}

var _ dommatch.Analyzer = (*CachedAnalyzer)(nil)

// New creates a caching decorator.
// fingerprint identifies the matcher settings (stop words, limits, tie break) so
// a config change never serves results computed under other settings.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner dommatch.Analyzer,
	s store,
	ttl time.Duration,
	fingerprint string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedAnalyzer {
	return &CachedAnalyzer{
		inner:       inner,
		store:       s,
		ttl:         ttl,
		fingerprint: fingerprint,
		cacheTotal:  cacheTotal,
		logger:      logger,
	}
}

// entry is the cached wire form of a match result.
type entry struct {
	Similarity float64  `json:"similarity"`
	Found      []string `json:"found"`
	Missing    []string `json:"missing"`
}

// Analyze returns a cached result or calls the inner analyzer.
// Errors, including input errors, are never cached and are returned unwrapped.
func (c *CachedAnalyzer) Analyze(
	ctx context.Context, jobDescription, resume string, topN int,
) (dommatch.Result, error) {
	key := c.cacheKey(jobDescription, resume, topN)

	if res, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return res, nil
	}

	c.incCache("miss")

	res, err := c.inner.Analyze(ctx, jobDescription, resume, topN)
	if err != nil {
		return dommatch.Result{}, err
	}

	c.putToCache(ctx, key, res)
	return res, nil
}

func (c *CachedAnalyzer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes length-prefixed fields so no two distinct inputs collide by concatenation.
func (c *CachedAnalyzer) cacheKey(jobDescription, resume string, topN int) string {
	h := sha256.New()
	for _, part := range []string{c.fingerprint, strconv.Itoa(topN), jobDescription, resume} {
		_, _ = h.Write([]byte(strconv.Itoa(len(part))))
		_, _ = h.Write([]byte{':'})
		_, _ = h.Write([]byte(part))
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedAnalyzer) getFromCache(ctx context.Context, key string) (dommatch.Result, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached match", zap.String("key", key), zap.Error(err))
		}
		return dommatch.Result{}, false
	}
	if len(data) == 0 {
		return dommatch.Result{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("Dropping unreadable cached match", zap.String("key", key), zap.Error(err))
		if err := c.store.Del(ctx, key); err != nil {
			c.logger.Warn("Failed to drop cached match", zap.String("key", key), zap.Error(err))
		}
		return dommatch.Result{}, false
	}
	return dommatch.NewResult(e.Similarity, e.Found, e.Missing), true
}

func (c *CachedAnalyzer) putToCache(ctx context.Context, key string, res dommatch.Result) {
	data, err := json.Marshal(entry{
		Similarity: res.Similarity(),
		Found:      res.FoundTerms(),
		Missing:    res.MissingTerms(),
	})
	if err != nil {
		c.logger.Warn("Failed to encode match for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache match", zap.String("key", key), zap.Error(err))
	}
}
