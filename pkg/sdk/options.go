package jobmatch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	language       string
	stopWords      []string
	stopWordsFile  string
	topN           int
	maxFeatures    int
	minTokenLength int
	tieBreak       string
	foldDiacritics bool

	driver   string // "valkey" or "redis"; empty disables the cache
	addrs    []string
	password string
	cacheTTL time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithLanguage selects the built-in stop-word list by name ("english") or tag ("en").
func WithLanguage(lang string) Option {
	return optionFunc(func(c *clientConfig) {
		c.language = lang
	})
}

// WithStopWords replaces the built-in stop-word list.
func WithStopWords(words []string) Option {
	return optionFunc(func(c *clientConfig) {
		c.stopWords = words
	})
}

// WithStopWordsFile loads the stop-word list from a file, one word per line.
func WithStopWordsFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.stopWordsFile = path
	})
}

// WithTopN sets the number of key terms extracted per document. Default 20.
func WithTopN(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topN = n
	})
}

// WithMaxFeatures caps the vocabulary used for key-term extraction. Default 100;
// n <= 0 disables the cap.
func WithMaxFeatures(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxFeatures = n
	})
}

// WithMinTokenLength drops shorter tokens before weighting. Default 2.
func WithMinTokenLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minTokenLength = n
	})
}

// WithTieBreak orders equally weighted key terms: TieBreakFirstSeen (default)
// or TieBreakAlphabetical.
func WithTieBreak(tb string) Option {
	return optionFunc(func(c *clientConfig) {
		c.tieBreak = tb
	})
}

// WithFoldDiacritics maps accented letters to ASCII before normalization,
// so "café" keeps its letters instead of losing the "é".
func WithFoldDiacritics(enabled bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.foldDiacritics = enabled
	})
}

// WithValkey memoizes results in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis memoizes results in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCacheTTL sets how long cached results live. Default 1h.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithLogger sets a structured logger for SDK operations.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithMetrics registers SDK prometheus metrics with the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
