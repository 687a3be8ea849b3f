package jobmatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/db"
	dbRedis "github.com/kailas-cloud/jobmatch/internal/db/redis"
	"github.com/kailas-cloud/jobmatch/internal/domain"
	dommatch "github.com/kailas-cloud/jobmatch/internal/domain/match"
	"github.com/kailas-cloud/jobmatch/internal/extract"
	"github.com/kailas-cloud/jobmatch/internal/repository/matchcache"
	matchuc "github.com/kailas-cloud/jobmatch/internal/usecase/match"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = time.Hour
)

// Client is the jobmatch SDK entry point. It is safe for concurrent use.
type Client struct {
	store    db.Store
	analyzer dommatch.Analyzer
	obs      *observer
}

// New builds the matcher. When WithValkey or WithRedis is given it also
// connects to the cache, using ctx for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	def := domain.DefaultMatcherConfig()
	cfg := &clientConfig{
		language:       def.Language,
		topN:           def.TopN,
		maxFeatures:    def.MaxFeatures,
		minTokenLength: def.MinTokenLength,
		tieBreak:       def.TieBreak,
		cacheTTL:       defaultCacheTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	built, err := matchuc.NewFromConfig(domain.MatcherConfig{
		Language:       cfg.language,
		StopWords:      cfg.stopWords,
		StopWordsFile:  cfg.stopWordsFile,
		TopN:           cfg.topN,
		MaxFeatures:    cfg.maxFeatures,
		MinTokenLength: cfg.minTokenLength,
		TieBreak:       cfg.tieBreak,
		FoldDiacritics: cfg.foldDiacritics,
	})
	if err != nil {
		return nil, fmt.Errorf("jobmatch: build matcher: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	if cfg.driver == "" {
		return &Client{analyzer: built.Service, obs: obs}, nil
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("jobmatch: cache not ready: %w", err)
	}
	return wireClient(store, built, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("jobmatch: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("jobmatch: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, built matchuc.Built, cfg *clientConfig, obs *observer) *Client {
	// SDK callers observe through slog; the cache decorator stays silent.
	analyzer := matchcache.New(built.Service, store, cfg.cacheTTL, built.Fingerprint, nil, zap.NewNop())
	return &Client{store: store, analyzer: analyzer, obs: obs}
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks cache connectivity. Without a cache it always succeeds.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if c.store == nil {
		return nil
	}
	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Match scores resume against jobDescription using the configured top N.
// Blank documents fail with ErrInvalidInput.
func (c *Client) Match(ctx context.Context, jobDescription, resume string) (MatchResult, error) {
	return c.MatchTopN(ctx, jobDescription, resume, 0)
}

// MatchTopN is Match with a per-call key-term count; topN <= 0 uses the default.
func (c *Client) MatchTopN(ctx context.Context, jobDescription, resume string, topN int) (res MatchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("match", start, err) }()

	r, err := c.analyzer.Analyze(ctx, jobDescription, resume, topN)
	if err != nil {
		return MatchResult{}, fmt.Errorf("match: %w", err)
	}
	c.obs.observeScore(r.Similarity())
	return fromDomainResult(r), nil
}

// MatchFiles reads both documents from disk (txt, md, pdf or docx) and matches them.
func (c *Client) MatchFiles(ctx context.Context, jobPath, resumePath string) (MatchResult, error) {
	job, err := ReadDocument(jobPath)
	if err != nil {
		return MatchResult{}, err
	}
	resume, err := ReadDocument(resumePath)
	if err != nil {
		return MatchResult{}, err
	}
	return c.Match(ctx, job, resume)
}

// ReadDocument extracts the plain text of a txt, md, pdf or docx file.
// Other types fail with ErrUnsupportedFormat.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return ExtractText(filepath.Base(path), data)
}

// ExtractText converts document bytes to plain text, picking the format from
// the file name extension.
func ExtractText(filename string, data []byte) (string, error) {
	mimeType := extract.DetectMIME(filename, "")
	if mimeType == "" {
		return "", fmt.Errorf("%w: cannot detect type of %q", ErrUnsupportedFormat, filename)
	}
	text, err := extract.Text(mimeType, data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", filename, err)
	}
	return text, nil
}

func fromDomainResult(r dommatch.Result) MatchResult {
	found, missing := r.FoundTerms(), r.MissingTerms()
	if found == nil {
		found = []string{}
	}
	if missing == nil {
		missing = []string{}
	}
	return MatchResult{
		Score:         r.Similarity(),
		Percentage:    r.Percentage(),
		KeyTermsFound: found,
		MissingTerms:  missing,
	}
}

// IsInputError reports whether err was caused by a blank document and, if so,
// which field.
func IsInputError(err error) (field string, ok bool) {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Field, true
	}
	return "", false
}
