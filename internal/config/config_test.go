package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8000}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidTieBreak(t *testing.T) {
	cfg := validConfig()
	cfg.Matcher.TieBreak = "random"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid tie_break")
	}

	expected := `matcher.tie_break must be "first_seen" or "alphabetical", got "random"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidTieBreaks(t *testing.T) {
	for _, tb := range []string{"first_seen", "alphabetical"} {
		t.Run("tie_break="+tb, func(t *testing.T) {
			cfg := validConfig()
			cfg.Matcher.TieBreak = tb
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid tie_break %q: %v", tb, err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_TopNTooLarge(t *testing.T) {
	cfg := validConfig()
	cfg.Matcher.TopN = 101

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for top_n above 100")
	}
}

func TestValidate_CacheDisabledIgnoresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Driver = "memcached"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled cache must not be validated: %v", err)
	}
}

func TestValidate_CacheMissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Enabled = true

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing cache addrs")
	}
	if !strings.Contains(err.Error(), "cache.addrs") {
		t.Errorf("error should name cache.addrs, got %q", err.Error())
	}
}

func TestValidate_CacheInvalidDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Addrs = []string{"localhost:6379"}
	cfg.Cache.Driver = "memcached"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid cache driver")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8000 {
		t.Errorf("expected Port=8000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Matcher.Language != "english" {
		t.Errorf("expected Language=english, got %q", cfg.Matcher.Language)
	}
	if cfg.Matcher.TopN != 20 {
		t.Errorf("expected TopN=20, got %d", cfg.Matcher.TopN)
	}
	if cfg.Matcher.MaxFeatures != 100 {
		t.Errorf("expected MaxFeatures=100, got %d", cfg.Matcher.MaxFeatures)
	}
	if cfg.Matcher.MinTokenLength != 2 {
		t.Errorf("expected MinTokenLength=2, got %d", cfg.Matcher.MinTokenLength)
	}
	if cfg.Matcher.TieBreak != "first_seen" {
		t.Errorf("expected TieBreak=first_seen, got %q", cfg.Matcher.TieBreak)
	}
	if cfg.Cache.Driver != "valkey" {
		t.Errorf("expected Driver=valkey, got %q", cfg.Cache.Driver)
	}
	if cfg.Cache.TTLSec != 3600 {
		t.Errorf("expected TTLSec=3600, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Limits.MaxBodyBytes != 1<<20 {
		t.Errorf("expected MaxBodyBytes=1MiB, got %d", cfg.Limits.MaxBodyBytes)
	}
	if cfg.Limits.MaxUploadBytes != 10<<20 {
		t.Errorf("expected MaxUploadBytes=10MiB, got %d", cfg.Limits.MaxUploadBytes)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 9000, ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Matcher: MatcherConfig{Language: "en", TopN: 5, MaxFeatures: 50, TieBreak: "alphabetical"},
		Cache:   CacheConfig{Driver: "redis", TTLSec: 60},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 {
		t.Errorf("expected Port=9000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Matcher.TopN != 5 {
		t.Errorf("expected TopN=5, got %d", cfg.Matcher.TopN)
	}
	if cfg.Matcher.TieBreak != "alphabetical" {
		t.Errorf("expected TieBreak=alphabetical, got %q", cfg.Matcher.TieBreak)
	}
	if cfg.Cache.Driver != "redis" {
		t.Errorf("expected Driver=redis, got %q", cfg.Cache.Driver)
	}
}

func TestApplyDefaults_NegativeMaxFeaturesDisablesCap(t *testing.T) {
	cfg := validConfig()
	cfg.Matcher.MaxFeatures = -1
	cfg.ApplyDefaults()

	if cfg.Matcher.MaxFeatures != -1 {
		t.Errorf("expected MaxFeatures=-1 to survive defaults, got %d", cfg.Matcher.MaxFeatures)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("negative max_features must validate: %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("JOBMATCH_TEST_PORT", "9100")

	got := string(expandEnvVars([]byte("port: ${JOBMATCH_TEST_PORT}\nlevel: ${JOBMATCH_TEST_UNSET:-warn}\nkey: ${JOBMATCH_TEST_UNSET}")))
	want := "port: 9100\nlevel: warn\nkey: "
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestParse(t *testing.T) {
	t.Setenv("JOBMATCH_TEST_TOPN", "7")

	cfg, err := Parse([]byte(`
http:
  port: 8081
matcher:
  top_n: ${JOBMATCH_TEST_TOPN}
  tie_break: alphabetical
  fold_diacritics: true
  stopwords: [the, and]
cache:
  enabled: true
  driver: redis
  addrs: ["localhost:6379"]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("Port = %d, want 8081", cfg.HTTP.Port)
	}
	if cfg.Matcher.TopN != 7 {
		t.Errorf("TopN = %d, want 7", cfg.Matcher.TopN)
	}
	if !cfg.Matcher.FoldDiacritics {
		t.Error("FoldDiacritics should be true")
	}
	if strings.Join(cfg.Matcher.StopWords, ",") != "the,and" {
		t.Errorf("StopWords = %v", cfg.Matcher.StopWords)
	}
	if cfg.Matcher.MaxFeatures != 100 {
		t.Errorf("MaxFeatures default not applied, got %d", cfg.Matcher.MaxFeatures)
	}
	if len(cfg.Cache.Addrs) != 1 || cfg.Cache.Addrs[0] != "localhost:6379" {
		t.Errorf("Addrs = %v", cfg.Cache.Addrs)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("matcher:\n  tie_break: random\n")); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 8123\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 8123 {
		t.Errorf("Port = %d, want 8123", cfg.HTTP.Port)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Cache.Enabled {
		t.Error("local config should not enable the cache")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
