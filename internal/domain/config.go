package domain

// KeyPrefix namespaces every key jobmatch writes to a shared key-value store.
const KeyPrefix = "jobmatch:"

// MatcherConfig holds text-matching settings, not exposed to clients.
type MatcherConfig struct {
	Language string
	// StopWords, when non-empty, replaces the built-in list for Language.
	StopWords []string
	// StopWordsFile is read when StopWords is empty.
	StopWordsFile  string
	TopN           int
	MaxFeatures    int
	MinTokenLength int
	TieBreak       string
	FoldDiacritics bool
}

// DefaultMatcherConfig returns the stock matcher settings.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		Language:       "english",
		TopN:           20,
		MaxFeatures:    100,
		MinTokenLength: 2,
		TieBreak:       "first_seen",
	}
}
