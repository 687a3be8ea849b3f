package normalize

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/kailas-cloud/jobmatch/internal/nlp/lexicon"
)

func newLexicon(t *testing.T, words ...string) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.New(language.English, words)
	if err != nil {
		t.Fatalf("lexicon: %v", err)
	}
	return lex
}

func TestNormalize(t *testing.T) {
	n := New(newLexicon(t, "the", "a", "with", "of", "and"))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t\n ", ""},
		{"symbols and digits only", "!!! 123 ???", ""},
		{"lowercases", "Python Developer", "python developer"},
		{"drops stop words", "The art of Go and Rust", "art go rust"},
		{"collapses whitespace", "  go\t\tdeveloper \n needed ", "go developer needed"},
		{"merges across dropped characters", "scikit-learn node.js", "scikitlearn nodejs"},
		{"drops digits inside tokens", "5+ years K8s", "years ks"},
		{"stop word check is post-lowercase", "THE WITH", ""},
		{"non-ascii letters are dropped", "résumé naïve", "rsum nave"},
		{"stop word formed after stripping is removed", "a.", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.in)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	lex, err := lexicon.Builtin("english")
	if err != nil {
		t.Fatal(err)
	}
	n := New(lex)

	inputs := []string{
		"Senior Python Developer - 5+ years of experience with FastAPI/Django!",
		"Experienced software engineer; skilled in AWS (EC2, S3, Lambda).",
		"I'm the one who doesn't stop",
		"",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_FoldDiacritics(t *testing.T) {
	n := New(newLexicon(t, "the"), WithFoldDiacritics(true))

	got := n.Normalize("Résumé of the Naïve café owner")
	want := "resume of naive cafe owner"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_NilStopWords(t *testing.T) {
	n := New(nil)
	if got := n.Normalize("The Go"); got != "the go" {
		t.Errorf("got %q, want %q", got, "the go")
	}
}
