package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	jobmatch "github.com/kailas-cloud/jobmatch/pkg/sdk"
)

type matchFlags struct {
	jobPath    string
	resumePath string
	topN       int
	language   string
	stopWords  string
	tieBreak   string
	fold       bool
	jsonOut    bool
	verbose    bool
}

func newMatchCommand(global *globalFlags) *cobra.Command {
	f := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "match --job FILE --resume FILE",
		Short: "Score a resume file against a job description file (txt, md, pdf, docx)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatch(cmd, global, f)
		},
	}

	cmd.Flags().StringVar(&f.jobPath, "job", "", "Job description file")
	cmd.Flags().StringVar(&f.resumePath, "resume", "", "Resume file")
	cmd.Flags().IntVar(&f.topN, "top-n", 0, "Key terms per document (default from config, 20)")
	cmd.Flags().StringVar(&f.language, "language", "", "Stop-word language (default from config, english)")
	cmd.Flags().StringVar(&f.stopWords, "stopwords-file", "", "Custom stop-word list, one word per line")
	cmd.Flags().StringVar(&f.tieBreak, "tie-break", "", "Order of equally weighted terms: first_seen or alphabetical")
	cmd.Flags().BoolVar(&f.fold, "fold-diacritics", false, "Map accented letters to ASCII before matching")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Log diagnostics to stderr")
	_ = cmd.MarkFlagRequired("job")
	_ = cmd.MarkFlagRequired("resume")

	return cmd
}

func runMatch(cmd *cobra.Command, global *globalFlags, f *matchFlags) error {
	matcher := domain.DefaultMatcherConfig()
	if global.configPath != "" {
		cfg, err := global.loadConfig()
		if err != nil {
			return err
		}
		matcher = toMatcherConfig(cfg.Matcher)
	}
	if f.language != "" {
		matcher.Language = f.language
	}
	if f.stopWords != "" {
		matcher.StopWordsFile = f.stopWords
	}
	if f.tieBreak != "" {
		matcher.TieBreak = f.tieBreak
	}
	if f.topN != 0 {
		if f.topN < 1 || f.topN > 100 {
			return fmt.Errorf("--top-n must be between 1 and 100, got %d", f.topN)
		}
		matcher.TopN = f.topN
	}
	if cmd.Flags().Changed("fold-diacritics") {
		matcher.FoldDiacritics = f.fold
	}

	opts := []jobmatch.Option{
		jobmatch.WithLanguage(matcher.Language),
		jobmatch.WithStopWordsFile(matcher.StopWordsFile),
		jobmatch.WithTopN(matcher.TopN),
		jobmatch.WithMaxFeatures(matcher.MaxFeatures),
		jobmatch.WithMinTokenLength(matcher.MinTokenLength),
		jobmatch.WithTieBreak(matcher.TieBreak),
		jobmatch.WithFoldDiacritics(matcher.FoldDiacritics),
	}
	if f.verbose {
		opts = append(opts, jobmatch.WithLogger(
			slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})),
		))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := jobmatch.New(ctx, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	res, err := client.MatchFiles(ctx, f.jobPath, f.resumePath)
	if err != nil {
		return err
	}

	if f.jsonOut {
		return writeJSON(cmd, res)
	}
	return printMatch(cmd.OutOrStdout(), res, shouldColorize(cmd.OutOrStdout()))
}

func printMatch(w io.Writer, res jobmatch.MatchResult, color bool) error {
	summary := renderTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Match score", fmt.Sprintf("%.4f", res.Score)},
			{"Match", fmt.Sprintf("%.1f%%", res.Percentage)},
			{"Key terms found", fmt.Sprintf("%d", len(res.KeyTermsFound))},
			{"Missing terms", fmt.Sprintf("%d", len(res.MissingTerms))},
		},
		[]columnAlignment{alignLeft, alignRight},
	)

	rows := make([][]string, 0, len(res.KeyTermsFound)+len(res.MissingTerms))
	for _, t := range res.KeyTermsFound {
		rows = append(rows, []string{t, colorize(color, "found", text.Colors{text.FgGreen})})
	}
	for _, t := range res.MissingTerms {
		rows = append(rows, []string{t, colorize(color, "missing", text.Colors{text.FgRed})})
	}

	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n")
	if len(rows) > 0 {
		b.WriteString(renderTable([]string{"Job key term", "Resume"}, rows, nil))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
