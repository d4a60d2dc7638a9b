package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/songrec/internal/domain/recommend/query"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Load the dataset once and print recommendations as JSON",
	Long: `recommend loads the configured dataset, runs a single query and
prints the ranked results to stdout. Logs go to stderr.`,
	Example: `  songrec recommend --artist "daft punk" --limit 5
  songrec recommend --genre house`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().String("artist", "", "artist hint (case-insensitive substring)")
	recommendCmd.Flags().String("genre", "", "genre hint, matched against genre and subgenre")
	recommendCmd.Flags().Int("limit", query.DefaultLimit, "maximum number of results")

	rootCmd.AddCommand(recommendCmd)
}

// recommendation is the CLI output record.
type recommendation struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	PrimaryGenre string `json:"primary_genre"`
	Year         *int   `json:"year"`
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	artist, _ := cmd.Flags().GetString("artist")
	genre, _ := cmd.Flags().GetString("genre")
	var limit *int
	if cmd.Flags().Changed("limit") {
		n, _ := cmd.Flags().GetInt("limit")
		limit = &n
	}

	_, cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	q, err := query.New(artist, genre, limit,
		query.WithDefaultLimit(cfg.Recommend.DefaultLimit),
		query.WithMaxLimit(cfg.Recommend.MaxLimit),
	)
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	a, err := newApp(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.ingest.Load(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	items, err := a.recommend.Recommend(ctx, &q)
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	out := make([]recommendation, len(items))
	for i := range items {
		it := &items[i]
		out[i] = recommendation{
			ID:           it.ID(),
			Title:        it.Title(),
			Artist:       it.Artist(),
			PrimaryGenre: it.Genre(),
		}
		if y, ok := it.Year(); ok {
			out[i].Year = &y
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
