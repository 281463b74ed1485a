// internal/cli/search.go
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/law-makers/stageradar/internal/app"
	"github.com/law-makers/stageradar/internal/crawl"
	"github.com/law-makers/stageradar/internal/engine/batch"
	"github.com/law-makers/stageradar/internal/ui"
	"github.com/law-makers/stageradar/pkg/models"
)

// searchFlags are shared by search and parse
type searchFlags struct {
	location string
	contract string
	output   string
	print    bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.location, "location", "l", "", "Keep listings whose location contains this text (e.g., Paris)")
	cmd.Flags().StringVarP(&f.contract, "contract", "c", "", "Contract type: internship, apprenticeship, full_time, temporary (or stage, alternance, cdi, cdd)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Export file (.xlsx, .csv, .json, .html, .md), default resultats_stages.xlsx")
	cmd.Flags().BoolVar(&f.print, "print", false, "Also print the results as JSON on stdout")
}

func (f *searchFlags) requests(terms []string) ([]models.SearchRequest, error) {
	contract, err := models.ParseContractType(f.contract)
	if err != nil {
		return nil, err
	}
	reqs := make([]models.SearchRequest, 0, len(terms))
	for _, term := range terms {
		reqs = append(reqs, models.SearchRequest{
			Term:           term,
			LocationFilter: f.location,
			Contract:       contract,
		})
	}
	reqs = batch.UniqueRequests(reqs)
	if len(reqs) == 0 {
		return nil, fmt.Errorf("a search term is required")
	}
	return reqs, nil
}

var searchOpts searchFlags

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "Search the job board and export every listing found",
	Long: `Loads the result pages for each term one after the other, accepting the
cookie banner when it shows up, until a page has no listings or adds nothing
new. The listings are split into company, title, place and description and
exported as a table.

Several terms are searched concurrently, each in its own browser, and each
gets its own export file.`,
	Example: `  # Internships matching "data", exported to resultats_stages.xlsx
  stageradar search data

  # Only offers located in Paris, as CSV
  stageradar search "data analyst" -l Paris -o paris.csv

  # Apprenticeships for two terms, two files
  stageradar search marketing design -c alternance -o offers.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchOpts.register(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	reqs, err := searchOpts.requests(args)
	if err != nil {
		return err
	}
	return execute(cmd.Context(), a, reqs, searchOpts)
}

// execute runs reqs and exports every result, then reports. The returned
// error is non-nil when at least one search failed.
func execute(ctx context.Context, a *app.Application, reqs []models.SearchRequest, opts searchFlags) error {
	var results []*models.SearchResult

	if len(reqs) == 1 {
		results = []*models.SearchResult{searchWithSpinner(ctx, a, reqs[0])}
	} else {
		var err error
		results, err = a.SearchAll(ctx, reqs)
		if err != nil {
			log.Error().Err(err).Msg("Batch aborted")
		}
	}

	output := opts.output
	if output == "" {
		output = a.Config.Output
	}

	failed := 0
	for _, res := range results {
		path := outputPath(output, res.Request.Term, len(results) > 1)
		if !report(a, res, path) {
			failed++
		}
	}

	if opts.print {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d searches failed", failed, len(results))
	}
	return nil
}

// searchWithSpinner shows the page being crawled on stderr
func searchWithSpinner(ctx context.Context, a *app.Application, req models.SearchRequest) *models.SearchResult {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(fmt.Sprintf("Searching %q", req.Term)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(a.Config.LogLevel != "error"),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Finish()

	return a.SearchWithProgress(ctx, req, func(ps crawl.PageStats) {
		bar.Describe(fmt.Sprintf("Searching %q, page %d, %d listings", req.Term, ps.Page, ps.Total))
		_ = bar.Add(ps.Added)
	})
}

// report exports res and prints its outcome. It returns false for failures.
func report(a *app.Application, res *models.SearchResult, path string) bool {
	term := res.Request.Term

	switch {
	case res.Outcome == models.OutcomeError && res.Stop == models.StopCancelled:
		fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("! Search for %q cancelled", term)))
		return false
	case res.Outcome == models.OutcomeError:
		fmt.Fprintln(os.Stderr, ui.Error(fmt.Sprintf("✗ Crawl failed for %q: %v", term, res.Err)))
		return false
	case res.Outcome == models.OutcomeNoResults:
		fmt.Println(ui.Warning(fmt.Sprintf("No listings found for %q", term)))
		return true
	}

	if msg, warn := stopNotice(res); warn {
		fmt.Fprintln(os.Stderr, ui.Warning(msg))
	} else if msg != "" {
		fmt.Fprintln(os.Stderr, ui.Info(msg))
	}

	art, err := a.Export(res.Table, path)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(fmt.Sprintf("✗ Export failed for %q: %v", term, err)))
		return false
	}

	fmt.Printf("%s %s\n",
		ui.Success(fmt.Sprintf("✓ %d listings found for %q", res.Table.Len(), term)),
		ui.Info(fmt.Sprintf("(%d pages, %s) saved to %s", res.Pages, res.Duration.Round(10*time.Millisecond), art.Filename)))
	return true
}

// stopNotice describes why a crawl with results ended on an error. A page
// that never rendered results after the first one is how the live board ends
// a search, so it is not reported as a warning.
func stopNotice(res *models.SearchResult) (msg string, warn bool) {
	if res.Err == nil {
		return "", false
	}
	if res.Stop == models.StopPageTimeout && res.Pages > 1 {
		return fmt.Sprintf("Crawl for %q ended on page %d, no further results loaded", res.Request.Term, res.Pages), false
	}
	return fmt.Sprintf("! Crawl for %q stopped early (%s), keeping partial results", res.Request.Term, res.Stop), true
}

// outputPath suffixes path with the term when several searches share it
func outputPath(path, term string, multi bool) string {
	if !multi {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + slug(term) + ext
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
