// internal/cli/parse.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/stageradar/internal/engine/static"
)

var (
	parseOpts searchFlags
	parseTerm string
)

// parseCmd runs the crawl over saved result pages instead of a live browser
var parseCmd = &cobra.Command{
	Use:   "parse <page.html>...",
	Short: "Extract listings from saved result pages",
	Long: `Runs the same pipeline as search over result pages saved from a browser.
The first file is served as page 1, the second as page 2 and so on; the crawl
stops on the first page without listings or when the files run out.`,
	Example: `  # Export listings from two saved pages
  stageradar parse page1.html page2.html -o offers.csv

  # Keep only Lyon
  stageradar parse page1.html -l lyon`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseOpts.register(parseCmd)
	parseCmd.Flags().StringVarP(&parseTerm, "term", "t", "snapshot", "Search term recorded with the results")
}

func runParse(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	pages, err := static.ReadPages(args...)
	if err != nil {
		return err
	}

	reqs, err := parseOpts.requests([]string{parseTerm})
	if err != nil {
		return err
	}

	// snapshots are local, nothing to be polite to
	a.Config.PageDelay = 0
	return execute(cmd.Context(), a.WithOpener(static.Opener(pages...)), reqs, parseOpts)
}
