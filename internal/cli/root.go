// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/stageradar/internal/app"
	"github.com/law-makers/stageradar/internal/config"
	"github.com/law-makers/stageradar/internal/ui"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stageradar",
	Short: "Collect internship listings from Welcome to the Jungle",
	Long: `Stageradar drives a headless Chrome through the job board's search pages,
collects every listing until the results run out and exports them as a
spreadsheet.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. ctx is cancelled on interrupt so a running
// crawl can stop and still export what it collected.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error("Error: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)

	// initialize lazily so -h and --version never touch the config
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		log.Debug().Str("user_agent", cfg.UserAgent).Msg("Configuration loaded")

		SetApp(cmd, a)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		a := GetApp(cmd)
		if a == nil {
			return
		}
		_ = a.Close(context.Background())
		SetApp(cmd, nil)
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(helpFunc)
}

// helpFunc prints a colorized help page
func helpFunc(cmd *cobra.Command, args []string) {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "\n%s\n", ui.Title(strings.ToUpper(cmd.Name())))
	if cmd.Long != "" {
		fmt.Fprintf(w, "%s\n", cmd.Long)
	} else if cmd.Short != "" {
		fmt.Fprintf(w, "%s\n", cmd.Short)
	}

	section(w, "Usage")
	if cmd.Runnable() {
		fmt.Fprintf(w, "  %s\n", ui.Accent(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "  %s\n", ui.Accent(cmd.CommandPath()+" <command> [flags]"))
	}

	if cmd.HasExample() {
		section(w, "Examples")
		for _, line := range strings.Split(cmd.Example, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case strings.HasPrefix(line, "#"):
				fmt.Fprintf(w, "  %s\n", ui.Dim(line))
			default:
				fmt.Fprintf(w, "  %s\n", ui.Success("$ "+line))
			}
		}
	}

	if cmd.HasAvailableSubCommands() {
		section(w, "Commands")
		width := 0
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() && len(c.Name()) > width {
				width = len(c.Name())
			}
		}
		for _, c := range cmd.Commands() {
			if !c.IsAvailableCommand() || c.Name() == "help" {
				continue
			}
			fmt.Fprintf(w, "  %s  %s\n", ui.Accent(fmt.Sprintf("%-*s", width, c.Name())), ui.Dim(c.Short))
		}
	}

	if cmd.HasAvailableLocalFlags() {
		section(w, "Flags")
		fmt.Fprint(w, cmd.LocalFlags().FlagUsages())
	}
	if cmd.HasAvailableInheritedFlags() {
		section(w, "Global Flags")
		fmt.Fprint(w, cmd.InheritedFlags().FlagUsages())
	}
	fmt.Fprintln(w)
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", ui.Heading(title))
}
