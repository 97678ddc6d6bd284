// Package cli wires the relnote commands together: the cobra command tree,
// shared flags, configuration loading, and exit code handling.
package cli

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/config"
	apperrors "github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/git"
	"github.com/raveheart1/relnote/internal/github"
)

// Command group IDs for help output organization.
const (
	GroupViewing    = "viewing"
	GroupAuthoring  = "authoring"
	GroupAutomation = "automation"
	GroupSetup      = "setup"
)

var (
	cfgFile     string
	debugFlag   bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "relnote",
	Short: "Manage release-notes changelogs from a YAML source of truth",
	Long: `relnote maintains a changelog as structured YAML and renders it to the
"Release X.Y.Z" markdown dialect used in project release notes.

The YAML file is the source of truth. Markdown is generated from it, kept in
sync by CI, and validated for structure: semantic version headings in strictly
decreasing order, known section names, alphabetical contributor lists, and
well-formed links.`,
	Example: `  # Show the latest entries with color
  relnote show

  # Validate YAML, markdown structure, and sync
  relnote check

  # Append an entry to the in-development release
  relnote add bug_fixes "Reset the retry timer between requests."

  # Finalize the development entry as 0.9.1
  relnote release 0.9.1`,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			logger := log.New(cmd.ErrOrStderr(), "", log.Ltime).Printf
			git.SetDebugLogger(logger)
			github.SetDebugLogger(logger)
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupViewing, Title: "Viewing:"},
		&cobra.Group{ID: GroupAuthoring, Title: "Authoring:"},
		&cobra.Group{ID: GroupAutomation, Title: "Automation:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup:"},
	)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to project config file (default .relnote/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Verbose output")
}

// Execute runs the root command. The caller maps the returned error to a
// process exit code via ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		apperrors.PrintError(cliErr)
		return err
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}

// loadConfig loads the effective configuration honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}
