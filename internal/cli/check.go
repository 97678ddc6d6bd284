package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/config"
	apperrors "github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the changelog and its rendered markdown",
	Long: `Validate the changelog end to end.

Three passes run in order:
  1. The YAML source parses and satisfies every structural rule (semantic
     versions in strictly decreasing order, dated releases, alphabetical
     contributors, well-formed links).
  2. The markdown document parses as valid release notes.
  3. The markdown matches what the YAML renders to, byte for byte.

Returns exit code 0 when everything holds, 1 with a report otherwise.

Example:
  relnote check`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

func init() {
	checkCmd.GroupID = GroupViewing
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return checkChangelog(cmd, cfg)
}

// checkChangelog runs the three validation passes. Shared with watch mode.
func checkChangelog(cmd *cobra.Command, cfg *config.Configuration) error {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(cfg.ChangelogYAML); err != nil {
		return apperrors.MissingChangelogFile(cfg.ChangelogYAML)
	}

	log, err := changelog.Load(cfg.ChangelogYAML)
	if err != nil {
		output.PrintFailure(out, fmt.Sprintf("%s: %v", cfg.ChangelogYAML, err))
		return fmt.Errorf("changelog validation failed")
	}
	output.PrintSuccess(out, fmt.Sprintf("%s is valid", cfg.ChangelogYAML))

	if _, err := os.Stat(cfg.ChangelogMD); err != nil {
		return apperrors.MissingReleaseNotesFile(cfg.ChangelogMD)
	}

	if _, err := changelog.ParseMarkdownFile(cfg.ChangelogMD); err != nil {
		output.PrintFailure(out, fmt.Sprintf("%s: %v", cfg.ChangelogMD, err))
		return fmt.Errorf("release notes validation failed")
	}
	output.PrintSuccess(out, fmt.Sprintf("%s parses as release notes", cfg.ChangelogMD))

	expected, err := changelog.RenderMarkdownString(log)
	if err != nil {
		return fmt.Errorf("rendering expected markdown: %w", err)
	}
	actual, err := os.ReadFile(cfg.ChangelogMD)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.ChangelogMD, err)
	}

	if !bytes.Equal([]byte(expected), actual) {
		output.PrintFailure(out, fmt.Sprintf("%s is out of sync with %s", cfg.ChangelogMD, cfg.ChangelogYAML))
		fmt.Fprintf(out, "\nTo fix, run:\n  relnote sync\n")
		return fmt.Errorf("%s is out of sync with %s", cfg.ChangelogMD, cfg.ChangelogYAML)
	}
	output.PrintSuccess(out, fmt.Sprintf("%s is in sync with %s", cfg.ChangelogMD, cfg.ChangelogYAML))

	return nil
}
