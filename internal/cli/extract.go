package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/changelog"
)

var extractCmd = &cobra.Command{
	Use:   "extract <version>",
	Short: "Extract release notes for a specific version",
	Long: `Extract release notes for a specific version in markdown format.

The output contains the section headings and entries for that release,
without the version heading or contributor line, and is written to stdout.
Useful for CI pipelines that create GitHub releases with accurate notes.

Examples:
  relnote extract 0.9.1         # Notes for release 0.9.1
  relnote extract v0.9.1        # Same (v prefix optional)
  relnote extract development   # In-development changes`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0])
	},
}

func init() {
	extractCmd.GroupID = GroupViewing
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, version string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, _, err := loadChangelogSource(cfg)
	if err != nil {
		return err
	}

	r, err := log.GetRelease(version)
	if err != nil {
		var notFound *changelog.ReleaseNotFoundError
		if errors.As(err, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Release %q not found.\n\n", version)
			fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
			for _, ver := range log.ListVersions() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
			}
			return NewExitError(ExitInvalidArguments)
		}
		return fmt.Errorf("getting release: %w", err)
	}

	notes, err := changelog.ExtractReleaseNotes(r)
	if err != nil {
		return fmt.Errorf("extracting release notes: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), notes)
	return nil
}
