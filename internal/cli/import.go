package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/changelog"
	apperrors "github.com/raveheart1/relnote/internal/errors"
)

var importForceFlag bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Parse an existing markdown changelog into YAML",
	Long: `Parse an existing release-notes markdown document into the YAML source.

The markdown must follow the release-notes dialect: "# Release X.Y.Z"
headings, known "###" section names, bullet entries, and contributor lines.
The parsed changelog is validated and written to the configured YAML path.

Example:
  relnote import docs/CHANGELOG.md`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0])
	},
}

func init() {
	importCmd.GroupID = GroupSetup
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importForceFlag, "force", false, "Overwrite an existing YAML source")
}

func runImport(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		return apperrors.MissingReleaseNotesFile(path)
	}

	if _, err := os.Stat(cfg.ChangelogYAML); err == nil && !importForceFlag {
		return apperrors.NewArgumentError(
			fmt.Sprintf("%s already exists", cfg.ChangelogYAML),
			"Pass --force to overwrite it",
		)
	}

	log, err := changelog.ParseMarkdownFile(path)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	log.Project = cfg.Project
	log.RepoURL = cfg.RepoURL
	if log.Project == "" {
		log.Project = "relnote"
	}

	// The markdown dialect carries no release dates, so only the structural
	// rules can be checked here. Dates are filled in by hand afterwards.
	if err := changelog.ValidateStructure(log); err != nil {
		return fmt.Errorf("imported changelog is invalid: %w", err)
	}

	if err := changelog.Save(log, cfg.ChangelogYAML); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.ChangelogYAML, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d releases from %s into %s\n",
		log.ReleaseCount(), path, cfg.ChangelogYAML)
	fmt.Fprintln(cmd.OutOrStdout(), "Note: release notes carry no dates; add a date to each release before running 'relnote check'.")
	return nil
}
