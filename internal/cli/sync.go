package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/changelog"
	apperrors "github.com/raveheart1/relnote/internal/errors"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Regenerate the markdown document from the YAML source",
	Long: `Regenerate the markdown release notes from the YAML source file.

The generated file is idempotent - running sync multiple times produces
identical output as long as the source YAML hasn't changed.

Example:
  relnote sync`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd)
	},
}

func init() {
	syncCmd.GroupID = GroupAuthoring
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.ChangelogYAML); err != nil {
		return apperrors.MissingChangelogFile(cfg.ChangelogYAML)
	}

	log, err := changelog.Load(cfg.ChangelogYAML)
	if err != nil {
		return apperrors.ChangelogParseError(cfg.ChangelogYAML, err)
	}

	content, err := changelog.RenderMarkdownString(log)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	if err := os.WriteFile(cfg.ChangelogMD, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.ChangelogMD, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Synced %s → %s\n", cfg.ChangelogYAML, cfg.ChangelogMD)
	return nil
}
