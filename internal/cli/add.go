package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/changelog"
	apperrors "github.com/raveheart1/relnote/internal/errors"
)

var addCmd = &cobra.Command{
	Use:   "add <category> <text>",
	Short: "Append an entry to the in-development release",
	Long: `Append an entry to the in-development release in the YAML source.

The category must be one of: new_features, breaking_changes, improvements,
documentation, bug_fixes. The entry text may contain markdown links.

Examples:
  relnote add new_features "Support for the R and MS gates. [(#12)](https://github.com/acme/widgets/pull/12)"
  relnote add bug_fixes "Reset the retry timer between requests."`,
	Args:         cobra.MinimumNArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, args[0], strings.Join(args[1:], " "))
	},
}

func init() {
	addCmd.GroupID = GroupAuthoring
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, category, text string) error {
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

	dev := log.GetDevelopment()
	if dev == nil {
		return apperrors.NoDevelopmentEntry()
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return apperrors.NewArgumentError("entry text must not be blank")
	}

	if !dev.Sections.Append(category, text) {
		return apperrors.InvalidCategory(category)
	}

	if err := changelog.Validate(log); err != nil {
		return fmt.Errorf("changelog invalid after adding entry: %w", err)
	}

	if err := changelog.Save(log, cfg.ChangelogYAML); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.ChangelogYAML, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added to %s under %s\n", dev.Version, changelog.CategoryTitle(category))
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'relnote sync' to refresh %s\n", cfg.ChangelogMD)
	return nil
}
