package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/changelog"
	apperrors "github.com/raveheart1/relnote/internal/errors"
)

var (
	releaseDateFlag         string
	releaseContributorsFlag []string
	releaseNextFlag         string
	releaseNoNextFlag       bool
)

var releaseCmd = &cobra.Command{
	Use:   "release <version>",
	Short: "Promote the in-development entry to a released version",
	Long: `Promote the in-development entry to a released version.

The development entry takes the given version and date, and a fresh
development entry for the next cycle is opened above it (disable with
--no-next). The released entry must have at least one change and at least
one contributor.

Examples:
  relnote release 0.9.1
  relnote release 0.9.1 --date 2026-08-31
  relnote release 0.9.1 --contributor "Nathan Killoran"
  relnote release 1.0.0 --next 1.1.0`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd, args[0])
	},
}

func init() {
	releaseCmd.GroupID = GroupAuthoring
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().StringVar(&releaseDateFlag, "date", "", "Release date (YYYY-MM-DD, default today)")
	releaseCmd.Flags().StringArrayVar(&releaseContributorsFlag, "contributor", nil, "Contributor to credit (repeatable)")
	releaseCmd.Flags().StringVar(&releaseNextFlag, "next", "", "Version for the next development cycle (default: next minor)")
	releaseCmd.Flags().BoolVar(&releaseNoNextFlag, "no-next", false, "Do not open a new development entry")
}

func runRelease(cmd *cobra.Command, version string) error {
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

	version = changelog.NormalizeVersion(version)
	if _, err := nextMinor(version); err != nil {
		return apperrors.InvalidVersionFormat(version)
	}
	if dev.Sections.IsEmpty() {
		return apperrors.NewPrerequisiteError(
			"the in-development entry has no changes to release",
			"Add entries with: relnote add <category> <text>",
		)
	}

	date := releaseDateFlag
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	dev.Version = version
	dev.Date = date
	dev.Contributors = append(dev.Contributors, releaseContributorsFlag...)
	changelog.SortContributors(dev.Contributors)
	if len(dev.Contributors) == 0 {
		return apperrors.NewPrerequisiteError(
			"released entries need at least one contributor",
			"Credit contributors with: relnote release "+version+" --contributor \"Name\"",
		)
	}

	if !releaseNoNextFlag {
		next := releaseNextFlag
		if next == "" {
			next, err = nextMinor(version)
			if err != nil {
				return apperrors.InvalidVersionFormat(version)
			}
		}
		log.Releases = append([]changelog.Release{{Version: next + "-dev"}}, log.Releases...)
	}

	if err := changelog.Validate(log); err != nil {
		return fmt.Errorf("changelog invalid after release: %w", err)
	}

	if err := changelog.Save(log, cfg.ChangelogYAML); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.ChangelogYAML, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Released %s (%s)\n", version, date)
	if !releaseNoNextFlag {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Opened development entry for the next cycle\n")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'relnote sync' to refresh %s\n", cfg.ChangelogMD)
	return nil
}

// nextMinor computes the next minor version for the development cycle that
// follows a release. Also serves as the strict MAJOR.MINOR.PATCH check for
// the release argument.
func nextMinor(version string) (string, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("not a MAJOR.MINOR.PATCH version: %s", version)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return "", fmt.Errorf("not a MAJOR.MINOR.PATCH version: %s", version)
		}
		nums[i] = n
	}
	return fmt.Sprintf("%d.%d.0", nums[0], nums[1]+1), nil
}
