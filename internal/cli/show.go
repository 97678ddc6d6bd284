package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/config"
	apperrors "github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/output"
	"github.com/raveheart1/relnote/internal/retry"
)

var (
	showLastFlag   int
	showPlainFlag  bool
	showRemoteFlag bool
	showListFlag   bool
)

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "View changelog entries",
	Long: `View changelog entries in the terminal.

By default, shows the most recent entries from the project changelog (or the
embedded copy when no project changelog exists). Use a version argument to see
all entries for a specific release, "development" for the in-development
entry, or --remote to fetch the latest published changelog.

Examples:
  relnote show                  # Most recent entries
  relnote show 0.9.1            # All entries for release 0.9.1
  relnote show v0.9.1           # Same (v prefix optional)
  relnote show development      # In-development changes
  relnote show --last 10        # 10 most recent entries
  relnote show --list           # Known versions only
  relnote show --remote         # Fetch the published changelog first
  relnote show --plain          # Plain output (no colors/icons)`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

func init() {
	showCmd.GroupID = GroupViewing
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVar(&showLastFlag, "last", 0, "Number of entries to show (default from config)")
	showCmd.Flags().BoolVar(&showPlainFlag, "plain", false, "Plain text output (no colors/icons)")
	showCmd.Flags().BoolVar(&showRemoteFlag, "remote", false, "Fetch the published changelog before showing")
	showCmd.Flags().BoolVar(&showListFlag, "list", false, "List known versions only")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var log *changelog.Changelog
	if showRemoteFlag {
		log, err = fetchRemoteChangelog(cmd, cfg)
	} else {
		log, _, err = loadChangelogSource(cfg)
	}
	if err != nil {
		return err
	}

	if showListFlag {
		for _, version := range log.ListVersions() {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		}
		return nil
	}

	opts := changelog.FormatOptions{Plain: showPlainFlag}

	if len(args) == 1 {
		return showRelease(log, args[0], cmd, opts)
	}

	n := showLastFlag
	if n <= 0 {
		n = cfg.DefaultEntries
	}
	return showLastEntries(log, n, cmd, opts)
}

func showRelease(log *changelog.Changelog, version string, cmd *cobra.Command, opts changelog.FormatOptions) error {
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

	return changelog.FormatRelease(r, cmd.OutOrStdout(), opts)
}

func showLastEntries(log *changelog.Changelog, n int, cmd *cobra.Command, opts changelog.FormatOptions) error {
	entries := log.GetLastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatTerminal(entries, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	total := log.EntryCount()
	if total > len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}

	return nil
}

// loadChangelogSource loads the changelog from the configured YAML path,
// falling back to the embedded copy when the file does not exist. Returns
// the path it read from, or empty string for the embedded copy.
func loadChangelogSource(cfg *config.Configuration) (*changelog.Changelog, string, error) {
	if _, err := os.Stat(cfg.ChangelogYAML); err == nil {
		log, err := changelog.Load(cfg.ChangelogYAML)
		if err != nil {
			return nil, "", apperrors.ChangelogParseError(cfg.ChangelogYAML, err)
		}
		return log, cfg.ChangelogYAML, nil
	}

	log, err := changelog.LoadEmbedded()
	if err != nil {
		return nil, "", fmt.Errorf("loading embedded changelog: %w", err)
	}
	return log, "", nil
}

// fetchRemoteChangelog fetches the published changelog with a spinner on
// stderr while the request runs.
func fetchRemoteChangelog(cmd *cobra.Command, cfg *config.Configuration) (*changelog.Changelog, error) {
	if cfg.RemoteURL != "" {
		changelog.RemoteChangelogURL = cfg.RemoteURL
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.RemoteTimeout)*time.Second)
	defer cancel()

	policy := retry.DefaultPolicy()
	policy.MaxAttempts = cfg.RemoteMaxAttempts

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " fetching remote changelog..."
	if !showPlainFlag && output.DetectTerminalCapabilities().IsTTY {
		s.Start()
	}
	log, err := changelog.FetchRemoteWithPolicy(ctx, policy)
	s.Stop()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Remote fetch timed out after %ds.\n", cfg.RemoteTimeout)
			return nil, NewExitError(ExitTimeout)
		}
		return nil, apperrors.RemoteFetchError(changelog.RemoteChangelogURL, err)
	}
	return log, nil
}
