package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	apperrors "github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/output"
	"github.com/raveheart1/relnote/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate the changelog whenever it changes",
	Long: `Watch the YAML source and the markdown document, re-running the full
validation whenever either file is saved. Useful while editing release notes.

Press Ctrl+C to stop.

Example:
  relnote watch`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	watchCmd.GroupID = GroupAutomation
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.ChangelogYAML); err != nil {
		return apperrors.MissingChangelogFile(cfg.ChangelogYAML)
	}

	w, err := watch.New([]string{cfg.ChangelogYAML, cfg.ChangelogMD})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	out := cmd.OutOrStdout()

	// Initial pass so the current state is reported immediately.
	runWatchCheck(cmd)

	fmt.Fprintf(out, "\nWatching %s and %s (Ctrl+C to stop)\n", cfg.ChangelogYAML, cfg.ChangelogMD)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return w.Run(ctx, func(changed []string) {
		output.PrintSeparator(out)
		for _, path := range changed {
			output.PrintInfo(out, "changed: "+path)
		}
		runWatchCheck(cmd)
	})
}

func runWatchCheck(cmd *cobra.Command) {
	cfg, err := loadConfig()
	if err != nil {
		output.PrintFailure(cmd.OutOrStdout(), err.Error())
		return
	}
	if err := checkChangelog(cmd, cfg); err != nil {
		output.PrintFailure(cmd.OutOrStdout(), err.Error())
	}
}
