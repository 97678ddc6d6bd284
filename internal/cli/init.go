package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/config"
	apperrors "github.com/raveheart1/relnote/internal/errors"
)

var (
	initForceFlag   bool
	initProjectFlag string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a changelog and project configuration",
	Long: `Scaffold a new changelog in the current directory.

Creates the YAML source with an empty in-development entry, renders the
markdown document from it, and writes a commented project config to
.relnote/config.yml.

Examples:
  relnote init
  relnote init --project my-plugin
  relnote init --force`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func init() {
	initCmd.GroupID = GroupSetup
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForceFlag, "force", false, "Overwrite existing files")
	initCmd.Flags().StringVar(&initProjectFlag, "project", "", "Project name (default: current directory name)")
}

func runInit(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.ChangelogYAML); err == nil && !initForceFlag {
		return apperrors.NewArgumentError(
			fmt.Sprintf("%s already exists", cfg.ChangelogYAML),
			"Pass --force to overwrite it",
		)
	}

	project := initProjectFlag
	if project == "" {
		project = cfg.Project
	}
	if project == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		project = filepath.Base(wd)
	}

	log := &changelog.Changelog{
		Project: project,
		RepoURL: cfg.RepoURL,
		Releases: []changelog.Release{
			{Version: "0.1.0-dev"},
		},
	}

	if err := changelog.Save(log, cfg.ChangelogYAML); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.ChangelogYAML, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", cfg.ChangelogYAML)

	content, err := changelog.RenderMarkdownString(log)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	if err := os.WriteFile(cfg.ChangelogMD, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.ChangelogMD, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", cfg.ChangelogMD)

	if err := writeProjectConfig(cmd); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nNext steps:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  relnote add new_features \"Describe your first change.\"\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  relnote release 0.1.0\n")
	return nil
}

func writeProjectConfig(cmd *cobra.Command) error {
	path := cfgFile
	if path == "" {
		path = config.ProjectConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !initForceFlag {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s already exists, leaving it alone\n", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path)
	return nil
}
