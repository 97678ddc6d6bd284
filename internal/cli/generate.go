package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/config"
	apperrors "github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/generate"
	"github.com/raveheart1/relnote/internal/github"
)

var (
	generateFromGitFlag   bool
	generateMilestoneFlag string
	generateOwnerFlag     string
	generateRepoFlag      string
	generateOrgFlag       string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft entries for the in-development release",
	Long: `Draft changelog entries for the in-development release.

Two sources are available:
  --from-git       commits since the latest version tag, routed by
                   conventional-commit prefix (feat, fix, docs, ...)
  --milestone M    merged GitHub pull requests on milestone M, routed by
                   label (enhancement, bug, docs, breaking change)

Drafted entries are appended to the development entry in the YAML source;
entries already present are skipped. Contributor names are merged in.

Examples:
  relnote generate --from-git
  relnote generate --milestone 0.9.1
  relnote generate --milestone 0.9.1 --org acme   # exclude acme members`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	generateCmd.GroupID = GroupAutomation
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&generateFromGitFlag, "from-git", false, "Draft from commits since the latest tag")
	generateCmd.Flags().StringVar(&generateMilestoneFlag, "milestone", "", "Draft from merged pull requests on this milestone")
	generateCmd.Flags().StringVar(&generateOwnerFlag, "owner", "", "GitHub repository owner (overrides config)")
	generateCmd.Flags().StringVar(&generateRepoFlag, "repo", "", "GitHub repository name (overrides config)")
	generateCmd.Flags().StringVar(&generateOrgFlag, "org", "", "Exclude members of this organization from contributors")
}

func runGenerate(cmd *cobra.Command) error {
	if generateFromGitFlag == (generateMilestoneFlag != "") {
		return apperrors.InvalidFlagCombination("--from-git, --milestone",
			"Exactly one source must be selected")
	}

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
	if !log.HasDevelopment() {
		return apperrors.NoDevelopmentEntry()
	}

	var draft *generate.Draft
	if generateFromGitFlag {
		draft, err = generate.FromGit("")
	} else {
		draft, err = draftFromGitHub(cmd, cfg)
	}
	if err != nil {
		return err
	}

	if draft.IsEmpty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to draft.")
		return nil
	}

	added, err := draft.Apply(log)
	if err != nil {
		return err
	}

	if err := changelog.Validate(log); err != nil {
		return fmt.Errorf("changelog invalid after drafting: %w", err)
	}
	if err := changelog.Save(log, cfg.ChangelogYAML); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.ChangelogYAML, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Drafted %d entries into %s\n", added, cfg.ChangelogYAML)
	fmt.Fprintf(cmd.OutOrStdout(), "Review them, then run 'relnote sync' to refresh %s\n", cfg.ChangelogMD)
	return nil
}

func draftFromGitHub(cmd *cobra.Command, cfg *config.Configuration) (*generate.Draft, error) {
	owner := generateOwnerFlag
	if owner == "" {
		owner = cfg.GitHub.Owner
	}
	repo := generateRepoFlag
	if repo == "" {
		repo = cfg.GitHub.Repo
	}
	if owner == "" || repo == "" {
		return nil, apperrors.GitHubRepoNotConfigured()
	}

	token := cfg.GitHub.Token()
	if token == "" && cfg.GitHub.TokenEnv != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s is not set, making unauthenticated requests\n", cfg.GitHub.TokenEnv)
	}

	client := github.NewClient(cmd.Context(), owner, repo, token)
	return generate.FromGitHub(cmd.Context(), client, generateMilestoneFlag, generateOrgFlag, cfg.GitHub.ExcludeUsers)
}
