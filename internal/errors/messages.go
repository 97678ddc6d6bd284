package errors

import "fmt"

// Common error messages for the relnote CLI.
// These templates ensure consistent, actionable error messages.

// MissingChangelogFile creates an error for a missing changelog YAML file.
func MissingChangelogFile(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found: %s", path),
		"Run 'relnote init' to create a changelog",
		"Or point --config at a project with an existing changelog",
	)
}

// MissingReleaseNotesFile creates an error for a missing rendered markdown file.
func MissingReleaseNotesFile(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("release notes not found: %s", path),
		"Run 'relnote sync' to render the markdown from the changelog",
		"Or check that you're in the project root",
	)
}

// ChangelogParseError creates an error when the changelog cannot be parsed.
func ChangelogParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("failed to parse changelog: %s", path),
		"Check the file for YAML syntax errors",
		"Run 'relnote check' for a detailed report",
	)
}

// ReleaseNotFound creates an error when a requested release does not exist.
func ReleaseNotFound(version string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("release not found: %s", version),
		"List known versions with: relnote show --list",
		"Versions may be given with or without a leading 'v'",
	)
}

// InvalidVersionFormat creates an error for a malformed version argument.
func InvalidVersionFormat(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid version format: %s", provided),
		"relnote release <MAJOR.MINOR.PATCH>",
		"Versions must follow semantic versioning (e.g., 0.9.1)",
	)
}

// NoDevelopmentEntry creates an error when no in-development release exists.
func NoDevelopmentEntry() *CLIError {
	return NewPrerequisiteError(
		"no in-development release in the changelog",
		"Run 'relnote release <version>' to finalize and open a new cycle",
		"Or add one manually with a version ending in -dev",
	)
}

// DevelopmentEntryExists creates an error when an in-development release already exists.
func DevelopmentEntryExists(version string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("an in-development release already exists: %s", version),
		"Add entries to it with: relnote add",
		"Or finalize it first with: relnote release <version>",
	)
}

// InvalidCategory creates an error for an unknown change category.
func InvalidCategory(provided string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid category: %s", provided),
		"Valid categories: new_features, breaking_changes, improvements, documentation, bug_fixes",
		"Example: relnote add --category bug_fixes \"Fix retry timer reset\"",
	)
}

// ConfigFileNotFound creates an error for missing config file.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Run 'relnote init' to create default configuration",
		"Or create the file manually with required settings",
	)
}

// ConfigParseError creates an error for invalid config file format.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML syntax errors",
		"Reset to defaults with: relnote init --force",
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'relnote <command> --help' to see valid options",
	)
}

// GitNotRepository creates an error when not in a git repository.
func GitNotRepository() *CLIError {
	return NewPrerequisiteError(
		"not a git repository",
		"Initialize with: git init",
		"Or navigate to an existing repository",
	)
}

// GitHubTokenMissing creates an error when the GitHub token is not set.
func GitHubTokenMissing(envVar string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("GitHub token not set: %s", envVar),
		fmt.Sprintf("Export a personal access token: export %s=<token>", envVar),
		"Or change github.token_env in .relnote/config.yml",
	)
}

// GitHubRepoNotConfigured creates an error when owner/repo are missing.
func GitHubRepoNotConfigured() *CLIError {
	return NewConfigError(
		"GitHub owner and repository are not configured",
		"Set github.owner and github.repo in .relnote/config.yml",
		"Or pass --owner and --repo on the command line",
	)
}

// RemoteFetchError creates an error when the remote changelog cannot be fetched.
func RemoteFetchError(url string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("failed to fetch remote changelog: %s", url),
		"Check your network connection",
		"Use --offline to read the bundled changelog instead",
	)
}

// DirectoryNotFound creates an error for missing directory.
func DirectoryNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("directory not found: %s", path),
		"Create the directory with: mkdir -p "+path,
		"Or check that the path is correct",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}
