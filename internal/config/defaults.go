package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# Relnote Configuration
# See 'relnote --help' for commands

# Changelog files
changelog_yaml: CHANGELOG.yaml        # YAML source of truth
changelog_md: CHANGELOG.md            # Generated markdown document
project: ""                           # Project name (default: current directory name)
repo_url: ""                          # Repository URL for reference links

# Display settings
default_entries: 5                    # Entries shown by 'relnote show'

# Remote changelog settings
remote_url: ""                        # Raw URL of the published changelog.yaml
remote_timeout: 5                     # Overall fetch timeout in seconds
remote_max_attempts: 3                # Retry attempts for transient failures

# GitHub source for 'relnote generate'
github:
  owner: ""                           # Repository owner
  repo: ""                            # Repository name
  token_env: GITHUB_TOKEN             # Env var holding the API token
  exclude_users: []                   # Logins omitted from contributor lists
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"project":              "",
		"changelog_yaml":       "CHANGELOG.yaml",
		"changelog_md":         "CHANGELOG.md",
		"repo_url":             "",
		"default_entries":      5,
		"remote_url":           "",
		"remote_timeout":       5,
		"remote_max_attempts":  3,
		"github.owner":         "",
		"github.repo":          "",
		"github.token_env":     "GITHUB_TOKEN",
		"github.exclude_users": []string{},
	}
}
