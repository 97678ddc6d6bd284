// Package git provides Git repository utilities for relnote including tag
// discovery and commit history, used to draft release entries from local
// repository state. It uses the go-git library for all operations.
package git

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"golang.org/x/mod/semver"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// IsRepository checks if the given path (or the current directory when empty)
// is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsRepository: %v", result)
	return result
}

// RepositoryRoot returns the absolute path to the repository root.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// CurrentBranch returns the name of the current git branch.
// Returns empty string if in detached HEAD state.
func CurrentBranch(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	if !head.Name().IsBranch() {
		logDebug("[git] CurrentBranch: detached HEAD state")
		return "", nil
	}

	branch := head.Name().Short()
	logDebug("[git] CurrentBranch: %s", branch)
	return branch, nil
}

// Commit is a single commit reaching HEAD, reduced to the fields relnote
// needs when drafting release entries.
type Commit struct {
	Hash    string
	Subject string
	Author  string
}

// LatestTag returns the highest semantic-version tag in the repository.
// Tags that do not parse as semantic versions are ignored. Returns empty
// string without error when no version tags exist.
func LatestTag(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	tagIter, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}

	var best string
	err = tagIter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		canonical := canonicalVersion(name)
		if canonical == "" {
			logDebug("[git] LatestTag: skipping non-version tag %s", name)
			return nil
		}
		if best == "" || semver.Compare(canonical, canonicalVersion(best)) > 0 {
			best = name
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("iterating tags: %w", err)
	}

	logDebug("[git] LatestTag: %s", best)
	return best, nil
}

// canonicalVersion turns a tag name into a canonical semver string for
// comparison, or empty string when the tag is not a version.
func canonicalVersion(tag string) string {
	v := tag
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}

// CommitsSince returns the commits reachable from HEAD down to (but not
// including) the given tag, newest first. An empty tag returns the full
// history of HEAD.
func CommitsSince(path, tag string) ([]Commit, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	var boundary plumbing.Hash
	if tag != "" {
		boundary, err = resolveTagCommit(repo, tag)
		if err != nil {
			return nil, err
		}
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if tag != "" && c.Hash == boundary {
			return storer.ErrStop
		}
		commits = append(commits, Commit{
			Hash:    c.Hash.String(),
			Subject: commitSubject(c.Message),
			Author:  c.Author.Name,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}

	logDebug("[git] CommitsSince(%q): %d commits", tag, len(commits))
	return commits, nil
}

// resolveTagCommit resolves a tag name to the commit it points at,
// peeling annotated tags.
func resolveTagCommit(repo *git.Repository, tag string) (plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(tag))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving tag '%s': %w", tag, err)
	}

	if tagObj, tagErr := repo.TagObject(*hash); tagErr == nil {
		commit, commitErr := tagObj.Commit()
		if commitErr != nil {
			return plumbing.ZeroHash, fmt.Errorf("peeling tag '%s': %w", tag, commitErr)
		}
		return commit.Hash, nil
	}

	return *hash, nil
}

// commitSubject returns the first line of a commit message.
func commitSubject(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		message = message[:idx]
	}
	return strings.TrimSpace(message)
}

// Authors returns the unique author names across the given commits,
// sorted alphabetically ignoring case.
func Authors(commits []Commit) []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range commits {
		name := strings.TrimSpace(c.Author)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}
