// Package generate drafts changelog entries for the in-development release
// from repository history or from merged GitHub pull requests.
package generate

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/git"
	"github.com/raveheart1/relnote/internal/github"
)

// Draft holds generated entries grouped by category, plus the contributor
// names discovered while drafting.
type Draft struct {
	Entries      map[string][]string
	Contributors []string
}

// IsEmpty reports whether the draft produced nothing.
func (d *Draft) IsEmpty() bool {
	for _, entries := range d.Entries {
		if len(entries) > 0 {
			return false
		}
	}
	return true
}

// FromGit drafts entries from the commits since the latest version tag.
// Commit subjects using conventional-commit prefixes are routed to the
// matching category; everything else counts as an improvement.
func FromGit(repoPath string) (*Draft, error) {
	tag, err := git.LatestTag(repoPath)
	if err != nil {
		return nil, fmt.Errorf("finding latest tag: %w", err)
	}

	commits, err := git.CommitsSince(repoPath, tag)
	if err != nil {
		return nil, fmt.Errorf("reading commits since %q: %w", tag, err)
	}

	draft := &Draft{Entries: make(map[string][]string)}
	for _, c := range commits {
		category, text := classifySubject(c.Subject)
		if text == "" {
			continue
		}
		draft.Entries[category] = append(draft.Entries[category], text)
	}
	draft.Contributors = git.Authors(commits)
	return draft, nil
}

// classifySubject maps a commit subject to a changelog category and entry
// text. Returns empty text for subjects that should be skipped.
func classifySubject(subject string) (string, string) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", ""
	}

	category := changelog.CategoryImprovements
	if typ, rest, ok := splitConventional(subject); ok {
		switch {
		case strings.HasSuffix(typ, "!"):
			category = changelog.CategoryBreakingChanges
		case typ == "feat":
			category = changelog.CategoryNewFeatures
		case typ == "fix":
			category = changelog.CategoryBugFixes
		case typ == "docs":
			category = changelog.CategoryDocumentation
		case typ == "chore" || typ == "ci" || typ == "test":
			return "", ""
		}
		subject = rest
	}

	return category, entryText(subject)
}

// splitConventional splits "type(scope): subject" into type and subject.
func splitConventional(subject string) (string, string, bool) {
	idx := strings.Index(subject, ": ")
	if idx <= 0 {
		return "", subject, false
	}

	typ := strings.ToLower(strings.TrimSpace(subject[:idx]))
	if open := strings.IndexByte(typ, '('); open > 0 && strings.HasSuffix(typ, ")") {
		typ = typ[:open]
	}
	bang := strings.TrimSuffix(typ, "!")
	for _, known := range []string{"feat", "fix", "docs", "chore", "ci", "test", "refactor", "perf", "build"} {
		if bang == known {
			return typ, strings.TrimSpace(subject[idx+2:]), true
		}
	}
	return "", subject, false
}

// entryText normalizes a subject into changelog entry prose: capitalized,
// ending with a period.
func entryText(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return ""
	}
	subject = strings.ToUpper(subject[:1]) + subject[1:]
	if !strings.HasSuffix(subject, ".") {
		subject += "."
	}
	return subject
}

// FromGitHub drafts entries from the merged pull requests on a milestone.
// Pull requests and organization members are fetched concurrently; members
// of excludeOrg and the logins in excludeUsers are dropped from the
// contributor list.
func FromGitHub(ctx context.Context, client *github.Client, milestone, excludeOrg string, excludeUsers []string) (*Draft, error) {
	var (
		prs     []github.PullRequest
		members map[string]struct{}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prs, err = client.MergedPRsForMilestone(ctx, milestone)
		return err
	})
	if excludeOrg != "" {
		g.Go(func() error {
			var err error
			members, err = client.OrgMembers(ctx, excludeOrg)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching milestone %q: %w", milestone, err)
	}

	if members == nil {
		members = make(map[string]struct{})
	}
	for _, login := range excludeUsers {
		members[login] = struct{}{}
	}

	draft := &Draft{Entries: make(map[string][]string)}
	for _, pr := range prs {
		draft.Entries[pr.Category()] = append(draft.Entries[pr.Category()], pr.Entry())
	}
	draft.Contributors = github.Contributors(prs, members)
	return draft, nil
}

// Apply appends the draft to the in-development release. Entries already
// present are skipped, and the contributor list is merged and re-sorted.
// Returns the number of entries added.
func (d *Draft) Apply(cl *changelog.Changelog) (int, error) {
	dev := cl.GetDevelopment()
	if dev == nil {
		return 0, fmt.Errorf("no in-development release to apply the draft to")
	}

	added := 0
	for _, category := range changelog.ValidCategories() {
		existing := make(map[string]bool)
		for _, e := range dev.Sections.Category(category) {
			existing[e] = true
		}
		for _, e := range d.Entries[category] {
			if existing[e] {
				continue
			}
			dev.Sections.Append(category, e)
			existing[e] = true
			added++
		}
	}

	seen := make(map[string]bool, len(dev.Contributors))
	for _, name := range dev.Contributors {
		seen[name] = true
	}
	for _, name := range d.Contributors {
		if !seen[name] {
			dev.Contributors = append(dev.Contributors, name)
			seen[name] = true
		}
	}
	changelog.SortContributors(dev.Contributors)

	return added, nil
}
