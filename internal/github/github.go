// Package github fetches merged pull requests from the GitHub API so release
// entries can be drafted from a milestone. Labels on each pull request decide
// which changelog category the entry lands in.
package github

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	"github.com/raveheart1/relnote/internal/changelog"
)

// debugLogger mirrors the git package hook. Set via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for GitHub API operations.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Client wraps the GitHub API for a single repository.
type Client struct {
	gh    *gh.Client
	owner string
	repo  string
}

// NewClient creates a client for the given repository. An empty token makes
// unauthenticated requests, which GitHub rate-limits aggressively.
func NewClient(ctx context.Context, owner, repo, token string) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}
	return &Client{gh: gh.NewClient(hc), owner: owner, repo: repo}
}

// PullRequest is a merged pull request reduced to the fields relnote needs.
type PullRequest struct {
	Number int
	Title  string
	Author string
	URL    string
	Labels []string
}

// Category maps the pull request's labels to a changelog category.
// The first matching label wins; unlabeled changes count as improvements.
func (pr PullRequest) Category() string {
	for _, label := range pr.Labels {
		switch strings.ToLower(label) {
		case "breaking change", "breaking-change", "breaking":
			return changelog.CategoryBreakingChanges
		case "bug", "bugfix", "bug-fix":
			return changelog.CategoryBugFixes
		case "documentation", "docs":
			return changelog.CategoryDocumentation
		case "enhancement", "feature", "new feature":
			return changelog.CategoryNewFeatures
		}
	}
	return changelog.CategoryImprovements
}

// Entry renders the pull request as a changelog entry with a markdown link
// back to the pull request.
func (pr PullRequest) Entry() string {
	return fmt.Sprintf("%s. [(#%d)](%s)", strings.TrimRight(pr.Title, "."), pr.Number, pr.URL)
}

// MergedPRsForMilestone returns the merged pull requests assigned to the
// milestone with the given title.
func (c *Client) MergedPRsForMilestone(ctx context.Context, title string) ([]PullRequest, error) {
	number, err := c.milestoneNumber(ctx, title)
	if err != nil {
		return nil, err
	}

	issues, err := c.closedIssuesForMilestone(ctx, number)
	if err != nil {
		return nil, err
	}

	var prs []PullRequest
	for _, issue := range issues {
		if issue.PullRequestLinks == nil {
			logDebug("[github] #%d is not a pull request", issue.GetNumber())
			continue
		}
		merged, err := c.wasMerged(ctx, issue.GetNumber())
		if err != nil {
			return nil, err
		}
		if !merged {
			logDebug("[github] #%d closed without merging", issue.GetNumber())
			continue
		}

		labels := make([]string, 0, len(issue.Labels))
		for _, l := range issue.Labels {
			labels = append(labels, l.GetName())
		}
		prs = append(prs, PullRequest{
			Number: issue.GetNumber(),
			Title:  issue.GetTitle(),
			Author: issue.GetUser().GetLogin(),
			URL:    issue.GetHTMLURL(),
			Labels: labels,
		})
	}

	logDebug("[github] milestone %q: %d merged pull requests", title, len(prs))
	return prs, nil
}

// milestoneNumber resolves a milestone title to its number.
func (c *Client) milestoneNumber(ctx context.Context, title string) (int, error) {
	opt := &gh.MilestoneListOptions{
		State:       "all",
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	for {
		milestones, resp, err := c.gh.Issues.ListMilestones(ctx, c.owner, c.repo, opt)
		if err != nil {
			return 0, fmt.Errorf("listing milestones: %w", err)
		}
		for _, m := range milestones {
			if m.GetTitle() == title {
				return m.GetNumber(), nil
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return 0, fmt.Errorf("no milestone with title %q was found", title)
}

// closedIssuesForMilestone lists closed issues (including pull requests)
// assigned to the milestone.
func (c *Client) closedIssuesForMilestone(ctx context.Context, number int) ([]*gh.Issue, error) {
	opt := &gh.IssueListByRepoOptions{
		State:       "closed",
		Milestone:   strconv.Itoa(number),
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var all []*gh.Issue
	for {
		issues, resp, err := c.gh.Issues.ListByRepo(ctx, c.owner, c.repo, opt)
		if err != nil {
			return nil, fmt.Errorf("listing issues for milestone %d: %w", number, err)
		}
		all = append(all, issues...)
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return all, nil
}

// wasMerged reports whether the pull request has a merged event.
func (c *Client) wasMerged(ctx context.Context, number int) (bool, error) {
	events, _, err := c.gh.Issues.ListIssueEvents(ctx, c.owner, c.repo, number, nil)
	if err != nil {
		return false, fmt.Errorf("listing events for #%d: %w", number, err)
	}
	for _, e := range events {
		if e.GetEvent() == "merged" {
			return true, nil
		}
	}
	return false, nil
}

// OrgMembers returns the set of member logins for an organization.
// Used to exclude maintainers from contributor lists.
func (c *Client) OrgMembers(ctx context.Context, org string) (map[string]struct{}, error) {
	opt := &gh.ListMembersOptions{}
	members := make(map[string]struct{})
	for {
		page, resp, err := c.gh.Organizations.ListMembers(ctx, org, opt)
		if err != nil {
			return nil, fmt.Errorf("listing members of %s: %w", org, err)
		}
		for _, m := range page {
			members[m.GetLogin()] = struct{}{}
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	logDebug("[github] org %s: %d members", org, len(members))
	return members, nil
}

// Contributors returns the unique authors of the given pull requests, sorted
// alphabetically ignoring case. Logins in exclude are skipped.
func Contributors(prs []PullRequest, exclude map[string]struct{}) []string {
	seen := make(map[string]bool)
	var names []string
	for _, pr := range prs {
		if pr.Author == "" || seen[pr.Author] {
			continue
		}
		if _, skip := exclude[pr.Author]; skip {
			continue
		}
		seen[pr.Author] = true
		names = append(names, pr.Author)
	}

	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}
