package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v60/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relnote/internal/changelog"
)

// newTestClient points a Client at a fake GitHub API served by mux.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	api := gh.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	api.BaseURL = base

	return &Client{gh: api, owner: "acme", repo: "widgets"}
}

func TestMergedPRsForMilestone(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/milestones", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"number": 7, "title": "0.9.1"}, {"number": 8, "title": "1.0.0"}]`))
	})
	mux.HandleFunc("/repos/acme/widgets/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("milestone"))
		assert.Equal(t, "closed", r.URL.Query().Get("state"))
		w.Write([]byte(`[
			{"number": 41, "title": "Add R and MS gate support",
			 "html_url": "https://github.com/acme/widgets/pull/41",
			 "user": {"login": "nkilloran"},
			 "labels": [{"name": "enhancement"}],
			 "pull_request": {"url": "https://api.github.com/repos/acme/widgets/pulls/41"}},
			{"number": 42, "title": "Tracking issue",
			 "html_url": "https://github.com/acme/widgets/issues/42",
			 "user": {"login": "someone"}},
			{"number": 43, "title": "Abandoned refactor",
			 "html_url": "https://github.com/acme/widgets/pull/43",
			 "user": {"login": "driveby"},
			 "pull_request": {"url": "https://api.github.com/repos/acme/widgets/pulls/43"}}
		]`))
	})
	mux.HandleFunc("/repos/acme/widgets/issues/41/events", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"event": "labeled"}, {"event": "merged"}]`))
	})
	mux.HandleFunc("/repos/acme/widgets/issues/43/events", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"event": "closed"}]`))
	})

	c := newTestClient(t, mux)
	prs, err := c.MergedPRsForMilestone(context.Background(), "0.9.1")
	require.NoError(t, err)

	require.Len(t, prs, 1)
	assert.Equal(t, 41, prs[0].Number)
	assert.Equal(t, "Add R and MS gate support", prs[0].Title)
	assert.Equal(t, "nkilloran", prs[0].Author)
	assert.Equal(t, []string{"enhancement"}, prs[0].Labels)
}

func TestMergedPRsForMilestone_UnknownMilestone(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/milestones", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	c := newTestClient(t, mux)
	_, err := c.MergedPRsForMilestone(context.Background(), "9.9.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no milestone with title "9.9.9"`)
}

func TestOrgMembers(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/orgs/acme/members", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"login": "maintainer"}, {"login": "bot"}]`))
	})

	c := newTestClient(t, mux)
	members, err := c.OrgMembers(context.Background(), "acme")
	require.NoError(t, err)

	assert.Len(t, members, 2)
	assert.Contains(t, members, "maintainer")
	assert.Contains(t, members, "bot")
}

func TestPullRequestCategory(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		labels []string
		want   string
	}{
		"enhancement maps to new features": {
			labels: []string{"enhancement"},
			want:   changelog.CategoryNewFeatures,
		},
		"breaking change wins over later labels": {
			labels: []string{"breaking change", "bug"},
			want:   changelog.CategoryBreakingChanges,
		},
		"docs label": {
			labels: []string{"docs"},
			want:   changelog.CategoryDocumentation,
		},
		"bugfix label": {
			labels: []string{"bugfix"},
			want:   changelog.CategoryBugFixes,
		},
		"unlabeled defaults to improvements": {
			labels: nil,
			want:   changelog.CategoryImprovements,
		},
		"unknown labels default to improvements": {
			labels: []string{"needs-review"},
			want:   changelog.CategoryImprovements,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			pr := PullRequest{Labels: tc.labels}
			assert.Equal(t, tc.want, pr.Category())
		})
	}
}

func TestPullRequestEntry(t *testing.T) {
	t.Parallel()

	pr := PullRequest{
		Number: 41,
		Title:  "Add R and MS gate support.",
		URL:    "https://github.com/acme/widgets/pull/41",
	}
	assert.Equal(t,
		"Add R and MS gate support. [(#41)](https://github.com/acme/widgets/pull/41)",
		pr.Entry())
}

func TestContributors(t *testing.T) {
	t.Parallel()

	prs := []PullRequest{
		{Author: "zelda"},
		{Author: "Alex"},
		{Author: "zelda"},
		{Author: "maintainer"},
	}
	exclude := map[string]struct{}{"maintainer": {}}

	assert.Equal(t, []string{"Alex", "zelda"}, Contributors(prs, exclude))
}
