// Package git tests tag discovery and commit history against throwaway
// repositories built with go-git.
package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepo wraps a temporary repository with helpers for commits and tags.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	seq  int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo}
}

func (r *testRepo) commit(subject, author string) string {
	r.t.Helper()
	r.seq++

	name := filepath.Join(r.dir, "file.txt")
	require.NoError(r.t, os.WriteFile(name, []byte(subject), 0o644))

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Add("file.txt")
	require.NoError(r.t, err)

	sig := &object.Signature{
		Name:  author,
		Email: "dev@example.com",
		When:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(r.seq) * time.Hour),
	}
	hash, err := wt.Commit(subject, &gogit.CommitOptions{Author: sig, Committer: sig})
	require.NoError(r.t, err)
	return hash.String()
}

// tag creates a tag pointing at HEAD, annotated when requested.
func (r *testRepo) tag(name string, annotated bool) {
	r.t.Helper()
	var opts *gogit.CreateTagOptions
	if annotated {
		opts = &gogit.CreateTagOptions{
			Message: name,
			Tagger: &object.Signature{
				Name:  "Tagger",
				Email: "tagger@example.com",
				When:  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			},
		}
	}
	head, err := r.repo.Head()
	require.NoError(r.t, err)
	_, err = r.repo.CreateTag(name, head.Hash(), opts)
	require.NoError(r.t, err)
}

func TestIsRepository(t *testing.T) {
	t.Parallel()

	t.Run("inside a repository", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(t)
		assert.True(t, IsRepository(r.dir))
	})

	t.Run("nested directory detects repository", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(t)
		nested := filepath.Join(r.dir, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		assert.True(t, IsRepository(nested))
	})

	t.Run("plain directory is not a repository", func(t *testing.T) {
		t.Parallel()
		assert.False(t, IsRepository(t.TempDir()))
	})
}

func TestCurrentBranch(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("initial commit", "Alex Mora")

	branch, err := CurrentBranch(r.dir)
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestLatestTag(t *testing.T) {
	t.Parallel()

	t.Run("no tags", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(t)
		r.commit("initial commit", "Alex Mora")

		tag, err := LatestTag(r.dir)
		require.NoError(t, err)
		assert.Empty(t, tag)
	})

	t.Run("picks highest semver tag", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(t)
		r.commit("first", "Alex Mora")
		r.tag("v0.1.0", false)
		r.commit("second", "Alex Mora")
		r.tag("v0.10.0", false)
		r.commit("third", "Alex Mora")
		r.tag("v0.2.0", false)

		tag, err := LatestTag(r.dir)
		require.NoError(t, err)
		assert.Equal(t, "v0.10.0", tag)
	})

	t.Run("ignores non-version tags and accepts bare versions", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(t)
		r.commit("first", "Alex Mora")
		r.tag("release-candidate", false)
		r.tag("0.9.1", true)

		tag, err := LatestTag(r.dir)
		require.NoError(t, err)
		assert.Equal(t, "0.9.1", tag)
	})
}

func TestCommitsSince(t *testing.T) {
	t.Parallel()

	t.Run("empty tag returns full history newest first", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(t)
		r.commit("first", "Alex Mora")
		r.commit("second", "Dana Okafor")

		commits, err := CommitsSince(r.dir, "")
		require.NoError(t, err)
		require.Len(t, commits, 2)
		assert.Equal(t, "second", commits[0].Subject)
		assert.Equal(t, "first", commits[1].Subject)
	})

	t.Run("stops at lightweight tag", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(t)
		r.commit("first", "Alex Mora")
		r.tag("v0.1.0", false)
		r.commit("second", "Dana Okafor")
		r.commit("third", "Alex Mora")

		commits, err := CommitsSince(r.dir, "v0.1.0")
		require.NoError(t, err)
		require.Len(t, commits, 2)
		assert.Equal(t, "third", commits[0].Subject)
		assert.Equal(t, "second", commits[1].Subject)
	})

	t.Run("stops at annotated tag", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(t)
		r.commit("first", "Alex Mora")
		r.tag("v0.1.0", true)
		r.commit("second", "Dana Okafor")

		commits, err := CommitsSince(r.dir, "v0.1.0")
		require.NoError(t, err)
		require.Len(t, commits, 1)
		assert.Equal(t, "second", commits[0].Subject)
	})

	t.Run("unknown tag errors", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(t)
		r.commit("first", "Alex Mora")

		_, err := CommitsSince(r.dir, "v9.9.9")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "v9.9.9")
	})

	t.Run("subject is first line only", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(t)
		r.commit("subject line\n\nbody goes here", "Alex Mora")

		commits, err := CommitsSince(r.dir, "")
		require.NoError(t, err)
		require.Len(t, commits, 1)
		assert.Equal(t, "subject line", commits[0].Subject)
	})
}

func TestAuthors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commits []Commit
		want    []string
	}{
		"deduplicates and sorts ignoring case": {
			commits: []Commit{
				{Author: "nathan killoran"},
				{Author: "Alex Mora"},
				{Author: "nathan killoran"},
				{Author: "Dana Okafor"},
			},
			want: []string{"Alex Mora", "Dana Okafor", "nathan killoran"},
		},
		"blank authors dropped": {
			commits: []Commit{{Author: "  "}, {Author: "Alex Mora"}},
			want:    []string{"Alex Mora"},
		},
		"empty input": {
			commits: nil,
			want:    nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Authors(tc.commits))
		})
	}
}
