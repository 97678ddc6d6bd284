package changelog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relnote/internal/retry"
)

const remoteYAML = `project: myplugin
releases:
  - version: "0.7.0"
    date: "2026-01-01"
    sections:
      new_features:
        - Test feature
    contributors:
      - Jane Doe
`

func TestFetchFromURL(t *testing.T) {
	tests := map[string]struct {
		handler      http.HandlerFunc
		wantErr      bool
		wantErrMsg   string
		wantProject  string
		wantReleases int
	}{
		"successful fetch": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(remoteYAML))
			},
			wantProject:  "myplugin",
			wantReleases: 1,
		},
		"server error": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			wantErrMsg: "unexpected status code: 500",
		},
		"not found": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr:    true,
			wantErrMsg: "unexpected status code: 404",
		},
		"invalid YAML": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("invalid: [yaml"))
			},
			wantErr:    true,
			wantErrMsg: "parsing changelog",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			ctx := context.Background()
			log, err := fetchFromURL(ctx, server.URL)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantProject, log.Project)
			assert.Len(t, log.Releases, tt.wantReleases)
		})
	}
}

func TestFetchRemoteWithPolicy_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(remoteYAML))
	}))
	defer server.Close()

	oldURL := RemoteChangelogURL
	RemoteChangelogURL = server.URL
	defer func() { RemoteChangelogURL = oldURL }()

	policy := retry.Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, Multiplier: 2}
	log, err := FetchRemoteWithPolicy(context.Background(), policy)
	require.NoError(t, err)
	assert.Equal(t, "myplugin", log.Project)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchRemoteWithFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	oldURL := RemoteChangelogURL
	RemoteChangelogURL = server.URL
	defer func() { RemoteChangelogURL = oldURL }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log, isRemote, err := FetchRemoteWithFallback(ctx)
	require.NoError(t, err)
	assert.False(t, isRemote, "should fall back to embedded changelog")
	assert.Equal(t, "relnote", log.Project)
}

func TestFetchReleaseFromRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(remoteYAML))
	}))
	defer server.Close()

	oldURL := RemoteChangelogURL
	RemoteChangelogURL = server.URL
	defer func() { RemoteChangelogURL = oldURL }()

	r, isRemote, err := FetchReleaseFromRemote(context.Background(), "v0.7.0")
	require.NoError(t, err)
	assert.True(t, isRemote)
	assert.Equal(t, "0.7.0", r.Version)

	_, _, err = FetchReleaseFromRemote(context.Background(), "9.9.9")
	require.Error(t, err)
	var notFound *ReleaseNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
