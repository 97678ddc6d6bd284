package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Do(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		policy       Policy
		failures     int // number of calls that fail before success
		wantErr      bool
		wantErrMsg   string
		wantAttempts int
	}{
		"succeeds first try": {
			policy:       Policy{MaxAttempts: 3, InitialInterval: time.Millisecond},
			failures:     0,
			wantAttempts: 1,
		},
		"succeeds after one failure": {
			policy:       Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, Multiplier: 2},
			failures:     1,
			wantAttempts: 2,
		},
		"exhausts attempts": {
			policy:       Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, Multiplier: 2},
			failures:     5,
			wantErr:      true,
			wantErrMsg:   "after 3 attempts",
			wantAttempts: 3,
		},
		"zero attempts treated as one": {
			policy:       Policy{MaxAttempts: 0, InitialInterval: time.Millisecond},
			failures:     5,
			wantErr:      true,
			wantErrMsg:   "after 1 attempts",
			wantAttempts: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			err := tt.policy.Do(context.Background(), func(_ context.Context) error {
				calls++
				if calls <= tt.failures {
					return errors.New("transient failure")
				}
				return nil
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantAttempts, calls)
		})
	}
}

func TestPolicy_Do_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultPolicy().Do(ctx, func(_ context.Context) error {
		t.Fatal("op should not run with cancelled context")
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPolicy_Do_CancelDuringBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	policy := Policy{MaxAttempts: 5, InitialInterval: time.Hour}
	calls := 0

	done := make(chan error, 1)
	go func() {
		done <- policy.Do(ctx, func(_ context.Context) error {
			calls++
			return errors.New("transient failure")
		})
	}()

	// Let the first attempt fail and the backoff timer start.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("Do did not return after context cancellation")
	}
}

func TestDefaultPolicy(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, p.InitialInterval)
	assert.Equal(t, 4*time.Second, p.MaxInterval)
	assert.Equal(t, float64(2), p.Multiplier)
}
