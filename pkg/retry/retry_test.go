package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("flaky")

func fastRetrier(opts ...Option) *Retrier {
	base := []Option{WithInitialDelay(time.Millisecond), WithMaxDelay(2 * time.Millisecond), WithJitter(0)}
	return New(append(base, opts...)...)
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	var retried []int

	err := fastRetrier(
		WithMaxAttempts(3),
		WithOnRetry(func(attempt int, _ error, _ time.Duration) { retried = append(retried, attempt) }),
	).Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errFlaky
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	fatal := errors.New("bad data")

	err := fastRetrier(
		WithRetryIf(func(err error) bool { return errors.Is(err, errFlaky) }),
	).Do(context.Background(), func(context.Context) error {
		calls++
		return fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestDo_PermanentIsUnwrapped(t *testing.T) {
	cause := errors.New("permanent")

	err := fastRetrier().Do(context.Background(), func(context.Context) error {
		return Permanent(cause)
	})

	assert.Same(t, cause, err)
	assert.False(t, IsPermanent(err))
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := fastRetrier(WithMaxAttempts(4)).Do(context.Background(), func(context.Context) error {
		calls++
		return errFlaky
	})

	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 4, calls)
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fastRetrier().Do(ctx, func(context.Context) error {
		t.Fatal("operation must not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoWithData(t *testing.T) {
	calls := 0
	got, err := DoWithData(context.Background(), fastRetrier(), func(context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return nil, errFlaky
		}
		return []string{"Math"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Math"}, got)
}

func TestCalculateDelay_CappedAtMax(t *testing.T) {
	r := New(WithInitialDelay(100*time.Millisecond), WithMaxDelay(250*time.Millisecond), WithJitter(0))

	assert.Equal(t, 100*time.Millisecond, r.calculateDelay(1))
	assert.Equal(t, 200*time.Millisecond, r.calculateDelay(2))
	assert.Equal(t, 250*time.Millisecond, r.calculateDelay(3))
}
