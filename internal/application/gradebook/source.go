package gradebook

import (
	"context"
	"log/slog"
	"time"

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/student"
	"github.com/MiracleAriel/seminar12-gb-hw/pkg/retry"
)

// RetryingSource retries a remote subject source while it reports
// shared.ErrSourceUnavailable. Format errors are returned at once.
type RetryingSource struct {
	source  student.SubjectSource
	retrier *retry.Retrier
	timeout time.Duration
}

// NewRetryingSource wraps source. maxAttempts counts the first attempt;
// timeout bounds the whole load when positive.
func NewRetryingSource(source student.SubjectSource, maxAttempts int, timeout time.Duration, logger *slog.Logger) *RetryingSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryingSource{
		source:  source,
		timeout: timeout,
		retrier: retry.New(
			retry.WithMaxAttempts(maxAttempts),
			retry.WithInitialDelay(200*time.Millisecond),
			retry.WithMaxDelay(2*time.Second),
			retry.WithRetryIf(shared.IsRetryable),
			retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
				logger.Warn("subject source unavailable, retrying",
					"attempt", attempt,
					"delay", delay,
					"error", err,
				)
			}),
		),
	}
}

// LoadSubjects implements student.SubjectSource.
func (r *RetryingSource) LoadSubjects(ctx context.Context) ([]string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	return retry.DoWithData(ctx, r.retrier, r.source.LoadSubjects)
}
