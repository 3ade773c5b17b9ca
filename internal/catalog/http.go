package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// retryableError marks failures worth another attempt
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// fetcher issues JSON GETs against a CDN, retrying transport errors and 5xx
type fetcher struct {
	client      *http.Client
	userAgent   string
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

func newFetcher(client *http.Client, userAgent string, maxAttempts int, retryDelay time.Duration, logger *slog.Logger) fetcher {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return fetcher{
		client:      client,
		userAgent:   userAgent,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		logger:      logger,
	}
}

func (f *fetcher) getWithRetry(ctx context.Context, url string, decode func(io.Reader) error) error {
	var lastErr error
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		lastErr = f.get(ctx, url, decode)
		if lastErr == nil {
			return nil
		}

		var retryable *retryableError
		if !errors.As(lastErr, &retryable) || attempt == f.maxAttempts {
			break
		}

		f.logger.Debug("retrying catalog request",
			slog.String("url", url),
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.retryDelay):
		}
	}
	return lastErr
}

func (f *fetcher) get(ctx context.Context, url string, decode func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &retryableError{err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return &retryableError{err: fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	return decode(resp.Body)
}
