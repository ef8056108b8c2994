// Package httputil provides HTTP utilities for the statistics backend client.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := http.Get(url)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    if resp.StatusCode >= 500 {
//	        return httputil.Retryable(fmt.Errorf("status %d", resp.StatusCode))
//	    }
//	    return nil
//	})
//
// Only errors wrapped with [Retryable] are retried. Everything else (404,
// malformed JSON, validation failures) is returned on the first attempt.
// The delay doubles after each attempt, and cancellation of ctx stops the
// loop between attempts.
//
// Retry lives at the data-fetch boundary only. The report composer never
// retries: a capture or composition failure is terminal for that attempt.
package httputil
