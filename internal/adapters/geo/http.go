package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	maxAttempts = 4
	baseBackoff = 300 * time.Millisecond
)

// httpStatusError reports a non-2xx response from the directions service.
type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("directions service returned %d: %s", e.Code, e.Body)
}

func (p *Provider) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	q := req.URL.Query()
	q.Set("key", p.apiKey)
	req.URL.RawQuery = q.Encode()
	return req, nil
}

// doWithRetry issues the request, retrying on rate limiting, server errors
// and transport failures with exponential backoff. The request is rebuilt
// per attempt so the body is fresh each time.
func (p *Provider) doWithRetry(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := baseBackoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := p.session.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return resp, nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		lastErr = &httpStatusError{Code: resp.StatusCode, Body: string(body)}

		// Client errors other than 429 will not heal on retry.
		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}
