/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"bennypowers.dev/stratum/internal/version"
)

const (
	// DefaultTimeout bounds a single source fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxSize is the largest source accepted over the network (10 MB).
	DefaultMaxSize int64 = 10 * 1024 * 1024
)

// ErrTooLarge is returned when a response exceeds the fetcher's size limit.
var ErrTooLarge = errors.New("response too large")

// StatusError is a non-200 response.
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Status)
}

// Fetcher retrieves a remote token source.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is a Fetcher over net/http that refuses oversized bodies.
type HTTPFetcher struct {
	maxSize int64
	client  *http.Client
}

// NewHTTPFetcher returns a fetcher that accepts at most maxSize bytes.
// Timeouts come from the request context.
func NewHTTPFetcher(maxSize int64) *HTTPFetcher {
	return &HTTPFetcher{maxSize: maxSize, client: &http.Client{}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "stratum/"+version.Get())
	req.Header.Set("Accept", "application/json, application/yaml, text/plain;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("timeout fetching %s: %w", url, err)
		}
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Status: resp.Status, Code: resp.StatusCode}
	}

	// one byte past the limit tells a full body from a truncated one
	content, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if int64(len(content)) > f.maxSize {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", url, ErrTooLarge, f.maxSize)
	}
	return content, nil
}
