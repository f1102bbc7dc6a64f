// Package fetch retrieves raw document bytes over HTTP with bounded size,
// per-attempt timeouts, and sequential retry with exponential backoff.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/civiclens/docpipe/internal/cache"
)

// Default tuning. Government servers are slow and flaky; three attempts
// with 1s/2s backoff rides out most transient failures.
const (
	DefaultMaxSize     = 200 << 20 // 200 MiB
	DefaultTimeout     = 30 * time.Second
	DefaultMaxAttempts = 3
	DefaultUserAgent   = "docpipe/1.0 (civic document fetcher)"

	maxURLLength = 2000
)

var (
	// ErrInvalidURL marks a caller mistake: empty or over-length URL.
	// Never retried.
	ErrInvalidURL = errors.New("invalid url")
	// ErrTooLarge marks a declared or actual payload over the size cap.
	// Not retried; the remote resource will not shrink.
	ErrTooLarge = errors.New("document too large")
	// ErrRetriesExhausted is the fallback when all attempts failed without
	// recording an error. Should not occur in practice.
	ErrRetriesExhausted = errors.New("all retries exhausted")
)

// Client downloads documents with retry and size guards. Fields left zero
// fall back to the Default constants, so the zero value is usable.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// MaxAttempts includes the initial attempt. Zero means DefaultMaxAttempts.
	MaxAttempts int
	// PerRequestTimeout bounds each attempt. Zero means DefaultTimeout.
	PerRequestTimeout time.Duration
	// MaxSize caps both declared and actual body size. Zero means DefaultMaxSize.
	MaxSize int64
	// Optional on-disk cache enabling conditional revalidation.
	Cache *cache.Cache
	// Sleep is called between attempts. Nil means time.Sleep. Tests inject
	// a recorder to keep backoff timing deterministic.
	Sleep func(time.Duration)
}

// Download retrieves the document at rawURL. Viewer-redirect URLs are
// unwrapped first. Transient failures are retried up to MaxAttempts with
// exponential backoff (1s, 2s, ...); the last observed error is returned
// after exhaustion.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" || len(rawURL) > maxURLLength {
		return nil, fmt.Errorf("%w: %d chars", ErrInvalidURL, len(rawURL))
	}
	target := ResolveViewerURL(rawURL)

	var etag, lastMod string
	if c.Cache != nil {
		if meta, err := c.Cache.LoadMeta(ctx, target); err == nil && meta != nil {
			etag = meta.ETag
			lastMod = meta.LastModified
		}
	}

	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, newETag, newLastMod, status, err := c.tryOnce(ctx, target, etag, lastMod)
		if err == nil {
			if status == http.StatusNotModified && c.Cache != nil {
				cached, cerr := c.Cache.LoadBody(ctx, target)
				if cerr != nil {
					return nil, fmt.Errorf("cached body missing after 304: %w", cerr)
				}
				log.Info().Int("bytes", len(cached)).Str("url", target).
					Msg("document unchanged, served from cache")
				return cached, nil
			}
			if c.Cache != nil {
				_ = c.Cache.Save(ctx, target, newETag, newLastMod, body)
			}
			log.Info().Int("bytes", len(body)).Int("attempt", attempt).
				Str("url", target).Msg("downloaded document")
			return body, nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Int("max", attempts).
			Str("url", target).Msg("download attempt failed")
		if errors.Is(err, ErrTooLarge) {
			return nil, err
		}
		lastErr = err
		if attempt < attempts {
			c.sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}
	if lastErr == nil {
		lastErr = ErrRetriesExhausted
	}
	return nil, lastErr
}

func (c *Client) tryOnce(ctx context.Context, target, etag, lastMod string) (body []byte, newETag, newLastMod string, status int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", "", 0, fmt.Errorf("new request: %w", err)
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return nil, "", "", 0, fmt.Errorf("unsupported URL scheme: %q", target)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastMod != "" {
		req.Header.Set("If-Modified-Since", lastMod)
	}

	timeout := c.PerRequestTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	reqCtx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()
	req = req.WithContext(reqCtx)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return nil, resp.Header.Get("ETag"), resp.Header.Get("Last-Modified"), resp.StatusCode, nil
	}
	if resp.StatusCode >= 500 && resp.StatusCode <= 599 {
		return nil, "", "", resp.StatusCode, fmt.Errorf("server error: %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", "", resp.StatusCode, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if resp.ContentLength > maxSize {
		return nil, "", "", resp.StatusCode, fmt.Errorf("%w: declared %d bytes", ErrTooLarge, resp.ContentLength)
	}
	// The declared length is not trusted; read one byte past the cap to
	// detect oversized bodies without buffering them whole.
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, "", "", resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if int64(len(b)) > maxSize {
		return nil, "", "", resp.StatusCode, fmt.Errorf("%w: over %d bytes", ErrTooLarge, maxSize)
	}
	return b, resp.Header.Get("ETag"), resp.Header.Get("Last-Modified"), resp.StatusCode, nil
}

// ResolveViewerURL unwraps document-viewer indirection of the form
// docs.google.com/gview?url=<target>: the target is percent-decoded and any
// trailing query parameters after it are stripped. URLs not matching the
// pattern pass through unchanged.
func ResolveViewerURL(rawURL string) string {
	if !strings.Contains(rawURL, "docs.google.com/gview") {
		return rawURL
	}
	idx := strings.Index(rawURL, "url=")
	if idx < 0 {
		return rawURL
	}
	target := rawURL[idx+len("url="):]
	if amp := strings.Index(target, "&"); amp >= 0 {
		target = target[:amp]
	}
	decoded, err := url.QueryUnescape(target)
	if err != nil {
		// Use the raw target so the eventual download error names it.
		return target
	}
	return decoded
}

func (c *Client) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
