package comments

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 4 << 20

// RetryPolicy bounds retries of idempotent reads after network failures.
type RetryPolicy struct {
	Attempts  int           // total attempts, including the first
	BaseDelay time.Duration // delay before the second attempt, doubled after each failure
	MaxDelay  time.Duration
}

// DefaultRetryPolicy is used when a Client is built with a zero policy.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, BaseDelay: 200 * time.Millisecond, MaxDelay: 2 * time.Second}

func (p RetryPolicy) delay(attempt int) time.Duration {
	// 1st failure -> base, 2nd -> 2*base ... capped
	if attempt < 1 {
		attempt = 1
	}
	d := p.BaseDelay << (attempt - 1)
	if p.MaxDelay > 0 && (d > p.MaxDelay || d <= 0) {
		d = p.MaxDelay
	}
	return d
}

// Client talks to the Comment Service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Retry      RetryPolicy
	log        *zap.Logger
}

// NewClient creates a Client for the service rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, retry RetryPolicy, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if retry.Attempts < 1 {
		retry = DefaultRetryPolicy
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Retry:      retry,
		log:        log,
	}
}

// List fetches the collection ordered by sort and truncated to size.
func (c *Client) List(ctx context.Context, sort SortType, size PageSize) ([]Comment, error) {
	q := url.Values{}
	q.Set("type", string(sort))
	q.Set("quantity", size.String())
	rawURL := c.BaseURL + "/comments?" + q.Encode()

	var lastErr error
	for attempt := 1; attempt <= c.Retry.Attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("building list request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		body, err := c.do(req, "list")
		if err == nil {
			list, derr := decodeList(body)
			if derr != nil {
				return nil, &RequestError{Op: "list", Kind: ErrMalformed, Status: http.StatusOK, Err: derr}
			}
			return list, nil
		}

		lastErr = err
		if !Retryable(err) || ctx.Err() != nil || attempt == c.Retry.Attempts {
			break
		}

		wait := c.Retry.delay(attempt)
		c.log.Debug("retrying comment list",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, &RequestError{Op: "list", Kind: ErrNetwork, Err: ctx.Err()}
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

// Add posts a new comment with the given text. The service assigns the
// id, date and a zero rating.
func (c *Client) Add(ctx context.Context, text string) error {
	form := url.Values{}
	form.Set("action", "add")
	form.Set("text", text)
	return c.post(ctx, "add", form)
}

// Vote raises (upvote) or lowers a comment's rating by one.
func (c *Client) Vote(ctx context.Context, id string, upvote bool) error {
	form := url.Values{}
	form.Set("comment-id", id)
	form.Set("action", "vote")
	form.Set("isUpvote", strconv.FormatBool(upvote))
	return c.post(ctx, "vote", form)
}

// Delete removes a comment.
func (c *Client) Delete(ctx context.Context, id string) error {
	form := url.Values{}
	form.Set("comment-id", id)
	form.Set("action", "delete")
	return c.post(ctx, "delete", form)
}

func (c *Client) post(ctx context.Context, op string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/comments", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	_, err = c.do(req, op)
	return err
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	return Send(c.HTTPClient, req, op, c.log)
}

// Send performs req and returns the body of a 2xx response. Redirects are
// followed by hc, so the final status is what counts. Every request gets
// an X-Request-ID; failures are *RequestError values tagged with op.
func Send(hc *http.Client, req *http.Request, op string, log *zap.Logger) ([]byte, error) {
	if log == nil {
		log = zap.NewNop()
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", "commentsync/1.0")

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Kind: ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &RequestError{Op: op, Kind: ErrNetwork, Status: resp.StatusCode, Err: err}
	}

	log.Debug("service call",
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			Op:     op,
			Kind:   ErrRejected,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("body=%q", string(b[:min(len(b), 200)])),
		}
	}
	return b, nil
}
