package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

const defaultBackoff = 200 * time.Millisecond

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status is %d", e.Code)
	}

	return fmt.Sprintf("status is %d: %s", e.Code, e.Body)
}

// Temporary reports whether the request may succeed when repeated.
func (e *StatusError) Temporary() bool {
	switch e.Code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}

	return false
}

type Request struct {
	client   *http.Client
	url      string
	method   string
	token    string
	login    string
	passw    string
	body     []byte
	headers  map[string]string
	args     map[string]string
	logger   *slog.Logger
	attempts int
	backoff  time.Duration
}

func New(c *http.Client, logger *slog.Logger) *Request {
	return &Request{client: c, method: "GET", logger: logger, attempts: 1, backoff: defaultBackoff}
}

func (r *Request) URL(url string) *Request {
	r.url = url

	return r
}

func (r *Request) Put() *Request {
	r.method = "PUT"

	return r
}

func (r *Request) Post() *Request {
	r.method = "POST"

	return r
}

func (r *Request) Token(token string) *Request {
	r.token = token

	return r
}

func (r *Request) Auth(login, passw string) *Request {
	r.login = login
	r.passw = passw

	return r
}

func (r *Request) Headers(headers map[string]string) *Request {
	r.headers = headers

	return r
}

func (r *Request) Args(args map[string]string) *Request {
	r.args = args

	return r
}

func (r *Request) Body(body []byte) *Request {
	r.body = body

	return r
}

// Retry sets the number of attempts for network errors and 429/5xx responses.
// The pause between attempts starts at backoff and doubles.
func (r *Request) Retry(attempts int, backoff time.Duration) *Request {
	if attempts < 1 {
		attempts = 1
	}

	r.attempts = attempts

	if backoff > 0 {
		r.backoff = backoff
	}

	return r
}

func (r *Request) DoRes(ctx context.Context) (*http.Response, error) {
	backoff := r.backoff

	var lastErr error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := r.do(ctx)
		if err == nil {
			return res, nil
		}

		lastErr = err

		if !retryable(err) || attempt == r.attempts {
			break
		}

		if r.logger != nil {
			r.logger.Debug(fmt.Sprintf("retry %s %s in %s", r.method, r.url, backoff), "attempt", attempt)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()

			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func (r *Request) do(ctx context.Context) (*http.Response, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Del("User-Agent")

	if len(r.headers) > 0 {
		for k, v := range r.headers {
			req.Header.Set(k, v)
		}
	}

	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	} else {
		if r.login != "" {
			req.SetBasicAuth(r.login, r.passw)
		}
	}

	if len(r.args) > 0 {
		q := req.URL.Query()

		for k, v := range r.args {
			q.Add(k, v)
		}

		req.URL.RawQuery = q.Encode()
	}

	res, err := r.client.Do(req)
	if err != nil {
		if r.logger != nil {
			r.logger.Info(fmt.Sprintf("%s %s - error %s", r.method, req.URL, err.Error()))
		}

		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if r.logger != nil {
			r.logger.Warn(fmt.Sprintf("%s %s - %d", r.method, req.URL, res.StatusCode))
		}

		b, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		_ = res.Body.Close()

		return nil, &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if r.logger != nil {
		r.logger.Debug(fmt.Sprintf("%s %s - %d", r.method, req.URL, res.StatusCode))
	}

	return res, nil
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}

func (r *Request) Do(ctx context.Context) (io.ReadCloser, error) {
	res, err := r.DoRes(ctx)

	if err != nil {
		return nil, err
	}

	if res.Body == nil {
		return nil, fmt.Errorf("null body")
	}

	return res.Body, nil
}

func (r *Request) GetJSON(ctx context.Context, obj any) error {
	b, err := r.Do(ctx)

	if err != nil {
		return err
	}

	defer b.Close()

	dec := json.NewDecoder(b)

	return dec.Decode(obj)
}
