package planner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"trip_planner/internal/adapters/observability"
)

const (
	// DefaultTimeout bounds a single planning call. Generation on the remote
	// side chains several LLM and map lookups, so it is slow but not unbounded.
	DefaultTimeout = 10 * time.Minute

	ContentType = "application/json"
	TripPath    = "/trip"

	maxBody = 32 << 20
)

type Request struct {
	Method string
	Path   string // relative to the transport's base URL
	Body   []byte
	Header http.Header
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport sends one request and returns the raw response. Implementations
// return a *TransportError for network failures and non-2xx statuses.
type Transport interface {
	Send(ctx context.Context, req Request) (*Response, error)
}

type TransportFunc func(ctx context.Context, req Request) (*Response, error)

func (f TransportFunc) Send(ctx context.Context, req Request) (*Response, error) { return f(ctx, req) }

// TransportError describes a failed exchange. Response is set when the server
// replied with a non-2xx status.
type TransportError struct {
	Message  string
	Response *Response
	Err      error
}

func (e *TransportError) Error() string { return e.Message }
func (e *TransportError) Unwrap() error { return e.Err }

type HTTPTransport struct {
	base    string
	hc      *http.Client
	header  http.Header
	rl      *rate.Limiter // nil: unthrottled
	maxBody int64
}

func NewHTTPTransport(base string, timeout time.Duration, rps int) *HTTPTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &HTTPTransport{
		base:    strings.TrimRight(base, "/"),
		hc:      &http.Client{Timeout: timeout},
		maxBody: maxBody,
		header: http.Header{
			"Content-Type": {ContentType},
			"Accept":       {ContentType},
			"User-Agent":   {"trip-planner/1.0"},
		},
	}
	if rps > 0 {
		t.rl = rate.NewLimiter(rate.Limit(rps), rps)
	}
	return t
}

func (t *HTTPTransport) Send(ctx context.Context, req Request) (*Response, error) {
	if t.rl != nil {
		if err := t.rl.Wait(ctx); err != nil {
			return nil, &TransportError{Message: err.Error(), Err: err}
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}
	hreq, err := http.NewRequestWithContext(ctx, method, t.base+req.Path, bytes.NewReader(req.Body))
	if err != nil {
		return nil, &TransportError{Message: err.Error(), Err: err}
	}
	for k, vs := range t.header {
		hreq.Header[k] = append([]string(nil), vs...)
	}
	for k, vs := range req.Header {
		hreq.Header[k] = append([]string(nil), vs...)
	}

	start := time.Now()
	resp, err := t.hc.Do(hreq)
	if err != nil {
		observability.ObserveExternal("planner", req.Path, 0, time.Since(start))
		return nil, &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBody+1))
	observability.ObserveExternal("planner", req.Path, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &TransportError{Message: err.Error(), Err: err}
	}
	if int64(len(body)) > t.maxBody {
		return nil, &TransportError{Message: fmt.Sprintf("response too large: over %d bytes", t.maxBody)}
	}

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &TransportError{
			Message:  fmt.Sprintf("request failed with status code %d", resp.StatusCode),
			Response: out,
		}
	}
	return out, nil
}
