package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"trip_planner/internal/domain"
)

// Client submits trip requests to the remote planning service. It is safe for
// concurrent use; calls share only the underlying transport.
type Client struct {
	t Transport
}

type options struct {
	timeout   time.Duration
	rps       int
	transport Transport
}

type Option func(*options)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithRateLimit throttles outgoing calls to rps per second. Zero disables it.
func WithRateLimit(rps int) Option { return func(o *options) { o.rps = rps } }

// WithTransport replaces the HTTP transport. The client still normalizes its errors.
func WithTransport(t Transport) Option { return func(o *options) { o.transport = t } }

func New(base string, opts ...Option) (*Client, error) {
	o := options{timeout: DefaultTimeout}
	for _, fn := range opts {
		fn(&o)
	}
	t := o.transport
	if t == nil {
		if base == "" {
			return nil, errors.New("planner base URL is required")
		}
		t = NewHTTPTransport(base, o.timeout, o.rps)
	}
	return &Client{t: Normalized(t)}, nil
}

// CreateTripPlan posts req to <base>/trip and decodes the returned plan.
// Any failure is a *domain.RemoteError.
func (c *Client) CreateTripPlan(ctx context.Context, req domain.TripRequest) (domain.TripPlan, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.TripPlan{}, Normalize(err)
	}

	start := time.Now()
	log.Info().
		Str("city", req.City).
		Str("start", req.StartDate).
		Int("travel_days", req.TravelDays).
		Msg("requesting trip plan")

	resp, err := c.t.Send(ctx, Request{Method: http.MethodPost, Path: TripPath, Body: body})
	if err != nil {
		log.Warn().Err(err).Str("city", req.City).Dur("duration", time.Since(start)).Msg("trip plan request failed")
		return domain.TripPlan{}, err
	}

	var plan domain.TripPlan
	if err := json.Unmarshal(resp.Body, &plan); err != nil {
		err = Normalize(fmt.Errorf("decode trip plan: %w", err))
		log.Warn().Err(err).Str("city", req.City).Msg("trip plan undecodable")
		return domain.TripPlan{}, err
	}

	log.Info().
		Str("city", req.City).
		Int("days", len(plan.Days)).
		Dur("duration", time.Since(start)).
		Msg("trip plan received")
	return plan, nil
}
