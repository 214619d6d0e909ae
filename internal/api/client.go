// Package api is the HTTP client for the remote doctor and patient services:
// the patients/doctors REST service, the doctor-info REST service and the
// GraphQL doctor-patient service.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clinicdash/internal/jsonutil"
	"clinicdash/internal/roster"

	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultTimeout bounds a single request when Config.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// Config holds the endpoint locations.
type Config struct {
	PatientsBaseURL   string // serves /v1/doctors and /v1/patients
	DoctorInfoBaseURL string // serves /v1/doctor/{id}
	GraphQLURL        string
	Timeout           time.Duration
}

// Client fetches collections, doctor details and patient relations.
// It holds no state between calls and is safe for concurrent use.
type Client struct {
	cfg    Config
	http   *http.Client
	tracer oteltrace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTracer sets the tracer used for client spans.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// NewClient creates a Client for the given endpoints.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		tracer: noop.NewTracerProvider().Tracer("clinicdash/api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListDoctors fetches the full doctors collection.
func (c *Client) ListDoctors(ctx context.Context) ([]roster.Entity, error) {
	return c.listEntities(ctx, "list doctors", joinURL(c.cfg.PatientsBaseURL, "v1", "doctors"))
}

// ListPatients fetches the full patients collection.
func (c *Client) ListPatients(ctx context.Context) ([]roster.Entity, error) {
	return c.listEntities(ctx, "list patients", joinURL(c.cfg.PatientsBaseURL, "v1", "patients"))
}

// DoctorDetail fetches the extended record for one doctor.
func (c *Client) DoctorDetail(ctx context.Context, id string) (roster.DoctorDetail, error) {
	op := "doctor detail " + id
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(c.cfg.DoctorInfoBaseURL, "v1", "doctor", id), nil)
	if err != nil {
		return roster.DoctorDetail{}, fmt.Errorf("%s: %w", op, err)
	}
	var detail roster.DoctorDetail
	err = c.do(req, op, func(body io.Reader) error {
		return jsonutil.DecodeWithContext(body, &detail, op)
	})
	if err != nil {
		return roster.DoctorDetail{}, err
	}
	return detail, nil
}

func (c *Client) listEntities(ctx context.Context, op, endpoint string) ([]roster.Entity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var entities []roster.Entity
	err = c.do(req, op, func(body io.Reader) error {
		data, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		entities, err = jsonutil.UnmarshalArrayAllowEmpty[roster.Entity](data, op)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// do sends req inside a client span, classifies the outcome and hands a 2xx
// body to decode. Decode failures are reported as ErrMalformed.
func (c *Client) do(req *http.Request, op string, decode func(io.Reader) error) (err error) {
	ctx, span := c.tracer.Start(req.Context(), op,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			semconv.HTTPMethodKey.String(req.Method),
			semconv.HTTPURLKey.String(req.URL.String()),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(semconv.HTTPStatusCodeKey.Int(resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%s: %w: %d", op, ErrStatus, resp.StatusCode)
	}

	if err := decode(resp.Body); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

// joinURL appends escaped path segments to base.
func joinURL(base string, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(escaped, "/")
}
