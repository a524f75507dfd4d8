// Package gateway turns an inbound chat request into a domain-gated,
// intent-routed system prompt.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/msbuild-skills/msbuild-expert/engine/webhook"
	"github.com/msbuild-skills/msbuild-expert/pkg/logger"
)

// Result is transport-agnostic processing outcome; the router translates it to HTTP.
type Result struct {
	Status  int
	Payload any
	Outcome Outcome
}

// Orchestrator runs verify, parse, gate, classify and assemble for one request.
// It holds no per-request state and is safe for concurrent use.
// The request body is fully consumed during processing.
type Orchestrator struct {
	verifier webhook.Verifier
	pipeline *Pipeline
	metrics  *Metrics
	maxBody  int64
	now      func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMetrics attaches instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithMaxBody bounds the request body size.
func WithMaxBody(n int64) Option {
	return func(o *Orchestrator) { o.maxBody = n }
}

// NewOrchestrator creates a new orchestrator with provided dependencies
func NewOrchestrator(verifier webhook.Verifier, pipeline *Pipeline, opts ...Option) *Orchestrator {
	o := &Orchestrator{verifier: verifier, pipeline: pipeline, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	if o.verifier == nil {
		o.verifier = webhook.NewVerifier("")
	}
	if o.maxBody <= 0 {
		o.maxBody = webhook.DefaultMaxBody
	}
	return o
}

// Process executes the request pipeline.
func (o *Orchestrator) Process(ctx context.Context, r *http.Request) (res Result, err error) {
	start := o.now()
	defer func() {
		o.metrics.ObserveOutcome(ctx, res.Outcome, o.now().Sub(start))
	}()
	body, res, err := o.readBody(ctx, r)
	if err != nil {
		return res, err
	}
	if res, err = o.verify(ctx, r, body); err != nil {
		return res, err
	}
	p, res, err := o.parse(ctx, body)
	if err != nil {
		return res, err
	}
	return o.respond(ctx, p)
}

func (o *Orchestrator) readBody(ctx context.Context, r *http.Request) ([]byte, Result, error) {
	log := logger.FromContext(ctx)
	b, err := webhook.ReadRaw(r.Body, o.maxBody)
	if err != nil {
		if errors.Is(err, webhook.ErrPayloadTooLarge) {
			log.Warn("Request body exceeds limit", "limit", o.maxBody)
			return nil, Result{Status: http.StatusRequestEntityTooLarge, Outcome: OutcomePayloadTooLarge}, ErrPayloadTooLarge
		}
		log.Debug("Request body read aborted", "error", err)
		return nil, Result{Outcome: OutcomeAbandoned}, ErrAbandoned
	}
	o.metrics.RecordPayloadSize(ctx, len(b))
	return b, Result{}, nil
}

func (o *Orchestrator) verify(ctx context.Context, r *http.Request, body []byte) (Result, error) {
	if err := o.verifier.Verify(ctx, r, body); err != nil {
		logger.FromContext(ctx).Warn("Signature verification failed", "error", err)
		return Result{Status: http.StatusUnauthorized, Outcome: OutcomeUnauthorized}, ErrUnauthorized
	}
	return Result{}, nil
}

func (o *Orchestrator) parse(ctx context.Context, body []byte) (payload, Result, error) {
	log := logger.FromContext(ctx)
	p, err := parsePayload(body)
	if err != nil {
		log.Warn("Failed to parse request body")
		return p, Result{Status: http.StatusBadRequest, Outcome: OutcomeInvalidJSON}, ErrInvalidJSON
	}
	if !p.found {
		log.Warn("No user message in request", "messages", len(p.messages))
		return p, Result{Status: http.StatusBadRequest, Outcome: OutcomeNoUserMessage}, ErrNoUserMessage
	}
	return p, Result{}, nil
}

func (o *Orchestrator) respond(ctx context.Context, p payload) (Result, error) {
	log := logger.FromContext(ctx)
	decision := o.pipeline.Decide(p.content)
	outcome := OutcomeRedirected
	if decision.InScope {
		outcome = OutcomeAugmented
		o.metrics.OnIntent(ctx, decision.Intent.String())
		log.Info("Augmented request", "intent", decision.Intent, "prompt_chars", len(decision.Prompt))
	} else {
		log.Info("Redirected out-of-scope request")
	}
	resp, err := withSystem(decision.Prompt, p.messages)
	if err != nil {
		return Result{Status: http.StatusInternalServerError, Outcome: OutcomeError}, err
	}
	return Result{Status: http.StatusOK, Payload: resp, Outcome: outcome}, nil
}
