package collect

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// SubmitFunc receives the validated payload. ctx is cancelled when the form
// owner is torn down; implementations should stop work when it is done.
type SubmitFunc func(ctx context.Context, payload Payload) error

// State is the submit pipeline state.
type State int

const (
	// StateIdle accepts a submit.
	StateIdle State = iota
	// StateSubmitting has a payload in flight, or a submit that succeeded
	// and is waiting for the owner to close the form.
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	}
	return "unknown"
}

// Pipeline validates form values, builds the payload and tracks whether a
// submit is in flight.
//
// State transitions:
//   - idle -> submitting when Begin accepts the values.
//   - submitting -> idle when Complete reports a failure, so the user can retry.
//   - a successful Complete leaves the pipeline submitting; the owner is
//     expected to navigate away.
type Pipeline struct {
	validator Validator
	submit    SubmitFunc
	log       zerolog.Logger

	mu    sync.Mutex
	state State
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger used for validation and submit diagnostics.
func WithLogger(l zerolog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.log = l
	}
}

// WithValidator replaces the default RuleValidator.
func WithValidator(v Validator) PipelineOption {
	return func(p *Pipeline) {
		if v != nil {
			p.validator = v
		}
	}
}

// NewPipeline builds a pipeline that forwards payloads to submit.
func NewPipeline(submit SubmitFunc, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		validator: NewRuleValidator(),
		submit:    submit,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Submitting reports whether further submits are blocked.
func (p *Pipeline) Submitting() bool {
	return p.State() == StateSubmitting
}

// Begin validates values and, on success, moves to submitting and returns
// the payload to send. Validation failures are logged and leave the
// pipeline idle; the returned error wraps the FieldErrors.
func (p *Pipeline) Begin(values Values) (Payload, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateSubmitting {
		return Payload{}, ErrSubmitInFlight
	}

	normalized, err := p.validator.Validate(values)
	if err != nil {
		var fe FieldErrors
		if errors.As(err, &fe) {
			p.log.Warn().Str("errors", fe.Error()).Msg("port collector validation failed")
			return Payload{}, validationError(fe)
		}
		p.log.Warn().Err(err).Msg("port collector validation failed")
		return Payload{}, err
	}

	p.state = StateSubmitting
	return BuildPayload(normalized), nil
}

// Complete records the outcome of the submit started by Begin.
func (p *Pipeline) Complete(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.log.Error().Err(err).Msg("port collector submit failed")
		p.state = StateIdle
		return
	}
	p.log.Debug().Msg("port collector submitted")
}

// Submit runs Begin, the submit func and Complete in sequence.
func (p *Pipeline) Submit(ctx context.Context, values Values) error {
	payload, err := p.Begin(values)
	if err != nil {
		return err
	}
	err = p.Send(ctx, payload)
	p.Complete(err)
	return err
}

// Send calls the submit func without touching pipeline state. Callers that
// run the submit asynchronously use Begin, Send and Complete directly.
func (p *Pipeline) Send(ctx context.Context, payload Payload) error {
	if p.submit == nil {
		return errors.New("collect: no submit func configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.submit(ctx, payload)
}

// BuildPayload converts validated values into the submitted payload.
// The service value becomes the payload's only tag.
func BuildPayload(values Values) Payload {
	payload := Payload{
		CollectType: values.CollectType,
		NID:         values.NID,
		Name:        values.Name,
		Comment:     values.Comment,
		Tags:        ServiceTag(values.Service),
	}
	if payload.CollectType == "" {
		payload.CollectType = CollectTypePort
	}
	if values.Port != nil {
		payload.Port = *values.Port
	}
	if values.Timeout != nil {
		payload.Timeout = *values.Timeout
	}
	if values.Step != nil {
		payload.Step = *values.Step
	}
	return payload
}
