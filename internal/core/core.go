package core

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Reporter turns one upstream ping into one printed Envelope.
type Reporter struct {
	logs   *zap.SugaredLogger
	pinger Pinger
}

// NewReporter is a constructor function for the Reporter type.
func NewReporter(logger *zap.SugaredLogger, pinger Pinger) *Reporter {
	return &Reporter{
		logs:   logger,
		pinger: pinger,
	}
}

// Run pings the upstream and publishes the resulting envelope to w. Nothing is
// written to w unless the whole envelope could be built.
func (r *Reporter) Run(ctx context.Context, w io.Writer) error {
	env, err := r.Report(ctx)
	if err != nil {
		return err
	}

	if err := r.Publish(w, env); err != nil {
		return err
	}

	r.logs.Infow("envelope published", "bytes", len(env.Data))
	return nil
}

// Report pings the upstream and wraps its body in an Envelope.
func (r *Reporter) Report(ctx context.Context) (Envelope, error) {
	data, err := r.pinger.Ping(ctx)
	if err != nil {
		return Envelope{}, fmt.Errorf("ping upstream: %w", err)
	}

	env := NewEnvelope(data)
	if err := env.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("validate envelope: %w", err)
	}

	return env, nil
}

// Publish writes env as one compact JSON line and flushes it.
func (r *Reporter) Publish(w io.Writer, env Envelope) error {
	bw := bufio.NewWriter(w)

	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	// pipes handed in by a parent process may buffer on their own
	if f, ok := w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
	}

	return nil
}
