package telemetry

import (
	"context"
	"time"

	"attrpicker/internal/debug"
)

// Config controls emission.
type Config struct {
	Enabled bool
	// Timeout bounds a single fan-out. Zero means two seconds.
	Timeout time.Duration
}

// Emitter applies defaults and fans events out to hooks.
type Emitter struct {
	hooks   Hooks
	enabled bool
	timeout time.Duration
}

// NewEmitter builds an emitter. Nil hooks are dropped.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	kept := make(Hooks, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			kept = append(kept, h)
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Emitter{
		hooks:   kept,
		enabled: cfg.Enabled && len(kept) > 0,
		timeout: timeout,
	}
}

// Enabled reports whether Record does anything.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled
}

// Emit delivers event synchronously and returns the joined hook errors.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.hooks.Notify(ctx, event)
}

// Record emits name with props and logs any failure. It never returns an
// error; telemetry must not affect the caller.
func (e *Emitter) Record(ctx context.Context, name string, props map[string]any) {
	if !e.Enabled() {
		return
	}
	if err := e.Emit(ctx, Event{Name: name, Properties: props}); err != nil {
		debug.Logf("[telemetry] %s: %v", name, err)
	}
}
