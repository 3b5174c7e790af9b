// Package progress defines the polled progress and cancellation contract used
// by the decoders.
//
// Decoders call Progress after every record or timestep and check Cancelled
// between records. Callbacks fire on whatever goroutine drives the load;
// handlers that update a UI must marshal to their own thread.
package progress

import "context"

// Handler receives progress from a running load and tells it when to stop.
type Handler interface {
	// Progress reports the completed percentage, 0-100.
	Progress(percent int)
	// Report reports a stage transition or a message at a percentage.
	Report(stage string, percent int, message string)
	// Cancelled is polled between records; returning true stops decoding and
	// keeps what was decoded so far.
	Cancelled() bool
}

// Nop is a Handler that ignores everything and never cancels.
type Nop struct{}

var _ Handler = Nop{}

func (Nop) Progress(int)               {}
func (Nop) Report(string, int, string) {}
func (Nop) Cancelled() bool            { return false }

// Funcs adapts plain functions to a Handler. Nil fields are ignored.
type Funcs struct {
	OnProgress  func(percent int)
	OnReport    func(stage string, percent int, message string)
	IsCancelled func() bool
}

var _ Handler = Funcs{}

func (f Funcs) Progress(percent int) {
	if f.OnProgress != nil {
		f.OnProgress(percent)
	}
}

func (f Funcs) Report(stage string, percent int, message string) {
	if f.OnReport != nil {
		f.OnReport(stage, percent, message)
	}
}

func (f Funcs) Cancelled() bool {
	return f.IsCancelled != nil && f.IsCancelled()
}

// OrNop returns h, or Nop when h is nil.
func OrNop(h Handler) Handler {
	if h == nil {
		return Nop{}
	}

	return h
}

type ctxHandler struct {
	Handler
	ctx context.Context
}

// WithContext returns a Handler that also reports cancellation once ctx is done.
func WithContext(ctx context.Context, h Handler) Handler {
	return ctxHandler{Handler: OrNop(h), ctx: ctx}
}

func (c ctxHandler) Cancelled() bool {
	return c.ctx.Err() != nil || c.Handler.Cancelled()
}
