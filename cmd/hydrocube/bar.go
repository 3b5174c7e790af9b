package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/arloliu/hydrocube/progress"
	"github.com/gosuri/uiprogress"
)

// barHandler draws load progress as a terminal bar.
type barHandler struct {
	mu    sync.Mutex
	bar   *uiprogress.Bar
	stage string
}

var _ progress.Handler = (*barHandler)(nil)

func newBarHandler(name string) *barHandler {
	h := &barHandler{stage: name}
	uiprogress.Start()
	h.bar = uiprogress.AddBar(100).AppendCompleted().PrependElapsed()
	h.bar.PrependFunc(func(*uiprogress.Bar) string {
		h.mu.Lock()
		defer h.mu.Unlock()

		return fmt.Sprintf("%-12s", h.stage)
	})

	return h
}

func (h *barHandler) Progress(percent int) {
	_ = h.bar.Set(percent)
}

func (h *barHandler) Report(stage string, percent int, _ string) {
	h.mu.Lock()
	h.stage = stage
	h.mu.Unlock()
	_ = h.bar.Set(percent)
}

func (*barHandler) Cancelled() bool { return false }

func (*barHandler) Stop() { uiprogress.Stop() }

// newHandler returns the progress handler for a load of the named package and
// a function releasing it. Interrupts cancel the load.
func newHandler(ctx context.Context, name string) (progress.Handler, func()) {
	if Cfg.GetBool("no-progress") {
		return progress.WithContext(ctx, nil), func() {}
	}
	bar := newBarHandler(name)

	return progress.WithContext(ctx, bar), bar.Stop
}
