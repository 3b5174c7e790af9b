package progress

// Tracker turns done/total counts into monotonically increasing percentages
// and forwards only the changes to a Handler.
type Tracker struct {
	h     Handler
	stage string
	last  int
}

// NewTracker wraps h. The stage name is attached to Report calls.
func NewTracker(h Handler, stage string) *Tracker {
	return &Tracker{h: OrNop(h), stage: stage, last: -1}
}

// Start emits 0% and the stage message.
func (t *Tracker) Start(message string) {
	t.h.Report(t.stage, 0, message)
	t.emit(0)
}

// Update emits done×100/total when it exceeds the last emitted percentage.
func (t *Tracker) Update(done, total int) {
	if total <= 0 {
		return
	}
	pct := done * 100 / total
	if pct > 100 {
		pct = 100
	}
	t.emit(pct)
}

// Finish emits 100% and the closing message.
func (t *Tracker) Finish(message string) {
	t.emit(100)
	t.h.Report(t.stage, 100, message)
}

// Cancelled forwards to the wrapped handler.
func (t *Tracker) Cancelled() bool {
	return t.h.Cancelled()
}

// Last returns the last emitted percentage, or -1 before the first emission.
func (t *Tracker) Last() int {
	return t.last
}

func (t *Tracker) emit(pct int) {
	if pct <= t.last {
		return
	}
	t.last = pct
	t.h.Progress(pct)
}
