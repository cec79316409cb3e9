package preview

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the debouncer state of a Renderer.
type State int

const (
	StateIdle State = iota
	StatePendingRender
)

func (s State) String() string {
	if s == StatePendingRender {
		return "pending-render"
	}
	return "idle"
}

// Stats counts renderer activity.
type Stats struct {
	Keystrokes   int
	Renders      int
	Failures     int
	LastRender   time.Time
	LastDuration time.Duration
}

// Renderer owns one document buffer and its output sink. Each keystroke
// cancels the pending render and schedules a new one; only the most recent
// schedule ever fires. Render passes for one renderer never overlap.
type Renderer struct {
	sink     Sink
	pipeline *Pipeline
	quiet    time.Duration
	logger   *zap.Logger
	onRender func(Result)

	mu         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	buffer     string
	timer      *time.Timer
	generation uint64
	state      State
	stopped    bool
	stats      Stats

	renderMu sync.Mutex
}

// New builds a renderer writing to sink.
func New(sink Sink, opts ...Option) (*Renderer, error) {
	if sink == nil {
		return nil, ErrSinkRequired
	}
	cfg := newConfig(opts)
	ctx, cancel := context.WithCancel(context.Background())
	return &Renderer{
		sink:     sink,
		pipeline: cfg.pipeline(),
		quiet:    cfg.quiet,
		logger:   cfg.logger,
		onRender: cfg.onRender,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start loads the initial buffer and renders it immediately. Scheduled
// renders run under ctx until it is cancelled or Stop is called.
func (r *Renderer) Start(ctx context.Context, initial string) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return ErrStopped
	}
	r.cancel()
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.buffer = initial
	r.generation++
	gen := r.generation
	r.stopTimerLocked()
	r.mu.Unlock()

	return r.render(ctx, gen)
}

// Keystroke replaces the buffer and (re)schedules a render after the quiet
// interval.
func (r *Renderer) Keystroke(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}

	r.buffer = text
	r.generation++
	gen := r.generation
	r.stopTimerLocked()
	r.timer = time.AfterFunc(r.quiet, func() { r.fire(gen) })
	r.state = StatePendingRender
	r.stats.Keystrokes++
}

// Update is an alias of Keystroke for callers driven by change events.
func (r *Renderer) Update(text string) {
	r.Keystroke(text)
}

// Flush renders a pending buffer now instead of waiting for the timer. It
// is a no-op when the renderer is idle.
func (r *Renderer) Flush(ctx context.Context) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return ErrStopped
	}
	if r.state != StatePendingRender {
		r.mu.Unlock()
		return nil
	}
	r.stopTimerLocked()
	r.generation++
	gen := r.generation
	r.mu.Unlock()

	return r.render(ctx, gen)
}

// Stop cancels any pending render. A render already in progress completes.
func (r *Renderer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	r.stopTimerLocked()
	r.state = StateIdle
	r.cancel()
}

// State reports whether a render is pending.
func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Buffer returns the current document text.
func (r *Renderer) Buffer() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buffer
}

// Stats returns a snapshot of renderer counters.
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Renderer) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Renderer) fire(gen uint64) {
	r.mu.Lock()
	if r.stopped || gen != r.generation {
		r.mu.Unlock()
		return
	}
	ctx := r.ctx
	r.timer = nil
	r.mu.Unlock()

	_ = r.render(ctx, gen)
}

// render performs a pass for generation gen. A pass that has been
// superseded by a newer keystroke while waiting for renderMu is dropped.
func (r *Renderer) render(ctx context.Context, gen uint64) error {
	r.renderMu.Lock()
	defer r.renderMu.Unlock()

	r.mu.Lock()
	if gen != r.generation {
		r.mu.Unlock()
		return nil
	}
	text := r.buffer
	r.mu.Unlock()

	start := time.Now()
	html, err := r.pipeline.Render(ctx, r.sink, text)
	elapsed := time.Since(start)

	r.mu.Lock()
	if gen == r.generation {
		r.state = StateIdle
	}
	if err != nil {
		r.stats.Failures++
	} else {
		r.stats.Renders++
		r.stats.LastRender = start
		r.stats.LastDuration = elapsed
	}
	onRender := r.onRender
	r.mu.Unlock()

	if err != nil {
		r.logger.Warn("preview render failed", zap.Uint64("generation", gen), zap.Error(err))
	} else {
		r.logger.Debug("preview rendered",
			zap.Uint64("generation", gen),
			zap.Int("bytes", len(text)),
			zap.Duration("took", elapsed))
	}

	if onRender != nil {
		onRender(Result{Source: text, HTML: html, Generation: gen, Duration: elapsed, Err: err})
	}
	return err
}
