// Package reveal implements the typewriter reveal of simplified text.
//
// A reveal runs as a Task that extends a revealed prefix by one character per
// tick. Stopping a task is explicit: once Stop returns, the tick callback is
// never invoked again.
package reveal

import (
	"context"
	"sync"
	"time"

	"docsimplify/internal/domain"
)

// DefaultInterval is the delay between two reveal ticks
const DefaultInterval = 20 * time.Millisecond

// TickFunc receives the state after every tick
type TickFunc func(state domain.RevealState)

// Engine starts reveal tasks with a fixed tick interval
type Engine struct {
	interval time.Duration
}

// NewEngine creates an engine. Non-positive intervals fall back to DefaultInterval.
func NewEngine(interval time.Duration) *Engine {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Engine{interval: interval}
}

// Interval returns the tick interval
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// Task is a running reveal
type Task struct {
	runes    []rune
	interval time.Duration
	onTick   TickFunc

	mu    sync.Mutex
	state domain.RevealState

	stopOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

// Start begins revealing fullText. onTick may be nil. onTick must not call Stop
// on its own task.
func (e *Engine) Start(ctx context.Context, fullText string, onTick TickFunc) *Task {
	t := &Task{
		runes:    []rune(fullText),
		interval: e.interval,
		onTick:   onTick,
		state:    domain.RevealState{FullText: fullText},
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if len(t.runes) == 0 {
		close(t.done)
		return t
	}

	go t.run(ctx)
	return t
}

func (t *Task) run(ctx context.Context) {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.quit:
			return
		case <-ticker.C:
		}

		// A tick that raced with Stop must not be delivered.
		select {
		case <-t.quit:
			return
		default:
		}

		state, finished := t.advance()
		if t.onTick != nil {
			t.onTick(state)
		}
		if finished {
			return
		}
	}
}

func (t *Task) advance() (domain.RevealState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Cursor++
	t.state.Revealed = string(t.runes[:t.state.Cursor])
	return t.state, t.state.Cursor == len(t.runes)
}

// State returns a snapshot of the reveal
func (t *Task) State() domain.RevealState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Done is closed once the task has finished or been stopped
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Stop cancels the task and waits for its tick goroutine to exit.
// It is safe to call more than once and on a nil task.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.stopOnce.Do(func() { close(t.quit) })
	<-t.done
}
