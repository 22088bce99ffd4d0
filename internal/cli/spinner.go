package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// task is a one-line activity indicator for slow steps such as connecting to
// MongoDB or seeding lessons. The message can be replaced while it spins, so
// a seed reports each collection as it goes.
type task struct {
	out    io.Writer
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	style  spinner.Spinner

	mu      sync.Mutex
	message string
	width   int
	started bool

	stopOnce sync.Once
	stopped  chan struct{}
}

// newTask creates a task that draws on out. Cancelling ctx stops the
// animation and marks the task cancelled.
func newTask(ctx context.Context, out io.Writer, message string) *task {
	spinCtx, cancel := context.WithCancel(ctx)
	return &task{
		out:     out,
		parent:  ctx,
		ctx:     spinCtx,
		cancel:  cancel,
		style:   spinner.MiniDot,
		message: message,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (t *task) Start() {
	t.mu.Lock()
	t.started = true
	t.mu.Unlock()

	go func() {
		defer close(t.stopped)
		ticker := time.NewTicker(t.style.FPS)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-t.ctx.Done():
				return
			case <-ticker.C:
				t.draw(t.style.Frames[i%len(t.style.Frames)])
			}
		}
	}()
}

// Step replaces the message shown next to the spinner.
func (t *task) Step(format string, args ...any) {
	t.mu.Lock()
	t.message = fmt.Sprintf(format, args...)
	t.mu.Unlock()
}

// Stop halts the animation and clears the line. Safe to call more than once.
func (t *task) Stop() {
	t.stopOnce.Do(func() {
		t.cancel()
		t.mu.Lock()
		started := t.started
		t.mu.Unlock()
		if started {
			<-t.stopped
		}
		t.clear()
	})
}

// Succeed stops the task and prints a success line.
func (t *task) Succeed(format string, args ...any) {
	t.Stop()
	printSuccess(format, args...)
}

// Fail stops the task and prints an error line.
func (t *task) Fail(format string, args ...any) {
	t.Stop()
	printError(format, args...)
}

// Cancelled reports whether the caller's context ended, as opposed to the
// task being stopped normally.
func (t *task) Cancelled() bool {
	return t.parent.Err() != nil
}

func (t *task) draw(frame string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(t.message)
	if w := lipgloss.Width(line); w > t.width {
		t.width = w
	}
	fmt.Fprintf(t.out, "\r%s", line)
}

func (t *task) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.width == 0 {
		return
	}
	fmt.Fprintf(t.out, "\r%s\r", strings.Repeat(" ", t.width))
	t.width = 0
}
