package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer lets the test read what the spinner goroutine writes.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForOutput(t *testing.T, b *lockedBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(b.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("output %q never contained %q", b.String(), want)
}

func TestTaskReportsSeedStages(t *testing.T) {
	var out lockedBuffer
	task := newTask(context.Background(), &out, "Connecting to MongoDB...")
	task.Start()
	waitForOutput(t, &out, "Connecting to MongoDB...")

	task.Step("Seeding %s (%d written)", "examples", 4)
	waitForOutput(t, &out, "Seeding examples (4 written)")
	task.Stop()

	if !strings.HasSuffix(out.String(), "\r") {
		t.Errorf("Stop should clear the line, output = %q", out.String())
	}
	if task.Cancelled() {
		t.Error("a task stopped normally is not cancelled")
	}
}

func TestTaskCancelledWithContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			return context.WithCancel(context.Background())
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			task := newTask(ctx, &lockedBuffer{}, "Seeding pandalearn...")
			task.Start()
			cancel()
			<-ctx.Done()
			task.Stop()

			if !task.Cancelled() {
				t.Error("task should report the interrupted seed")
			}
		})
	}
}

func TestTaskStopIsIdempotent(t *testing.T) {
	task := newTask(context.Background(), &lockedBuffer{}, "Seeding pandalearn...")
	task.Start()
	task.Stop()
	task.Stop()
}

func TestTaskStopWithoutStart(t *testing.T) {
	var out lockedBuffer
	task := newTask(context.Background(), &out, "never shown")

	done := make(chan struct{})
	go func() {
		task.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a task that never started")
	}
	if out.String() != "" {
		t.Errorf("output = %q, want nothing", out.String())
	}
}
