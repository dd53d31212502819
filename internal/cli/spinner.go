package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a progress line on a terminal until stopped or until
// its context is cancelled. On anything other than a terminal it stays
// silent.
type Spinner struct {
	message string
	w       io.Writer
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

// newSpinner returns a spinner writing to stderr when stderr is a terminal.
func newSpinner(ctx context.Context, message string) *Spinner {
	var w io.Writer
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		w = os.Stderr
	}
	return newSpinnerTo(ctx, w, message)
}

// newSpinnerTo returns a spinner drawing to w. A nil w draws nothing.
func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		w:       w,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.draw(fmt.Sprintf("\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message)))
			}
		}
	}()
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		if s.started {
			<-s.stopped
		}
		s.draw("\r" + strings.Repeat(" ", len(s.message)+4) + "\r")
	})
}

func (s *Spinner) draw(line string) {
	if s.w == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, line)
}

// Cancelled reports whether the parent context ended the spinner.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
