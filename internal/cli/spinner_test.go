package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestSpinnerDraws(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerTo(context.Background(), &buf, "Rendering")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	s.Stop()

	if !strings.Contains(buf.String(), "Rendering") {
		t.Errorf("spinner output = %q", buf.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerTo(ctx, nil, "Rendering")
	s.Start()
	cancel()
	s.Stop()
	if !s.Cancelled() {
		t.Error("spinner should report parent cancellation")
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinnerTo(context.Background(), nil, "idle")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without Start")
	}
}
