package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/recipecard/pkg/config"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// storeSpinner shows progress while a remote template store is connected
// and seeded. The message changes per phase through Update. The spinner
// stops on its own when ctx is cancelled.
type storeSpinner struct {
	w   io.Writer
	ctx context.Context

	mu      sync.Mutex
	message string
	frame   int
	width   int // widest line drawn, cleared on stop
	started bool

	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func newStoreSpinner(ctx context.Context, w io.Writer, message string) *storeSpinner {
	return &storeSpinner{
		w:       w,
		ctx:     ctx,
		message: message,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start draws the first frame and begins animating.
func (s *storeSpinner) Start() {
	s.mu.Lock()
	s.started = true
	s.drawLocked()
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-s.done:
				s.clear()
				return
			case <-ticker.C:
				s.mu.Lock()
				s.frame++
				s.drawLocked()
				s.mu.Unlock()
			}
		}
	}()
}

// Update replaces the message, redrawing at once if the spinner is running.
func (s *storeSpinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	if s.started {
		s.drawLocked()
	}
}

// Stop clears the line. It may be called more than once.
func (s *storeSpinner) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.stopped
	}
}

// Cancelled reports whether the spinner's context ended before Stop.
func (s *storeSpinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *storeSpinner) drawLocked() {
	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	line := frame + " " + s.message
	if n := len([]rune(line)); n > s.width {
		s.width = n
	}
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *storeSpinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
}

// storeTarget describes where the configured store lives. Passwords in
// connection strings are redacted.
func storeTarget(cfg *config.Config) string {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		return "redis at " + cfg.Redis.Addr
	case config.BackendMongo:
		u, err := url.Parse(cfg.Mongo.URI)
		if err != nil {
			return "mongo"
		}
		return "mongo at " + u.Redacted()
	case config.BackendFile:
		return "file store in " + cfg.Store.Dir
	}
	return cfg.Store.Backend + " store"
}
