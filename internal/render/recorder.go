package render

import (
	"strings"
	"sync"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// Recorded is one frame captured by a Recorder.
type Recorded struct {
	Content  string
	Pipeline terminal.Pipeline
}

// Recorder is a Renderer for tests. It keeps every frame and simulates
// what an in-place renderer would leave visible on each pipeline.
type Recorder struct {
	mu      sync.Mutex
	frames  []Recorded
	screens map[terminal.Pipeline][]string
	last    map[terminal.Pipeline]int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		screens: make(map[terminal.Pipeline][]string),
		last:    make(map[terminal.Pipeline]int),
	}
}

// Render records content and replaces the previous frame on p.
func (r *Recorder) Render(content string, p terminal.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frames = append(r.frames, Recorded{Content: content, Pipeline: p})

	screen := r.screens[p]
	screen = screen[:len(screen)-r.last[p]]
	lines := strings.Split(content, "\n")
	r.screens[p] = append(screen, lines...)
	r.last[p] = len(lines)
	return nil
}

// Commit keeps the current frames on screen; later frames go below them.
func (r *Recorder) Commit() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for p := range r.last {
		r.last[p] = 0
	}
	return nil
}

// Frames returns every recorded frame in order.
func (r *Recorder) Frames() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Recorded(nil), r.frames...)
}

// Last returns the most recent frame content, or "" if none.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return ""
	}
	return r.frames[len(r.frames)-1].Content
}

// Screen returns the simulated visible lines of p.
func (r *Recorder) Screen(p terminal.Pipeline) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.screens[p]...)
}
