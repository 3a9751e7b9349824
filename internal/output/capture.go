package output

import (
	"bytes"
	"strings"
	"sync"
)

// CaptureBuffer is a goroutine-safe io.Writer that keeps what was written.
type CaptureBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewCaptureBuffer creates an empty capture buffer.
func NewCaptureBuffer() *CaptureBuffer {
	return &CaptureBuffer{}
}

func (c *CaptureBuffer) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *CaptureBuffer) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Lines returns the captured output split into lines without the final newline.
func (c *CaptureBuffer) Lines() []string {
	content := c.String()
	if content == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// Reset clears the buffer.
func (c *CaptureBuffer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Reset()
}

// CaptureOutput runs fn with a plain test printer and returns what it wrote.
func CaptureOutput(fn func(*Printer)) string {
	buffer := NewCaptureBuffer()
	fn(NewPrinter(WithWriter(buffer), TestMode()))
	return buffer.String()
}

// MarkerStyles is a StyleProvider that wraps text in [semantic]...[/semantic]
// tags, which makes styling visible in tests.
type MarkerStyles struct{}

// GetStyle implements StyleProvider.
func (MarkerStyles) GetStyle(semantic string) TextStyle { return markerStyle(semantic) }

// IsAvailable implements StyleProvider.
func (MarkerStyles) IsAvailable() bool { return true }

type markerStyle string

func (m markerStyle) Render(text string) string {
	return "[" + string(m) + "]" + text + "[/" + string(m) + "]"
}
