package services

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"paramshell/internal/logger"
)

// MarkdownServiceName is the registry name of the markdown service.
const MarkdownServiceName = "markdown"

// MarkdownStyles are the glamour styles the service accepts.
var MarkdownStyles = []string{"auto", "dark", "light", "notty", "ascii"}

// MarkdownService renders Markdown for the terminal with glamour. Renderers
// are built lazily and cached per style.
type MarkdownService struct {
	mu          sync.Mutex
	initialized bool
	style       string
	wordWrap    int
	renderers   map[string]*glamour.TermRenderer
}

// NewMarkdownService creates a markdown service using style, one of MarkdownStyles.
func NewMarkdownService(style string) *MarkdownService {
	if style == "" {
		style = "auto"
	}
	return &MarkdownService{
		style:     style,
		wordWrap:  80,
		renderers: make(map[string]*glamour.TermRenderer),
	}
}

// Name returns the service name.
func (m *MarkdownService) Name() string {
	return MarkdownServiceName
}

// Initialize validates the configured style.
func (m *MarkdownService) Initialize() error {
	if !slices.Contains(MarkdownStyles, m.style) {
		return fmt.Errorf("unknown markdown style %q", m.style)
	}
	m.initialized = true
	return nil
}

// Render renders markdown with the configured style.
func (m *MarkdownService) Render(markdown string) (string, error) {
	return m.RenderWithStyle(markdown, m.style)
}

// RenderWithStyle renders markdown with a specific style.
func (m *MarkdownService) RenderWithStyle(markdown, style string) (string, error) {
	if !m.initialized {
		return "", fmt.Errorf("markdown service not initialized")
	}
	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("markdown content cannot be empty")
	}

	renderer, err := m.renderer(style)
	if err != nil {
		return "", err
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown with style '%s': %w", style, err)
	}
	return rendered, nil
}

// SetWordWrap changes the wrap width and drops cached renderers.
func (m *MarkdownService) SetWordWrap(width int) error {
	if width <= 0 {
		return fmt.Errorf("word wrap width must be positive, got %d", width)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wordWrap = width
	m.renderers = make(map[string]*glamour.TermRenderer)
	logger.Debug("Markdown word wrap updated", "width", width)
	return nil
}

func (m *MarkdownService) renderer(style string) (*glamour.TermRenderer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.renderers[style]; ok {
		return r, nil
	}
	if !slices.Contains(MarkdownStyles, style) {
		return nil, fmt.Errorf("unknown markdown style %q", style)
	}

	styleOption := glamour.WithStylePath(style)
	if style == "auto" {
		styleOption = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOption, glamour.WithWordWrap(m.wordWrap))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	m.renderers[style] = r
	return r, nil
}
