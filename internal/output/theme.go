package output

import (
	"embed"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

//go:embed themes/*.yaml
var themeFiles embed.FS

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "default"

// ThemeConfig is the YAML form of a theme.
type ThemeConfig struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Styles      map[string]StyleConfig `yaml:"styles"`
}

// StyleConfig describes one semantic style. Colours are either a single
// colour string or a {light, dark} pair.
type StyleConfig struct {
	Foreground any  `yaml:"foreground,omitempty"`
	Background any  `yaml:"background,omitempty"`
	Bold       bool `yaml:"bold,omitempty"`
	Italic     bool `yaml:"italic,omitempty"`
	Underline  bool `yaml:"underline,omitempty"`
}

// Theme is a StyleProvider built from a ThemeConfig and bound to a renderer,
// so colour support follows the writer the theme renders for.
type Theme struct {
	Name     string
	renderer *lipgloss.Renderer
	styles   map[SemanticType]lipgloss.Style
}

// ThemeNames lists the embedded themes.
func ThemeNames() []string {
	entries, err := themeFiles.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	slices.Sort(names)
	return names
}

// LoadTheme loads an embedded theme for output written to w.
func LoadTheme(name string, w io.Writer) (*Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	data, err := themeFiles.ReadFile("themes/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return ParseTheme(data, lipgloss.NewRenderer(w))
}

// ParseTheme builds a theme from YAML.
func ParseTheme(data []byte, renderer *lipgloss.Renderer) (*Theme, error) {
	var config ThemeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}

	theme := &Theme{
		Name:     config.Name,
		renderer: renderer,
		styles:   make(map[SemanticType]lipgloss.Style, len(config.Styles)),
	}
	for key, styleConfig := range config.Styles {
		semantic := SemanticType(key)
		if !slices.Contains(SemanticTypes, semantic) {
			return nil, fmt.Errorf("theme %s: unknown style %q", config.Name, key)
		}
		style, err := theme.buildStyle(styleConfig)
		if err != nil {
			return nil, fmt.Errorf("theme %s: style %s: %w", config.Name, key, err)
		}
		theme.styles[semantic] = style
	}
	return theme, nil
}

func (t *Theme) buildStyle(config StyleConfig) (lipgloss.Style, error) {
	style := t.renderer.NewStyle()
	if config.Foreground != nil {
		color, err := parseColor(config.Foreground)
		if err != nil {
			return style, err
		}
		style = style.Foreground(color)
	}
	if config.Background != nil {
		color, err := parseColor(config.Background)
		if err != nil {
			return style, err
		}
		style = style.Background(color)
	}
	return style.Bold(config.Bold).Italic(config.Italic).Underline(config.Underline), nil
}

func parseColor(value any) (lipgloss.TerminalColor, error) {
	switch v := value.(type) {
	case string:
		return lipgloss.Color(v), nil
	case map[string]any:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}, nil
		}
	}
	return nil, fmt.Errorf("invalid colour %v", value)
}

// SetColorProfile overrides the detected colour profile.
func (t *Theme) SetColorProfile(profile termenv.Profile) {
	t.renderer.SetColorProfile(profile)
}

// GetStyle implements StyleProvider. Unstyled semantics render unchanged.
func (t *Theme) GetStyle(semantic string) TextStyle {
	if style, ok := t.styles[SemanticType(semantic)]; ok {
		return lipglossStyle{style: style}
	}
	return lipglossStyle{style: t.renderer.NewStyle()}
}

// IsAvailable implements StyleProvider. Themes are only used when the
// writer supports at least basic ANSI colours.
func (t *Theme) IsAvailable() bool {
	return t.renderer.ColorProfile() != termenv.Ascii
}

type lipglossStyle struct {
	style lipgloss.Style
}

func (s lipglossStyle) Render(text string) string {
	return s.style.Render(text)
}
