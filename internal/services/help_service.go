package services

import (
	"fmt"
	"strings"

	"paramshell/pkg/paramtypes"
)

// HelpServiceName is the registry name of the help service.
const HelpServiceName = "help"

// HelpService turns command help into Markdown and renders it.
type HelpService struct {
	markdown *MarkdownService
}

// NewHelpService creates a help service rendering through markdown.
func NewHelpService(markdown *MarkdownService) *HelpService {
	return &HelpService{markdown: markdown}
}

// Name returns the service name.
func (h *HelpService) Name() string {
	return HelpServiceName
}

// Initialize checks that a markdown renderer is available.
func (h *HelpService) Initialize() error {
	if h.markdown == nil {
		return fmt.Errorf("help service needs a markdown service")
	}
	return nil
}

// CommandMarkdown writes the help page of one command.
func (h *HelpService) CommandMarkdown(info paramtypes.HelpInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", info.Command)
	if info.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", info.Description)
	}

	if len(info.Variants) > 0 {
		b.WriteString("## Usage\n\n")
		for _, v := range info.Variants {
			fmt.Fprintf(&b, "- `%s`", v.Usage)
			if v.Description != "" {
				fmt.Fprintf(&b, " %s", v.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(info.Examples) > 0 {
		b.WriteString("## Examples\n\n")
		for _, ex := range info.Examples {
			fmt.Fprintf(&b, "- `%s` %s\n", ex.Command, ex.Description)
		}
		b.WriteString("\n")
	}

	if len(info.Notes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, note := range info.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// OverviewMarkdown writes a table of all commands.
func (h *HelpService) OverviewMarkdown(infos []paramtypes.HelpInfo) string {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	b.WriteString("| Command | Description |\n")
	b.WriteString("| --- | --- |\n")
	for _, info := range infos {
		fmt.Fprintf(&b, "| `%s` | %s |\n", info.Command, strings.ReplaceAll(info.Description, "|", "\\|"))
	}
	b.WriteString("\nRun `help <command>` for the accepted parameters.\n")
	return b.String()
}

// RenderCommand renders the help page of one command.
func (h *HelpService) RenderCommand(info paramtypes.HelpInfo) (string, error) {
	return h.markdown.Render(h.CommandMarkdown(info))
}

// RenderOverview renders the command table.
func (h *HelpService) RenderOverview(infos []paramtypes.HelpInfo) (string, error) {
	return h.markdown.Render(h.OverviewMarkdown(infos))
}
