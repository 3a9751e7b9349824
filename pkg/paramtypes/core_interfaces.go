// Package paramtypes defines core architectural interfaces for paramshell.
// This file contains the service contract and the structured help types
// shared between the command layer and the help service.
package paramtypes

// Service defines the interface for paramshell services that provide specific functionality.
// Services are initialized at startup and can be accessed by commands during execution.
type Service interface {
	Name() string
	Initialize() error
}

// HelpInfo represents structured help information for a command.
// It provides rich help data that can be rendered in both plain text and styled formats.
type HelpInfo struct {
	Command     string        `json:"command"`            // Full command path (e.g. "shift add")
	Description string        `json:"description"`        // Brief description of what the command does
	Variants    []HelpVariant `json:"variants,omitempty"` // One entry per accepted parameter scheme
	Examples    []HelpExample `json:"examples,omitempty"` // Usage examples
	Notes       []string      `json:"notes,omitempty"`    // Additional notes or warnings
}

// HelpVariant describes one accepted form of a command.
type HelpVariant struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
}

// HelpExample represents a usage example with explanation.
type HelpExample struct {
	Command     string `json:"command"`     // Example command
	Description string `json:"description"` // What this example demonstrates
}
