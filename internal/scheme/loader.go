package scheme

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"paramshell/pkg/paramtypes"
)

// Node kinds accepted in scheme files.
const (
	FileKindParameter = "parameter"
	FileKindGroup     = "group"
)

// File is the on-disk representation of a set of command schemes.
type File struct {
	Commands []CommandSpec `yaml:"commands" toml:"commands"`
}

// CommandSpec describes a command, its variants and sub commands.
type CommandSpec struct {
	Name        string        `yaml:"name" toml:"name"`
	Description string        `yaml:"description,omitempty" toml:"description,omitempty"`
	Variants    []VariantSpec `yaml:"variants,omitempty" toml:"variants,omitempty"`
	SubCommands []CommandSpec `yaml:"subcommands,omitempty" toml:"subcommands,omitempty"`
}

// VariantSpec describes one accepted parameter scheme of a command.
type VariantSpec struct {
	Name        string     `yaml:"name" toml:"name"`
	Description string     `yaml:"description,omitempty" toml:"description,omitempty"`
	Parameters  []NodeSpec `yaml:"parameters" toml:"parameters"`
}

// NodeSpec is a parameter or, with kind "group", a parameter group.
type NodeSpec struct {
	Kind string `yaml:"kind,omitempty" toml:"kind,omitempty"`

	Name          string   `yaml:"name,omitempty" toml:"name,omitempty"`
	Type          string   `yaml:"type,omitempty" toml:"type,omitempty"`
	Optional      bool     `yaml:"optional,omitempty" toml:"optional,omitempty"`
	NamedPair     bool     `yaml:"namedPair,omitempty" toml:"namedPair,omitempty"`
	Enum          []string `yaml:"enum,omitempty" toml:"enum,omitempty"`
	CaseSensitive bool     `yaml:"caseSensitive,omitempty" toml:"caseSensitive,omitempty"`
	Description   string   `yaml:"description,omitempty" toml:"description,omitempty"`

	Relation   string     `yaml:"relation,omitempty" toml:"relation,omitempty"`
	Required   *bool      `yaml:"required,omitempty" toml:"required,omitempty"`
	Parameters []NodeSpec `yaml:"parameters,omitempty" toml:"parameters,omitempty"`
}

// LoadFile reads a scheme file, choosing the decoder from the extension
// (.yaml, .yml or .toml).
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scheme file %s: %w", path, err)
	}

	var file *File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		file, err = DecodeYAML(data)
	case ".toml":
		file, err = DecodeTOML(data)
	default:
		return nil, fmt.Errorf("unsupported scheme file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse scheme file %s: %w", path, err)
	}
	return file, nil
}

// DecodeYAML parses a YAML scheme document. Unknown fields are rejected.
func DecodeYAML(data []byte) (*File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

// DecodeTOML parses a TOML scheme document. Unknown keys are rejected.
func DecodeTOML(data []byte) (*File, error) {
	var file File
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys: %v", undecoded)
	}
	return &file, nil
}

// Scheme converts the variant parameters into a ParametersList.
func (v VariantSpec) Scheme() (paramtypes.ParametersList, error) {
	list := make(paramtypes.ParametersList, 0, len(v.Parameters))
	for i, spec := range v.Parameters {
		node, err := spec.Node()
		if err != nil {
			return nil, fmt.Errorf("variant %s, item %d: %w", v.Name, i, err)
		}
		list = append(list, node)
	}
	return list, nil
}

// Node converts a NodeSpec into a scheme node.
func (n NodeSpec) Node() (paramtypes.Node, error) {
	switch n.Kind {
	case FileKindGroup:
		relation, err := paramtypes.ParseRelation(n.Relation)
		if err != nil {
			return nil, err
		}
		group := paramtypes.ParameterGroup{Relation: relation, Required: n.Required}
		for i, child := range n.Parameters {
			node, err := child.Node()
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			group.Parameters = append(group.Parameters, node)
		}
		return group, nil

	case "", FileKindParameter:
		if n.Relation != "" || len(n.Parameters) > 0 {
			return nil, fmt.Errorf("parameter %s has group fields, set kind: group", n.Name)
		}
		paramType, err := paramtypes.ParseParamType(n.Type)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", n.Name, err)
		}
		return paramtypes.Parameter{
			Name:          n.Name,
			Type:          paramType,
			Optional:      n.Optional,
			IsNamedPair:   n.NamedPair,
			Enum:          n.Enum,
			CaseSensitive: n.CaseSensitive,
			Description:   n.Description,
		}, nil
	}
	return nil, fmt.Errorf("unknown node kind %q", n.Kind)
}

// VerifyAll converts and verifies every variant in the file. The returned
// errors are prefixed with the command path and variant name.
func (f *File) VerifyAll() []error {
	var errs []error
	var walk func(prefix string, cmds []CommandSpec)
	walk = func(prefix string, cmds []CommandSpec) {
		for _, cmd := range cmds {
			path := strings.TrimSpace(prefix + " " + cmd.Name)
			for _, variant := range cmd.Variants {
				list, err := variant.Scheme()
				if err == nil {
					err = Verify(list)
				}
				if err != nil {
					errs = append(errs, fmt.Errorf("%s [%s]: %w", path, variant.Name, err))
				}
			}
			walk(path, cmd.SubCommands)
		}
	}
	walk("", f.Commands)
	return errs
}
