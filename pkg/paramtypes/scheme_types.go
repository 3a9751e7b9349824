// Package paramtypes defines the parameter scheme grammar for paramshell.
// This file contains the scheme node types, the relations that combine them
// and small builders used when authoring command schemes in Go.
package paramtypes

import (
	"fmt"
	"strings"
)

// ParamType identifies how a single argument token is validated and converted.
type ParamType string

const (
	// TypeBoolean accepts true/false and 1/0.
	TypeBoolean ParamType = "boolean"
	// TypeDate accepts a D/M/YYYY calendar date.
	TypeDate ParamType = "date"
	// TypeTime accepts a 24-hour H:M time of day.
	TypeTime ParamType = "time"
	// TypeNumber accepts a base-10 integer.
	TypeNumber ParamType = "number"
	// TypeString accepts any non-empty token.
	TypeString ParamType = "string"
	// TypeLiteral accepts only the parameter name itself.
	TypeLiteral ParamType = "literal"
	// TypeEnum accepts one of the declared enum members.
	TypeEnum ParamType = "enum"
)

// ParamTypes lists every supported parameter type.
var ParamTypes = []ParamType{TypeBoolean, TypeDate, TypeTime, TypeNumber, TypeString, TypeLiteral, TypeEnum}

// ParseParamType converts a type name into a ParamType.
func ParseParamType(name string) (ParamType, error) {
	for _, t := range ParamTypes {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown parameter type '%s'", name)
}

// Relation is the combination rule for the children of a ParameterGroup.
type Relation string

const (
	// RelationOneOf requires exactly one alternative to match.
	RelationOneOf Relation = "oneOf"
	// RelationAllIfFirst requires every child once the first one matched.
	RelationAllIfFirst Relation = "allIfFirst"
	// RelationMany matches children sequentially, each independently optional or required.
	RelationMany Relation = "many"
)

// ParseRelation converts a relation name into a Relation.
func ParseRelation(name string) (Relation, error) {
	switch Relation(name) {
	case RelationOneOf, RelationAllIfFirst, RelationMany:
		return Relation(name), nil
	}
	return "", fmt.Errorf("unknown group relation '%s'", name)
}

// NodeKind discriminates the two kinds of scheme nodes.
type NodeKind int

const (
	// KindParameter marks a leaf Parameter.
	KindParameter NodeKind = iota
	// KindGroup marks a composite ParameterGroup.
	KindGroup
)

// String returns "parameter" or "group".
func (k NodeKind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "parameter"
}

// Node is an element of a scheme: either a Parameter or a ParameterGroup.
type Node interface {
	Kind() NodeKind
}

// Parameter is a leaf scheme node describing one expected argument.
type Parameter struct {
	// Name identifies the parameter in match results. For literals it is also the
	// text to match and for named pairs it is the switch, including the leading "--".
	Name          string
	Type          ParamType
	Optional      bool
	IsNamedPair   bool
	Enum          []string
	CaseSensitive bool
	Description   string
}

// Kind returns KindParameter.
func (Parameter) Kind() NodeKind { return KindParameter }

// AsOptional returns a copy of the parameter marked optional.
func (p Parameter) AsOptional() Parameter {
	p.Optional = true
	return p
}

// AsNamedPair returns a copy of the parameter turned into an optional --switch.
func (p Parameter) AsNamedPair() Parameter {
	p.IsNamedPair = true
	p.Optional = true
	return p
}

// AsCaseSensitive returns a copy of the parameter with case-sensitive comparison.
func (p Parameter) AsCaseSensitive() Parameter {
	p.CaseSensitive = true
	return p
}

// Describe returns a copy of the parameter with a help description.
func (p Parameter) Describe(description string) Parameter {
	p.Description = description
	return p
}

// Placeholder renders the parameter the way it appears in a usage line.
func (p Parameter) Placeholder() string {
	if p.IsNamedPair {
		switch p.Type {
		case TypeLiteral:
			return p.Name
		case TypeEnum:
			return p.Name + " <" + strings.Join(p.Enum, "|") + ">"
		default:
			return p.Name + " <" + string(p.Type) + ">"
		}
	}

	switch p.Type {
	case TypeLiteral:
		return p.Name
	case TypeEnum:
		return "<" + p.Name + ":" + strings.Join(p.Enum, "|") + ">"
	default:
		return "<" + p.Name + ":" + string(p.Type) + ">"
	}
}

// ParameterGroup is a composite scheme node.
type ParameterGroup struct {
	Relation   Relation
	Parameters []Node
	// Required only matters for oneOf groups inside a many group. A nil value
	// means required; an explicit false lets the whole alternative be skipped.
	Required *bool
}

// Kind returns KindGroup.
func (ParameterGroup) Kind() NodeKind { return KindGroup }

// IsRequired reports whether the group must be present.
func (g ParameterGroup) IsRequired() bool {
	return g.Required == nil || *g.Required
}

// IsSkippable reports whether a parent many group may treat the group as absent.
func (g ParameterGroup) IsSkippable() bool {
	switch g.Relation {
	case RelationAllIfFirst:
		return true
	case RelationOneOf:
		return !g.IsRequired()
	}
	return false
}

// NotRequired returns a copy of the group that may be skipped entirely.
func (g ParameterGroup) NotRequired() ParameterGroup {
	required := false
	g.Required = &required
	return g
}

// ParametersList is the root scheme of a command variant. The matcher wraps it
// in an implicit many group.
type ParametersList []Node

// NamedPairs returns the top-level named pair parameters with their indexes.
func (l ParametersList) NamedPairs() map[int]Parameter {
	result := make(map[int]Parameter)
	for i, node := range l {
		if p, ok := node.(Parameter); ok && p.IsNamedPair {
			result[i] = p
		}
	}
	return result
}

// StringParam creates a string parameter.
func StringParam(name string) Parameter { return Parameter{Name: name, Type: TypeString} }

// NumberParam creates an integer parameter.
func NumberParam(name string) Parameter { return Parameter{Name: name, Type: TypeNumber} }

// BoolParam creates a boolean parameter.
func BoolParam(name string) Parameter { return Parameter{Name: name, Type: TypeBoolean} }

// DateParam creates a D/M/YYYY date parameter.
func DateParam(name string) Parameter { return Parameter{Name: name, Type: TypeDate} }

// TimeParam creates an H:M time parameter.
func TimeParam(name string) Parameter { return Parameter{Name: name, Type: TypeTime} }

// LiteralParam creates a parameter matching its own name.
func LiteralParam(name string) Parameter { return Parameter{Name: name, Type: TypeLiteral} }

// EnumParam creates a parameter accepting one of values.
func EnumParam(name string, values ...string) Parameter {
	return Parameter{Name: name, Type: TypeEnum, Enum: values}
}

// OneOf creates a group where exactly one child must match.
func OneOf(nodes ...Node) ParameterGroup {
	return ParameterGroup{Relation: RelationOneOf, Parameters: nodes}
}

// AllIfFirst creates a group where every child must match once the first one did.
func AllIfFirst(nodes ...Node) ParameterGroup {
	return ParameterGroup{Relation: RelationAllIfFirst, Parameters: nodes}
}

// Many creates a group whose children are matched in sequence.
func Many(nodes ...Node) ParameterGroup {
	return ParameterGroup{Relation: RelationMany, Parameters: nodes}
}
