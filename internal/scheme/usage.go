package scheme

import (
	"fmt"
	"slices"
	"strings"

	"paramshell/pkg/paramtypes"
)

// Usage renders a one-line synopsis of a scheme, e.g.
//
//	(today | week | <day:date>) [--user <string>]
func Usage(list paramtypes.ParametersList) string {
	return UsageWithHighlight(list, nil, nil)
}

// UsageWithHighlight renders the synopsis and passes the element addressed by
// path through mark. An empty path or a nil mark highlights nothing.
func UsageWithHighlight(list paramtypes.ParametersList, path []int, mark func(string) string) string {
	r := usageRenderer{target: path, mark: mark}
	parts := make([]string, 0, len(list))
	for i, node := range list {
		parts = append(parts, r.render(node, paramtypes.RelationMany, []int{i}))
	}
	return strings.Join(parts, " ")
}

type usageRenderer struct {
	target []int
	mark   func(string) string
}

func (r usageRenderer) render(node paramtypes.Node, parent paramtypes.Relation, at []int) string {
	var text string
	switch n := node.(type) {
	case paramtypes.Parameter:
		text = n.Placeholder()
		if n.Optional && parent == paramtypes.RelationMany {
			text = "[" + text + "]"
		}
	case paramtypes.ParameterGroup:
		text = r.renderGroup(n, parent, at)
	default:
		text = fmt.Sprintf("<%T>", node)
	}

	if r.mark != nil && len(r.target) > 0 && slices.Equal(at, r.target) {
		return r.mark(text)
	}
	return text
}

func (r usageRenderer) renderGroup(g paramtypes.ParameterGroup, parent paramtypes.Relation, at []int) string {
	children := make([]string, 0, len(g.Parameters))
	for i, child := range g.Parameters {
		children = append(children, r.render(child, g.Relation, append(slices.Clone(at), i)))
	}

	switch g.Relation {
	case paramtypes.RelationOneOf:
		inner := strings.Join(children, " | ")
		if !g.IsRequired() && parent == paramtypes.RelationMany {
			return "[" + inner + "]"
		}
		return "(" + inner + ")"
	case paramtypes.RelationAllIfFirst:
		inner := strings.Join(children, " ")
		if parent == paramtypes.RelationMany {
			return "[" + inner + "]"
		}
		return "(" + inner + ")"
	default:
		inner := strings.Join(children, " ")
		if parent == paramtypes.RelationOneOf {
			return "(" + inner + ")"
		}
		return inner
	}
}

func alternativesUsage(g paramtypes.ParameterGroup) string {
	r := usageRenderer{}
	alternatives := make([]string, 0, len(g.Parameters))
	for i, child := range g.Parameters {
		alternatives = append(alternatives, r.render(child, g.Relation, []int{i}))
	}
	return strings.Join(alternatives, " | ")
}

// NodeAt returns the scheme element addressed by an error path.
func NodeAt(list paramtypes.ParametersList, path []int) (paramtypes.Node, bool) {
	nodes := []paramtypes.Node(list)
	var current paramtypes.Node
	for _, idx := range path {
		if idx < 0 || idx >= len(nodes) {
			return nil, false
		}
		current = nodes[idx]
		if g, ok := current.(paramtypes.ParameterGroup); ok {
			nodes = g.Parameters
		} else {
			nodes = nil
		}
	}
	return current, current != nil
}

// DescribePath renders an error path for humans, e.g.
// "top-level item 2, nested group item 0 (<day:date>)".
func DescribePath(list paramtypes.ParametersList, path []int) string {
	if len(path) == 0 {
		return "command"
	}

	parts := make([]string, len(path))
	for i, idx := range path {
		if i == 0 {
			parts[i] = fmt.Sprintf("top-level item %d", idx)
		} else {
			parts[i] = fmt.Sprintf("nested group item %d", idx)
		}
	}
	description := strings.Join(parts, ", ")

	node, ok := NodeAt(list, path)
	if !ok {
		return description
	}
	switch n := node.(type) {
	case paramtypes.Parameter:
		return description + " (" + n.Placeholder() + ")"
	case paramtypes.ParameterGroup:
		return description + " (" + string(n.Relation) + " group)"
	}
	return description
}
