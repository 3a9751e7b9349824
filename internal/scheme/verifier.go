// Package scheme implements the parameter scheme grammar used by paramshell commands:
// a static verifier that catches scheme authoring mistakes, a matcher that binds
// command-line tokens to a scheme, and helpers to render and load schemes.
package scheme

import (
	"fmt"
	"slices"
	"strings"

	"paramshell/internal/logger"
	"paramshell/pkg/paramtypes"
)

// VerifyRule names the scheme invariant a DesignError reports.
type VerifyRule string

// Scheme invariants checked by Verify.
const (
	RuleInvalidNode           VerifyRule = "invalid-node"
	RuleGroupTooSmall         VerifyRule = "group-too-small"
	RuleSameRelationNesting   VerifyRule = "same-relation-nesting"
	RuleAmbiguousAlternative  VerifyRule = "ambiguous-alternative"
	RuleNestedTypeCollision   VerifyRule = "nested-type-collision"
	RuleOptionalInStrictGroup VerifyRule = "optional-in-strict-group"
	RuleRequiredAfterOptional VerifyRule = "required-after-optional"
	RuleNamedPairNotOptional  VerifyRule = "named-pair-not-optional"
	RuleNamedPairPlacement    VerifyRule = "named-pair-placement"
	RuleNamedPairPrefix       VerifyRule = "named-pair-prefix"
	RuleEnumWithoutValues     VerifyRule = "enum-without-values"
)

// DesignError reports a scheme that violates one of the grammar invariants.
type DesignError struct {
	Rule   VerifyRule
	Path   []int
	Reason string
}

// Error implements the error interface.
func (e *DesignError) Error() string {
	if len(e.Path) == 0 {
		return "scheme design error: " + e.Reason
	}
	return fmt.Sprintf("scheme design error at %s: %s", FormatPath(e.Path), e.Reason)
}

// FormatPath renders an index path as "2.0.1".
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = fmt.Sprint(idx)
	}
	return strings.Join(parts, ".")
}

func designError(rule VerifyRule, path []int, format string, args ...any) *DesignError {
	return &DesignError{Rule: rule, Path: path, Reason: fmt.Sprintf(format, args...)}
}

// typeIdentity is what the matcher can use to tell two alternatives apart.
type typeIdentity struct {
	paramType paramtypes.ParamType
	enum      string
	literal   string
}

func identityOf(p paramtypes.Parameter) typeIdentity {
	id := typeIdentity{paramType: p.Type}
	switch p.Type {
	case paramtypes.TypeLiteral:
		id.literal = foldCase(p.Name, p.CaseSensitive)
	case paramtypes.TypeEnum:
		values := make([]string, len(p.Enum))
		for i, v := range p.Enum {
			values[i] = foldCase(v, p.CaseSensitive)
		}
		slices.Sort(values)
		id.enum = strings.Join(values, "|")
	}
	return id
}

func (id typeIdentity) String() string {
	switch {
	case id.literal != "":
		return fmt.Sprintf("literal %q", id.literal)
	case id.enum != "":
		return fmt.Sprintf("enum (%s)", id.enum)
	}
	return string(id.paramType)
}

// typeSet is an insertion-ordered set of type identities.
type typeSet struct {
	order []typeIdentity
	seen  map[typeIdentity]struct{}
}

func newTypeSet() *typeSet {
	return &typeSet{seen: make(map[typeIdentity]struct{})}
}

func (s *typeSet) add(id typeIdentity) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *typeSet) has(id typeIdentity) bool {
	_, ok := s.seen[id]
	return ok
}

// Verify checks a scheme for internal consistency. It returns a *DesignError
// for the first violated invariant and nil for a valid scheme.
func Verify(list paramtypes.ParametersList) error {
	root := paramtypes.ParameterGroup{Relation: paramtypes.RelationMany, Parameters: list}
	if _, err := verifyGroup(root, nil, 0); err != nil {
		logger.Debug("Scheme verification failed", "error", err)
		return err
	}
	return nil
}

// verifyGroup walks a group and returns the type identities a parent may use
// to disambiguate it. Depth 0 is the implicit root group of the list.
func verifyGroup(group paramtypes.ParameterGroup, path []int, depth int) (*typeSet, error) {
	if _, err := paramtypes.ParseRelation(string(group.Relation)); err != nil {
		return nil, designError(RuleInvalidNode, path, "%v", err)
	}
	if depth > 0 && len(group.Parameters) < 2 {
		return nil, designError(RuleGroupTooSmall, path,
			"%s group must contain at least 2 elements, has %d", group.Relation, len(group.Parameters))
	}

	used := newTypeSet()
	prevOptional := false
	firstPositional := true

	for i, node := range group.Parameters {
		childPath := append(slices.Clone(path), i)
		currentOptional := false

		switch n := node.(type) {
		case paramtypes.ParameterGroup:
			if n.Relation == group.Relation {
				return nil, designError(RuleSameRelationNesting, childPath,
					"nested group repeats the parent relation %s, flatten it instead", n.Relation)
			}
			if group.Relation != paramtypes.RelationMany && n.Relation == paramtypes.RelationOneOf && !n.IsRequired() {
				return nil, designError(RuleOptionalInStrictGroup, childPath,
					"non-required oneOf group cannot appear in a %s group", group.Relation)
			}

			sub, err := verifyGroup(n, childPath, depth+1)
			if err != nil {
				return nil, err
			}

			if group.Relation == paramtypes.RelationOneOf {
				for _, id := range sub.order {
					if used.has(id) {
						return nil, designError(RuleNestedTypeCollision, childPath,
							"nested group element's type %s collides with the upper level group element", id)
					}
					used.add(id)
				}
			} else if len(sub.order) > 0 {
				// Only one representative of the nested group is adopted.
				used.add(sub.order[0])
			}
			currentOptional = n.IsSkippable()
			firstPositional = false

		case paramtypes.Parameter:
			if err := verifyParameter(n, childPath); err != nil {
				return nil, err
			}

			if n.IsNamedPair {
				if !n.Optional {
					return nil, designError(RuleNamedPairNotOptional, childPath,
						"named pair %s must be optional", n.Name)
				}
				if group.Relation != paramtypes.RelationMany || depth != 0 {
					return nil, designError(RuleNamedPairPlacement, childPath,
						"named pair %s may only appear in the top-level parameter list", n.Name)
				}
				continue
			}

			if group.Relation != paramtypes.RelationMany && n.Optional {
				return nil, designError(RuleOptionalInStrictGroup, childPath,
					"parameter %s cannot be optional inside a %s group", n.Name, group.Relation)
			}

			if group.Relation == paramtypes.RelationOneOf || firstPositional {
				id := identityOf(n)
				if used.has(id) {
					return nil, designError(RuleAmbiguousAlternative, childPath,
						"parameter %s has type %s, which is already used by another alternative", n.Name, id)
				}
				used.add(id)
			}
			currentOptional = n.Optional
			firstPositional = false

		default:
			return nil, designError(RuleInvalidNode, childPath, "unsupported scheme node %T", node)
		}

		if group.Relation == paramtypes.RelationMany && prevOptional && !currentOptional {
			return nil, designError(RuleRequiredAfterOptional, childPath,
				"required element follows an optional one")
		}
		prevOptional = currentOptional
	}

	return used, nil
}

func verifyParameter(p paramtypes.Parameter, path []int) error {
	if p.Name == "" {
		return designError(RuleInvalidNode, path, "parameter has no name")
	}
	if _, err := paramtypes.ParseParamType(string(p.Type)); err != nil {
		return designError(RuleInvalidNode, path, "parameter %s: %v", p.Name, err)
	}
	if p.IsNamedPair && !strings.HasPrefix(p.Name, "--") {
		return designError(RuleNamedPairPrefix, path, "named pair %s must start with --", p.Name)
	}
	if p.Type == paramtypes.TypeEnum && len(p.Enum) == 0 {
		return designError(RuleEnumWithoutValues, path, "enum parameter %s declares no values", p.Name)
	}
	return nil
}

func foldCase(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	return strings.ToLower(s)
}
