package scheme

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"paramshell/pkg/paramtypes"
)

// Match binds tokens to a scheme. Named pairs are extracted first, the
// remaining tokens are matched positionally against the scheme wrapped in a
// many group, and finally the named pair values are converted.
//
// Match never mutates tokens or the scheme and never panics on bad input: a
// non-matching token list is reported through the returned result.
func Match(tokens []string, list paramtypes.ParametersList) paramtypes.MatchOutcome {
	positional, pairs := ExtractNamedPairs(tokens)

	root := paramtypes.ParameterGroup{Relation: paramtypes.RelationMany, Parameters: list}
	result := matchGroup(positional, root)

	if result.Matches && len(result.Unmatched) > 0 {
		state := groupState{matched: result.Matched, unmatched: result.Unmatched}
		result = state.failure(fmt.Sprintf("Unexpected parameter %q", result.Unmatched[0]), []int{})
	}
	if result.Matches {
		result = resolveNamedPairs(result, list, pairs)
	}

	return paramtypes.MatchOutcome{
		Result:     result,
		Input:      slices.Clone(tokens),
		NamedPairs: pairs,
		Scheme:     list,
	}
}

// ExtractNamedPairs splits tokens into positional tokens and --switch values.
// Any token containing "--" is a switch; the token after it is its value unless
// it is a switch itself or the list ends, in which case the value is nil.
// Switch keys are lower-cased. The input slice is left untouched.
func ExtractNamedPairs(tokens []string) ([]string, map[string]*string) {
	positional := make([]string, 0, len(tokens))
	pairs := make(map[string]*string)

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if !isSwitch(token) {
			positional = append(positional, token)
			continue
		}

		key := strings.ToLower(token)
		if i+1 < len(tokens) && !isSwitch(tokens[i+1]) {
			value := tokens[i+1]
			pairs[key] = &value
			i++
		} else {
			pairs[key] = nil
		}
	}

	return positional, pairs
}

func isSwitch(token string) bool {
	return strings.Contains(token, "--")
}

// groupState is the running state of one group invocation. It is treated as
// a value: absorb returns a new state and never touches the receiver.
type groupState struct {
	matched   []string
	unmatched []string
	params    map[string]string
	processed map[string]any
}

func newGroupState(tokens []string) groupState {
	return groupState{
		matched:   []string{},
		unmatched: tokens,
		params:    map[string]string{},
		processed: map[string]any{},
	}
}

func (s groupState) absorb(child paramtypes.MatchResult) groupState {
	next := groupState{
		matched:   append(slices.Clone(s.matched), child.Matched...),
		unmatched: child.Unmatched,
		params:    maps.Clone(s.params),
		processed: maps.Clone(s.processed),
	}
	maps.Copy(next.params, child.Params)
	maps.Copy(next.processed, child.ProcessedParams)
	return next
}

func (s groupState) success() paramtypes.MatchResult {
	return paramtypes.MatchResult{
		Matches:         true,
		Matched:         s.matched,
		Unmatched:       s.unmatched,
		Params:          s.params,
		ProcessedParams: s.processed,
		ErrItemPath:     []int{},
	}
}

// failure drops every binding made so far; partial matches are never surfaced.
func (s groupState) failure(message string, path []int) paramtypes.MatchResult {
	return paramtypes.MatchResult{
		Matched:         s.matched,
		Unmatched:       s.unmatched,
		Params:          map[string]string{},
		ProcessedParams: map[string]any{},
		ErrMessage:      message,
		ErrItemPath:     path,
	}
}

func prependPath(index int, path []int) []int {
	return append([]int{index}, path...)
}

func matchNode(tokens []string, node paramtypes.Node) paramtypes.MatchResult {
	switch n := node.(type) {
	case paramtypes.ParameterGroup:
		return matchGroup(tokens, n)
	case paramtypes.Parameter:
		return matchLeaf(tokens, n)
	}
	return newGroupState(tokens).failure(fmt.Sprintf("Unsupported scheme node %T", node), []int{})
}

func matchLeaf(tokens []string, p paramtypes.Parameter) paramtypes.MatchResult {
	state := newGroupState(tokens)

	var token *string
	if len(tokens) > 0 {
		token = &tokens[0]
	}

	pm := MatchParameter(token, p)
	if !pm.Matches {
		return state.failure(pm.ErrMessage, []int{})
	}

	return paramtypes.MatchResult{
		Matches:         true,
		Matched:         []string{*token},
		Unmatched:       tokens[1:],
		Params:          map[string]string{p.Name: *token},
		ProcessedParams: map[string]any{p.Name: pm.ParsedValue},
		ErrItemPath:     []int{},
	}
}

func matchGroup(tokens []string, group paramtypes.ParameterGroup) paramtypes.MatchResult {
	switch group.Relation {
	case paramtypes.RelationAllIfFirst:
		return matchAllIfFirst(tokens, group)
	case paramtypes.RelationOneOf:
		return matchOneOf(tokens, group)
	case paramtypes.RelationMany:
		return matchMany(tokens, group)
	}
	return newGroupState(tokens).failure(fmt.Sprintf("Unknown group relation %q", group.Relation), []int{})
}

func isNamedPairNode(node paramtypes.Node) bool {
	p, ok := node.(paramtypes.Parameter)
	return ok && p.IsNamedPair
}

// matchAllIfFirst requires every child in order. When the first child fails
// the result still carries its message; a parent many group decides whether
// the group counts as absent.
func matchAllIfFirst(tokens []string, group paramtypes.ParameterGroup) paramtypes.MatchResult {
	state := newGroupState(tokens)

	for i, node := range group.Parameters {
		if isNamedPairNode(node) {
			continue
		}
		res := matchNode(state.unmatched, node)
		if !res.Matches {
			return state.failure(res.ErrMessage, prependPath(i, res.ErrItemPath))
		}
		state = state.absorb(res)
	}

	return state.success()
}

func matchMany(tokens []string, group paramtypes.ParameterGroup) paramtypes.MatchResult {
	state := newGroupState(tokens)

	for i, node := range group.Parameters {
		if p, ok := node.(paramtypes.Parameter); ok {
			if p.IsNamedPair {
				continue
			}
			// Trailing optional positionals may be absent altogether.
			if len(state.unmatched) == 0 && p.Optional {
				return state.success()
			}
		}

		res := matchNode(state.unmatched, node)
		if !res.Matches {
			if g, ok := node.(paramtypes.ParameterGroup); ok && len(state.unmatched) == 0 && g.IsSkippable() {
				return state.success()
			}
			return state.failure(res.ErrMessage, prependPath(i, res.ErrItemPath))
		}
		state = state.absorb(res)
	}

	return state.success()
}

// matchOneOf returns the first matching alternative. When none matches, the
// reported failure is the last one that got past its first element, falling
// back to a generic message.
func matchOneOf(tokens []string, group paramtypes.ParameterGroup) paramtypes.MatchResult {
	state := newGroupState(tokens)

	var (
		best      paramtypes.MatchResult
		bestIndex = -1
	)
	for i, node := range group.Parameters {
		if isNamedPairNode(node) {
			continue
		}
		res := matchNode(state.unmatched, node)
		if res.Matches {
			return state.absorb(res).success()
		}
		if len(res.ErrItemPath) > 0 && res.ErrItemPath[0] != 0 {
			best, bestIndex = res, i
		}
	}

	if bestIndex >= 0 {
		return state.failure(best.ErrMessage, prependPath(bestIndex, best.ErrItemPath))
	}

	alternatives := alternativesUsage(group)
	if len(tokens) > 0 {
		return state.failure(fmt.Sprintf("Parameter %q doesn't match any of the expected definitions: %s",
			tokens[0], alternatives), []int{})
	}
	return state.failure("Expected one of the following parameter definitions: "+alternatives, []int{})
}

func resolveNamedPairs(result paramtypes.MatchResult, list paramtypes.ParametersList, pairs map[string]*string) paramtypes.MatchResult {
	state := groupState{
		matched:   result.Matched,
		unmatched: result.Unmatched,
		params:    maps.Clone(result.Params),
		processed: maps.Clone(result.ProcessedParams),
	}

	for i, node := range list {
		p, ok := node.(paramtypes.Parameter)
		if !ok || !p.IsNamedPair {
			continue
		}
		raw, present := pairs[strings.ToLower(p.Name)]
		if !present {
			continue
		}

		var value string
		switch {
		case raw != nil:
			value = *raw
		case p.Type == paramtypes.TypeLiteral:
			value = p.Name
		}

		pm := MatchParameter(&value, p)
		if !pm.Matches {
			return state.failure(pm.ErrMessage, []int{i})
		}
		state.params[p.Name] = value
		state.processed[p.Name] = pm.ParsedValue
	}

	return state.success()
}
