// Package paramtypes defines the data structures shared across paramshell.
//
// The package is organized into logical groupings:
//
// # Scheme Types (scheme_types.go)
//
// The declarative grammar used to describe command arguments:
//
//   - Parameter: a leaf node describing one expected argument
//   - ParameterGroup: a composite node combining children under a Relation
//   - ParametersList: the root scheme of a command variant
//
// Nodes form a tagged union. Every node reports its NodeKind so callers never
// have to infer the node shape from its fields:
//
//	switch n := node.(type) {
//	case paramtypes.Parameter:
//		// leaf
//	case paramtypes.ParameterGroup:
//		// composite
//	}
//
// # Match Types (match_types.go)
//
// The result of matching a token list against a scheme:
//
//   - MatchResult: success flag, consumed tokens, raw and parsed values, error location
//   - MatchOutcome: the result together with the input, named pairs and scheme
//
// # Requirement Types (requirement_types.go)
//
// Conditions a command variant may impose on the caller (client version,
// authorization, origin, custom tests).
//
// # Core Interfaces (core_interfaces.go)
//
// Service registration contracts and help data.
package paramtypes
