package requirements

import "strings"

// ActionSet is an Authorizer backed by a fixed set of action names.
// The action "*" allows everything.
type ActionSet map[string]struct{}

// NewActionSet creates an ActionSet from action names, ignoring blanks.
func NewActionSet(actions ...string) ActionSet {
	set := make(ActionSet, len(actions))
	for _, action := range actions {
		action = strings.TrimSpace(action)
		if action != "" {
			set[action] = struct{}{}
		}
	}
	return set
}

// IsActionAllowed implements Authorizer.
func (s ActionSet) IsActionAllowed(action string) bool {
	if _, ok := s["*"]; ok {
		return true
	}
	_, ok := s[action]
	return ok
}

// StaticEnvironment is an Environment with fixed values, used by the shell
// where the facts come from configuration.
type StaticEnvironment struct {
	Version string
	Request string
	Actions Authorizer
}

// ClientVersion implements Environment.
func (e StaticEnvironment) ClientVersion() string { return e.Version }

// Origin implements Environment.
func (e StaticEnvironment) Origin() string { return e.Request }

// Authorizer implements Environment.
func (e StaticEnvironment) Authorizer() Authorizer { return e.Actions }
