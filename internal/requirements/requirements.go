// Package requirements evaluates the conditions a command variant imposes on
// its caller: client version bounds, authorization, request origin and custom tests.
// Every fact comes from an injected Environment; nothing is read from globals.
package requirements

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"paramshell/internal/logger"
	"paramshell/pkg/paramtypes"
)

// Authorizer decides whether the caller may perform an action.
type Authorizer interface {
	IsActionAllowed(action string) bool
}

// Environment exposes the caller facts requirements are evaluated against.
type Environment interface {
	ClientVersion() string
	Origin() string
	Authorizer() Authorizer
}

// CheckVariantRequirement evaluates a single requirement.
func CheckVariantRequirement(req paramtypes.Requirement, env Environment) bool {
	switch req.Kind {
	case paramtypes.RequireMinVersion:
		return compareVersion(env.ClientVersion(), req.Value, func(c int) bool { return c >= 0 })
	case paramtypes.RequireMaxVersion:
		return compareVersion(env.ClientVersion(), req.Value, func(c int) bool { return c <= 0 })
	case paramtypes.RequireExactVersion:
		return compareVersion(env.ClientVersion(), req.Value, func(c int) bool { return c == 0 })
	case paramtypes.RequireAllowedAction:
		auth := env.Authorizer()
		return auth != nil && auth.IsActionAllowed(req.Value)
	case paramtypes.RequireHTTPOrigin:
		return strings.EqualFold(env.Origin(), req.Value)
	case paramtypes.RequireCustomTest:
		return req.Test != nil && req.Test(helper{env: env})
	}
	logger.Debug("Unknown requirement kind", "kind", req.Kind)
	return false
}

// CheckAll reports whether every requirement passes.
func CheckAll(reqs []paramtypes.Requirement, env Environment) bool {
	_, failed := FirstFailing(reqs, env)
	return !failed
}

// FirstFailing returns the first requirement that does not pass.
func FirstFailing(reqs []paramtypes.Requirement, env Environment) (paramtypes.Requirement, bool) {
	for _, req := range reqs {
		if !CheckVariantRequirement(req, env) {
			return req, true
		}
	}
	return paramtypes.Requirement{}, false
}

// Describe renders a requirement for error messages.
func Describe(req paramtypes.Requirement) string {
	switch req.Kind {
	case paramtypes.RequireMinVersion:
		return "client version " + req.Value + " or newer"
	case paramtypes.RequireMaxVersion:
		return "client version " + req.Value + " or older"
	case paramtypes.RequireExactVersion:
		return "client version " + req.Value
	case paramtypes.RequireAllowedAction:
		return "permission to " + req.Value
	case paramtypes.RequireHTTPOrigin:
		return "origin " + req.Value
	}
	return string(req.Kind) + " check"
}

func compareVersion(client, bound string, accept func(int) bool) bool {
	clientVersion, err := semver.NewVersion(client)
	if err != nil {
		logger.Debug("Invalid client version", "version", client, "error", err)
		return false
	}
	boundVersion, err := semver.NewVersion(bound)
	if err != nil {
		logger.Debug("Invalid requirement version", "version", bound, "error", err)
		return false
	}
	return accept(clientVersion.Compare(boundVersion))
}

// helper lets custom tests recurse into other requirements.
type helper struct {
	env Environment
}

func (h helper) Check(req paramtypes.Requirement) bool { return CheckVariantRequirement(req, h.env) }
func (h helper) ClientVersion() string                 { return h.env.ClientVersion() }
func (h helper) Origin() string                        { return h.env.Origin() }

func (h helper) IsActionAllowed(action string) bool {
	auth := h.env.Authorizer()
	return auth != nil && auth.IsActionAllowed(action)
}
