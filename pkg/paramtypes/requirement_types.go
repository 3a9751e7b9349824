package paramtypes

// RequirementKind identifies what a variant Requirement checks.
type RequirementKind string

const (
	// RequireMinVersion passes when the client version is >= Value.
	RequireMinVersion RequirementKind = "minVersion"
	// RequireMaxVersion passes when the client version is <= Value.
	RequireMaxVersion RequirementKind = "maxVersion"
	// RequireExactVersion passes when the client version equals Value.
	RequireExactVersion RequirementKind = "exactVersion"
	// RequireAllowedAction passes when the caller is authorized for the action in Value.
	RequireAllowedAction RequirementKind = "allowedAction"
	// RequireCustomTest delegates to Test.
	RequireCustomTest RequirementKind = "customTest"
	// RequireHTTPOrigin passes when the request origin equals Value.
	RequireHTTPOrigin RequirementKind = "HTTPOrigin"
)

// CustomTest is a caller-provided requirement predicate. It may recurse into
// other requirements through the helper.
type CustomTest func(helper RequirementHelper) bool

// RequirementHelper is handed to custom tests.
type RequirementHelper interface {
	Check(req Requirement) bool
	ClientVersion() string
	Origin() string
	IsActionAllowed(action string) bool
}

// Requirement is a single condition a command variant imposes on its caller.
type Requirement struct {
	Kind  RequirementKind
	Value string
	Test  CustomTest
}

// MinVersion creates a minimum client version requirement.
func MinVersion(version string) Requirement {
	return Requirement{Kind: RequireMinVersion, Value: version}
}

// MaxVersion creates a maximum client version requirement.
func MaxVersion(version string) Requirement {
	return Requirement{Kind: RequireMaxVersion, Value: version}
}

// ExactVersion creates an exact client version requirement.
func ExactVersion(version string) Requirement {
	return Requirement{Kind: RequireExactVersion, Value: version}
}

// AllowedAction creates an authorization requirement.
func AllowedAction(action string) Requirement {
	return Requirement{Kind: RequireAllowedAction, Value: action}
}

// HTTPOrigin creates a request origin requirement.
func HTTPOrigin(origin string) Requirement {
	return Requirement{Kind: RequireHTTPOrigin, Value: origin}
}

// Custom creates a requirement evaluated by test.
func Custom(test CustomTest) Requirement {
	return Requirement{Kind: RequireCustomTest, Test: test}
}
