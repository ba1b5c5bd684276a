package flattener

import (
	"fmt"
	"strings"
)

// CollisionPolicy decides what happens when two independent paths produce
// the same flattened key, for example the literal key "a.b" next to the
// object path a -> b.
type CollisionPolicy int

const (
	// CollisionOverwrite keeps the value written last.
	CollisionOverwrite CollisionPolicy = iota
	// CollisionMerge keeps every value: the existing value is promoted to
	// an array (if it is not one already) and the new values are appended.
	CollisionMerge
)

// String returns the policy name used on the command line.
func (p CollisionPolicy) String() string {
	switch p {
	case CollisionOverwrite:
		return "overwrite"
	case CollisionMerge:
		return "merge"
	default:
		return fmt.Sprintf("CollisionPolicy(%d)", p)
	}
}

// IsValid returns true if the policy is one of the defined constants.
func (p CollisionPolicy) IsValid() bool {
	return p == CollisionOverwrite || p == CollisionMerge
}

// ValidCollisionPolicies returns the accepted policy names.
func ValidCollisionPolicies() []string {
	return []string{CollisionOverwrite.String(), CollisionMerge.String()}
}

// ParseCollisionPolicy maps a policy name to its constant. The empty string
// selects CollisionOverwrite.
func ParseCollisionPolicy(name string) (CollisionPolicy, error) {
	switch strings.ToLower(name) {
	case "", "overwrite":
		return CollisionOverwrite, nil
	case "merge":
		return CollisionMerge, nil
	default:
		return CollisionOverwrite, fmt.Errorf("invalid collision policy %q, valid policies: %s",
			name, strings.Join(ValidCollisionPolicies(), ", "))
	}
}
