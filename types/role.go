package types

// Role identifies the kind of slot an assignment fills in a round.
type Role string

const (
	// RoleDPS1 is the primary damage slot.
	RoleDPS1 Role = "dps1"

	// RoleDPS2 is the secondary (alt account) damage slot.
	RoleDPS2 Role = "dps2"

	// RoleMercy is the support/healer slot.
	RoleMercy Role = "mercy"
)

// Roles lists every role in fill order.
var Roles = []Role{RoleMercy, RoleDPS1, RoleDPS2}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDPS1, RoleDPS2, RoleMercy:
		return true
	default:
		return false
	}
}
