package models

// Role is the closed set of member roles. Role strings arrive from the
// backend as free-form text; ParseRole normalises them at the boundary so
// everything downstream works over the closed set.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleHealthSpecialist Role = "health_specialist"
	RoleParent           Role = "parent"
	RoleChild            Role = "child"
	RoleMember           Role = "member"
)

// ParseRole maps a raw role string onto the closed enumeration.
// Unrecognised or empty values become RoleMember.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleHealthSpecialist, RoleParent, RoleChild, RoleMember:
		return Role(s)
	default:
		return RoleMember
	}
}

// Label returns the display name for a role. Total over any input; an
// unexpected value falls through to "Member".
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleHealthSpecialist:
		return "Health Specialist"
	case RoleParent:
		return "Parent"
	case RoleChild:
		return "Student"
	default:
		return "Member"
	}
}

// BadgeColor returns the display hint used for role badges.
func (r Role) BadgeColor() string {
	switch r {
	case RoleAdmin:
		return "red"
	case RoleHealthSpecialist:
		return "blue"
	case RoleParent:
		return "green"
	case RoleChild:
		return "purple"
	default:
		return "gray"
	}
}
