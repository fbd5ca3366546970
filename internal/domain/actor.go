package domain

// RoleLevel is the caller-resolved role of the authenticated user.
type RoleLevel string

const (
	RoleNone         RoleLevel = "NONE"
	RoleTeamLeader   RoleLevel = "TEAM_LEADER"
	RoleDivisionHead RoleLevel = "DIVISION_HEAD"
	RoleAdmin        RoleLevel = "ADMIN"
)

func (r RoleLevel) Valid() bool {
	switch r {
	case RoleNone, RoleTeamLeader, RoleDivisionHead, RoleAdmin:
		return true
	}
	return false
}

// Actor is the identity the auth layer resolved for the current caller.
// The workflow engine trusts it as-is; it never re-derives identity.
type Actor struct {
	UserID   string
	Division string
	Team     string
	Role     RoleLevel
}
