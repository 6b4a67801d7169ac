package membership

// Role is a club role held by (or requested by) a profile.
type Role string

const (
	RolePresident     Role = "president"
	RoleVicePresident Role = "vice_president"
	RoleAdmin         Role = "admin"
	RolePlayer        Role = "player"
)

// RoleNone marks an intended role that was never chosen.
const RoleNone Role = ""

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePresident, RoleVicePresident, RoleAdmin, RolePlayer:
		return true
	}
	return false
}

// IsOfficer reports whether r is one of the two single-occupancy offices.
func (r Role) IsOfficer() bool {
	return r == RolePresident || r == RoleVicePresident
}

// EffectiveRole is the role used for authority checks: the granted role unless
// it is the unprivileged default, in which case the requested one. A profile
// with neither falls back to player.
func EffectiveRole(granted, intended Role) Role {
	if granted != RoleNone && granted != RolePlayer {
		return granted
	}
	if intended != RoleNone {
		return intended
	}
	return RolePlayer
}

// Status is the membership approval state within a team.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)
