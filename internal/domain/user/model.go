package user

import "strings"

// Role is the account-level role declared by the identity provider.
type Role string

const (
	RoleParticipant   Role = "participant"
	RoleAdministrator Role = "administrator"
)

// ParseRole normalizes a role value coming from the identity provider.
// Unknown values fall back to participant, the least privileged role.
func ParseRole(v string) Role {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case string(RoleAdministrator), "admin":
		return RoleAdministrator
	default:
		return RoleParticipant
	}
}

// Principal is the authenticated caller identity for one request.
// It is issued by the identity provider and immutable afterwards.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

func (p Principal) IsAdministrator() bool {
	return p.Role == RoleAdministrator
}
