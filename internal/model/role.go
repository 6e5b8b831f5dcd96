package model

import "strings"

// Role is a closed enumeration of the account roles understood by the
// application.  Modelling the role as its own type keeps unknown values out
// of the authorization path: anything that is not produced by ParseRole is
// simply not a Role.  The string values match the `role` column in the
// users table and the `role` claim inside session tokens.
type Role string

const (
	RoleUser  Role = "user"  // regular account, may rate stores
	RoleOwner Role = "owner" // owns stores, may view rating rosters
	RoleAdmin Role = "admin" // full access, may create stores for any owner
)

// ParseRole normalizes raw input and maps it onto one of the known roles.
// The second return value is false for anything outside the enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleOwner:
		return RoleOwner, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// String returns the database/claim representation of the role.
func (r Role) String() string { return string(r) }
