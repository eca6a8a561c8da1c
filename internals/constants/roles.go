package constants

import "strings"

// Roles carried in the token's "role" claim.
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
	RoleUser     = "USER"
)

// Locals keys set by the auth middleware.
const (
	LocUserRole = "userRole"
	LocUserID   = "user_id"
	LocUserName = "user_name"
	LocClaims   = "jwt_claims"
	LocReqID    = "reqid"
)

// SyncRoles may trigger attendance sync and read statistics.
var SyncRoles = []string{RoleAdmin, RoleOperator}

// HasRole compares case-insensitively.
func HasRole(role string, allowed []string) bool {
	role = strings.TrimSpace(role)
	if role == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(role, a) {
			return true
		}
	}
	return false
}
