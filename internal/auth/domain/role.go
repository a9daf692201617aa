package domain

// Role is the closed set of login types the portal accepts. Anything else
// is rejected at the boundary before any credential is inspected.
type Role string

const (
	RoleAdmin        Role = "admin"
	RolePublic       Role = "public"
	RoleGeneral      Role = "general"
	RoleSeasonWorker Role = "seasonWorker"
	RoleEmployer     Role = "employer"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin, RolePublic, RoleGeneral, RoleSeasonWorker, RoleEmployer:
		return Role(value), true
	}
	return "", false
}

// IsManager reports whether the role reads worker data on behalf of a
// local government rather than as an individual.
func (r Role) IsManager() bool {
	return r == RolePublic || r == RoleGeneral
}
