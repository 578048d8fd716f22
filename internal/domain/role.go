package domain

// Role is a staff access level ordered from widest to narrowest authority.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleStaff      Role = "STAFF"
)

// roleRank maps roles to a comparable authority level.
var roleRank = map[Role]int{
	RoleSuperAdmin: 4,
	RoleAdmin:      3,
	RoleManager:    2,
	RoleStaff:      1,
}

// Valid reports whether the role is one of the known access levels.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether the role carries at least the authority of other.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

// Actor is the authenticated caller of an operation. Public endpoints use a
// zero-value Actor with an empty role.
type Actor struct {
	UserID             string
	Role               Role
	AssignedNailTechID *string
}

// IsAdmin reports whether the actor holds ADMIN authority or above.
func (a Actor) IsAdmin() bool {
	return a.Role.AtLeast(RoleAdmin)
}

// CanAccessNailTech reports whether the actor may operate on data belonging
// to the given nail tech. STAFF accounts are scoped to their assigned tech;
// MANAGER and above see every tech.
func (a Actor) CanAccessNailTech(nailTechID string) bool {
	if a.Role.AtLeast(RoleManager) {
		return true
	}
	if a.Role == RoleStaff && a.AssignedNailTechID != nil {
		return *a.AssignedNailTechID == nailTechID
	}
	return false
}
