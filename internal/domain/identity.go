package domain

// Role is the coarse authorization level carried by an identity claim.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the resolved identity claim of an inbound request.
// A nil *Identity means the request is anonymous.
type Identity struct {
	SubjectID string
	Email     string
	Role      Role
}

func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == RoleAdmin
}

// Owns reports whether the identity matches an ownership hint, which is
// either a subject id (blogs) or an email (orders, users).
func (id *Identity) Owns(hint string) bool {
	if id == nil || hint == "" {
		return false
	}
	return id.SubjectID == hint || id.Email == hint
}
