package models

// Role is the actor role carried in the identity token.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleMember:
		return true
	}
	return false
}
