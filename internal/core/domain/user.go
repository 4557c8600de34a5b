package domain

import "time"

// Role names form a fixed enumeration. The administrator role gates every
// privileged operation; registration assigns the team-member role by default.
const (
	RoleAdmin          = "ROLE_ADMIN"
	RoleProjectManager = "ROLE_PROJECT_MANAGER"
	RoleTeamMember     = "ROLE_TEAM_MEMBER"
)

// Role is a named capability tag with a human-readable description.
type Role struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DefaultRoles returns the full role enumeration used to seed the store.
func DefaultRoles() []Role {
	return []Role{
		{Name: RoleAdmin, Description: "Administrator with full system access"},
		{Name: RoleProjectManager, Description: "Project manager able to run projects and teams"},
		{Name: RoleTeamMember, Description: "Regular team member working on assigned tasks"},
	}
}

// User is the persisted credential record.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RoleNames projects the user's role set to plain names.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Member is the lightweight user reference embedded in projects and tasks.
type Member struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Ref returns the embeddable reference for a user.
func (u *User) Ref() Member {
	return Member{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}
