package users

import (
	"fmt"
	"strings"
)

// Role decides which portal a user may enter and where defaults send them.
type Role string

const (
	RolePatient   Role = "patient"
	RoleClinician Role = "clinician"
	RoleAdmin     Role = "admin"
)

var knownRoles = map[Role]string{
	RolePatient:   "Patient",
	RoleClinician: "Clinician",
	RoleAdmin:     "Admin",
}

// Roles returns every known role in a stable order.
func Roles() []Role {
	return []Role{RolePatient, RoleClinician, RoleAdmin}
}

// ParseRole converts a stored role name into a Role. Unknown names are rejected.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if !r.Valid() {
		return "", false
	}
	return r, true
}

func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

// Label is the human readable portal name for the role.
func (r Role) Label() string {
	if label, ok := knownRoles[r]; ok {
		return label
	}
	return "Unknown"
}

func (r Role) String() string {
	return string(r)
}

// Identity is a known user. Identities are static and never edited at runtime.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Validate checks the identity references a known role and has an id.
func (i Identity) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("identity id is required")
	}
	if !i.Role.Valid() {
		return fmt.Errorf("unknown role %q", i.Role)
	}
	return nil
}

// Initials returns up to two initials from the display name, used by the
// layout avatar.
func (i Identity) Initials() string {
	var initials []rune
	for _, part := range strings.Fields(i.Name) {
		initials = append(initials, []rune(strings.ToUpper(part))[0])
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "U"
	}
	return string(initials)
}

// Entry pairs an identity with the secret that unlocks it.
type Entry struct {
	Identity Identity
	Secret   string
}

// NormaliseEmail is the lookup key used for case-insensitive email matching.
func NormaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
