package model

import "github.com/lianxu-dev/user-center/internal/constants"

// Principal is the request-scoped authenticated identity established by the
// authentication gate and consumed by authorization checks.
type Principal struct {
	user *User
}

func NewPrincipal(user *User) *Principal {
	return &Principal{user: user}
}

func (p *Principal) User() *User {
	return p.user
}

func (p *Principal) Phone() string {
	return p.user.Phone
}

// Authorities returns the granted role names for the principal.
func (p *Principal) Authorities() []string {
	if p.user.UserRole == "" {
		return []string{constants.RoleUser}
	}
	return []string{p.user.UserRole}
}

func (p *Principal) Enabled() bool {
	return p.user.Enabled()
}

func (p *Principal) Locked() bool {
	return p.user.Locked()
}
