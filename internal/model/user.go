package model

import (
	"gorm.io/gorm"

	"github.com/lianxu-dev/user-center/internal/constants"
)

// User is the account record. Phone is the canonical authentication key;
// username is profile data and never used for credential lookup.
type User struct {
	gorm.Model
	Username string `gorm:"column:username" json:"username"`
	Password string `gorm:"column:password;not null" json:"password,omitempty"`
	Email    string `gorm:"column:email" json:"email"`
	Phone    string `gorm:"column:phone;uniqueIndex;not null" json:"phone"`
	Avatar   string `gorm:"column:avatar" json:"avatar,omitempty"`
	UserRole string `gorm:"column:user_role;default:user" json:"user_role"`
	Status   string `gorm:"column:status;default:active" json:"status"`
}

func (User) TableName() string {
	return "users"
}

// Enabled reports whether the account may authenticate at all.
// Unknown statuses are treated as disabled.
func (u *User) Enabled() bool {
	return u.Status == constants.StatusActive
}

// Locked reports whether the account has been administratively locked out.
func (u *User) Locked() bool {
	return u.Status == constants.StatusBanned
}
