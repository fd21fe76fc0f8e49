package model

import (
	"strings"

	"gorm.io/gorm"
)

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// UnknownUserName is shown when a user has neither a name nor an email.
const UnknownUserName = "Usuário Desconhecido"

type User struct {
	gorm.Model
	Email                string `json:"email" gorm:"unique;not null"`
	Password             string `json:"-" gorm:"not null"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Role                 string `json:"role" gorm:"not null;default:employee"`
	IsActive             bool   `json:"is_active" gorm:"not null;default:true"`
	IsDefaultCredentials bool   `json:"is_default_credentials" gorm:"not null;default:false"`

	// Relasi
	TimeRecords []TimeRecord `json:"-"`
}

// DisplayName is "first last", falling back to the email and then to UnknownUserName.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	if u.Email != "" {
		return u.Email
	}
	return UnknownUserName
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
