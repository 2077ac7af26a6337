package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name      string `json:"name" gorm:"default:''"`
	Email     string `json:"email" gorm:"unique;not null"`
	Password  string `json:"-" gorm:"not null"` // HMAC-SHA256 hex digest
	Role      string `json:"role" gorm:"default:'USER'"` // USER or ADMIN
	IsDeleted bool   `json:"is_deleted" gorm:"default:false"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "ADMIN"
}
