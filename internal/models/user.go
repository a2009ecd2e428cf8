package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null;size:180" validate:"required,email"`
	PasswordHash string         `json:"-" gorm:"column:password;not null;size:255"`
	FirstName    string         `json:"first_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	LastName     string         `json:"last_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Roles        datatypes.JSON `json:"roles" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Courses     []Course     `json:"courses,omitempty" gorm:"foreignKey:UserID"`
	Assignments []Assignment `json:"assignments,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
