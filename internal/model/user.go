package model

import (
	"time"
)

type UserRole string

const (
	Parent UserRole = "PARENT"
	Child  UserRole = "CHILD"
)

// swagger:model User
type User struct {
	BaseModel
	Username   string    `gorm:"size:100;not null" json:"username"`
	Email      string    `gorm:"size:100;unique;not null" json:"email"`
	Password   string    `gorm:"size:100;not null" json:"-"`
	Role       UserRole  `gorm:"size:20;default:'CHILD'" json:"role"`
	Points     int       `gorm:"default:0" json:"points"` // reward points, accumulate only
	ImageURL   string    `gorm:"size:255" json:"imageUrl"`
	IsVerified bool      `gorm:"default:false" json:"isVerified"`
	LastSeen   time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
