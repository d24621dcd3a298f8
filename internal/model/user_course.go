package model

import "time"

// UserCourse is a user's enrollment into a course. CompletedSections only
// ever grows; the progress updater bumps it with an atomic add.
type UserCourse struct {
	UserID            uint      `gorm:"primaryKey" json:"userId"`
	CourseID          string    `gorm:"primaryKey;type:varchar(36)" json:"courseId"`
	CompletedSections int       `gorm:"default:0" json:"completedSections"`
	LastAccessed      time.Time `json:"lastAccessed"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (UserCourse) TableName() string {
	return "user_courses"
}
