package model

import "time"

type AchievementCode string

// The catalog is a fixed enumeration; rows are seeded at migration and the
// set never changes at runtime.
const (
	FirstStep         AchievementCode = "FIRST_STEP"
	PerfectScore      AchievementCode = "PERFECT_SCORE"
	ReadyForNextLevel AchievementCode = "READY_FOR_NEXT_LEVEL"
	MarathonKnowledge AchievementCode = "MARATHON_KNOWLEDGE"
)

// swagger:model Achievement
type Achievement struct {
	BaseModel
	Code        AchievementCode `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Title       string          `gorm:"size:100;not null" json:"title"`
	Description string          `gorm:"size:255" json:"description"`
	Icon        string          `gorm:"size:255" json:"icon"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement existence means "granted". The unique pair index is what
// makes grants idempotent under concurrent checks.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"userId"`
	AchievementID uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievementId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
