package database

import (
	"family_learn_backend/internal/config"
	"family_learn_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate runs AutoMigrate for every model and seeds static reference data.
// It is also used by tests against an in-memory database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Section{},
		&model.QuestionTemplate{},
		&model.QuestionInstance{},
		&model.Test{},
		&model.UserCourse{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Family{},
		&model.FamilyMember{},
	)
	if err != nil {
		return err
	}

	return seedAchievementCatalog(db)
}

// The achievement catalog is static reference data: a fixed set of rows keyed
// by code. Seeding is idempotent so repeated migrations never duplicate it.
func seedAchievementCatalog(db *gorm.DB) error {
	catalog := []model.Achievement{
		{Code: model.FirstStep, Title: "First Step", Description: "Pass your first test in a course", Icon: "first-step.svg"},
		{Code: model.PerfectScore, Title: "Perfect Score", Description: "Finish a test with a score of 100", Icon: "perfect-score.svg"},
		{Code: model.ReadyForNextLevel, Title: "Ready for the Next Level", Description: "Complete three courses", Icon: "next-level.svg"},
		{Code: model.MarathonKnowledge, Title: "Knowledge Marathon", Description: "Complete five courses", Icon: "marathon.svg"},
	}

	for _, a := range catalog {
		var count int64
		if err := db.Model(&model.Achievement{}).Where("code = ?", a.Code).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&a).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
