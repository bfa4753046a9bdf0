package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"movingday/internal/assessment"
	"movingday/internal/catalog"
	"movingday/internal/config"
	"movingday/internal/task"
	"movingday/internal/user"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&user.User{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&assessment.Record{}, &assessment.AnswerSet{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&catalog.Entry{}, &task.GeneratedTask{}); err != nil {
		return err
	}

	DB = db
	return nil
}
