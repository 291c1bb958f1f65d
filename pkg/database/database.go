package database

import (
	"fmt"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logLevel := gormlogger.Warn
	if mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
	return db, nil
}

// Migrate 迁移表结构并写入导航树的默认目录
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Questionnaire{},
		&model.Question{},
		&model.QuizQuestionChoice{},
		&model.QuestionAdvice{},
		&model.Answer{},
		&model.Assignment{},
		&model.AssignmentQuestionnaire{},
		&model.AssignmentParticipant{},
		&model.AssignmentTeam{},
		&model.TreeFolder{},
		&model.TreeNode{},
	)
	if err != nil {
		return err
	}
	logger.Log.Info("Database migration completed")

	return seedTreeFolders(db)
}

// seedTreeFolders 每个默认目录对应一个顶层 FolderNode，已存在时跳过
func seedTreeFolders(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range model.DefaultTreeFolders {
			var folder model.TreeFolder
			if err := tx.Where(model.TreeFolder{Name: name}).FirstOrCreate(&folder).Error; err != nil {
				return err
			}
			var node model.TreeNode
			err := tx.Where(model.TreeNode{NodeObjectID: folder.ID, Type: model.FolderNodeType}).
				FirstOrCreate(&node).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
