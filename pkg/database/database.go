package database

import (
	"fmt"
	"llm_survey_backend/internal/config"
	"llm_survey_backend/internal/model"
	"llm_survey_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	logger.Log.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.String("db", cfg.DBName))

	return db, nil
}

// Migrate 创建或补齐问卷所需的表结构。生产库由外部维护，仅在显式要求时调用。
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Student{},
		&model.Question{},
		&model.DefaultResponse{},
		&model.Feedback{},
	)
	if err != nil {
		return err
	}

	for _, v := range model.StudentVariants {
		if err := db.Table(v.TableName()).AutoMigrate(&model.StudentResponseSet{}); err != nil {
			return fmt.Errorf("migrate %s: %w", v.TableName(), err)
		}
	}

	logger.Log.Info("Database migration completed")
	return nil
}
