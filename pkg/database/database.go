package database

import (
	"fmt"
	"log"

	"tryout_lms_backend/internal/config"
	"tryout_lms_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 建立 MySQL 连接。migrate 为 true 时同步表结构：
// debug 模式默认开启，release 模式需要 -migrate 显式指定。
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	// TranslateError: 唯一键冲突要能以 gorm.ErrDuplicatedKey 的形式
	// 被答卷引擎识别为 Conflict
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	return db, nil
}

// Migrate 同步所有表结构；测试里也用它初始化内存库
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Tryout{},
		&model.TryoutQuestion{},
		&model.QuestionOption{},
		&model.TryoutAttempt{},
		&model.TryoutAnswer{},
		&model.Course{},
		&model.CourseMaterial{},
		&model.Announcement{},
		&model.Document{},
		&model.Scholarship{},
		&model.JobPosting{},
		&model.DeviceToken{},
		&model.Notification{},
	)
}
