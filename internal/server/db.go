package server

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/nhle/assessment-calendar/internal/model"
)

// OpenDB connects to MySQL and configures the connection pool. parseTime is
// deliberately left off so DATETIME columns scan as plain strings; the
// client's date-key matching depends on never routing submit_date through a
// timezone-aware type.
func OpenDB(cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to mysql at %s:%s: %w", cfg.DBHost, cfg.DBPort, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates the assessments table when it does not exist yet.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Assessment{}); err != nil {
		return fmt.Errorf("migrating assessments table: %w", err)
	}
	return nil
}
