package db

import (
	"fmt"

	"clothco/internal/config"
	"clothco/internal/domain/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// 既定はローカルのSQLiteファイル、DB_DIALECT=postgres でPostgres。
func Connect(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDialect {
	case config.DialectPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.DialectSQLite:
		dialector = sqlite.Open(cfg.SQLitePath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	default:
		return nil, fmt.Errorf("unknown db dialect %q", cfg.DBDialect)
	}
	return Open(dialector)
}

// Open はdialectorで開いてマイグレーションまで済ませる
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Migrate(gormDB); err != nil {
		return nil, err
	}
	return gormDB, nil
}

func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.BasketRecord{},
		&model.Order{},
		&model.User{},
		&model.PaymentMethod{},
		&model.Message{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
