package config

import (
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var PostgresDB *gorm.DB

func InitPostgres() error {
	dsn := firstEnv("POSTGRES_URI", "DATABASE_URL")
	if dsn == "" {
		return errors.New("POSTGRES_URI (or DATABASE_URL) environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// TranslateError maps driver duplicate-key failures onto
		// gorm.ErrDuplicatedKey, which lazy profile creation and the
		// one-application-per-posting constraint rely on.
		TranslateError: true,
		PrepareStmt:    true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	PostgresDB = db
	return nil
}
