package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"competition_backend/internals/configs"
	attendanceModel "competition_backend/internals/features/attendance/model"
	competitionModel "competition_backend/internals/features/competition/model"
	"competition_backend/internals/logger"
)

var DB *gorm.DB

func ConnectDB(cfg configs.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		logger.L().Infof("[DB] connecting to SQLite (%s)...", cfg.DSN)
		dialector = sqlite.Open(cfg.DSN)
	default:
		logger.L().Info("[DB] connecting to PostgreSQL...")
		// Behind PgBouncer keep PreferSimpleProtocol=true.
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=competition&options=-c statement_timeout=30000",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
		)
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	DB = db
	logger.L().Info("[DB] connected")
	return db, nil
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.L().WithError(err).Warn("[DB] pool tune failed")
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(db); err != nil {
			logger.L().WithError(err).Warn("[DB] warm-up ping failed")
		}
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Migrate creates or updates every table the service reads or writes.
func Migrate(db *gorm.DB) error {
	models := append(competitionModel.All(), attendanceModel.All()...)
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
