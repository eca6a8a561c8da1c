package configs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"competition_backend/internals/logger"
)

// Config is the typed view of the environment.
type Config struct {
	Port     string `validate:"required,numeric"`
	AppEnv   string `validate:"required,oneof=development staging production test"`
	LogLevel string `validate:"required,oneof=trace debug info warn warning error fatal panic"`

	DB DatabaseConfig

	JWTSecret string `validate:"required"`

	SyncTimeout                time.Duration `validate:"gt=0"`
	SyncMemberFetchConcurrency int           `validate:"gte=1,lte=64"`
	AttendanceSyncCron         string

	ZoneStatsCacheTTL time.Duration `validate:"gte=0"`
	RateLimitMax      int           `validate:"gte=1"`
}

type DatabaseConfig struct {
	Driver   string `validate:"required,oneof=postgres sqlite"`
	Host     string `validate:"required_if=Driver postgres"`
	Port     string `validate:"required_if=Driver postgres"`
	User     string `validate:"required_if=Driver postgres"`
	Password string
	Name     string `validate:"required_if=Driver postgres"`
	SSLMode  string `validate:"omitempty,oneof=disable require verify-ca verify-full"`
	DSN      string `validate:"required_if=Driver sqlite"`
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			logger.L().Info("[CONFIG] no .env file found, using system environment")
		} else {
			logger.L().Info("[CONFIG] .env file loaded")
		}
	} else {
		logger.L().Info("[CONFIG] running in Railway, using system environment")
	}
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     GetEnv("PORT", "3000"),
		AppEnv:   GetEnv("APP_ENV", "development"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
		DB: DatabaseConfig{
			Driver:   GetEnv("DB_DRIVER", "postgres"),
			Host:     GetEnv("DB_HOST"),
			Port:     GetEnv("DB_PORT", "5432"),
			User:     GetEnv("DB_USER"),
			Password: GetEnv("DB_PASSWORD"),
			Name:     GetEnv("DB_NAME"),
			SSLMode:  GetEnv("DB_SSLMODE", "require"),
			DSN:      GetEnv("DB_DSN"),
		},
		JWTSecret:          strings.TrimSpace(GetEnv("JWT_SECRET")),
		AttendanceSyncCron: strings.TrimSpace(GetEnv("ATTENDANCE_SYNC_CRON")),
	}

	var err error
	if cfg.SyncTimeout, err = getDuration("SYNC_TIMEOUT", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ZoneStatsCacheTTL, err = getDuration("ZONE_STATS_CACHE_TTL", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.SyncMemberFetchConcurrency, err = getInt("SYNC_MEMBER_FETCH_CONCURRENCY", 8); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = getInt("RATE_LIMIT_MAX", 100); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags on cfg.
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			parts := make([]string, 0, len(ve))
			for _, fe := range ve {
				parts = append(parts, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(parts, ", "))
		}
		return err
	}
	return nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
	log           *logrus.Logger
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
		log:           logger.L(),
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.log.Infof("[GORM] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.log.Warnf("[GORM] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.log.Errorf("[GORM] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := l.log.WithFields(logrus.Fields{
		"file":    utils.FileWithLineNum(),
		"elapsed": elapsed.String(),
		"rows":    rows,
	})

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		entry.WithError(err).Errorf("[SQL ERROR] %s", sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		entry.Warnf("[SLOW SQL] %s", sql)
	case l.LogLevel >= gormLogger.Info:
		entry.Debugf("[QUERY] %s", sql)
	}
}
