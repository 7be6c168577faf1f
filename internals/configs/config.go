package configs

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	Port string

	DBDriver      string
	DBPGDriver    string
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	DBAutoMigrate bool

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	ReportCacheTTL time.Duration

	CorsOrigins  string
	RateLimitMax int
	SeedFile     string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[CONFIG] .env not found, using system environment")
		} else {
			log.Println("[CONFIG] .env loaded")
		}
	} else {
		log.Println("[CONFIG] running in Railway, using system environment")
	}

	Port = GetEnv("PORT", "3000")

	DBDriver = strings.ToLower(GetEnv("DB_DRIVER", "postgres"))
	DBPGDriver = strings.ToLower(GetEnv("DB_PG_DRIVER", "pgx"))
	DBUser = GetEnv("DB_USER")
	DBPassword = GetEnv("DB_PASSWORD")
	DBHost = GetEnv("DB_HOST", "localhost")
	DBPort = GetEnv("DB_PORT", "5432")
	DBName = GetEnv("DB_NAME", "academic")
	DBSSLMode = GetEnv("DB_SSLMODE", "disable")
	SQLitePath = GetEnv("SQLITE_PATH", "academic.db")
	DBAutoMigrate = GetEnvBool("DB_AUTO_MIGRATE", true)

	RedisAddr = GetEnv("REDIS_ADDR")
	RedisPassword = GetEnv("REDIS_PASSWORD")
	RedisDB = GetEnvInt("REDIS_DB", 0)
	ReportCacheTTL = GetEnvDuration("REPORT_CACHE_TTL", 5*time.Minute)

	CorsOrigins = GetEnv("CORS_ORIGINS", "*")
	RateLimitMax = GetEnvInt("RATE_LIMIT_MAX", 100)
	SeedFile = GetEnv("SEED_FILE", "internals/seeds/academic/data_academic.json")

	if DBDriver == "postgres" && DBUser == "" {
		log.Println("[CONFIG] DB_USER is not set")
	}
	if RedisAddr == "" {
		log.Println("[CONFIG] REDIS_ADDR is not set, report cache disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return n
	}
	return def
}

func GetEnvBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key))); err == nil {
		return b
	}
	return def
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key))); err == nil {
		return d
	}
	return def
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if GetEnvBool("DB_LOG_QUERIES", false) {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gormLogger.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
