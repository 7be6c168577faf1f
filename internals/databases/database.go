package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"academic_backend/internals/configs"
	"academic_backend/internals/features/academic/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Printf("[DB] connecting (driver=%s pg_driver=%s)...", configs.DBDriver, configs.DBPGDriver)

	db, err := Open(configs.DBDriver, dsnFromConfig(configs.DBDriver))
	if err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}
	DB = db
	log.Println("[DB] connected.")
}

func dsnFromConfig(driver string) string {
	if driver == "sqlite" {
		// mattn/go-sqlite3 menonaktifkan FK secara default
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", configs.SQLitePath)
	}
	// statement_timeout selaras dengan timeout request HTTP
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=academic&options=-c%%20statement_timeout=3000",
		configs.DBUser,
		configs.DBPassword,
		configs.DBHost,
		configs.DBPort,
		configs.DBName,
		configs.DBSSLMode,
	)
}

// Open builds a gorm handle for the given driver ("postgres" or "sqlite").
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.New(postgres.Config{
			DriverName:           pgDriverName(configs.DBPGDriver),
			DSN:                  dsn,
			PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
		})
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
}

// pgDriverName maps DB_PG_DRIVER to a database/sql driver name. An empty
// name lets gorm open pgx through its stdlib adapter.
func pgDriverName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pq", "lib/pq", "postgres":
		return "postgres"
	default:
		return ""
	}
}

// AutoMigrate creates the four academic tables with their unique, check and
// cascading FK constraints.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("[DB] schema migrated.")
	return nil
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[DB] pool tune err: %v", err)
		return
	}
	if configs.DBDriver == "sqlite" {
		// satu writer untuk file sqlite
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(context.Background()); err != nil {
			log.Printf("[DB] warm-up ping err: %v", err)
		}
	}()
}

func Ping(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
