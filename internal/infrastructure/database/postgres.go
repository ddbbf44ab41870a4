package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"fieldservice/internal/adapter/persistence/gormstore"
	appconfig "fieldservice/internal/config"
	"fieldservice/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options controls how the postgres connection is opened.
type Options struct {
	LogLevel    gormlogger.LogLevel
	AutoMigrate bool
}

// PostgresDSN renders the connection string for cfg.
func PostgresDSN(cfg appconfig.Database) string {
	sslMode := "disable"
	if cfg.SSLEnabled {
		sslMode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode)
}

// ConnectPostgres opens the workflow database. Driver errors are translated
// so duplicate keys surface as gorm.ErrDuplicatedKey.
func ConnectPostgres(cfg appconfig.Database, opts Options) (*gorm.DB, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = gormlogger.Warn
	}
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(PostgresDSN(cfg)), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if opts.AutoMigrate {
		if err := gormstore.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	logger.Infof("[database][postgres] connected host=%s db=%s migrate=%t", cfg.Host, cfg.Name, opts.AutoMigrate)
	return db, nil
}
