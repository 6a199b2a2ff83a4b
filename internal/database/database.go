package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/platebook/backend/config"
	"github.com/platebook/backend/internal/model"
)

// New opens the database handle for the backend selected at startup. The
// handle is constructed once here and injected into services; nothing else
// opens connections.
func New(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	if cfg.UsesPostgres() {
		log.Info("connecting to postgres backend")
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	} else {
		log.Info("opening sqlite backend", zap.String("path", cfg.SQLitePath))
		// _foreign_keys enables the SET NULL / CASCADE behavior declared in
		// the schema; sqlite leaves enforcement off by default.
		dsn := fmt.Sprintf("file:%s?_foreign_keys=on", cfg.SQLitePath)
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate brings the schema up to date on either backend.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Recipe{},
		&model.Meal{},
		&model.MealItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
