package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"raspadinha/internal/model"
)

// Open connects to the database named by driver ("postgres" or "mysql").
func Open(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	switch driver {
	case "postgres", "postgresql":
		return NewPostgres(dsn, cfg)
	case "mysql":
		return NewMySQL(dsn, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.ScratchCard{},
		&model.ScratchCardBatch{},
		&model.ScratchSymbol{},
		&model.ScratchChance{},
	}
}

// Migrate creates or updates the schema.
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table, children first. Missing tables are skipped.
func Reset(gormDB *gorm.DB) error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if !gormDB.Migrator().HasTable(models[i]) {
			continue
		}
		if err := gormDB.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
