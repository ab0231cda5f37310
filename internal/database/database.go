package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/parkatlas/core/internal/config"
	"github.com/parkatlas/core/internal/models"
)

// Connect opens a MySQL connection and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.Database.DSNValue(),
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

// migrate runs GORM auto-migration plus the indexes the query core depends
// on that AutoMigrate cannot express: the fulltext index behind relevance
// search and a (lng, lat) BTREE that narrows the geo distance scan.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.ParkModel{},
		&models.ReviewModel{},
		&models.HeartModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "mysql" {
		return nil
	}
	if err := ensureIndex(db, "idx_parks_text",
		"CREATE FULLTEXT INDEX `idx_parks_text` ON `parks` (`name`, `description`)"); err != nil {
		return err
	}
	return ensureIndex(db, "idx_parks_coords",
		"CREATE INDEX `idx_parks_coords` ON `parks` (`lng`, `lat`)")
}

func ensureIndex(db *gorm.DB, name, ddl string) error {
	var count int64
	err := db.Raw(
		`SELECT COUNT(*) FROM information_schema.statistics
		 WHERE table_schema = DATABASE() AND table_name = 'parks' AND index_name = ?`, name,
	).Scan(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Exec(ddl).Error
}
