package config

import (
	"fmt"

	"ponto-backend/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the GORM driver for DB_DRIVER.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql", "":
		// Format: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=UTC
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		// Format: host=localhost user=postgres password=secret dbname=ponto port=5432 sslmode=disable TimeZone=UTC
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{}
	if cfg.IsProduction() {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info().Str("driver", dialector.Name()).Msg("database connected")

	// Auto Migration
	if err := db.AutoMigrate(&model.User{}, &model.TimeRecord{}, &model.Setting{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}
