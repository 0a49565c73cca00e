package app

import (
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/salesdesk/salesdesk/config"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dataFile(name, datadir string) string {
	if name == ":memory:" || filepath.IsAbs(name) {
		return name
	}
	return path.Join(datadir, name)
}

// getDatabase opens the relational store selected by cfg.Type
func getDatabase(cfg config.DBConfig, datadir string) *gorm.DB {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if cfg.Debug {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name, time.Local.String())
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dataFile(cfg.Name, datadir))
	default:
		zap.S().Fatalf("unsupported database type %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		zap.S().Fatalf("database connection failed: %s", err.Error())
	}
	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Fatalf("database pool error: %s", err.Error())
	}
	if cfg.Type == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	return db
}

// getBoltDatabase opens the embedded document store
func getBoltDatabase(cfg config.DBConfig, datadir string) *bbolt.DB {
	db, err := bbolt.Open(dataFile(cfg.Name, datadir), 0o600, &bbolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		zap.S().Fatalf("bolt database open failed: %s", err.Error())
	}
	return db
}
