package database

import (
	"fmt"
	"time"

	"docuchat-backend/config"
	"docuchat-backend/internal/database/model"
	"docuchat-backend/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

var DB *gorm.DB

// connect opens the DB, applies pool configuration, registers an
// optional read replica and migrates the schema.
func connect() (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(config.Cfg.Dns), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if replica := config.Cfg.Database.ReplicaHost; replica != "" {
		replicaDSN := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.Cfg.Database.User,
			config.Cfg.Database.Password,
			replica,
			config.Cfg.Database.Port,
			config.Cfg.Database.Name,
		)
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{mysql.Open(replicaDSN)},
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(config.Cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.Cfg.Database.MaxOpenConns)
	lifetime := time.Duration(config.Cfg.Database.MaxLifetime) * time.Minute
	sqlDB.SetConnMaxIdleTime(lifetime)
	sqlDB.SetConnMaxLifetime(lifetime)

	if err := db.AutoMigrate(&model.Document{}, &model.Chunk{}); err != nil {
		return nil, err
	}

	return db, nil
}

// ensureConnection verifies DB connectivity and reconnects if needed.
func ensureConnection() error {
	if DB == nil {
		db, err := connect()
		if err != nil {
			return err
		}
		DB = db
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		db, err := connect()
		if err != nil {
			return err
		}
		DB = db
	}
	return nil
}

// GetDB returns a healthy *gorm.DB, attempting reconnect if necessary.
func GetDB() (*gorm.DB, error) {
	if err := ensureConnection(); err != nil {
		logger.Error(err, "database: connection unavailable")
		return nil, err
	}
	return DB, nil
}
