package config

import (
	"context"
	"fmt"
	"time"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	SQL   *gorm.DB
	Mongo *mongo.Client // nil when photos live in the relational store
}

// InitDB opens the relational store and, when MONGO_URI is set, MongoDB.
func InitDB(cfg *Config) (*DB, error) {
	sqlDB, err := OpenSQL(cfg)
	if err != nil {
		return nil, err
	}

	db := &DB{SQL: sqlDB}
	if cfg.MongoURI == "" {
		logger.Info("MONGO_URI not set, photos will be stored in the relational database")
		return db, nil
	}

	db.Mongo, err = initMongo(cfg.MongoURI)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	return db, nil
}

// OpenSQL opens the relational store selected by DB_DRIVER.
func OpenSQL(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.PostgresUrl)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000")
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	logLevel := gormlogger.Error
	if cfg.Env == "development" {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		// Unique index violations surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == DriverPostgres {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Info("Connected to relational store", "driver", cfg.DBDriver)
	return db, nil
}

// AutoMigrate creates or updates every relational table.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Account{},
		&models.VisibilityPolicy{},
		&models.RelationshipEdge{},
		&models.Notification{},
		&models.SharedContentRecord{},
		&models.Plant{},
		&models.GrowthEntry{},
		&models.Photo{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed")
	return nil
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logger.Info("Connected to MongoDB")
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.SQL != nil {
		sqlDB, err := db.SQL.DB()
		if err != nil {
			logger.Error("Error getting SQL DB from GORM", "error", err)
		} else if err := sqlDB.Close(); err != nil {
			logger.Error("Error closing relational connection", "error", err)
		} else {
			logger.Info("Relational connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			logger.Error("Error closing MongoDB connection", "error", err)
		} else {
			logger.Info("MongoDB connection closed")
		}
	}
}
