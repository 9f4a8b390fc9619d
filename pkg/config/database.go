package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectTimeout = 10 * time.Second
	maxOpenConns   = 20
	maxIdleConns   = 5
	connMaxLife    = 30 * time.Minute
)

// DB bundles the relational store (registrations, categories, roles, ...) and the gallery
// document store
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	database string
}

// InitDB opens and verifies both stores. A failure on the second store closes the first.
func InitDB(cfg *Config) (*DB, error) {
	switch {
	case cfg.PostgresConnStr == "":
		return nil, errors.New("POSTGRES_CONN_STR is not set")
	case cfg.MongoURI == "":
		return nil, errors.New("MONGO_URI is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db := &DB{database: cfg.MongoDatabase}

	pg, err := openPostgres(ctx, cfg.PostgresConnStr, gormLogLevel(cfg))
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	db.Postgres = pg

	client, err := openMongo(ctx, cfg.MongoURI)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("mongo: %w", err)
	}
	db.Mongo = client

	log.Printf("Connected to PostgreSQL and MongoDB (database %q)", db.database)
	return db, nil
}

// MongoDatabase returns the gallery document database
func (db *DB) MongoDatabase() *mongo.Database {
	return db.Mongo.Database(db.database)
}

func gormLogLevel(cfg *Config) logger.LogLevel {
	if cfg.IsProduction() {
		return logger.Error
	}
	return logger.Warn
}

func openPostgres(ctx context.Context, dsn string, level logger.LogLevel) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, err
	}

	pool, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(maxOpenConns)
	pool.SetMaxIdleConns(maxIdleConns)
	pool.SetConnMaxLifetime(connMaxLife)

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return gdb, nil
}

func openMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName("sedp-portal").
		SetConnectTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Close releases both stores and reports every failure
func (db *DB) Close() error {
	var errs []error

	if db.Postgres != nil {
		if pool, err := db.Postgres.DB(); err != nil {
			errs = append(errs, fmt.Errorf("postgres pool: %w", err))
		} else if err := pool.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing postgres: %w", err))
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("closing mongo: %w", err))
		}
	}

	return errors.Join(errs...)
}
