package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/adapter/storage"
	"github.com/rl1809/cafe/internal/config"
	"github.com/rl1809/cafe/internal/port"
)

const closeTimeout = 5 * time.Second

// Store is the persistence a running cafe needs; both drivers implement it.
type Store interface {
	port.MenuRepository
	port.OrderRepository
	port.ReservationRepository
	port.ContactRepository
}

// OpenStore connects the configured driver, prepares indexes or tables and
// returns the store with a function that releases its pool.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg, logger)
	case config.DriverMySQL:
		return openMySQL(ctx, cfg, logger)
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openMongo(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func(), error) {
	client, err := storage.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoMaxPoolSize)
	if err != nil {
		return nil, nil, err
	}

	adapter := storage.NewMongoAdapter(client.Database(cfg.MongoDatabase))
	if err := adapter.EnsureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}

	logger.Info("connected to mongodb",
		zap.String("database", cfg.MongoDatabase),
		zap.Uint64("max_pool_size", cfg.MongoMaxPoolSize))

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Warn("mongodb disconnect failed", zap.Error(err))
		}
	}
	return adapter, closeFn, nil
}

func openMySQL(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func(), error) {
	dsn, err := mysql.ParseDSN(cfg.MySQLDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	dsn.ParseTime = true

	connector, err := mysql.NewConnector(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(cfg.MySQLMaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQLMaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}

	adapter := storage.NewMySQLAdapter(db)
	if err := adapter.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	logger.Info("connected to mysql",
		zap.String("database", dsn.DBName),
		zap.Int("max_open_conns", cfg.MySQLMaxOpenConns))

	closeFn := func() {
		if err := db.Close(); err != nil {
			logger.Warn("mysql close failed", zap.Error(err))
		}
	}
	return adapter, closeFn, nil
}
