package gormdb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/oggyb/zensend-gateway/internal/db"
)

type GormDB struct {
	conn *gorm.DB
}

// New opens a Postgres connection. SQL logging goes to log at warn level,
// with queries slower than 200ms reported.
func New(dsn string, log *zap.Logger) (*GormDB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger: gormlogger.New(zapWriter{log.Sugar()}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &GormDB{conn: conn}, nil
}

func (g *GormDB) Conn() any {
	return g.conn
}

func (g *GormDB) Ping(ctx context.Context) error {
	sqlDB, err := g.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *GormDB) Close() error {
	sqlDB, err := g.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates the tables for the given models.
func (g *GormDB) Migrate(models ...any) error {
	return g.conn.AutoMigrate(models...)
}

// zapWriter adapts a sugared zap logger to gorm's logger.Writer.
type zapWriter struct {
	s *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.s.Warnf(format, args...)
}

// verify it satisfies db.DB
var _ db.DB = (*GormDB)(nil)
