package db

import "context"

// DB is the database port handed to repositories. Conn exposes the
// driver-specific handle (a *gorm.DB for the gormdb adapter).
type DB interface {
	Conn() any
	Ping(ctx context.Context) error
	Close() error
}
