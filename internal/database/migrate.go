package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 把所有未应用的迁移打到数据库上，已经是最新时直接返回。
// 复用外部传入的连接池，避免为迁移单独再建一条连接。
func RunMigrations(dbpool *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("无法创建迁移源: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(dbpool, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("无法创建迁移驱动: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx", driver)
	if err != nil {
		return fmt.Errorf("无法创建迁移实例: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("迁移执行失败: %w", err)
	}

	return nil
}
