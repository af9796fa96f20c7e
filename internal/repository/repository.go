package repository

import (
	"database/sql"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
)

// Repository 是所有实体的唯一写入者，其他组件不允许直接修改存储状态。
type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}
