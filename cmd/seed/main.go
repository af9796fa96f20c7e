package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/repository"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/seed"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var weekStart string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 插入一周的默认班次, 3: 插入随机排班记录)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&weekStart, "week-start", "", "一周的起始日期 (YYYY-MM-DD)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
			return
		}

		if err := seed.RandomEmployees(repo, n, cfg.Seed.EmailDomain); err != nil {
			slog.Error("无法插入随机员工", slog.String("error", err.Error()))
			return
		}

		slog.Info("插入随机员工成功", slog.Int("count", n))
	case 2:
		start, err := utils.ParseDateParam(weekStart)
		if err != nil {
			slog.Error("请输入合法的起始日期", slog.String("error", err.Error()))
			return
		}

		if err := seed.WeekShifts(repo, start); err != nil {
			slog.Error("无法插入一周的班次", slog.String("error", err.Error()))
			return
		}

		slog.Info("插入一周的班次成功", slog.String("week_start", weekStart))
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的排班数量")
			return
		}

		if err := seed.RandomAssignments(repo, n); err != nil {
			slog.Error("无法插入随机排班记录", slog.String("error", err.Error()))
			return
		}

		slog.Info("插入随机排班记录完成")
	default:
		slog.Error("指定的操作非法")
	}
}
