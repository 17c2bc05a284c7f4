package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/student-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机学生)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
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
			slog.Error("请输入合法的学生数量")
			return
		}

		// 角色可能还没有初始化过，这里先保证它存在
		if err := repo.EnsureRole(domain.RoleStudent); err != nil {
			slog.Error("无法初始化学生角色", slog.String("error", err.Error()))
			return
		}
		roleID, err := repo.ResolveRoleID(domain.RoleStudent)
		if err != nil {
			slog.Error("无法解析学生角色", slog.String("error", err.Error()))
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			student, err := utils.GenerateRandomStudent(cfg.Seed.Student.Password, cfg.Email.StudentDomain, roleID)
			if err != nil {
				slog.Error("无法生成随机学生", slog.String("error", err.Error()))
				continue
			}

			if _, err := repo.UpsertStudent(student); err != nil {
				slog.Error("无法插入学生", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入学生成功", slog.Int("count", n-cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
