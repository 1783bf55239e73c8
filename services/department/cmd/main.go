package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/edmback/pkg/auth"
	"github.com/edmback/pkg/config"
	"github.com/edmback/pkg/database"
	"github.com/edmback/pkg/lifecycle"
	"github.com/edmback/pkg/logger"
	"github.com/edmback/pkg/middleware"
	"github.com/edmback/pkg/router"
	"github.com/edmback/services/department/internal/department"
	"github.com/edmback/services/department/internal/model"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const serviceName = "department-service"

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	// 加载配置
	if err := config.Init(*configPath); err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer database.Close()

	httpCfg := cfg.Server.HTTP
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ReadTimeout:           time.Duration(httpCfg.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(httpCfg.WriteTimeout) * time.Second,
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: cfg.IsProd(),
	})

	// 全局中间件
	app.Use(middleware.Recovery())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog())

	// 健康检查
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": serviceName,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	err := lifecycle.New(serviceName).
		Addr(httpCfg.Addr()).
		ShutdownTimeout(time.Duration(httpCfg.ShutdownTimeout) * time.Second).
		App(app).
		Logger(logger.Named("lifecycle")).
		OnStart(func(s *lifecycle.Service) error {
			db := database.Get()

			// 数据库迁移
			if err := model.AutoMigrate(db); err != nil {
				return fmt.Errorf("数据库迁移失败: %w", err)
			}
			if err := model.SeedRoles(db); err != nil {
				return fmt.Errorf("写入内置角色失败: %w", err)
			}
			logger.Info("数据库迁移完成")

			// 路由权限
			enforcer, err := auth.NewEnforcer(db, cfg.Casbin.ModelPath)
			if err != nil {
				return err
			}
			if err := auth.SeedPolicies(enforcer, auth.DefaultPolicies); err != nil {
				return err
			}

			jwtManager := auth.NewJWTManager(&cfg.JWT)
			middlewares := map[string]fiber.Handler{
				"jwt":       middleware.JWTAuth(jwtManager),
				"authorize": middleware.Authorize(enforcer),
			}

			svc := department.NewService(db, logger.Get())
			return router.Register(s.App(), middlewares, department.NewController(svc))
		}).
		OnReady(func(s *lifecycle.Service) error {
			logger.Info("部门服务就绪", zap.String("addr", httpCfg.Addr()))
			return nil
		}).
		OnStop(func(s *lifecycle.Service) error {
			logger.Info("部门服务正在清理资源...")
			return nil
		}).
		Run(context.Background())

	if err != nil {
		logger.Fatal("服务运行失败", zap.Error(err))
	}
}
