package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Hook 生命周期钩子
type Hook func(*Service) error

// ServiceOptions 服务配置选项
type ServiceOptions struct {
	Name            string        // 服务名称
	Address         string        // 监听地址
	ShutdownTimeout time.Duration // 优雅关闭等待时间
}

// Service HTTP服务包装器，负责启动、就绪与优雅关闭
type Service struct {
	opts *ServiceOptions
	app  *fiber.App
	log  *zap.Logger

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewService 创建服务
func NewService(opts *ServiceOptions, log *zap.Logger) *Service {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{opts: opts, log: log}
}

// SetApp 设置Fiber应用
func (s *Service) SetApp(app *fiber.App) {
	s.app = app
}

// App 获取Fiber应用
func (s *Service) App() *fiber.App {
	return s.app
}

// Name 服务名称
func (s *Service) Name() string {
	return s.opts.Name
}

// OnStart 注册启动钩子，在监听端口之前执行
func (s *Service) OnStart(fn Hook) {
	s.onStart = append(s.onStart, fn)
}

// OnReady 注册就绪钩子，在端口开始监听之后执行
func (s *Service) OnReady(fn Hook) {
	s.onReady = append(s.onReady, fn)
}

// OnStop 注册停止钩子
func (s *Service) OnStop(fn Hook) {
	s.onStop = append(s.onStop, fn)
}

// Run 运行服务，阻塞直到 ctx 取消、收到 SIGINT/SIGTERM 或服务出错
func (s *Service) Run(ctx context.Context) error {
	if s.app == nil {
		return errors.New("lifecycle: fiber app not set")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, fn := range s.onStart {
		if err := fn(s); err != nil {
			return fmt.Errorf("start hook: %w", err)
		}
	}

	listening := make(chan struct{})
	s.app.Hooks().OnListen(func(fiber.ListenData) error {
		close(listening)
		return nil
	})

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("服务启动",
			zap.String("service", s.opts.Name),
			zap.String("address", s.opts.Address),
		)
		errCh <- s.app.Listen(s.opts.Address)
	}()

	select {
	case <-listening:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown()
	}

	for _, fn := range s.onReady {
		if err := fn(s); err != nil {
			_ = s.Shutdown()
			return fmt.Errorf("ready hook: %w", err)
		}
	}

	select {
	case <-ctx.Done():
		s.log.Info("收到退出信号，正在关闭服务...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return s.Shutdown()
}

// Shutdown 优雅关闭服务
func (s *Service) Shutdown() error {
	var errs []error

	if s.app != nil {
		if err := s.app.ShutdownWithTimeout(s.opts.ShutdownTimeout); err != nil {
			s.log.Error("关闭HTTP服务失败", zap.Error(err))
			errs = append(errs, err)
		}
	}

	for _, fn := range s.onStop {
		if err := fn(s); err != nil {
			s.log.Error("停止钩子执行失败", zap.Error(err))
			errs = append(errs, err)
		}
	}

	s.log.Info("服务已关闭", zap.String("service", s.opts.Name))
	return errors.Join(errs...)
}
