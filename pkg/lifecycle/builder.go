package lifecycle

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Builder 服务构建器 - 链式调用创建服务
type Builder struct {
	opts    *ServiceOptions
	app     *fiber.App
	log     *zap.Logger
	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// New 创建服务构建器
func New(name string) *Builder {
	return &Builder{
		opts: &ServiceOptions{Name: name},
	}
}

// Addr 设置监听地址
func (b *Builder) Addr(addr string) *Builder {
	b.opts.Address = addr
	return b
}

// ShutdownTimeout 设置优雅关闭等待时间
func (b *Builder) ShutdownTimeout(d time.Duration) *Builder {
	b.opts.ShutdownTimeout = d
	return b
}

// App 设置Fiber应用
func (b *Builder) App(app *fiber.App) *Builder {
	b.app = app
	return b
}

// Logger 设置日志
func (b *Builder) Logger(log *zap.Logger) *Builder {
	b.log = log
	return b
}

// OnStart 添加启动钩子
func (b *Builder) OnStart(fn Hook) *Builder {
	b.onStart = append(b.onStart, fn)
	return b
}

// OnReady 添加就绪钩子
func (b *Builder) OnReady(fn Hook) *Builder {
	b.onReady = append(b.onReady, fn)
	return b
}

// OnStop 添加停止钩子
func (b *Builder) OnStop(fn Hook) *Builder {
	b.onStop = append(b.onStop, fn)
	return b
}

// Build 构建服务
func (b *Builder) Build() *Service {
	svc := NewService(b.opts, b.log)
	svc.SetApp(b.app)

	for _, fn := range b.onStart {
		svc.OnStart(fn)
	}
	for _, fn := range b.onReady {
		svc.OnReady(fn)
	}
	for _, fn := range b.onStop {
		svc.OnStop(fn)
	}
	return svc
}

// Run 构建并运行服务
func (b *Builder) Run(ctx context.Context) error {
	return b.Build().Run(ctx)
}
