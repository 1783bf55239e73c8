package router

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Route 路由配置
type Route struct {
	Method      string        // HTTP方法
	Path        string        // 路径,默认相对于控制器前缀
	Absolute    bool          // 为true时Path直接注册到app,不加前缀
	Handler     fiber.Handler // 处理函数
	Middlewares []string      // 路由级中间件名称,按顺序执行
}

// Registrar 路由注册器接口
type Registrar interface {
	// Prefix 返回路由前缀
	Prefix() string
	// Routes 返回路由配置列表
	Routes() []Route
}

// Register 自动注册路由
// middlewares 为可引用的命名中间件，路由引用了未注册的名称时返回错误且不注册任何路由
func Register(app fiber.Router, middlewares map[string]fiber.Handler, controllers ...Registrar) error {
	type entry struct {
		absolute bool
		group    string
		route    Route
		handlers []fiber.Handler
	}

	var entries []entry
	for _, ctrl := range controllers {
		prefix := ctrl.Prefix()
		for _, route := range ctrl.Routes() {
			handlers, err := buildHandlers(route, middlewares)
			if err != nil {
				return fmt.Errorf("%s %s%s: %w", route.Method, prefix, route.Path, err)
			}
			entries = append(entries, entry{
				absolute: route.Absolute,
				group:    prefix,
				route:    route,
				handlers: handlers,
			})
		}
	}

	groups := make(map[string]fiber.Router)
	for _, e := range entries {
		if e.absolute {
			// 绝对路径,直接注册到app
			app.Add(e.route.Method, e.route.Path, e.handlers...)
			continue
		}
		g, ok := groups[e.group]
		if !ok {
			g = app.Group(e.group)
			groups[e.group] = g
		}
		g.Add(e.route.Method, e.route.Path, e.handlers...)
	}
	return nil
}

// buildHandlers 构建处理器链(中间件 + 处理函数)
func buildHandlers(route Route, middlewares map[string]fiber.Handler) ([]fiber.Handler, error) {
	handlers := make([]fiber.Handler, 0, len(route.Middlewares)+1)
	for _, name := range route.Middlewares {
		h, ok := middlewares[name]
		if !ok {
			return nil, fmt.Errorf("unknown middleware %q", name)
		}
		handlers = append(handlers, h)
	}
	return append(handlers, route.Handler), nil
}
