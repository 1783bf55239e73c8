package middleware

import (
	"strings"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/edmback/pkg/auth"
	"github.com/edmback/pkg/errors"
	"github.com/edmback/pkg/logger"
	"github.com/edmback/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 上下文键
const (
	LocalUsername  = "username"
	LocalRoles     = "roles"
	LocalClaims    = "claims"
	LocalRequestID = "requestId"
)

// JWTAuth JWT认证中间件
func JWTAuth(jwtManager *auth.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 从Header获取token
		token := c.Get(fiber.HeaderAuthorization)
		if token == "" {
			// 尝试从query参数获取
			token = c.Query("token")
		}

		if token == "" {
			return response.FromError(c, errors.Unauthorized("未提供认证令牌"))
		}

		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwtManager.ParseToken(token)
		if err != nil {
			return response.FromError(c, errors.Unauthorized("无效的认证令牌"))
		}

		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRoles, claims.Roles)
		c.Locals(LocalClaims, claims)

		return c.Next()
	}
}

// Authorize Casbin路由鉴权中间件，任一角色通过即放行
// 必须挂在 JWTAuth 之后
func Authorize(enforcer *casbin.Enforcer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := GetRoles(c)
		if len(roles) == 0 {
			return response.FromError(c, errors.ErrUnauthorized)
		}

		ok, err := auth.AnyAllowed(enforcer, roles, c.Path(), c.Method())
		if err != nil {
			logger.Error("权限校验失败",
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
			return response.FromError(c, errors.ErrInternal)
		}
		if !ok {
			return response.FromError(c, errors.ErrForbidden)
		}

		return c.Next()
	}
}

// Recovery 恢复中间件
func Recovery() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("error", r),
					zap.String("path", c.Path()),
					zap.String("method", c.Method()),
				)
				err = response.ServerError(c, "服务器内部错误")
			}
		}()
		return c.Next()
	}
}

// RequestID 请求ID中间件
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(LocalRequestID, requestID)
		c.Set(fiber.HeaderXRequestID, requestID)
		return c.Next()
	}
}

// AccessLog 访问日志中间件
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Info("request",
			zap.String("requestId", GetRequestID(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.String("username", GetUsername(c)),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}

// ErrorHandler fiber 全局错误处理
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(response.Response{
			Code:    e.Code,
			Message: e.Message,
		})
	}

	logger.Error("unhandled error",
		zap.Error(err),
		zap.String("requestId", GetRequestID(c)),
		zap.String("path", c.Path()),
	)
	return response.FromError(c, err)
}

// GetUsername 从上下文获取用户名
func GetUsername(c *fiber.Ctx) string {
	username, _ := c.Locals(LocalUsername).(string)
	return username
}

// GetRoles 从上下文获取角色集合
func GetRoles(c *fiber.Ctx) []string {
	roles, _ := c.Locals(LocalRoles).([]string)
	return roles
}

// GetRequestID 从上下文获取请求ID
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalRequestID).(string)
	return id
}
