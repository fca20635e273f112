// Package router đăng ký các route thuộc domain auth:
// đăng ký / đăng nhập / đăng xuất dưới /auth và user CRUD dưới /api/v1/user.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "biz_metrics/internal/api/auth/handler"
	basehdl "biz_metrics/internal/api/base/handler"
	apirouter "biz_metrics/internal/api/router"
)

// Register đăng ký tất cả route auth
func Register(app *fiber.App, v1 fiber.Router, r *apirouter.Router, authMw fiber.Handler, queryMw fiber.Handler) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	// Route công khai: đăng ký và đăng nhập
	apirouter.RegisterRouteWithMiddleware(app, "/auth", "POST", "/register", nil, userHandler.HandleRegister)
	apirouter.RegisterRouteWithMiddleware(app, "/auth", "POST", "/login", nil, userHandler.HandleLogin)

	// Logout cần phiên hợp lệ
	apirouter.RegisterRouteWithMiddleware(app, "/auth", "POST", "/logout", []fiber.Handler{authMw}, userHandler.HandleLogout)

	// Health check công khai
	systemHandler := basehdl.NewSystemHandler()
	apirouter.RegisterRouteWithMiddleware(app, "/health", "GET", "/", nil, systemHandler.HandleHealth)

	// User CRUD sau xác thực
	r.RegisterCRUDRoutes(v1, "/user", userHandler, apirouter.ReadWriteConfig, authMw, queryMw)

	return nil
}
