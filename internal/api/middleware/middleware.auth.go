// Package middleware - các middleware dùng chung cho router.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	authsvc "biz_metrics/internal/api/auth/service"
	basehdl "biz_metrics/internal/api/base/handler"
	"biz_metrics/internal/common"
	"biz_metrics/internal/logger"
)

// AuthMiddleware xác thực và xoay vòng access token cho mọi route bảo vệ.
// Token hợp lệ: danh tính + token mới được gắn vào Locals để handler dùng.
// Token không hợp lệ: trả envelope lỗi với triggerLogout, không đi tiếp.
func AuthMiddleware(sessionService *authsvc.SessionService) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("Thiếu Authorization header")
			return basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		result, err := sessionService.Refresh(c.Context(), parts[1], c.IP(), c.Get("User-Agent"))
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("Xác thực token thất bại")
			return basehdl.HandleResponse(c, nil, err)
		}

		// Lưu danh tính và token mới vào context cho handler phía sau
		c.Locals("access_token", result.AccessToken)
		c.Locals("user_id", result.Claims.UserID)
		c.Locals("username", result.Claims.Username)
		c.Locals("roles", result.Claims.Roles)
		c.Locals("session_id", result.Claims.SessionID)

		return c.Next()
	}
}
