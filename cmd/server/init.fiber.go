package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	auditsvc "biz_metrics/internal/api/audit/service"
	authrouter "biz_metrics/internal/api/auth/router"
	basehdl "biz_metrics/internal/api/base/handler"
	metricsrouter "biz_metrics/internal/api/metrics/router"
	"biz_metrics/internal/api/router"
	uploadrouter "biz_metrics/internal/api/upload/router"
	"biz_metrics/internal/common"
	"biz_metrics/internal/global"
	"biz_metrics/internal/logger"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() (*fiber.App, error) {
	// Khởi tạo app với cấu hình nâng cao
	app := fiber.New(fiber.Config{
		// =========================================
		// 1. CẤU HÌNH CƠ BẢN
		// =========================================
		AppName:      "Biz Metrics API", // Tên ứng dụng hiển thị
		ServerHeader: "Biz Metrics API", // Header server trong response
		// StrictRouting phải tắt: các route CRUD đăng ký tại gốc group ("/"),
		// client gọi cả /api/v1/user lẫn /api/v1/user/ — bật lên thì dạng
		// không có slash cuối rơi vào 404 dù route tồn tại.
		StrictRouting: false,
		CaseSensitive: true, // /Foo và /foo là khác nhau
		UnescapePath:  true,              // Tự động decode URL-encoded paths

		// =========================================
		// 2. CẤU HÌNH PERFORMANCE
		// =========================================
		BodyLimit:       int(global.ServerConfig.UploadMaxBytes), // Max size của request body
		Concurrency:     256 * 1024,                              // Số lượng goroutines tối đa
		ReadBufferSize:  4096,                                    // Buffer size cho request reading
		WriteBufferSize: 4096,                                    // Buffer size cho response writing

		// =========================================
		// 3. CẤU HÌNH TIMEOUT
		// =========================================
		ReadTimeout:  15 * time.Second,  // Timeout đọc request
		WriteTimeout: 30 * time.Second,  // Timeout ghi response
		IdleTimeout:  120 * time.Second, // Timeout cho idle connections

		// =========================================
		// 4. CẤU HÌNH ERROR HANDLING
		// =========================================
		// Lỗi thoát ra tới đây là lỗi ở tầng transport (route không tồn tại,
		// method không hỗ trợ, body quá lớn...). Route không tồn tại giữ nguyên
		// HTTP 404; các lỗi còn lại trả envelope thống nhất với HTTP 200
		// như mọi response nghiệp vụ khác.
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := common.MsgInternalError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}

			logger.GetAppLogger().WithFields(map[string]interface{}{
				"method":  c.Method(),
				"path":    c.Path(),
				"status":  code,
				"message": message,
			}).Warn("Request error")

			resp := &basehdl.Response{
				Data:    []interface{}{},
				Kind:    basehdl.KindError,
				Message: message,
				Status:  code,
			}

			if code == fiber.StatusNotFound {
				resp.Message = common.MsgNotFound
				return c.Status(fiber.StatusNotFound).JSON(resp)
			}
			return c.Status(fiber.StatusOK).JSON(resp)
		},
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID Middleware - Tạo ID duy nhất cho mỗi request để trace
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// 2. CORS Middleware - PHẢI ĐẶT Ở ĐẦU để xử lý preflight requests trước các middleware khác
	corsOrigins := global.ServerConfig.CORS_Origins
	var allowOrigins []string
	if corsOrigins == "*" {
		// Development mode: cho phép tất cả
		allowOrigins = []string{"*"}
	} else {
		// Production mode: chỉ cho phép các origins cụ thể
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: global.ServerConfig.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "X-Request-ID"},
		MaxAge:           24 * 60 * 60, // Thời gian cache preflight requests (24 giờ)
	}))

	// 3. Security Headers Middleware - Thêm các security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate Limiting Middleware - Giới hạn số request
	// Chỉ bật rate limit nếu được enable và Max > 0
	if global.ServerConfig.RateLimit_Enabled && global.ServerConfig.RateLimit_Max > 0 {
		rateLimitMax := global.ServerConfig.RateLimit_Max
		rateLimitWindow := time.Duration(global.ServerConfig.RateLimit_Window) * time.Second
		app.Use(limiter.New(limiter.Config{
			Max:        rateLimitMax,
			Expiration: rateLimitWindow,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP() // Giới hạn theo IP
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusOK).JSON(&basehdl.Response{
					Data:    []interface{}{},
					Kind:    basehdl.KindError,
					Message: "Quá nhiều yêu cầu, vui lòng thử lại sau",
					Status:  fiber.StatusTooManyRequests,
				})
			},
			SkipFailedRequests:     false,
			SkipSuccessfulRequests: false,
			Next: func(c fiber.Ctx) bool {
				// Bỏ qua rate limit cho health check (cả dạng có slash cuối)
				// và OPTIONS requests (preflight)
				return strings.TrimSuffix(c.Path(), "/") == "/health" || c.Method() == "OPTIONS"
			},
		}))
		logger.GetAppLogger().Infof("Rate limiting enabled: %d requests per %d seconds",
			rateLimitMax, global.ServerConfig.RateLimit_Window)
	} else {
		logger.GetAppLogger().Info("Rate limiting disabled")
	}

	// 5. Recover Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.GetAppLogger().WithFields(map[string]interface{}{
				"panic":  e,
				"method": c.Method(),
				"path":   c.Path(),
			}).Error("Panic recovered")
		},
		Next: func(c fiber.Ctx) bool {
			return strings.TrimSuffix(c.Path(), "/") == "/health"
		},
	}))

	// Nối hook ghi lỗi vào collection error_logs. Hook dạng best-effort:
	// service lỗi thì response vẫn trả bình thường.
	errorLogService, err := auditsvc.NewErrorLogService()
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("Không khởi tạo được error log service, bỏ qua ghi lỗi vào DB")
	} else {
		basehdl.ErrorRecorder = errorLogService.LogRequestError
	}

	// Đăng ký routes của các domain
	if err := router.SetupRoutes(app,
		authrouter.Register,
		metricsrouter.Register,
		uploadrouter.Register,
	); err != nil {
		return nil, fmt.Errorf("không thể đăng ký routes: %w", err)
	}

	return app, nil
}
