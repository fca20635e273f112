package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"biz_metrics/internal/common"
	"biz_metrics/internal/global"
)

// SystemHandler xử lý các endpoint hệ thống (health check)
type SystemHandler struct{}

// NewSystemHandler tạo mới SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HandleHealth kiểm tra tình trạng service và kết nối MongoDB
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		status := fiber.Map{
			"service":   "biz_metrics",
			"timestamp": time.Now().UnixMilli(),
			"mongodb":   "connected",
		}

		if global.MongoDB_Session == nil {
			status["mongodb"] = "not_initialized"
			return HandleResponse(c, status, common.ErrConnection)
		}

		if err := global.MongoDB_Session.Ping(ctx, readpref.Primary()); err != nil {
			status["mongodb"] = "disconnected"
			return HandleResponse(c, status, common.ConvertMongoError(err))
		}

		return HandleResponse(c, status, nil)
	})
}
