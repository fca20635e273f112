// Package auditsvc - ghi nhận lỗi vào collection error_logs.
// Mọi thao tác ghi đều là best-effort: lỗi khi ghi audit được nuốt,
// không bao giờ lan ngược lên luồng xử lý request.
package auditsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "biz_metrics/internal/api/audit/models"
	basesvc "biz_metrics/internal/api/base/service"
	"biz_metrics/internal/common"
	"biz_metrics/internal/global"
	"biz_metrics/internal/logger"
	"biz_metrics/internal/utility"
)

// Giới hạn độ dài request body lưu kèm bản ghi lỗi
const maxRequestBodyBytes = 4096

// ErrorLogService ghi bản ghi lỗi vào error_logs
type ErrorLogService struct {
	*basesvc.BaseServiceMongoImpl[models.ErrorLog]
}

// NewErrorLogService tạo mới ErrorLogService từ collection đã đăng ký
func NewErrorLogService() (*ErrorLogService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ErrorLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get error_logs collection: %v", common.ErrNotFound)
	}

	return &ErrorLogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ErrorLog](collection),
	}, nil
}

// LogError ghi một bản ghi lỗi, nuốt mọi lỗi phát sinh khi ghi
func (s *ErrorLogService) LogError(ctx context.Context, entry models.ErrorLog) {
	defer func() {
		_ = recover()
	}()

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	if _, err := s.InsertOne(writeCtx, entry); err != nil {
		logger.GetErrorLogger().WithError(err).Warn("Không ghi được bản ghi audit lỗi")
	}
}

// LogRequestError ghi lỗi kèm ngữ cảnh request: nguồn, body và người gọi.
// Dùng làm ErrorRecorder hook cho layer handler.
func (s *ErrorLogService) LogRequestError(c fiber.Ctx, err error) {
	if err == nil {
		return
	}

	entry := models.ErrorLog{
		Source:  fmt.Sprintf("%s %s", c.Method(), c.Path()),
		Message: err.Error(),
	}

	var appErr *common.Error
	if errors.As(err, &appErr) && appErr.Details != nil {
		entry.Details = fmt.Sprintf("%v", appErr.Details)
	}

	if body := c.Body(); len(body) > 0 {
		if len(body) > maxRequestBodyBytes {
			body = body[:maxRequestBodyBytes]
		}
		entry.RequestBody = string(body)
	}

	if idStr, ok := c.Locals("user_id").(string); ok && primitive.IsValidObjectID(idStr) {
		entry.UserId = utility.String2ObjectID(idStr)
	}

	s.LogError(c.Context(), entry)
}
