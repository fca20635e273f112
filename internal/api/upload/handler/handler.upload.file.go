// Package uploadhdl - handler upload file và CRUD metadata.
package uploadhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "biz_metrics/internal/api/base/handler"
	uploaddto "biz_metrics/internal/api/upload/dto"
	models "biz_metrics/internal/api/upload/models"
	uploadsvc "biz_metrics/internal/api/upload/service"
	"biz_metrics/internal/common"
	"biz_metrics/internal/utility"
)

// FileUploadHandler xử lý upload multipart và CRUD metadata file
type FileUploadHandler struct {
	*basehdl.BaseHandler[models.FileUpload, uploaddto.FileUploadCreateInput, uploaddto.FileUploadUpdateInput]
	uploadService *uploadsvc.FileUploadService
}

// NewFileUploadHandler tạo mới FileUploadHandler
func NewFileUploadHandler() (*FileUploadHandler, error) {
	uploadService, err := uploadsvc.NewFileUploadService()
	if err != nil {
		return nil, err
	}

	handler := &FileUploadHandler{
		BaseHandler:   basehdl.NewBaseHandler[models.FileUpload, uploaddto.FileUploadCreateInput, uploaddto.FileUploadUpdateInput](uploadService),
		uploadService: uploadService,
	}
	handler.SetTenantScoped(true)
	return handler, nil
}

// uploadCallerID đọc userId người gọi, thiếu danh tính là lỗi xác thực
func uploadCallerID(c fiber.Ctx) (primitive.ObjectID, error) {
	idStr, ok := c.Locals("user_id").(string)
	if !ok || !primitive.IsValidObjectID(idStr) {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return utility.String2ObjectID(idStr), nil
}

// HandleUpload nhận file từ form field "file", lưu xuống đĩa và trả metadata
func (h *FileUploadHandler) HandleUpload(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := uploadCallerID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Thiếu file upload trong form field \"file\"",
				common.StatusBadRequest,
				err,
			))
		}

		metadata, err := h.uploadService.SaveUpload(c.Context(), fileHeader, userID)
		return basehdl.HandleResponse(c, metadata, err)
	})
}

// DeleteById xóa metadata và file trên đĩa của chính người gọi
func (h *FileUploadHandler) DeleteById(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := uploadCallerID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		idStr := c.Params("id")
		if !primitive.IsValidObjectID(idStr) {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"ID không đúng định dạng ObjectID",
				common.StatusBadRequest,
				nil,
			))
		}

		err = h.uploadService.DeleteUpload(c.Context(), utility.String2ObjectID(idStr), userID)
		return basehdl.HandleResponse(c, nil, err)
	})
}
