// Package router đăng ký các route thuộc domain upload dưới /api/v1/upload.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "biz_metrics/internal/api/router"
	uploadhdl "biz_metrics/internal/api/upload/handler"
)

// Register đăng ký route upload file và CRUD metadata.
// Toàn bộ route dùng chung MỘT group /upload (middleware Use một lần);
// upload multipart đi qua POST /upload, DeleteById của handler upload
// xóa cả file trên đĩa nên config tắt DelById và gắn bản riêng vào group.
func Register(app *fiber.App, v1 fiber.Router, r *apirouter.Router, authMw fiber.Handler, queryMw fiber.Handler) error {
	uploadHandler, err := uploadhdl.NewFileUploadHandler()
	if err != nil {
		return fmt.Errorf("failed to create file upload handler: %w", err)
	}

	config := apirouter.CRUDConfig{
		List: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdById: true,
		Count:   true, Exists: true,
	}
	grp := r.RegisterCRUDRoutes(v1, "/upload", uploadHandler, config, authMw, queryMw)

	grp.Post("/", uploadHandler.HandleUpload)
	grp.Delete("/:id", uploadHandler.DeleteById)

	return nil
}
