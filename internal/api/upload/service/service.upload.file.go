// Package uploadsvc - lưu file upload xuống đĩa và quản lý metadata.
package uploadsvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "biz_metrics/internal/api/base/service"
	models "biz_metrics/internal/api/upload/models"
	"biz_metrics/internal/common"
	"biz_metrics/internal/global"
	"biz_metrics/internal/logger"
)

// FileUploadService lưu file và metadata của nó
type FileUploadService struct {
	*basesvc.BaseServiceMongoImpl[models.FileUpload]
	uploadDir string
	maxBytes  int64
}

// NewFileUploadService tạo mới FileUploadService, đảm bảo thư mục upload tồn tại
func NewFileUploadService() (*FileUploadService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.FileUploads)
	if !exist {
		return nil, fmt.Errorf("failed to get file_uploads collection: %v", common.ErrNotFound)
	}

	cfg := global.ServerConfig
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", cfg.UploadDir, err)
	}

	return &FileUploadService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.FileUpload](collection),
		uploadDir:            cfg.UploadDir,
		maxBytes:             cfg.UploadMaxBytes,
	}, nil
}

// SaveUpload ghi file xuống đĩa với tên UUID và insert metadata.
// File quá giới hạn cấu hình bị từ chối trước khi ghi.
func (s *FileUploadService) SaveUpload(ctx context.Context, fileHeader *multipart.FileHeader, userID primitive.ObjectID) (models.FileUpload, error) {
	var zero models.FileUpload

	if fileHeader.Size > s.maxBytes {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("File vượt quá kích thước cho phép (%d bytes)", s.maxBytes),
			common.StatusBadRequest,
			nil,
		)
	}

	storedName := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	destPath := filepath.Join(s.uploadDir, storedName)

	if err := saveMultipartFile(fileHeader, destPath); err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}

	metadata := models.FileUpload{
		UserID:     userID,
		FileName:   fileHeader.Filename,
		StoredName: storedName,
		MimeType:   fileHeader.Header.Get("Content-Type"),
		SizeBytes:  fileHeader.Size,
	}

	created, err := s.InsertOne(ctx, metadata)
	if err != nil {
		// Metadata không ghi được thì file trên đĩa thành mồ côi, dọn luôn
		_ = os.Remove(destPath)
		return zero, common.ConvertMongoError(err)
	}

	return created, nil
}

// DeleteUpload xóa metadata và xóa file trên đĩa best-effort
func (s *FileUploadService) DeleteUpload(ctx context.Context, id, userID primitive.ObjectID) error {
	metadata, err := s.FindOne(ctx, map[string]interface{}{"_id": id, "userId": userID}, nil)
	if err != nil {
		return err
	}

	if err := s.DeleteById(ctx, metadata.ID); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.uploadDir, metadata.StoredName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.GetAppLogger().WithError(err).
			WithField("storedName", metadata.StoredName).
			Warn("Không xóa được file trên đĩa")
	}
	return nil
}

// saveMultipartFile copy nội dung file upload vào đường dẫn đích
func saveMultipartFile(fileHeader *multipart.FileHeader, destPath string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
