// Package uploaddto - đầu vào cho CRUD metadata file upload.
package uploaddto

// FileUploadCreateInput metadata tạo qua endpoint upload multipart,
// không qua body {schema}; struct này tồn tại để khớp contract của BaseHandler.
type FileUploadCreateInput struct {
	FileName string `json:"fileName" validate:"omitempty,max=255,no_xss"`
}

// FileUploadUpdateInput chỉ cho phép đổi tên hiển thị của file
type FileUploadUpdateInput struct {
	FileName string `json:"fileName" validate:"required,max=255,no_xss"`
}
