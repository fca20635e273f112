package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
// Lưu ý: đây là logical status đặt trong body response (field "status"),
// transport status luôn là 200 trừ route không tồn tại (404 của framework).
const (
	// Success Codes (2xx)
	StatusOK      = 200 // Thành công
	StatusCreated = 201 // Tạo mới thành công

	// Client Error Codes (4xx)
	StatusBadRequest   = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized = 401 // Chưa xác thực
	StatusForbidden    = 403 // Không có quyền truy cập
	StatusNotFound     = 404 // Không tìm thấy tài nguyên
	StatusConflict     = 409 // Xung đột dữ liệu
	StatusGone         = 410 // Tài nguyên không còn tồn tại

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	// Success Messages
	MsgSuccess = "Thao tác thành công"
	MsgCreated = "Tạo mới thành công"

	// Error Messages
	MsgBadRequest    = "Yêu cầu không hợp lệ"
	MsgUnauthorized  = "Vui lòng đăng nhập"
	MsgForbidden     = "Không có quyền truy cập"
	MsgNotFound      = "Không tìm thấy tài nguyên"
	MsgConflict      = "Xung đột dữ liệu"
	MsgInternalError = "Lỗi hệ thống, vui lòng thử lại"

	// Token Messages
	MsgTokenMissing        = "Thiếu token xác thực"
	MsgTokenInvalid        = "Token không hợp lệ"
	MsgSessionExpired      = "Phiên đăng nhập đã hết hạn"
	MsgSessionInvalidated  = "Phiên đăng nhập đã bị vô hiệu hóa"

	// Validation Messages
	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi (ví dụ: Authentication)
	SubCategory string // Phân loại con (ví dụ: Token)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Lỗi liên quan đến token",
	}

	ErrCodeAuthCredentials = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Credentials",
		Description: "Lỗi thông tin đăng nhập",
	}

	ErrCodeAuthSession = ErrorCode{
		Code:        "AUTH_003",
		Category:    "Authentication",
		SubCategory: "Session",
		Description: "Lỗi liên quan đến phiên đăng nhập",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi cơ sở dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessOperation = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "Operation",
		Description: "Lỗi thao tác nghiệp vụ",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết.
// TriggerLogout = true yêu cầu client xóa phiên đăng nhập (lỗi xác thực).
type Error struct {
	Code          ErrorCode // Mã lỗi chi tiết
	Message       string    // Thông báo lỗi
	StatusCode    int       // Logical status đặt trong body response
	TriggerLogout bool      // Client phải logout khi nhận lỗi này
	Details       any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is kiểm tra xem error có phải là target error không (hỗ trợ errors.Is)
func (e *Error) Is(target error) bool {
	targetErr, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// NewAuthError tạo lỗi xác thực với TriggerLogout = true.
// Mọi lỗi token/session đều phải đi qua hàm này để client biết cần logout.
func NewAuthError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:          code,
		Message:       message,
		StatusCode:    statusCode,
		TriggerLogout: true,
		Details:       details,
	}
}

// Custom errors
var (
	// Authentication Errors (tất cả đều trigger logout)
	ErrInvalidCredentials = NewAuthError(ErrCodeAuthCredentials, "Thông tin đăng nhập không chính xác", StatusUnauthorized, nil)
	ErrTokenMissing       = NewAuthError(ErrCodeAuthToken, MsgTokenMissing, StatusUnauthorized, nil)
	ErrTokenInvalid       = NewAuthError(ErrCodeAuthToken, MsgTokenInvalid, StatusUnauthorized, nil)
	ErrSessionExpired     = NewAuthError(ErrCodeAuthSession, MsgSessionExpired, StatusUnauthorized, nil)
	ErrSessionInvalidated = NewAuthError(ErrCodeAuthSession, MsgSessionInvalidated, StatusUnauthorized, nil)

	// Validation Errors
	ErrInvalidInput   = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat  = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)
	ErrRequiredField  = NewError(ErrCodeValidationInput, "Thiếu trường bắt buộc", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrDuplicate  = NewError(ErrCodeDatabaseQuery, "Dữ liệu đã tồn tại", StatusConflict, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối cơ sở dữ liệu", StatusServiceUnavailable, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// ErrNotFound đã được phân loại ở tầng service - không convert lại
	if errors.Is(err, ErrNotFound) {
		return err
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return ErrConnection
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return NewError(ErrCodeDatabaseQuery, MsgDatabaseError, StatusInternalServerError, cmdErr.Message)
	}

	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}
