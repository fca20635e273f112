package basehdl

import (
	"errors"
	"reflect"

	"github.com/gofiber/fiber/v3"

	basemodels "biz_metrics/internal/api/base/models"
	"biz_metrics/internal/common"
	"biz_metrics/internal/logger"
)

// Kind phân loại kết quả trong response body
const (
	KindSuccess = "success"
	KindError   = "error"
)

// Response là cấu trúc body thống nhất cho mọi response của API.
// Transport status luôn là 200, trạng thái nghiệp vụ nằm trong trường status.
type Response struct {
	AccessToken    string        `json:"accessToken"`    // Access token mới sau khi xoay vòng (rỗng với route công khai)
	Data           []interface{} `json:"data"`           // Dữ liệu trả về, luôn là mảng
	Kind           string        `json:"kind"`           // "success" hoặc "error"
	Message        string        `json:"message"`        // Thông báo cho người dùng
	Pages          int64         `json:"pages"`          // Tổng số trang của kết quả
	Status         int           `json:"status"`         // Logical status code
	TotalDocuments int64         `json:"totalDocuments"` // Tổng số documents khớp filter
	TriggerLogout  bool          `json:"triggerLogout"`  // Client phải xóa phiên đăng nhập khi true
}

// ErrorRecorder là hook ghi nhận lỗi (best-effort) vào nơi lưu trữ,
// được gán lúc khởi tạo ứng dụng. Không bao giờ được làm fail response.
var ErrorRecorder func(c fiber.Ctx, err error)

// JSONResponse ghi response với content-type chuẩn, transport status luôn 200
func JSONResponse(c fiber.Ctx, resp *Response) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(fiber.StatusOK).JSON(resp)
}

// BuildResponse dựng response body từ kết quả của service.
// Lỗi not-found không được coi là lỗi: trả về success với data rỗng.
// Chi tiết lỗi nội bộ không bao giờ xuất hiện trong message.
func BuildResponse(accessToken string, data interface{}, err error) *Response {
	resp := &Response{
		AccessToken: accessToken,
		Data:        []interface{}{},
	}

	if err != nil {
		var appErr *common.Error
		if errors.As(err, &appErr) {
			// Not-found trả về như một kết quả rỗng hợp lệ
			if appErr.StatusCode == common.StatusNotFound {
				resp.Kind = KindSuccess
				resp.Message = common.MsgSuccess
				resp.Status = common.StatusOK
				return resp
			}

			resp.Kind = KindError
			resp.Message = appErr.Message
			resp.Status = appErr.StatusCode
			resp.TriggerLogout = appErr.TriggerLogout
			return resp
		}

		resp.Kind = KindError
		resp.Message = common.MsgInternalError
		resp.Status = common.StatusInternalServerError
		return resp
	}

	resp.Kind = KindSuccess
	resp.Message = common.MsgSuccess
	resp.Status = common.StatusOK

	if meta, ok := data.(basemodels.ResultMeta); ok {
		resp.Data = meta.ResultItems()
		resp.Pages = meta.ResultPages()
		resp.TotalDocuments = meta.ResultTotal()
		return resp
	}

	resp.Data = wrapData(data)
	resp.TotalDocuments = int64(len(resp.Data))
	if resp.TotalDocuments > 0 {
		resp.Pages = 1
	}
	return resp
}

// HandleResponse xử lý kết quả từ service và ghi response thống nhất
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	accessToken, _ := c.Locals("access_token").(string)
	resp := BuildResponse(accessToken, data, err)

	if resp.Kind == KindError {
		var appErr *common.Error
		if !errors.As(err, &appErr) {
			logger.GetErrorLogger().WithError(err).
				WithField("path", c.Path()).
				Error("Lỗi không xác định khi xử lý request")
		}
		recordError(c, err)
	}

	return JSONResponse(c, resp)
}

// recordError gọi hook ghi lỗi nếu đã được cấu hình, nuốt mọi panic
func recordError(c fiber.Ctx, err error) {
	if ErrorRecorder == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	ErrorRecorder(c, err)
}

// wrapData chuẩn hóa dữ liệu trả về thành mảng
func wrapData(data interface{}) []interface{} {
	if data == nil {
		return []interface{}{}
	}

	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return []interface{}{}
		}
		v = v.Elem()
	}

	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		items := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			items[i] = v.Index(i).Interface()
		}
		return items
	}

	return []interface{}{v.Interface()}
}

// SafeHandler bọc handler với recover để một panic không làm chết process
func SafeHandler(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().WithField("panic", r).
				WithField("path", c.Path()).
				Error("Panic khi xử lý request")
			_ = HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				common.MsgInternalError,
				common.StatusInternalServerError,
				r,
			))
		}
	}()
	return fn()
}
