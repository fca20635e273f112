package basehdl

// Package basehdl chứa các handler xử lý request HTTP trong ứng dụng.
// Package này cung cấp các chức năng CRUD cơ bản và các tiện ích để xử lý request/response.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "biz_metrics/internal/api/base/service"
	"biz_metrics/internal/common"
	"biz_metrics/internal/global"
	"biz_metrics/internal/utility"
)

// FilterOptions cấu hình validate filter do client gửi lên
type FilterOptions struct {
	DeniedFields     []string // Các trường bị cấm filter
	AllowedOperators []string // Các operator MongoDB được phép
	MaxFields        int      // Số lượng field tối đa trong một filter
}

// BaseHandler là base handler cho các Fiber handler, cung cấp các chức năng CRUD cơ bản.
// Struct này sử dụng Generic Type để có thể tái sử dụng cho nhiều loại model khác nhau.
//
// Type parameters:
// - T: Kiểu dữ liệu của model
// - CreateInput: Kiểu dữ liệu của input khi tạo mới
// - UpdateInput: Kiểu dữ liệu của input khi cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T]    // Service xử lý logic nghiệp vụ với MongoDB
	filterOptions FilterOptions                  // Cấu hình validate filter
	tenantScoped  bool                           // Giới hạn mọi truy vấn theo userId người gọi
	prepareCreate func(c fiber.Ctx, model *T) error // Hook bổ sung dữ liệu trước khi insert
}

// NewBaseHandler tạo mới một BaseHandler với BaseService được cung cấp
func NewBaseHandler[T any, CreateInput any, UpdateInput any](baseService basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: baseService,
		filterOptions: FilterOptions{
			DeniedFields: []string{
				"password",
				"token",
				"secret",
				"hash",
			},
			AllowedOperators: []string{
				"$eq",
				"$gt",
				"$gte",
				"$lt",
				"$lte",
				"$in",
				"$nin",
				"$exists",
			},
			MaxFields: 10,
		},
	}
}

// ValidateInput thực hiện validate dữ liệu đầu vào bằng validator từ global
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ParseRequestBody parse dữ liệu từ request body.
// Sử dụng json.Decoder với UseNumber() để xử lý chính xác các số.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	reader := bytes.NewReader(body)
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// TransformCreateInputToModel chuyển DTO CreateInput sang Model
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	var model T
	if _, err := utility.ConvertStruct(input, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// TransformUpdateInputToModel chuyển DTO UpdateInput sang Model
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToModel(input *UpdateInput) (*T, error) {
	var model T
	if _, err := utility.ConvertStruct(input, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// ProcessFilter xử lý và validate filter JSON từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (bson.M, error) {
	var filter map[string]interface{}

	filterStr := c.Query("filter", "{}")
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị filter nhận được: %s", err, filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	filter = h.normalizeFilter(filter)

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}

	return bson.M(filter), nil
}

// normalizeFilter chuyển đổi các string ObjectID hợp lệ trong filter thành primitive.ObjectID
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	normalized := make(map[string]interface{}, len(filter))
	for key, value := range filter {
		isIDField := key == "_id" || key == "userId"
		normalized[key] = h.normalizeFilterValue(value, isIDField)
	}
	return normalized
}

// normalizeFilterValue xử lý đệ quy giá trị filter (map lồng nhau, mảng, string ObjectID)
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilterValue(value interface{}, isIDField bool) interface{} {
	switch v := value.(type) {
	case string:
		if isIDField && primitive.IsValidObjectID(v) {
			return utility.String2ObjectID(v)
		}
		return v
	case map[string]interface{}:
		nested := make(map[string]interface{}, len(v))
		for k, inner := range v {
			nested[k] = h.normalizeFilterValue(inner, isIDField)
		}
		return nested
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, inner := range v {
			items[i] = h.normalizeFilterValue(inner, isIDField)
		}
		return items
	default:
		return v
	}
}

// validateFilter kiểm tra filter theo cấu hình filterOptions:
// cấm field nhạy cảm, chỉ cho phép operator trong whitelist, giới hạn số field.
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	if len(filter) > h.filterOptions.MaxFields {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Filter có quá nhiều field (%d), tối đa %d", len(filter), h.filterOptions.MaxFields),
			common.StatusBadRequest,
			nil,
		)
	}

	for key, value := range filter {
		if utility.Contains(h.filterOptions.DeniedFields, key) {
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Không được phép filter theo trường %q", key),
				common.StatusBadRequest,
				nil,
			)
		}

		if nested, ok := value.(map[string]interface{}); ok {
			for op := range nested {
				if len(op) > 0 && op[0] == '$' && !utility.Contains(h.filterOptions.AllowedOperators, op) {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Toán tử %q không được phép trong filter", op),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}

	return nil
}

// ParsePagination đọc page và limit từ query string với giá trị mặc định an toàn
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParsePagination(c fiber.Ctx) (int64, int64) {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 10
	}

	return page, limit
}
