package basehdl

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basequery "biz_metrics/internal/api/base/query"
	basesvc "biz_metrics/internal/api/base/service"
	"biz_metrics/internal/common"
	"biz_metrics/internal/utility"
)

// createRequest là body tạo mới theo quy ước {schema: payload}
type createRequest[CreateInput any] struct {
	Schema CreateInput `json:"schema"`
}

// createManyRequest là body tạo nhiều document cùng lúc
type createManyRequest[CreateInput any] struct {
	Schema []CreateInput `json:"schema"`
}

// updateRequest là body cập nhật theo quy ước {documentUpdate: {...}}
type updateRequest struct {
	DocumentUpdate basesvc.DocumentUpdate `json:"documentUpdate"`
}

// deleteManyRequest là body xóa nhiều document theo danh sách id
type deleteManyRequest struct {
	IDs []string `json:"ids"`
}

// SetTenantScoped bật chế độ giới hạn mọi truy vấn theo userId của người gọi.
// Handler của các resource metrics bật cờ này để mỗi user chỉ thấy dữ liệu của mình.
func (h *BaseHandler[T, CreateInput, UpdateInput]) SetTenantScoped(scoped bool) *BaseHandler[T, CreateInput, UpdateInput] {
	h.tenantScoped = scoped
	return h
}

// SetPrepareCreate gán hook bổ sung dữ liệu cho model trước khi insert
// (vd: gán userId của người gọi từ context).
func (h *BaseHandler[T, CreateInput, UpdateInput]) SetPrepareCreate(fn func(c fiber.Ctx, model *T) error) *BaseHandler[T, CreateInput, UpdateInput] {
	h.prepareCreate = fn
	return h
}

// callerID đọc userId của người gọi từ context (do middleware auth gán)
func callerID(c fiber.Ctx) (primitive.ObjectID, bool) {
	idStr, ok := c.Locals("user_id").(string)
	if !ok || !primitive.IsValidObjectID(idStr) {
		return primitive.NilObjectID, false
	}
	return utility.String2ObjectID(idStr), true
}

// scopeFilter giới hạn filter theo userId của người gọi khi handler ở chế độ tenant-scoped
func (h *BaseHandler[T, CreateInput, UpdateInput]) scopeFilter(c fiber.Ctx, filter bson.M) bson.M {
	if !h.tenantScoped {
		return filter
	}
	if filter == nil {
		filter = bson.M{}
	}
	if id, ok := callerID(c); ok {
		filter["userId"] = id
	}
	return filter
}

// GetQueryDescriptor lấy QueryDescriptor do middleware query đặt vào context.
// Nếu middleware chưa chạy, tự chuẩn hóa từ query string của request.
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetQueryDescriptor(c fiber.Ctx) (*basequery.QueryDescriptor, error) {
	if descriptor, ok := c.Locals("query_descriptor").(*basequery.QueryDescriptor); ok {
		return descriptor, nil
	}

	values, err := url.ParseQuery(string(c.RequestCtx().URI().QueryString()))
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return basequery.Normalize(values)
}

// parseObjectIDParam đọc và validate ObjectID từ path param
func parseObjectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	raw := c.Params(name)
	if !primitive.IsValidObjectID(raw) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			"ID không đúng định dạng ObjectID",
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(raw), nil
}

// ======================================================================
// CÁC HANDLER CRUD CƠ BẢN
// ======================================================================

// InsertOne xử lý request tạo mới một document.
// Body theo quy ước {schema: <payload>}.
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		var req createRequest[CreateInput]
		if err := h.ParseRequestBody(c, &req); err != nil {
			return HandleResponse(c, nil, err)
		}

		if err := h.ValidateInput(&req.Schema); err != nil {
			return HandleResponse(c, nil, err)
		}

		model, err := h.TransformCreateInputToModel(&req.Schema)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		if h.prepareCreate != nil {
			if err := h.prepareCreate(c, model); err != nil {
				return HandleResponse(c, nil, err)
			}
		}

		created, err := h.BaseService.InsertOne(c.Context(), *model)
		return HandleResponse(c, created, err)
	})
}

// InsertMany xử lý request tạo nhiều document trong một lần gọi
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertMany(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		var req createManyRequest[CreateInput]
		if err := h.ParseRequestBody(c, &req); err != nil {
			return HandleResponse(c, nil, err)
		}

		if len(req.Schema) == 0 {
			return HandleResponse(c, nil, common.ErrInvalidInput)
		}

		models := make([]T, 0, len(req.Schema))
		for i := range req.Schema {
			if err := h.ValidateInput(&req.Schema[i]); err != nil {
				return HandleResponse(c, nil, err)
			}

			model, err := h.TransformCreateInputToModel(&req.Schema[i])
			if err != nil {
				return HandleResponse(c, nil, err)
			}

			if h.prepareCreate != nil {
				if err := h.prepareCreate(c, model); err != nil {
					return HandleResponse(c, nil, err)
				}
			}

			models = append(models, *model)
		}

		created, err := h.BaseService.InsertMany(c.Context(), models)
		return HandleResponse(c, created, err)
	})
}

// FindOne tìm document đầu tiên khớp filter trong query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.FindOne(c.Context(), h.scopeFilter(c, filter), nil)
		return HandleResponse(c, data, err)
	})
}

// FindOneById tìm document theo ObjectID trong path param
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := parseObjectIDParam(c, "id")
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		if h.tenantScoped {
			data, err := h.BaseService.FindOne(c.Context(), h.scopeFilter(c, bson.M{"_id": id}), nil)
			return HandleResponse(c, data, err)
		}

		data, err := h.BaseService.FindOneById(c.Context(), id)
		return HandleResponse(c, data, err)
	})
}

// FindManyByIds tìm nhiều document theo danh sách id trong query string (ids=a,b,c)
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindManyByIds(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		raw := c.Query("ids")
		if raw == "" {
			return HandleResponse(c, nil, common.ErrRequiredField)
		}

		parts := strings.Split(raw, ",")
		ids := make([]primitive.ObjectID, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if !primitive.IsValidObjectID(part) {
				return HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationInput,
					"Danh sách ids chứa giá trị không phải ObjectID",
					common.StatusBadRequest,
					nil,
				))
			}
			ids = append(ids, utility.String2ObjectID(part))
		}

		if h.tenantScoped {
			filter := h.scopeFilter(c, bson.M{"_id": bson.M{"$in": ids}})
			data, err := h.BaseService.Find(c.Context(), filter, nil)
			return HandleResponse(c, data, err)
		}

		data, err := h.BaseService.FindManyByIds(c.Context(), ids)
		return HandleResponse(c, data, err)
	})
}

// FindWithPagination tìm document theo filter với phân trang page/limit đơn giản
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindWithPagination(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		page, limit := h.ParsePagination(c)
		data, err := h.BaseService.FindWithPagination(c.Context(), h.scopeFilter(c, filter), page, limit, nil)
		return HandleResponse(c, data, err)
	})
}

// FindWithQuery là handler danh sách chính: truy vấn theo QueryDescriptor
// đã được chuẩn hóa từ query string (filter/sort/projection/phân trang).
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindWithQuery(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		descriptor, err := h.GetQueryDescriptor(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		if h.tenantScoped {
			descriptor.Filter = h.scopeFilter(c, descriptor.Filter)
		}

		data, err := h.BaseService.FindWithQuery(c.Context(), descriptor)
		return HandleResponse(c, data, err)
	})
}

// UpdateById cập nhật document theo id với documentUpdate trong body
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := parseObjectIDParam(c, "id")
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		var req updateRequest
		if err := h.ParseRequestBody(c, &req); err != nil {
			return HandleResponse(c, nil, err)
		}

		update, err := basesvc.BuildUpdateDocument(req.DocumentUpdate)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		if h.tenantScoped {
			data, err := h.BaseService.UpdateOne(c.Context(), h.scopeFilter(c, bson.M{"_id": id}), update, nil)
			return HandleResponse(c, data, err)
		}

		data, err := h.BaseService.UpdateById(c.Context(), id, update)
		return HandleResponse(c, data, err)
	})
}

// UpdateOne cập nhật document đầu tiên khớp filter với documentUpdate trong body
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		var req updateRequest
		if err := h.ParseRequestBody(c, &req); err != nil {
			return HandleResponse(c, nil, err)
		}

		update, err := basesvc.BuildUpdateDocument(req.DocumentUpdate)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.UpdateOne(c.Context(), h.scopeFilter(c, filter), update, nil)
		return HandleResponse(c, data, err)
	})
}

// UpdateMany cập nhật mọi document khớp filter, trả về số lượng đã sửa
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateMany(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		var req updateRequest
		if err := h.ParseRequestBody(c, &req); err != nil {
			return HandleResponse(c, nil, err)
		}

		update, err := basesvc.BuildUpdateDocument(req.DocumentUpdate)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		count, err := h.BaseService.UpdateMany(c.Context(), h.scopeFilter(c, filter), update, nil)
		return HandleResponse(c, fiber.Map{"modifiedCount": count}, err)
	})
}

// DeleteById xóa document theo id trong path param
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := parseObjectIDParam(c, "id")
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		if h.tenantScoped {
			err = h.BaseService.DeleteOne(c.Context(), h.scopeFilter(c, bson.M{"_id": id}))
			return HandleResponse(c, nil, err)
		}

		err = h.BaseService.DeleteById(c.Context(), id)
		return HandleResponse(c, nil, err)
	})
}

// DeleteOne xóa document đầu tiên khớp filter trong query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		err = h.BaseService.DeleteOne(c.Context(), h.scopeFilter(c, filter))
		return HandleResponse(c, nil, err)
	})
}

// DeleteMany xóa nhiều document theo danh sách id trong body {ids: [...]};
// nếu body không có ids thì xóa theo filter trong query string.
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteMany(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		var req deleteManyRequest
		if len(c.Body()) > 0 {
			if err := h.ParseRequestBody(c, &req); err != nil {
				return HandleResponse(c, nil, err)
			}
		}

		var filter bson.M
		if len(req.IDs) > 0 {
			ids := make([]primitive.ObjectID, 0, len(req.IDs))
			for _, raw := range req.IDs {
				if !primitive.IsValidObjectID(raw) {
					return HandleResponse(c, nil, common.NewError(
						common.ErrCodeValidationInput,
						"Danh sách ids chứa giá trị không phải ObjectID",
						common.StatusBadRequest,
						nil,
					))
				}
				ids = append(ids, utility.String2ObjectID(raw))
			}
			filter = bson.M{"_id": bson.M{"$in": ids}}
		} else {
			parsed, err := h.ProcessFilter(c)
			if err != nil {
				return HandleResponse(c, nil, err)
			}
			if len(parsed) == 0 {
				// Không cho phép xóa toàn bộ collection qua một request rỗng
				return HandleResponse(c, nil, common.ErrRequiredField)
			}
			filter = parsed
		}

		count, err := h.BaseService.DeleteMany(c.Context(), h.scopeFilter(c, filter))
		return HandleResponse(c, fiber.Map{"deletedCount": count}, err)
	})
}

// CountDocuments đếm số document khớp filter trong query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) CountDocuments(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		count, err := h.BaseService.CountDocuments(c.Context(), h.scopeFilter(c, filter))
		return HandleResponse(c, fiber.Map{"totalDocuments": count}, err)
	})
}

// DocumentExists kiểm tra sự tồn tại của document khớp filter
func (h *BaseHandler[T, CreateInput, UpdateInput]) DocumentExists(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		exists, err := h.BaseService.DocumentExists(c.Context(), h.scopeFilter(c, filter))
		return HandleResponse(c, fiber.Map{"exists": exists}, err)
	})
}
