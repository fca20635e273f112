package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v3"

	basehdl "biz_metrics/internal/api/base/handler"
	basequery "biz_metrics/internal/api/base/query"
	"biz_metrics/internal/common"
)

// QueryNormalizer chuẩn hóa query string thành QueryDescriptor cho các route danh sách.
// Descriptor được gắn vào Locals("query_descriptor"); query không hợp lệ
// (limit/page/sort không phải số) trả envelope lỗi validation ngay tại đây.
func QueryNormalizer() fiber.Handler {
	return func(c fiber.Ctx) error {
		values, err := url.ParseQuery(string(c.RequestCtx().URI().QueryString()))
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				common.MsgValidationError,
				common.StatusBadRequest,
				err,
			))
		}

		descriptor, err := basequery.Normalize(values)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		c.Locals("query_descriptor", descriptor)
		return c.Next()
	}
}
