// Package basequery chuyển đổi query string của HTTP request thành QueryDescriptor:
// cấu trúc filter/sort/pagination/projection mà tầng service dùng để truy vấn MongoDB.
package basequery

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"biz_metrics/internal/common"

	"go.mongodb.org/mongo-driver/bson"
)

// DefaultLimit là số documents mỗi trang khi caller không truyền limit
const DefaultLimit = int64(10)

// optionsPassthroughKeys là các key được copy nguyên vẹn vào Options.Extra,
// không tham gia vào filter.
var optionsPassthroughKeys = map[string]bool{
	"tailable":       true,
	"skip":           true,
	"allowDiskUse":   true,
	"batchSize":      true,
	"readPreference": true,
	"hint":           true,
	"comment":        true,
	"lean":           true,
	"populate":       true,
	"maxTimeMS":      true,
	"strict":         true,
	"collation":      true,
	"session":        true,
	"explain":        true,
}

// bodyPassthroughKeys là các key điều khiển phân trang/hình thức trả về,
// được gom vào Body accumulator thay vì filter.
var bodyPassthroughKeys = map[string]bool{
	"page":           true,
	"fields":         true,
	"limitPerPage":   true,
	"newQueryFlag":   true,
	"totalDocuments": true,
}

// logicalOperatorKeys là các toán tử logic của MongoDB, mỗi lần xuất hiện
// được append vào một mảng dưới key tương ứng trong filter.
var logicalOperatorKeys = map[string]bool{
	"$and":       true,
	"$or":        true,
	"$nor":       true,
	"$not":       true,
	"$elemMatch": true,
	"$where":     true,
}

// QueryOptions chứa các tùy chọn thực thi query: sort, limit, skip
// và các option passthrough khác.
type QueryOptions struct {
	Sort  bson.D            // Sort theo thứ tự khai báo (bson.D để giữ thứ tự key)
	Limit int64             // Số documents tối đa mỗi trang
	Skip  int64             // Số documents bỏ qua, tính từ page và limit
	Extra map[string]string // Các option passthrough (hint, comment, maxTimeMS, ...)
}

// QueryDescriptor là kết quả chuẩn hóa của một query string.
// Được build mới cho mỗi request, không bao giờ persist.
type QueryDescriptor struct {
	Filter     bson.M            // Điều kiện lọc
	Projection []string          // Danh sách field loại trừ (đã prefix "-")
	Body       map[string]string // Các key passthrough mức body (page, fields, ...)
	Options    QueryOptions      // Sort, limit, skip và options passthrough
	Limit      int64             // Bản sao top-level của limit, dùng tính pagination
}

// Normalize chuyển raw query values thành QueryDescriptor theo thứ tự ưu tiên cố định,
// key nào khớp rule trước thì dừng ở rule đó.
//
// Thứ tự các rule:
//  1. limit — ghi vào cả Options.Limit và Limit top-level
//  2. options passthrough — copy nguyên vẹn vào Options.Extra
//  3. body passthrough — gom vào Body accumulator
//  4. toán tử logic ($and, $or, ...) — append vào mảng trong Filter
//  5. $text — copy nguyên vẹn vào Filter
//  6. projection — tách theo dấu phẩy, prefix "-" từng field
//  7. sort[field] — parse hướng sort
//  8. key còn lại — copy vào Filter (equality hoặc điều kiện có cấu trúc)
//
// Sau cùng: sort thiếu thì default {createdAt:-1, _id:-1}; đúng một sort field
// thì thêm _id:-1 làm tie-break; skip = (page-1)*limit.
//
// Giá trị không phải số cho limit/page/sort direction trả về lỗi validation.
func Normalize(raw url.Values) (*QueryDescriptor, error) {
	descriptor := &QueryDescriptor{
		Filter: bson.M{},
		Body:   map[string]string{},
		Options: QueryOptions{
			Limit: DefaultLimit,
			Extra: map[string]string{},
		},
		Limit: DefaultLimit,
	}

	if len(raw) == 0 {
		// Query rỗng: descriptor mặc định
		descriptor.Options.Sort = defaultSort()
		return descriptor, nil
	}

	var sortFields bson.D

	for key, values := range raw {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		if value == "" && !logicalOperatorKeys[key] {
			// Giá trị rỗng bị drop, không đưa vào filter
			continue
		}

		switch {
		case key == "limit":
			limit, err := strconv.ParseInt(value, 10, 64)
			if err != nil || limit <= 0 {
				return nil, common.NewError(common.ErrCodeValidationInput,
					fmt.Sprintf("limit không hợp lệ: %q", value), common.StatusBadRequest, nil)
			}
			descriptor.Options.Limit = limit
			descriptor.Limit = limit

		case optionsPassthroughKeys[key]:
			descriptor.Options.Extra[key] = value

		case bodyPassthroughKeys[key]:
			descriptor.Body[key] = value

		case logicalOperatorKeys[key]:
			// Hỗ trợ lặp lại cùng toán tử: mỗi lần xuất hiện thêm một phần tử.
			// Không gom được clause nào (vd "$and=") thì không ghi key vào
			// filter — mảng rỗng dưới $and/$or bị MongoDB từ chối.
			clauses, _ := descriptor.Filter[key].([]any)
			for _, v := range values {
				if v == "" {
					continue
				}
				clauses = append(clauses, parseConditionValue(v))
			}
			if len(clauses) > 0 {
				descriptor.Filter[key] = clauses
			}

		case key == "$text":
			descriptor.Filter["$text"] = parseConditionValue(value)

		case key == "projection":
			fields := strings.Split(value, ",")
			for _, f := range fields {
				f = strings.TrimSpace(f)
				if f == "" {
					continue
				}
				descriptor.Projection = append(descriptor.Projection, "-"+f)
			}

		case strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]"):
			field := key[len("sort[") : len(key)-1]
			if field == "" {
				continue
			}
			direction, err := strconv.Atoi(value)
			if err != nil {
				return nil, common.NewError(common.ErrCodeValidationInput,
					fmt.Sprintf("hướng sort không hợp lệ cho %q: %q", field, value), common.StatusBadRequest, nil)
			}
			sortFields = append(sortFields, bson.E{Key: field, Value: direction})

		default:
			descriptor.Filter[key] = parseConditionValue(value)
		}
	}

	descriptor.Options.Sort = finalizeSort(sortFields)

	// skip = (page-1) * limit, page mặc định 1
	page := int64(1)
	if pageStr, ok := descriptor.Body["page"]; ok {
		parsed, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("page không hợp lệ: %q", pageStr), common.StatusBadRequest, nil)
		}
		page = parsed
	}
	descriptor.Options.Skip = (page - 1) * descriptor.Options.Limit

	return descriptor, nil
}

// finalizeSort áp dụng quy tắc sort mặc định và tie-break:
// không có sort field nào thì dùng {createdAt:-1, _id:-1};
// đúng một field thì thêm _id:-1 để thứ tự phân trang ổn định.
func finalizeSort(sortFields bson.D) bson.D {
	switch len(sortFields) {
	case 0:
		return defaultSort()
	case 1:
		if sortFields[0].Key != "_id" {
			sortFields = append(sortFields, bson.E{Key: "_id", Value: -1})
		}
		return sortFields
	default:
		return sortFields
	}
}

func defaultSort() bson.D {
	return bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	}
}

// parseConditionValue cố gắng decode giá trị query thành cấu trúc JSON
// (điều kiện dạng {"$gte": 5}), thất bại thì giữ nguyên string (equality match).
func parseConditionValue(value string) any {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var decoded any
		decoder := json.NewDecoder(strings.NewReader(trimmed))
		decoder.UseNumber()
		if err := decoder.Decode(&decoded); err == nil {
			return decoded
		}
	}
	return value
}
