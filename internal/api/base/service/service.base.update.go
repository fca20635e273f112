package basesvc

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"biz_metrics/internal/common"
)

// UpdateKind phân loại một thao tác update theo nhóm toán tử
type UpdateKind string

const (
	// UpdateKindField là nhóm toán tử thao tác trên field đơn
	UpdateKindField UpdateKind = "field"
	// UpdateKindArray là nhóm toán tử thao tác trên array
	UpdateKindArray UpdateKind = "array"
)

// fieldOperators là các toán tử update trên field đơn
var fieldOperators = map[string]bool{
	"$set":         true,
	"$inc":         true,
	"$min":         true,
	"$max":         true,
	"$mul":         true,
	"$rename":      true,
	"$setOnInsert": true,
	"$unset":       true,
	"$currentDate": true,
}

// arrayOperators là các toán tử update trên array
var arrayOperators = map[string]bool{
	"$addToSet": true,
	"$pop":      true,
	"$pull":     true,
	"$push":     true,
	"$pullAll":  true,
}

// DocumentUpdate mô tả một thao tác update do client gửi lên:
// updateKind xác định nhóm toán tử, updateOperator là toán tử cụ thể,
// fields là map field -> giá trị áp dụng.
type DocumentUpdate struct {
	UpdateKind     string         `json:"updateKind" bson:"updateKind" validate:"required,oneof=field array"`
	UpdateOperator string         `json:"updateOperator" bson:"updateOperator" validate:"required"`
	Fields         map[string]any `json:"fields" bson:"fields" validate:"required,min=1"`
}

// BuildUpdateDocument kiểm tra toán tử thuộc đúng nhóm đã khai báo
// và dựng update document MongoDB tương ứng.
func BuildUpdateDocument(du DocumentUpdate) (bson.M, error) {
	if len(du.Fields) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput,
			"documentUpdate.fields không được rỗng", common.StatusBadRequest, nil)
	}

	switch UpdateKind(du.UpdateKind) {
	case UpdateKindField:
		if !fieldOperators[du.UpdateOperator] {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("toán tử %q không thuộc nhóm field", du.UpdateOperator),
				common.StatusBadRequest, nil)
		}
	case UpdateKindArray:
		if !arrayOperators[du.UpdateOperator] {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("toán tử %q không thuộc nhóm array", du.UpdateOperator),
				common.StatusBadRequest, nil)
		}
	default:
		return nil, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("updateKind %q không hợp lệ, chỉ chấp nhận field hoặc array", du.UpdateKind),
			common.StatusBadRequest, nil)
	}

	fields := bson.M{}
	for k, v := range du.Fields {
		fields[k] = v
	}

	return bson.M{du.UpdateOperator: fields}, nil
}
