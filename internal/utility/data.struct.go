package utility

import (
	"encoding/json"

	"biz_metrics/internal/common"
)

// ConvertStruct chuyển dữ liệu từ struct nguồn sang struct đích thông qua JSON.
// Các trường trùng json tag sẽ được copy, các trường không khớp sẽ bị bỏ qua.
func ConvertStruct(src interface{}, dst interface{}) (interface{}, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return dst, nil
}
