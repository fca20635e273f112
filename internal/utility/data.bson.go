// Package utility chứa các hàm tiện ích dùng chung: chuyển đổi bson/map,
// ObjectID và thao tác slice.
package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển đổi một struct thành map[string]interface{} theo bson tags.
// Dùng khi cần build update document từ input struct mà vẫn tôn trọng
// tên field và omitempty đã khai báo trên model.
func ToMap(s interface{}) (map[string]interface{}, error) {
	var stringInterfaceMap map[string]interface{}

	data, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	if err := bson.Unmarshal(data, &stringInterfaceMap); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}

	return stringInterfaceMap, nil
}
