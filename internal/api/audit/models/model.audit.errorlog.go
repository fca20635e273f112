// Package models - ErrorLog thuộc domain audit (error_logs).
// Bản ghi lỗi phục vụ truy vết: lỗi gì, ở đâu, request nào gây ra.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrorLog lưu một lỗi đã xảy ra khi xử lý request (error_logs).
type ErrorLog struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Source      string             `json:"source" bson:"source"`                             // Nơi phát sinh lỗi (method + path hoặc tên service)
	Message     string             `json:"message" bson:"message"`                           // Thông báo lỗi
	Details     string             `json:"details,omitempty" bson:"details,omitempty"`       // Chi tiết kỹ thuật (stack trace, lỗi gốc)
	RequestBody string             `json:"requestBody,omitempty" bson:"requestBody,omitempty"` // Body của request gây lỗi
	UserId      primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`         // Người gọi (nếu đã xác thực)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
