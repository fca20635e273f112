// Package models - UsernameEmailSet thuộc domain auth (username_email_sets).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại giá trị được giữ chỗ trong username_email_sets
const (
	SetKindUsername = "username"
	SetKindEmail    = "email"
)

// UsernameEmailSet giữ chỗ username/email đã dùng, đảm bảo duy nhất toàn hệ thống
// qua unique index trên value. Đăng ký user mới phải giành được giữ chỗ trước
// khi document user được insert.
type UsernameEmailSet struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Kind      string             `json:"kind" bson:"kind"`
	Value     string             `json:"value" bson:"value"`
	UserID    primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
