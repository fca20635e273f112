// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User định nghĩa mô hình người dùng (users).
// Password không bao giờ được serialize ra JSON.
type User struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username      string             `json:"username" bson:"username"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	Password      string             `json:"-" bson:"password,omitempty"`
	FullName      string             `json:"fullName,omitempty" bson:"fullName,omitempty"`
	JobPosition   string             `json:"jobPosition,omitempty" bson:"jobPosition,omitempty"`
	StoreLocation string             `json:"storeLocation,omitempty" bson:"storeLocation,omitempty"`
	Department    string             `json:"department,omitempty" bson:"department,omitempty"`
	Roles         []string           `json:"roles,omitempty" bson:"roles,omitempty"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
