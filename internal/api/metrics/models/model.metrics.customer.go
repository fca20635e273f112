// Package models - CustomerMetrics thuộc domain metrics (customer_metrics).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerDay số liệu khách hàng của một ngày
type CustomerDay struct {
	Day             int `json:"day" bson:"day" validate:"required,min=1,max=31"`
	NewCustomers    int `json:"newCustomers" bson:"newCustomers"`
	RepeatCustomers int `json:"repeatCustomers" bson:"repeatCustomers"`
	Complaints      int `json:"complaints" bson:"complaints"`
}

// CustomerMonth số liệu khách hàng của một tháng
type CustomerMonth struct {
	Month int           `json:"month" bson:"month" validate:"required,min=1,max=12"`
	Days  []CustomerDay `json:"days" bson:"days"`
}

// CustomerMetrics document số liệu khách hàng một năm của một cửa hàng
type CustomerMetrics struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	StoreLocation string             `json:"storeLocation" bson:"storeLocation"`
	Year          int                `json:"year" bson:"year"`
	Months        []CustomerMonth    `json:"months" bson:"months"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
