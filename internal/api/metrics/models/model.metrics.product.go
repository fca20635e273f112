// Package models - ProductMetrics thuộc domain metrics (product_metrics).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductDay số liệu bán hàng của một ngày
type ProductDay struct {
	Day       int `json:"day" bson:"day" validate:"required,min=1,max=31"`
	UnitsSold int `json:"unitsSold" bson:"unitsSold"`
	Returns   int `json:"returns" bson:"returns"`
	Defects   int `json:"defects" bson:"defects"`
}

// ProductMonth số liệu bán hàng của một tháng
type ProductMonth struct {
	Month int          `json:"month" bson:"month" validate:"required,min=1,max=12"`
	Days  []ProductDay `json:"days" bson:"days"`
}

// ProductMetrics document số liệu bán hàng một năm của một cửa hàng
type ProductMetrics struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	StoreLocation string             `json:"storeLocation" bson:"storeLocation"`
	Year          int                `json:"year" bson:"year"`
	Months        []ProductMonth     `json:"months" bson:"months"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
