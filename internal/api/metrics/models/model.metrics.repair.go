// Package models - RepairMetrics thuộc domain metrics (repair_metrics).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RepairDay số liệu sửa chữa của một ngày
type RepairDay struct {
	Day              int     `json:"day" bson:"day" validate:"required,min=1,max=31"`
	RepairsCompleted int     `json:"repairsCompleted" bson:"repairsCompleted"`
	WarrantyClaims   int     `json:"warrantyClaims" bson:"warrantyClaims"`
	PartsCost        float64 `json:"partsCost" bson:"partsCost"`
}

// RepairMonth số liệu sửa chữa của một tháng
type RepairMonth struct {
	Month int         `json:"month" bson:"month" validate:"required,min=1,max=12"`
	Days  []RepairDay `json:"days" bson:"days"`
}

// RepairMetrics document số liệu sửa chữa một năm của một cửa hàng
type RepairMetrics struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	StoreLocation string             `json:"storeLocation" bson:"storeLocation"`
	Year          int                `json:"year" bson:"year"`
	Months        []RepairMonth      `json:"months" bson:"months"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
