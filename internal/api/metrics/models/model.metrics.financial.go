// Package models - FinancialMetrics thuộc domain metrics (financial_metrics).
// Một document cho mỗi (userId, storeLocation, year), bên trong là
// months[] → days[] với số liệu tài chính theo ngày.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FinancialDay số liệu tài chính của một ngày
type FinancialDay struct {
	Day      int     `json:"day" bson:"day" validate:"required,min=1,max=31"`
	Revenue  float64 `json:"revenue" bson:"revenue"`
	Expenses float64 `json:"expenses" bson:"expenses"`
	Profit   float64 `json:"profit" bson:"profit"`
}

// FinancialMonth số liệu tài chính của một tháng
type FinancialMonth struct {
	Month int            `json:"month" bson:"month" validate:"required,min=1,max=12"`
	Days  []FinancialDay `json:"days" bson:"days"`
}

// FinancialMetrics document số liệu tài chính một năm của một cửa hàng
type FinancialMetrics struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	StoreLocation string             `json:"storeLocation" bson:"storeLocation"`
	Year          int                `json:"year" bson:"year"`
	Months        []FinancialMonth   `json:"months" bson:"months"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
