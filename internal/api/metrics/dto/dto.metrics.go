// Package metricsdto - đầu vào tạo/cập nhật các document metrics.
// Mỗi loại metrics có payload ngày riêng; userId không nằm trong input,
// handler gán từ danh tính người gọi.
package metricsdto

import (
	models "biz_metrics/internal/api/metrics/models"
)

// FinancialMetricsCreateInput đầu vào tạo document số liệu tài chính
type FinancialMetricsCreateInput struct {
	StoreLocation string                  `json:"storeLocation" validate:"required,store_location"`
	Year          int                     `json:"year" validate:"required,min=2000,max=2100"`
	Months        []models.FinancialMonth `json:"months" validate:"omitempty,max=12,dive"`
}

// FinancialMetricsUpdateInput đầu vào cập nhật qua documentUpdate;
// các trường dưới đây là phần được phép đổi bằng field operator.
type FinancialMetricsUpdateInput struct {
	StoreLocation string                  `json:"storeLocation" validate:"omitempty,store_location"`
	Months        []models.FinancialMonth `json:"months" validate:"omitempty,max=12,dive"`
}

// ProductMetricsCreateInput đầu vào tạo document số liệu bán hàng
type ProductMetricsCreateInput struct {
	StoreLocation string                `json:"storeLocation" validate:"required,store_location"`
	Year          int                   `json:"year" validate:"required,min=2000,max=2100"`
	Months        []models.ProductMonth `json:"months" validate:"omitempty,max=12,dive"`
}

// ProductMetricsUpdateInput đầu vào cập nhật số liệu bán hàng
type ProductMetricsUpdateInput struct {
	StoreLocation string                `json:"storeLocation" validate:"omitempty,store_location"`
	Months        []models.ProductMonth `json:"months" validate:"omitempty,max=12,dive"`
}

// RepairMetricsCreateInput đầu vào tạo document số liệu sửa chữa
type RepairMetricsCreateInput struct {
	StoreLocation string               `json:"storeLocation" validate:"required,store_location"`
	Year          int                  `json:"year" validate:"required,min=2000,max=2100"`
	Months        []models.RepairMonth `json:"months" validate:"omitempty,max=12,dive"`
}

// RepairMetricsUpdateInput đầu vào cập nhật số liệu sửa chữa
type RepairMetricsUpdateInput struct {
	StoreLocation string               `json:"storeLocation" validate:"omitempty,store_location"`
	Months        []models.RepairMonth `json:"months" validate:"omitempty,max=12,dive"`
}

// CustomerMetricsCreateInput đầu vào tạo document số liệu khách hàng
type CustomerMetricsCreateInput struct {
	StoreLocation string                 `json:"storeLocation" validate:"required,store_location"`
	Year          int                    `json:"year" validate:"required,min=2000,max=2100"`
	Months        []models.CustomerMonth `json:"months" validate:"omitempty,max=12,dive"`
}

// CustomerMetricsUpdateInput đầu vào cập nhật số liệu khách hàng
type CustomerMetricsUpdateInput struct {
	StoreLocation string                 `json:"storeLocation" validate:"omitempty,store_location"`
	Months        []models.CustomerMonth `json:"months" validate:"omitempty,max=12,dive"`
}
