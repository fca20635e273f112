// Package metricshdl - handler CRUD cho bốn loại document metrics.
// Tất cả đều tenant-scoped: mọi truy vấn bị giới hạn theo userId của
// người gọi, và userId được gán vào document lúc tạo.
package metricshdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "biz_metrics/internal/api/base/handler"
	basesvc "biz_metrics/internal/api/base/service"
	metricsdto "biz_metrics/internal/api/metrics/dto"
	models "biz_metrics/internal/api/metrics/models"
	"biz_metrics/internal/common"
	"biz_metrics/internal/global"
	"biz_metrics/internal/utility"
)

// newMetricsHandler dựng BaseHandler tenant-scoped cho một collection metrics.
// setOwner gán userId của người gọi vào document trước khi insert.
func newMetricsHandler[T any, C any, U any](colName string, setOwner func(model *T, userID primitive.ObjectID)) (*basehdl.BaseHandler[T, C, U], error) {
	collection, exist := global.RegistryCollections.Get(colName)
	if !exist {
		return nil, fmt.Errorf("failed to get %s collection: %v", colName, common.ErrNotFound)
	}

	handler := basehdl.NewBaseHandler[T, C, U](basesvc.NewBaseServiceMongo[T](collection))
	handler.SetTenantScoped(true)
	handler.SetPrepareCreate(func(c fiber.Ctx, model *T) error {
		idStr, ok := c.Locals("user_id").(string)
		if !ok || !primitive.IsValidObjectID(idStr) {
			return common.ErrTokenInvalid
		}
		setOwner(model, utility.String2ObjectID(idStr))
		return nil
	})
	return handler, nil
}

// FinancialMetricsHandler CRUD cho financial_metrics
type FinancialMetricsHandler struct {
	*basehdl.BaseHandler[models.FinancialMetrics, metricsdto.FinancialMetricsCreateInput, metricsdto.FinancialMetricsUpdateInput]
}

// NewFinancialMetricsHandler tạo mới FinancialMetricsHandler
func NewFinancialMetricsHandler() (*FinancialMetricsHandler, error) {
	base, err := newMetricsHandler[models.FinancialMetrics, metricsdto.FinancialMetricsCreateInput, metricsdto.FinancialMetricsUpdateInput](
		global.MongoDB_ColNames.FinancialMetrics,
		func(model *models.FinancialMetrics, userID primitive.ObjectID) {
			model.UserID = userID
		},
	)
	if err != nil {
		return nil, err
	}
	return &FinancialMetricsHandler{BaseHandler: base}, nil
}

// ProductMetricsHandler CRUD cho product_metrics
type ProductMetricsHandler struct {
	*basehdl.BaseHandler[models.ProductMetrics, metricsdto.ProductMetricsCreateInput, metricsdto.ProductMetricsUpdateInput]
}

// NewProductMetricsHandler tạo mới ProductMetricsHandler
func NewProductMetricsHandler() (*ProductMetricsHandler, error) {
	base, err := newMetricsHandler[models.ProductMetrics, metricsdto.ProductMetricsCreateInput, metricsdto.ProductMetricsUpdateInput](
		global.MongoDB_ColNames.ProductMetrics,
		func(model *models.ProductMetrics, userID primitive.ObjectID) {
			model.UserID = userID
		},
	)
	if err != nil {
		return nil, err
	}
	return &ProductMetricsHandler{BaseHandler: base}, nil
}

// RepairMetricsHandler CRUD cho repair_metrics
type RepairMetricsHandler struct {
	*basehdl.BaseHandler[models.RepairMetrics, metricsdto.RepairMetricsCreateInput, metricsdto.RepairMetricsUpdateInput]
}

// NewRepairMetricsHandler tạo mới RepairMetricsHandler
func NewRepairMetricsHandler() (*RepairMetricsHandler, error) {
	base, err := newMetricsHandler[models.RepairMetrics, metricsdto.RepairMetricsCreateInput, metricsdto.RepairMetricsUpdateInput](
		global.MongoDB_ColNames.RepairMetrics,
		func(model *models.RepairMetrics, userID primitive.ObjectID) {
			model.UserID = userID
		},
	)
	if err != nil {
		return nil, err
	}
	return &RepairMetricsHandler{BaseHandler: base}, nil
}

// CustomerMetricsHandler CRUD cho customer_metrics
type CustomerMetricsHandler struct {
	*basehdl.BaseHandler[models.CustomerMetrics, metricsdto.CustomerMetricsCreateInput, metricsdto.CustomerMetricsUpdateInput]
}

// NewCustomerMetricsHandler tạo mới CustomerMetricsHandler
func NewCustomerMetricsHandler() (*CustomerMetricsHandler, error) {
	base, err := newMetricsHandler[models.CustomerMetrics, metricsdto.CustomerMetricsCreateInput, metricsdto.CustomerMetricsUpdateInput](
		global.MongoDB_ColNames.CustomerMetrics,
		func(model *models.CustomerMetrics, userID primitive.ObjectID) {
			model.UserID = userID
		},
	)
	if err != nil {
		return nil, err
	}
	return &CustomerMetricsHandler{BaseHandler: base}, nil
}
