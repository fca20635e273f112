// Package router đăng ký các route thuộc domain metrics:
// bốn resource dưới /api/v1/metrics/{financial,product,repair,customer}.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	metricshdl "biz_metrics/internal/api/metrics/handler"
	apirouter "biz_metrics/internal/api/router"
)

// Register đăng ký route CRUD cho cả bốn loại metrics
func Register(app *fiber.App, v1 fiber.Router, r *apirouter.Router, authMw fiber.Handler, queryMw fiber.Handler) error {
	financialHandler, err := metricshdl.NewFinancialMetricsHandler()
	if err != nil {
		return fmt.Errorf("failed to create financial metrics handler: %w", err)
	}

	productHandler, err := metricshdl.NewProductMetricsHandler()
	if err != nil {
		return fmt.Errorf("failed to create product metrics handler: %w", err)
	}

	repairHandler, err := metricshdl.NewRepairMetricsHandler()
	if err != nil {
		return fmt.Errorf("failed to create repair metrics handler: %w", err)
	}

	customerHandler, err := metricshdl.NewCustomerMetricsHandler()
	if err != nil {
		return fmt.Errorf("failed to create customer metrics handler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/metrics/financial", financialHandler, apirouter.ReadWriteConfig, authMw, queryMw)
	r.RegisterCRUDRoutes(v1, "/metrics/product", productHandler, apirouter.ReadWriteConfig, authMw, queryMw)
	r.RegisterCRUDRoutes(v1, "/metrics/repair", repairHandler, apirouter.ReadWriteConfig, authMw, queryMw)
	r.RegisterCRUDRoutes(v1, "/metrics/customer", customerHandler, apirouter.ReadWriteConfig, authMw, queryMw)

	return nil
}
