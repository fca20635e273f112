// Package global chứa các biến toàn cục dùng chung của ứng dụng:
// cấu hình server, phiên kết nối MongoDB, validator và registry collections.
package global

import (
	"biz_metrics/config"
	"biz_metrics/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users             string // Tên collection cho người dùng
	AuthSessions      string // Tên collection cho phiên đăng nhập
	FileUploads       string // Tên collection cho metadata file upload
	FinancialMetrics  string // Tên collection cho chỉ số tài chính
	ProductMetrics    string // Tên collection cho chỉ số sản phẩm
	RepairMetrics     string // Tên collection cho chỉ số sửa chữa
	CustomerMetrics   string // Tên collection cho chỉ số khách hàng
	ErrorLogs         string // Tên collection cho nhật ký lỗi
	UsernameEmailSets string // Tên collection cho tập username/email đã dùng
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{ // Tên các collection
	Users:             "users",
	AuthSessions:      "auth_sessions",
	FileUploads:       "file_uploads",
	FinancialMetrics:  "financial_metrics",
	ProductMetrics:    "product_metrics",
	RepairMetrics:     "repair_metrics",
	CustomerMetrics:   "customer_metrics",
	ErrorLogs:         "error_logs",
	UsernameEmailSets: "username_email_sets",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
