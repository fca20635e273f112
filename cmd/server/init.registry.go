package main

import (
	"go.mongodb.org/mongo-driver/mongo"

	"biz_metrics/internal/global"
	"biz_metrics/internal/logger"
)

// InitCollections đăng ký toàn bộ collection của hệ thống vào registry.
// Các service lấy collection qua registry thay vì giữ tham chiếu trực tiếp.
func InitCollections(client *mongo.Client) {
	db := client.Database(global.ServerConfig.MongoDB_DBName)
	if _, err := global.RegistryDatabase.Register(global.ServerConfig.MongoDB_DBName, db); err != nil {
		logger.GetAppLogger().WithError(err).Fatal("Không thể đăng ký database vào registry")
	}

	names := []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.AuthSessions,
		global.MongoDB_ColNames.FileUploads,
		global.MongoDB_ColNames.FinancialMetrics,
		global.MongoDB_ColNames.ProductMetrics,
		global.MongoDB_ColNames.RepairMetrics,
		global.MongoDB_ColNames.CustomerMetrics,
		global.MongoDB_ColNames.ErrorLogs,
		global.MongoDB_ColNames.UsernameEmailSets,
	}

	for _, name := range names {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			logger.GetAppLogger().WithError(err).WithField("collection", name).
				Fatal("Không thể đăng ký collection vào registry")
		}
	}

	logger.GetAppLogger().WithField("count", len(names)).Info("Đã đăng ký các collection vào registry")
}

// InitRegistry khởi tạo registry sau khi đã có kết nối MongoDB.
func InitRegistry() {
	InitCollections(global.MongoDB_Session)
}
