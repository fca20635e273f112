package main

import (
	"context"
	"time"

	"biz_metrics/config"
	"biz_metrics/internal/database"
	"biz_metrics/internal/global"
	"biz_metrics/internal/logger"
)

// initConfig khởi tạo cấu hình server từ file env và biến môi trường.
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logger.GetAppLogger().Fatal("Không thể khởi tạo cấu hình server")
	}
}

// initValidator khởi tạo validator toàn cục cùng các custom validators.
func initValidator() {
	global.InitValidator()
	if global.Validate == nil {
		logger.GetAppLogger().Fatal("Không thể khởi tạo validator")
	}
}

// initEnums nạp các bảng enum (job positions, store locations, departments).
// Không cấu hình ENUMS_DATA_FILE thì dùng bảng nhúng sẵn trong binary;
// có cấu hình mà file hỏng thì dừng khởi động — chạy tiếp đồng nghĩa
// validator từ chối mọi giá trị enum.
func initEnums() {
	if err := global.LoadEnums(global.ServerConfig.EnumsDataFile); err != nil {
		logger.GetAppLogger().WithError(err).Fatal("Không nạp được file enums")
	}
}

// initDatabase_MongoDB kết nối tới MongoDB và tạo các index cần thiết.
func initDatabase_MongoDB() {
	client, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		logger.GetAppLogger().WithError(err).Fatal("Không thể kết nối tới MongoDB")
	}
	global.MongoDB_Session = client

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(global.ServerConfig.MongoDB_DBName)
	if err := database.CreateIndexes(ctx, db); err != nil {
		logger.GetAppLogger().WithError(err).Fatal("Không thể tạo index cho MongoDB")
	}

	logger.GetAppLogger().WithField("database", global.ServerConfig.MongoDB_DBName).
		Info("Kết nối MongoDB thành công")
}

// InitGlobal khởi tạo lần lượt các thành phần toàn cục của server.
// Thứ tự quan trọng: config trước, sau đó validator/enums, cuối cùng là database.
func InitGlobal() {
	initConfig()
	initValidator()
	initEnums()
	initDatabase_MongoDB()
}
