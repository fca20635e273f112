package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"biz_metrics/internal/global"
	"biz_metrics/internal/logger"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình khi truyền nil
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server, chặn cho tới khi nhận tín hiệu dừng.
func main_thread() {
	app, err := InitFiberApp()
	if err != nil {
		logger.GetAppLogger().WithError(err).Fatal("Không thể khởi tạo Fiber app")
	}

	log := logger.GetAppLogger()
	address := global.ServerConfig.Address
	log.WithField("address", address).Info("Starting Fiber server...")

	// Chạy server ở goroutine riêng để main goroutine chờ tín hiệu dừng
	go func() {
		if err := app.Listen(address); err != nil {
			log.WithError(err).Fatal("Fiber server dừng bất thường")
		}
	}()

	// Graceful shutdown: chờ SIGINT/SIGTERM rồi đóng server và kết nối DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("Lỗi khi shutdown Fiber server")
	}

	if global.MongoDB_Session != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := global.MongoDB_Session.Disconnect(ctx); err != nil {
			log.WithError(err).Error("Lỗi khi đóng kết nối MongoDB")
		}
	}

	log.Info("Server stopped")
}

func main() {
	initLogger()
	InitGlobal()
	InitRegistry()
	main_thread()
}
