// Package database - Định nghĩa index cho các collection của hệ thống.
package database

import (
	"context"
	"strings"

	"biz_metrics/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes tạo toàn bộ index cần thiết cho hệ thống.
// Idempotent: index đã tồn tại sẽ được bỏ qua.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	// users: username duy nhất
	users := db.Collection(global.MongoDB_ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("user_username_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// users: email tra cứu
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("user_email"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// auth_sessions: TTL theo expiresAt — MongoDB tự xóa phiên hết hạn
	authSessions := db.Collection(global.MongoDB_ColNames.AuthSessions)
	if _, err := authSessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetName("session_expires_ttl").SetExpireAfterSeconds(0),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// auth_sessions: tra cứu các phiên của một user
	if _, err := authSessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("session_user"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// username_email_sets: giá trị đã dùng là duy nhất vĩnh viễn
	usernameEmailSets := db.Collection(global.MongoDB_ColNames.UsernameEmailSets)
	if _, err := usernameEmailSets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "value", Value: 1}},
		Options: options.Index().SetName("username_email_value_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// file_uploads: tra cứu file theo người upload
	fileUploads := db.Collection(global.MongoDB_ColNames.FileUploads)
	if _, err := fileUploads.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("file_upload_user"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// Các collection metrics: (userId, storeLocation, year) — mỗi user một document
	// cho mỗi địa điểm theo năm, query chính luôn lọc theo bộ ba này.
	metricCollections := []string{
		global.MongoDB_ColNames.FinancialMetrics,
		global.MongoDB_ColNames.ProductMetrics,
		global.MongoDB_ColNames.RepairMetrics,
		global.MongoDB_ColNames.CustomerMetrics,
	}
	for _, name := range metricCollections {
		col := db.Collection(name)
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "storeLocation", Value: 1},
				{Key: "year", Value: 1},
			},
			Options: options.Index().SetName("metric_user_store_year").SetUnique(true),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}
	}

	// error_logs: tra cứu theo thời gian phát sinh
	errorLogs := db.Collection(global.MongoDB_ColNames.ErrorLogs)
	if _, err := errorLogs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("error_log_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
