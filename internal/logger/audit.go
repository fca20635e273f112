package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction mô tả một hành động cần ghi audit log
type AuditAction struct {
	Action       string         `json:"action"`        // Tên hành động (ví dụ: "user_login", "metric_create")
	UserID       string         `json:"user_id"`       // ID người dùng thực hiện
	ResourceID   string         `json:"resource_id"`   // ID tài nguyên bị ảnh hưởng
	ResourceType string         `json:"resource_type"` // Loại tài nguyên (ví dụ: "user", "financial_metric")
	IP           string         `json:"ip"`            // IP address
	UserAgent    string         `json:"user_agent"`    // User agent
	Details      map[string]any `json:"details"`       // Chi tiết bổ sung
	Timestamp    time.Time      `json:"timestamp"`     // Thời gian
}

// LogAction ghi một hành động audit kèm thông tin request
func LogAction(action string, c fiber.Ctx, details map[string]any) {
	auditLogger := GetAuditLogger()

	if details == nil {
		details = make(map[string]any)
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Details:   details,
		Timestamp: time.Now(),
	}

	// user_id được middleware auth đặt vào Locals sau khi xác thực token
	if userID := c.Locals("user_id"); userID != nil {
		if uid, ok := userID.(string); ok {
			audit.UserID = uid
		}
	}

	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	auditLogger.WithFields(logrus.Fields{
		"action":        audit.Action,
		"user_id":       audit.UserID,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}

// LogCRUD ghi audit cho các thao tác CRUD trên một collection
func LogCRUD(operation string, resourceType string, resourceID string, c fiber.Ctx, details map[string]any) {
	if details == nil {
		details = make(map[string]any)
	}
	details["operation"] = operation
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID

	LogAction("crud_"+operation, c, details)
}

// LogAuth ghi audit cho các thao tác authentication (login, logout, refresh)
func LogAuth(action string, c fiber.Ctx, details map[string]any) {
	if details == nil {
		details = make(map[string]any)
	}
	LogAction("auth_"+action, c, details)
}
