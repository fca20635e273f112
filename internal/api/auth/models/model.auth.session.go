// Package models - Session, AccessClaims thuộc domain auth.
package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session là bản ghi phiên đăng nhập (auth_sessions).
// Mỗi phiên chỉ có đúng một currentlyActiveToken hợp lệ tại một thời điểm:
// token được xoay vòng trên mỗi request đã xác thực, token cũ trở thành stale
// và việc trình token stale sẽ xóa phiên.
// ExpiresAt là BSON date để TTL index của MongoDB tự quét phiên hết hạn.
type Session struct {
	ID                   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID               primitive.ObjectID `json:"userId" bson:"userId"`
	Username             string             `json:"username" bson:"username"`
	AddressIP            string             `json:"addressIP" bson:"addressIP"`
	UserAgent            string             `json:"userAgent" bson:"userAgent"`
	CurrentlyActiveToken string             `json:"-" bson:"currentlyActiveToken"`
	ExpiresAt            time.Time          `json:"expiresAt" bson:"expiresAt"`
	CreatedAt            int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt            int64              `json:"updatedAt" bson:"updatedAt"`
}

// AccessClaims chứa data được mã hóa trong access token.
type AccessClaims struct {
	UserID    string   `json:"userId"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	SessionID string   `json:"sessionId"`
	jwt.RegisteredClaims
}
