// Package models - FileUpload thuộc domain upload (file_uploads).
// Metadata của file đã upload; nội dung file nằm trên đĩa với tên UUID.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileUpload metadata một file đã upload (file_uploads)
type FileUpload struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	FileName   string             `json:"fileName" bson:"fileName"`     // Tên gốc do client đặt
	StoredName string             `json:"storedName" bson:"storedName"` // Tên UUID trên đĩa
	MimeType   string             `json:"mimeType" bson:"mimeType"`
	SizeBytes  int64              `json:"sizeBytes" bson:"sizeBytes"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}
