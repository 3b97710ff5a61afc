// Package models - AnonymousSession (phiên khách vãng lai) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnonymousSession đại diện cho một phiên khách (guest) chưa đăng nhập.
// SessionID là UUID do server sinh ra, client gửi kèm trong header X-Anonymous-Session.
// VideoCount đếm số video guest đã thêm để áp hạn mức (guest limit).
// Khi guest đăng ký tài khoản, dữ liệu được migrate một lần duy nhất:
// MigratedToUserID + MigratedAt được set và session không thể migrate lại.
type AnonymousSession struct {
	ID               primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	SessionID        string              `json:"sessionId" bson:"sessionId" index:"unique"`
	VideoCount       int64               `json:"videoCount" bson:"videoCount"`
	MigratedToUserID *primitive.ObjectID `json:"migratedToUserId,omitempty" bson:"migratedToUserId,omitempty"`
	MigratedAt       int64               `json:"migratedAt,omitempty" bson:"migratedAt,omitempty"`
	LastSeenAt       int64               `json:"lastSeenAt" bson:"lastSeenAt"`
	CreatedAt        int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt        int64               `json:"updatedAt" bson:"updatedAt"`
}

// AnonymousSessionPaginateResult đại diện cho kết quả phân trang AnonymousSession
type AnonymousSessionPaginateResult struct {
	Page      int64              `json:"page" bson:"page"`
	Limit     int64              `json:"limit" bson:"limit"`
	ItemCount int64              `json:"itemCount" bson:"itemCount"`
	Items     []AnonymousSession `json:"items" bson:"items"`
}
