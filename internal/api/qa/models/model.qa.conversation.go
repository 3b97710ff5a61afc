// Package models định nghĩa các model của domain qa: hội thoại hỏi đáp trên transcript video.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QaConversation là một cuộc hội thoại hỏi đáp gắn với một video trong thư viện.
// Chỉ tạo được trên video đã xử lý xong (status ready).
type QaConversation struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// ===== NỘI DUNG =====
	VideoID      primitive.ObjectID `json:"videoId" bson:"videoId" index:"single:1"` // Video mà hội thoại tham chiếu
	Title        string             `json:"title" bson:"title"`                      // Tiêu đề hội thoại, mặc định theo tiêu đề video
	MessageCount int64              `json:"messageCount" bson:"messageCount"`        // Tổng số message trong hội thoại

	// ===== CHỦ SỞ HỮU =====
	OwnerID            *primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty" index:"single:1"`
	AnonymousSessionID string              `json:"anonymousSessionId,omitempty" bson:"anonymousSessionId,omitempty" index:"single:1"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// QaConversationPaginateResult kết quả phân trang cho QaConversation
type QaConversationPaginateResult struct {
	Page      int64            `json:"page" bson:"page"`
	Limit     int64            `json:"limit" bson:"limit"`
	ItemCount int64            `json:"itemCount" bson:"itemCount"`
	Items     []QaConversation `json:"items" bson:"items"`
}
