package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role của một message trong hội thoại
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Citation trỏ về một đoạn transcript làm căn cứ cho câu trả lời.
// Offset tính theo byte trong transcript của video.
type Citation struct {
	Quote string `json:"quote" bson:"quote"` // Đoạn transcript được trích dẫn
	Start int    `json:"start" bson:"start"` // Offset bắt đầu trong transcript
	End   int    `json:"end" bson:"end"`     // Offset kết thúc trong transcript
}

// QaMessage là một lượt hỏi hoặc trả lời trong hội thoại
type QaMessage struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	ConversationID primitive.ObjectID `json:"conversationId" bson:"conversationId" index:"single:1"`
	Role           string             `json:"role" bson:"role"` // user | assistant
	Content        string             `json:"content" bson:"content"`
	Citations      []Citation         `json:"citations,omitempty" bson:"citations,omitempty"` // Chỉ có ở message của assistant

	// ===== CHỦ SỞ HỮU =====
	OwnerID            *primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty" index:"single:1"`
	AnonymousSessionID string              `json:"anonymousSessionId,omitempty" bson:"anonymousSessionId,omitempty" index:"single:1"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// QaMessagePaginateResult kết quả phân trang cho QaMessage
type QaMessagePaginateResult struct {
	Page      int64       `json:"page" bson:"page"`
	Limit     int64       `json:"limit" bson:"limit"`
	ItemCount int64       `json:"itemCount" bson:"itemCount"`
	Items     []QaMessage `json:"items" bson:"items"`
}
