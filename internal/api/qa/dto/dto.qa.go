// Package dto định nghĩa input cho domain qa.
package dto

// ConversationCreateInput tạo hội thoại mới trên một video đã xử lý xong
type ConversationCreateInput struct {
	VideoID string `json:"videoId" validate:"required" transform:"str_objectid"`
	Title   string `json:"title,omitempty" validate:"omitempty,no_xss" transform:"optional"`
}

// ConversationUpdateInput đổi tiêu đề hội thoại
type ConversationUpdateInput struct {
	Title string `json:"title,omitempty" validate:"omitempty,no_xss" transform:"optional"`
}

// ConversationListQuery filter danh sách hội thoại
type ConversationListQuery struct {
	VideoID string `query:"videoId" json:"videoId" validate:"omitempty"`
	Page    int64  `query:"page" json:"page" validate:"omitempty,min=1"`
	Limit   int64  `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}

// AskInput là một câu hỏi gửi vào hội thoại
type AskInput struct {
	Question string `json:"question" validate:"required,min=1,no_xss"`
}

// MessageCreateInput dùng cho CRUD quản trị message
type MessageCreateInput struct {
	ConversationID string `json:"conversationId" validate:"required" transform:"str_objectid"`
	Role           string `json:"role" validate:"required,oneof=user assistant"`
	Content        string `json:"content" validate:"required"`
}

// MessageUpdateInput dùng cho CRUD quản trị message
type MessageUpdateInput struct {
	Content string `json:"content,omitempty" validate:"omitempty" transform:"optional"`
}
