// Package models định nghĩa các model của domain export.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Format xuất dữ liệu được hỗ trợ
const (
	ExportFormatTXT      = "txt"
	ExportFormatCSV      = "csv"
	ExportFormatJSON     = "json"
	ExportFormatMarkdown = "markdown"
)

// Kênh giao export
const (
	ExportChannelDownload = "download"
	ExportChannelEmail    = "email"
)

// Trạng thái của một lần export
const (
	ExportStatusGenerated = "generated"
	ExportStatusSent      = "sent"
	ExportStatusFailed    = "failed"
)

// ExportDelivery ghi lại một lần xuất dữ liệu từ thư viện
type ExportDelivery struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// ===== NỘI DUNG =====
	VideoIDs     []primitive.ObjectID `json:"videoIds" bson:"videoIds"`                   // Các video được xuất
	Format       string               `json:"format" bson:"format"`                       // txt | csv | json | markdown
	Channel      string               `json:"channel" bson:"channel"`                     // download | email
	Recipient    string               `json:"recipient,omitempty" bson:"recipient,omitempty"` // Địa chỉ nhận khi gửi email
	Filename     string               `json:"filename" bson:"filename"`                   // Tên file được tạo
	IncludeNotes bool                 `json:"includeNotes" bson:"includeNotes"`           // Kèm ghi chú cá nhân
	IncludeQA    bool                 `json:"includeQA" bson:"includeQA"`                 // Kèm hội thoại hỏi đáp

	// ===== TRẠNG THÁI =====
	Status string `json:"status" bson:"status" index:"single:1"` // generated | sent | failed
	Error  string `json:"error,omitempty" bson:"error,omitempty"`

	// ===== CHỦ SỞ HỮU =====
	OwnerID            *primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty" index:"single:1"`
	AnonymousSessionID string              `json:"anonymousSessionId,omitempty" bson:"anonymousSessionId,omitempty" index:"single:1"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// ExportDeliveryPaginateResult kết quả phân trang cho ExportDelivery
type ExportDeliveryPaginateResult struct {
	Page      int64            `json:"page" bson:"page"`
	Limit     int64            `json:"limit" bson:"limit"`
	ItemCount int64            `json:"itemCount" bson:"itemCount"`
	Items     []ExportDelivery `json:"items" bson:"items"`
}
