package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoStatus định nghĩa trạng thái của video trong pipeline xử lý
const (
	VideoStatusPending    = "pending"    // Đang chờ worker xử lý
	VideoStatusProcessing = "processing" // Worker đang lấy metadata + transcript
	VideoStatusReady      = "ready"      // Đã có metadata + transcript, sẵn sàng search/Q&A
	VideoStatusFailed     = "failed"     // Trích xuất thất bại sau số lần retry cấu hình
)

// Video đại diện cho một video YouTube trong thư viện của người dùng hoặc phiên khách.
// ScraperData chứa payload thô từ dịch vụ scraper; các field typed (Title, Channel,
// Duration, ...) được extract từ đó qua tag extract khi worker hoàn tất xử lý.
// Xóa video bị chặn khi còn collection item tham chiếu (relationship tag);
// QA conversation được cascade xóa bằng logic service.
type Video struct {
	_Relationships struct{} `relationship:"collection:library_collection_items,field:videoId,message:Không thể xóa video vì đang nằm trong %d collection. Vui lòng gỡ video khỏi các collection trước."`

	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// ===== ĐỊNH DANH YOUTUBE =====
	YouTubeID string `json:"youtubeId" bson:"youtubeId" index:"single:1"` // Video ID 11 ký tự
	URL       string `json:"url" bson:"url"`                              // URL chuẩn dạng watch

	// ===== METADATA (extract từ ScraperData) =====
	Title              string `json:"title" bson:"title" extract:"ScraperData\\.title,converter=string,optional"`
	Channel            string `json:"channel" bson:"channel" extract:"ScraperData\\.channel,converter=string,optional"`
	Description        string `json:"description,omitempty" bson:"description,omitempty" extract:"ScraperData\\.description,converter=string,optional"`
	ThumbnailURL       string `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty" extract:"ScraperData\\.thumbnailUrl,converter=string,optional"`
	Duration           int64  `json:"duration" bson:"duration" extract:"ScraperData\\.duration,converter=int64,optional"`                 // Giây
	PublishedAt        int64  `json:"publishedAt,omitempty" bson:"publishedAt,omitempty" extract:"ScraperData\\.publishedAt,converter=time,optional"` // Unix milli
	Transcript         string `json:"transcript,omitempty" bson:"transcript,omitempty" extract:"ScraperData\\.transcript,converter=string,optional"`
	TranscriptLanguage string `json:"transcriptLanguage,omitempty" bson:"transcriptLanguage,omitempty" extract:"ScraperData\\.transcriptLanguage,converter=string,optional"`

	// ===== DỮ LIỆU NGƯỜI DÙNG =====
	Summary    string              `json:"summary,omitempty" bson:"summary,omitempty"`
	Notes      string              `json:"notes,omitempty" bson:"notes,omitempty"`
	IsFavorite bool                `json:"isFavorite" bson:"isFavorite"`
	Rating     int                 `json:"rating" bson:"rating"` // 0-5
	CategoryID *primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty"`

	// ===== PIPELINE =====
	Status          string                 `json:"status" bson:"status" index:"single:1"`
	ProcessingError string                 `json:"processingError,omitempty" bson:"processingError,omitempty"`
	Attempts        int                    `json:"attempts" bson:"attempts"` // Số lần worker đã thử trích xuất
	ScraperData     map[string]interface{} `json:"scraperData,omitempty" bson:"scraperData,omitempty"`

	// ===== CHỦ SỞ HỮU =====
	OwnerID            *primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty" index:"single:1"`
	AnonymousSessionID string              `json:"anonymousSessionId,omitempty" bson:"anonymousSessionId,omitempty" index:"single:1"`

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// VideoPaginateResult đại diện cho kết quả phân trang Video
type VideoPaginateResult struct {
	Page      int64   `json:"page" bson:"page"`
	Limit     int64   `json:"limit" bson:"limit"`
	ItemCount int64   `json:"itemCount" bson:"itemCount"`
	Items     []Video `json:"items" bson:"items"`
}
