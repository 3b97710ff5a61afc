package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category phân loại video trong thư viện.
// IsGlobal: category hệ thống seed sẵn, mọi người dùng đều thấy (không có owner).
// IsSystem: được bảo vệ khỏi sửa/xóa bởi non-admin ở tầng base service.
type Category struct {
	_Relationships struct{} `relationship:"collection:library_videos,field:categoryId,message:Không thể xóa category vì có %d video đang dùng. Vui lòng đổi category của các video trước."`

	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	IsGlobal    bool               `json:"isGlobal" bson:"isGlobal"`
	IsSystem    bool               `json:"isSystem" bson:"isSystem"`

	OwnerID            *primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty" index:"single:1"`
	AnonymousSessionID string              `json:"anonymousSessionId,omitempty" bson:"anonymousSessionId,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// CategoryPaginateResult đại diện cho kết quả phân trang Category
type CategoryPaginateResult struct {
	Page      int64      `json:"page" bson:"page"`
	Limit     int64      `json:"limit" bson:"limit"`
	ItemCount int64      `json:"itemCount" bson:"itemCount"`
	Items     []Category `json:"items" bson:"items"`
}
