package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection là một nhóm video do người dùng tự tổ chức.
// Video được gắn vào collection qua CollectionItem (join record).
type Collection struct {
	_Relationships struct{} `relationship:"collection:library_collection_items,field:collectionId,message:Không thể xóa collection vì còn %d video bên trong. Vui lòng gỡ các video trước."`

	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`

	OwnerID            *primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty" index:"single:1"`
	AnonymousSessionID string              `json:"anonymousSessionId,omitempty" bson:"anonymousSessionId,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// CollectionItem gắn một video vào một collection.
type CollectionItem struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CollectionID primitive.ObjectID `json:"collectionId" bson:"collectionId" index:"single:1"`
	VideoID      primitive.ObjectID `json:"videoId" bson:"videoId" index:"single:1"`

	OwnerID            *primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	AnonymousSessionID string              `json:"anonymousSessionId,omitempty" bson:"anonymousSessionId,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// CollectionPaginateResult đại diện cho kết quả phân trang Collection
type CollectionPaginateResult struct {
	Page      int64        `json:"page" bson:"page"`
	Limit     int64        `json:"limit" bson:"limit"`
	ItemCount int64        `json:"itemCount" bson:"itemCount"`
	Items     []Collection `json:"items" bson:"items"`
}
