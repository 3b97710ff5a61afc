// Package models - AuthLog thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthLog lưu log các hành động trong nhóm chức năng AUTH
// (đăng nhập, đăng ký, migrate session, khóa/mở khóa tài khoản).
type AuthLog struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	SessionID  string             `json:"sessionId,omitempty" bson:"sessionId,omitempty"`
	Collection string             `json:"collection,omitempty" bson:"collection,omitempty"`
	Action     string             `json:"action,omitempty" bson:"action,omitempty"`
	Describe   string             `json:"describe,omitempty" bson:"describe,omitempty"`
	OldData    string             `json:"oldData,omitempty" bson:"oldData,omitempty"`
	NewData    string             `json:"newData,omitempty" bson:"newData,omitempty"`
	CreatedAt  int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt  int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
