package common

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// contextKey là kiểu riêng cho các key trong context, tránh đụng độ với package khác
type contextKey string

const (
	userIDContextKey    contextKey = "user_id"
	sessionIDContextKey contextKey = "session_id"
	isAdminContextKey   contextKey = "is_admin"
)

// SetUserIDToContext lưu userID vào context để service layer có thể đọc (vd: check admin, audit)
func SetUserIDToContext(ctx context.Context, userID primitive.ObjectID) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// GetUserIDFromContext lấy userID từ context. Trả về ObjectID zero nếu không có.
func GetUserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	userID, ok := ctx.Value(userIDContextKey).(primitive.ObjectID)
	return userID, ok
}

// SetSessionIDToContext lưu sessionId (phiên ẩn danh) vào context
func SetSessionIDToContext(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey, sessionID)
}

// GetSessionIDFromContext lấy sessionId (phiên ẩn danh) từ context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionIDContextKey).(string)
	return sessionID, ok
}

// SetIsAdminToContext đánh dấu request hiện tại là của admin
func SetIsAdminToContext(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminContextKey, isAdmin)
}

// GetIsAdminFromContext kiểm tra request hiện tại có phải của admin không
func GetIsAdminFromContext(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(isAdminContextKey).(bool)
	return ok && isAdmin
}
