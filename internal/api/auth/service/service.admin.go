// Package authsvc - service quản trị (Admin): block user, cấp quyền quản trị.
package authsvc

import (
	"context"
	"fmt"

	models "knowledge_miner/internal/api/auth/models"
	basesvc "knowledge_miner/internal/api/base/service"
	"knowledge_miner/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminService là cấu trúc chứa các phương thức liên quan đến admin
type AdminService struct {
	userService *UserService
}

// NewAdminService tạo mới AdminService
func NewAdminService() (*AdminService, error) {
	userService, err := NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	return &AdminService{
		userService: userService,
	}, nil
}

// SetAdministrator cấp hoặc thu quyền quản trị cho User dựa trên Email
func (s *AdminService) SetAdministrator(ctx context.Context, email string, isAdmin bool) (*models.User, error) {
	filter := bson.M{"email": email}
	user, err := s.userService.FindOne(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"isAdmin": isAdmin},
	}
	updatedUser, err := s.userService.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		return nil, err
	}
	return &updatedUser, nil
}

// BlockUser chặn hoặc bỏ chặn User dựa trên Email và trạng thái Block
func (s *AdminService) BlockUser(ctx context.Context, email string, block bool, note string) (*models.User, error) {
	filter := bson.M{"email": email}
	user, err := s.userService.FindOne(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   block,
			"blockNote": note,
		},
	}
	updatedUser, err := s.userService.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		return nil, err
	}
	return &updatedUser, nil
}

// UnBlockUser mở khóa người dùng
func (s *AdminService) UnBlockUser(ctx context.Context, email string) (*models.User, error) {
	return s.BlockUser(ctx, email, false, "")
}

// IsUserAdministrator kiểm tra user có quyền quản trị không.
// Được đăng ký vào base service qua SetIsAdminFromContextFunc để
// bảo vệ dữ liệu hệ thống (isSystem).
func IsUserAdministratorFromContext(ctx context.Context) bool {
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return false
	}
	userService, err := NewUserService()
	if err != nil {
		return false
	}
	user, err := userService.FindOneById(ctx, userID)
	if err != nil {
		return false
	}
	return user.IsAdmin && !user.IsBlock
}

// EnsureFirstUserIsAdmin gán quyền quản trị cho user nếu đây là user duy nhất
// trong hệ thống (bootstrap admin khi chưa có ai).
func EnsureFirstUserIsAdmin(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	userService, err := NewUserService()
	if err != nil {
		return false, err
	}
	count, err := userService.CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	if count != 1 {
		return false, nil
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"isAdmin": true},
	}
	if _, err := userService.UpdateById(ctx, userID, updateData); err != nil {
		return false, err
	}
	return true, nil
}
